package e2e

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Host string `envconfig:"E2E_HOST" default:"127.0.0.1"`
	// E2E_DOT_DURATION sets every playback timing, keep it short in CI
	DotDuration time.Duration `envconfig:"E2E_DOT_DURATION" default:"1ms"`
	// E2E_TIMEOUT bounds every wait on a station
	Timeout time.Duration `envconfig:"E2E_TIMEOUT" default:"5s"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
	// E2E_VERBOSE prints the console of both stations
	Verbose bool `envconfig:"E2E_VERBOSE" default:"false"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
