package internal

import (
	"fmt"
	"radio-lab/domain/playback"
	"radio-lab/domain/station"
	"radio-lab/errors"
	"radio-lab/runtime"
	"time"
)

type Config struct {
	Station  string `env:"STATION,required=true"`
	LogLevel string `env:"LOG_LEVEL,default=INFO"`
	Host     string `env:"HOST,default=127.0.0.1"`
	PeerHost string `env:"PEER_HOST,default=127.0.0.1"`
	// Overrides of the station profile ports, 0 keeps the profile value
	ListenPort int `env:"LISTEN_PORT,default=0"`
	PeerPort   int `env:"PEER_PORT,default=0"`

	DotDuration    time.Duration `env:"DOT_DURATION,default=200ms"`
	DashDuration   time.Duration `env:"DASH_DURATION,default=600ms"`
	SymbolGap      time.Duration `env:"SYMBOL_GAP,default=200ms"`
	LetterGap      time.Duration `env:"LETTER_GAP,default=400ms"`
	WordGap        time.Duration `env:"WORD_GAP,default=1s"`
	HandshakeDelay time.Duration `env:"HANDSHAKE_DELAY,default=1s"`

	NoiseSeed       uint64        `env:"NOISE_SEED,default=0"`
	NumberOfWorkers int           `env:"NUMBER_OF_WORKERS,default=4"`
	BufferSize      int           `env:"BUFFER_SIZE,default=16"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	// Task queue sampling, 0 disables it
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,default=5s"`
	LowCapacityThreshold int           `env:"LOW_CAPACITY_THRESHOLD,default=80"`

	CharReplacement    string `env:"UNKNOWN_CHARACTER_REPLACEMENT,default=?"`
	AbortOnSignalError bool   `env:"ABORT_ON_SIGNAL_ERROR,default=false"`
	EnableTone         bool   `env:"ENABLE_TONE,default=false"`
	Colours            bool   `env:"COLOURS,default=true"`

	// Empty keeps the journal in memory
	JournalPath  string `env:"JOURNAL_PATH"`
	JournalLimit int    `env:"JOURNAL_LIMIT,default=50"`
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"%w: UNKNOWN_CHARACTER_REPLACEMENT got %q",
			errors.ErrInvalidCharacter, str,
		)
	}
	return r[0], nil
}

// Profile resolves the configured station and applies the port overrides.
func (c Config) Profile() (station.Profile, error) {
	profile, err := station.ByName(c.Station)
	if err != nil {
		return station.Profile{}, err
	}
	if c.ListenPort > 0 {
		profile.ListenPort = c.ListenPort
	}
	if c.PeerPort > 0 {
		profile.PeerPort = c.PeerPort
	}
	if err = profile.Noise.Validate(); err != nil {
		return station.Profile{}, err
	}
	return profile, nil
}

// Timing builds the playback cadence, rejecting silent dots or dashes.
func (c Config) Timing() (playback.Timing, error) {
	timing := playback.Timing{
		Dot:       c.DotDuration,
		Dash:      c.DashDuration,
		Gap:       c.SymbolGap,
		LetterGap: c.LetterGap,
		WordGap:   c.WordGap,
	}
	if err := timing.Validate(); err != nil {
		return playback.Timing{}, err
	}
	return timing, nil
}

// Settings derives the runtime settings of a station. A zero seed draws a
// fresh one so two runs do not share the same interference.
func (c Config) Settings(profile station.Profile) runtime.Settings {
	seed := c.NoiseSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return runtime.Settings{
		ListenAddress:  fmt.Sprintf("%s:%d", c.Host, profile.ListenPort),
		PeerAddress:    fmt.Sprintf("%s:%d", c.PeerHost, profile.PeerPort),
		HandshakeDelay: c.HandshakeDelay,
		NumWorkers:     c.NumberOfWorkers,
		BufferSize:     c.BufferSize,
		Seed:           seed,

		MonitorInterval:   c.MetricInterval,
		CapacityThreshold: c.LowCapacityThreshold,
	}
}
