package internal

import (
	"testing"
	"time"

	"radio-lab/domain/playback"
	"radio-lab/domain/station"
	"radio-lab/errors"

	"github.com/Netflix/go-env"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	req := require.New(t)
	var config Config

	// STATION is the only required variable
	req.Error(env.Unmarshal(env.EnvSet{}, &config))

	req.NoError(env.Unmarshal(env.EnvSet{"STATION": "carpathia"}, &config))
	timing, err := config.Timing()
	req.NoError(err)
	req.Equal(playback.DefaultTiming(), timing)
	req.Equal(time.Second, config.HandshakeDelay)
	req.Equal("?", config.CharReplacement)
	req.Equal(50, config.JournalLimit)
	req.Empty(config.JournalPath)

	profile, err := config.Profile()
	req.NoError(err)
	req.Equal(station.CARPATHIA, profile.Name)

	settings := config.Settings(profile)
	req.Equal("127.0.0.1:5678", settings.ListenAddress)
	req.Equal("127.0.0.1:5679", settings.PeerAddress)
	req.NotZero(settings.Seed)
}

func TestConfig_Overrides(t *testing.T) {
	req := require.New(t)
	var config Config
	environ := env.EnvSet{
		"STATION":      "TITANIC",
		"LISTEN_PORT":  "6000",
		"PEER_PORT":    "6001",
		"PEER_HOST":    "10.0.0.2",
		"NOISE_SEED":   "42",
		"DOT_DURATION": "10ms",
	}
	req.NoError(env.Unmarshal(environ, &config))

	profile, err := config.Profile()
	req.NoError(err)
	settings := config.Settings(profile)
	req.Equal("127.0.0.1:6000", settings.ListenAddress)
	req.Equal("10.0.0.2:6001", settings.PeerAddress)
	req.Equal(uint64(42), settings.Seed)
	timing, err := config.Timing()
	req.NoError(err)
	req.Equal(10*time.Millisecond, timing.Dot)
}

func TestConfig_UnknownStation(t *testing.T) {
	req := require.New(t)
	config := Config{Station: "LUSITANIA"}

	_, err := config.Profile()
	req.ErrorIs(err, errors.ErrUnknownStation)
}

func TestCharacterRune(t *testing.T) {
	req := require.New(t)

	r, err := CharacterRune("#")
	req.NoError(err)
	req.Equal('#', r)

	r, err = CharacterRune("é")
	req.NoError(err)
	req.Equal('é', r)

	_, err = CharacterRune("??")
	req.ErrorIs(err, errors.ErrInvalidCharacter)
	_, err = CharacterRune("")
	req.ErrorIs(err, errors.ErrInvalidCharacter)
}

func TestConfig_RejectsSilentTiming(t *testing.T) {
	req := require.New(t)
	var config Config
	req.NoError(env.Unmarshal(env.EnvSet{"STATION": "TITANIC", "DOT_DURATION": "0s"}, &config))

	_, err := config.Timing()
	req.ErrorIs(err, errors.ErrInvalidTiming)

	config.DotDuration = 200 * time.Millisecond
	config.WordGap = -time.Second
	_, err = config.Timing()
	req.ErrorIs(err, errors.ErrInvalidTiming)
}
