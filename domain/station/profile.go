// Package station describes the two historical stations taking part in the exchange.
package station

import (
	"fmt"
	"radio-lab/domain/noise"
	"radio-lab/errors"
	"strings"
	"time"

	"github.com/samber/lo"
)

const (
	TITANIC   = "TITANIC"
	CARPATHIA = "CARPATHIA"
)

// AutoReply makes a station answer distress calls with a catalogue message.
type AutoReply struct {
	Enabled     bool
	Probability float64
	Delay       time.Duration
}

type Profile struct {
	Name         string
	Peer         string
	ListenPort   int
	PeerPort     int
	Catalogue    []string
	QuickMessage string
	Noise        noise.Profile
	AutoReply    AutoReply
	LampColor    string
}

func Titanic() Profile {
	return Profile{
		Name:       TITANIC,
		Peer:       CARPATHIA,
		ListenPort: 5679,
		PeerPort:   5678,
		Catalogue: []string{
			"CQD CQD SOS SOS FROM TITANIC. WE ARE SINKING FAST. PASSENGERS BEING PUT INTO BOATS.",
			"CQD CQD SOS TITANIC 41.46 N 50.14 W REQUIRE IMMEDIATE ASSISTANCE.",
			"WE HAVE STRUCK ICEBERG SINKING NEED IMMEDIATE ASSISTANCE.",
			"TITANIC SINKING HEAD DOWN NEED IMMEDIATE ASSISTANCE.",
			"SOS TITANIC POSITION 41.44 N 50.24 W. REQUIRE IMMEDIATE ASSISTANCE.",
			"COME AT ONCE. WE HAVE STRUCK A BERG.",
			"SINKING, COME QUICKLY.",
			"WE ARE PUTTING PASSENGERS OFF IN SMALL BOATS.",
			"WOMEN AND CHILDREN IN BOATS, CANNOT LAST MUCH LONGER.",
		},
		QuickMessage: "SOS SOS SOS TITANIC NEEDS IMMEDIATE ASSISTANCE",
		Noise:        noise.Profile{Probability: 0.3, MaxCorruptions: 3, Density: 10},
		LampColor:    "yellow",
	}
}

func Carpathia() Profile {
	return Profile{
		Name:       CARPATHIA,
		Peer:       TITANIC,
		ListenPort: 5678,
		PeerPort:   5679,
		Catalogue: []string{
			"COMING TO YOUR ASSISTANCE. FULL SPEED.",
			"PUTTING ABOUT AND HEADING TO YOUR POSITION.",
			"OUR POSITION 41.17 N 49.52 W. STEAMING FULL SPEED TO YOU.",
			"WE ARE MAKING 14 KNOTS. WILL BE WITH YOU IN 4 HOURS.",
			"HAVE BROADCAST NEWS TO OTHER SHIPS. OLYMPIC IS ALSO COMING.",
			"HOW MANY LIFEBOATS LAUNCHED?",
			"ALL BOATS ON STANDBY. CREW READY. ARRIVING SOON.",
			"WE'RE COMING AS QUICK AS WE CAN.",
			"KEEP YOUR SPIRITS UP. WE'RE COMING.",
		},
		QuickMessage: "CARPATHIA ON WAY. ETA 0400 HOURS.",
		Noise:        noise.Profile{Probability: 0.2, MaxCorruptions: 2, Density: 15},
		AutoReply:    AutoReply{Enabled: true, Probability: 0.7, Delay: 2 * time.Second},
		LampColor:    "green",
	}
}

// ByName resolves a station profile, ignoring case.
func ByName(name string) (Profile, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case TITANIC:
		return Titanic(), nil
	case CARPATHIA:
		return Carpathia(), nil
	default:
		return Profile{}, fmt.Errorf("%w: %q", errors.ErrUnknownStation, name)
	}
}

// Names lists the known stations.
func Names() []string {
	return lo.Map([]Profile{Titanic(), Carpathia()}, func(p Profile, _ int) string { return p.Name })
}

// CatalogueEntry returns the i-th predefined message.
func (p Profile) CatalogueEntry(i int) (string, error) {
	if i < 0 || i >= len(p.Catalogue) {
		return "", fmt.Errorf("%w: %d (catalogue holds %d messages)", errors.ErrCatalogueIndex, i, len(p.Catalogue))
	}
	return p.Catalogue[i], nil
}
