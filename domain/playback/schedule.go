// Package playback turns a Morse string into a timed ON/OFF sequence and
// renders it onto signal devices such as a lamp or a tone generator.
package playback

import (
	"fmt"
	"radio-lab/domain/morse"
	"radio-lab/errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New()

// Timing holds the duration of each phase of the sequence.
type Timing struct {
	Dot       time.Duration `validate:"gt=0"`
	Dash      time.Duration `validate:"gt=0"`
	Gap       time.Duration `validate:"gte=0"` // OFF phase after every dot or dash
	LetterGap time.Duration `validate:"gte=0"`
	WordGap   time.Duration `validate:"gte=0"`
}

// Validate requires audible dots and dashes and non-negative gaps.
func (t Timing) Validate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidTiming, err)
	}
	return nil
}

// DefaultTiming is the cadence of the historical stations.
func DefaultTiming() Timing {
	return Timing{
		Dot:       200 * time.Millisecond,
		Dash:      600 * time.Millisecond,
		Gap:       200 * time.Millisecond,
		LetterGap: 400 * time.Millisecond,
		WordGap:   time.Second,
	}
}

type Event struct {
	On       bool
	Duration time.Duration
}

func (e Event) String() string {
	if e.On {
		return "ON " + e.Duration.String()
	}
	return "OFF " + e.Duration.String()
}

// Schedule returns the events rendering code, in order.
// Runes outside the Morse alphabet produce nothing.
func Schedule(code string, timing Timing) []Event {
	events := make([]Event, 0, 2*len(code))
	for _, r := range code {
		switch r {
		case morse.Dot:
			events = append(events, Event{On: true, Duration: timing.Dot}, Event{Duration: timing.Gap})
		case morse.Dash:
			events = append(events, Event{On: true, Duration: timing.Dash}, Event{Duration: timing.Gap})
		case morse.LetterGap:
			events = append(events, Event{Duration: timing.LetterGap})
		case morse.WordGap:
			events = append(events, Event{Duration: timing.WordGap})
		}
	}
	return events
}

// Duration is the total length of a schedule.
func Duration(events []Event) time.Duration {
	return lo.SumBy(events, func(e Event) time.Duration { return e.Duration })
}

// OnTime is the time spent in the ON state.
func OnTime(events []Event) time.Duration {
	return lo.SumBy(lo.Filter(events, func(e Event, _ int) bool { return e.On }),
		func(e Event) time.Duration { return e.Duration })
}
