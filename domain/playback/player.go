package playback

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"radio-lab/contract"
	"radio-lab/errors"
	"time"
)

// Failure records a device that could not render an event.
type Failure struct {
	Event  int // index in the schedule, -1 for the final switch-off
	Signal int
	Err    error
}

// Report summarises one playback.
type Report struct {
	Events   int           // events in the schedule
	Rendered int           // events fully rendered
	OnTime   time.Duration // time spent ON
	Failures []Failure
}

// Err joins the device failures, nil when there are none.
func (r Report) Err() error {
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, fmt.Errorf("signal %d, event %d: %w", f.Signal, f.Event, f.Err))
	}
	return stderrors.Join(errs...)
}

type Player struct {
	log          *slog.Logger
	timing       Timing
	signals      []contract.Signal
	abortOnError bool
}

func NewPlayer(log *slog.Logger, timing Timing, abortOnError bool, signals ...contract.Signal) *Player {
	return &Player{log: log, timing: timing, signals: signals, abortOnError: abortOnError}
}

// Play renders code on every signal and blocks until the sequence ends or ctx
// is done. Whatever happens, every signal that may be ON is switched OFF
// before Play returns.
// A device failure is recorded in the report; it stops the playback only when
// the player aborts on error.
func (p *Player) Play(ctx context.Context, code string) (report Report, err error) {
	events := Schedule(code, p.timing)
	report.Events = len(events)
	lit := make([]bool, len(p.signals))

	defer func() {
		p.switchOff(lit, &report)
	}()

	for i, e := range events {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if failed := p.render(i, e, lit, &report); failed != nil && p.abortOnError {
			p.log.Warn("Playback aborted", "event", i, "error", failed)
			return report, fmt.Errorf("%w: %w", errors.ErrPlaybackAborted, failed)
		}

		if err := wait(ctx, e.Duration); err != nil {
			p.log.Debug("Playback interrupted", "event", i, "rendered", report.Rendered)
			return report, err
		}

		report.Rendered++
		if e.On {
			report.OnTime += e.Duration
		}
	}
	return report, nil
}

// render drives every signal into the event state and returns the first failure.
func (p *Player) render(index int, e Event, lit []bool, report *Report) error {
	var first error
	for s, signal := range p.signals {
		if err := signal.Set(e.On); err != nil {
			report.Failures = append(report.Failures, Failure{Event: index, Signal: s, Err: err})
			if first == nil {
				first = err
			}
			// A failed device is in an unknown state, it may be ON.
			lit[s] = true
			continue
		}
		lit[s] = e.On
	}
	return first
}

func (p *Player) switchOff(lit []bool, report *Report) {
	for s, on := range lit {
		if !on {
			continue
		}
		if err := p.signals[s].Set(false); err != nil {
			report.Failures = append(report.Failures, Failure{Event: -1, Signal: s, Err: err})
			p.log.Error("Unable to switch signal off", "signal", s, "error", err)
		}
	}
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
