// Package console is the terminal shell of a station.
// It prints the station log and status line, renders the lamp and tone,
// and turns operator input into station commands.
package console

import (
	"fmt"
	"io"
	"radio-lab/contract"
	"radio-lab/domain"
	"strings"
	"sync"

	"github.com/gookit/color"
)

var _ contract.Shell = (*Shell)(nil)

var lampColors = map[string]color.Color{
	"yellow": color.FgYellow,
	"green":  color.FgGreen,
	"red":    color.FgRed,
	"blue":   color.FgBlue,
	"cyan":   color.FgCyan,
	"white":  color.FgWhite,
}

type Shell struct {
	mu      sync.Mutex
	out     io.Writer
	station string
	lamp    color.Color
	colours bool
}

func NewShell(out io.Writer, station, lampColor string, colours bool) *Shell {
	lamp, ok := lampColors[strings.ToLower(lampColor)]
	if !ok {
		lamp = color.FgWhite
	}
	return &Shell{out: out, station: station, lamp: lamp, colours: colours}
}

// Log prints one log entry: "[15:04:05] SENT: text" followed by the Morse line.
// A received entry also shows what the operator decoded.
func (s *Shell) Log(message domain.Message) {
	label := message.Direction.Label()
	if s.colours {
		switch message.Direction {
		case domain.SENT:
			label = color.FgCyan.Render(label)
		case domain.RECEIVED:
			label = color.FgMagenta.Render(label)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n[%s] %s: %s\n", message.At.Format("15:04:05"), label, message.Text)
	fmt.Fprintf(&b, "    %s\n", message.Morse)
	if message.Direction == domain.RECEIVED && message.Decoded != message.Text {
		fmt.Fprintf(&b, "    decoded: %s\n", message.Decoded)
	}
	s.write(b.String())
}

func (s *Shell) Status(text string) {
	line := fmt.Sprintf("%s > %s", s.station, text)
	if s.colours {
		line = color.New(color.OpItalic, color.FgDarkGray).Render(line)
	}
	s.write("\n" + line + "\n")
}

// Lamp renders the signal lamp as a bullet redrawn in place.
func (s *Shell) Lamp() contract.Signal {
	return signalFunc(func(on bool) error {
		bullet := "○"
		if on {
			bullet = "●"
			if s.colours {
				bullet = s.lamp.Render(bullet)
			}
		}
		s.write("\r" + bullet + " ")
		return nil
	})
}

// Tone rings the terminal bell when the tone starts.
func (s *Shell) Tone() contract.Signal {
	return signalFunc(func(on bool) error {
		if on {
			s.write("\a")
		}
		return nil
	})
}

func (s *Shell) Printf(format string, args ...any) {
	s.write(fmt.Sprintf(format, args...))
}

func (s *Shell) write(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = io.WriteString(s.out, text)
}

type signalFunc func(on bool) error

func (f signalFunc) Set(on bool) error {
	return f(on)
}
