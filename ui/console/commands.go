package console

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"radio-lab/contract"
	"radio-lab/domain"
	"radio-lab/domain/station"
	"radio-lab/errors"
	"strconv"
	"strings"
)

// History is the read side of a station journal.
type History interface {
	List(station string, limit int) ([]domain.Message, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Message, error)
}

const help = `Commands:
  <text>        transmit text
  /sos          transmit the quick distress message
  /catalogue    list predefined messages
  /send N       transmit predefined message N
  /list [N]     show the journal, newest first
  /find WORDS   search the journal
  /help         show this help
  /quit         leave
`

// Prompt reads operator commands until ctx is done, input ends or /quit.
type Prompt struct {
	shell   *Shell
	station contract.IStation
	profile station.Profile
	history History
	limit   int
}

func NewPrompt(shell *Shell, st contract.IStation, profile station.Profile, history History, limit int) *Prompt {
	return &Prompt{shell: shell, station: st, profile: profile, history: history, limit: limit}
}

func (p *Prompt) Run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	errs := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		errs <- scanner.Err()
	}()

	p.shell.Printf("%s", help)
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errs:
			return err
		case line := <-lines:
			if quit := p.Execute(ctx, line); quit {
				return nil
			}
		}
	}
}

// Execute runs a single command line and reports whether the operator quit.
// Station errors are already shown on the status line.
func (p *Prompt) Execute(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if !strings.HasPrefix(line, "/") {
		_ = p.station.Transmit(line)
		return false
	}

	command, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch strings.ToLower(command) {
	case "/quit", "/exit":
		return true
	case "/sos":
		_ = p.station.TransmitQuick()
	case "/catalogue":
		for i, entry := range p.profile.Catalogue {
			p.shell.Printf("  %d. %s\n", i+1, entry)
		}
	case "/send":
		n, err := strconv.Atoi(arg)
		if err != nil {
			p.shell.Status("Usage: /send N")
			return false
		}
		err = p.station.TransmitCatalogue(n - 1)
		if stderrors.Is(err, errors.ErrCatalogueIndex) {
			p.shell.Status(fmt.Sprintf("No predefined message %d", n))
		}
	case "/list":
		limit := p.limit
		if n, err := strconv.Atoi(arg); err == nil && n > 0 {
			limit = n
		}
		messages, err := p.history.List(p.profile.Name, limit)
		p.print(messages, err)
	case "/find":
		if arg == "" {
			p.shell.Status("Usage: /find WORDS")
			return false
		}
		messages, err := p.history.Search(ctx, arg, p.limit)
		p.print(messages, err)
	case "/help":
		p.shell.Printf("%s", help)
	default:
		p.shell.Status(fmt.Sprintf("Unknown command %s", command))
	}
	return false
}

func (p *Prompt) print(messages []domain.Message, err error) {
	if err != nil {
		p.shell.Status(fmt.Sprintf("Journal unavailable: %v", err))
		return
	}
	if len(messages) == 0 {
		p.shell.Status("Journal is empty")
		return
	}
	for _, m := range messages {
		p.shell.Log(m)
	}
}
