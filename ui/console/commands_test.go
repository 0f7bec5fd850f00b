package console

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"radio-lab/domain"
	"radio-lab/domain/station"
	"radio-lab/errors"
	"radio-lab/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeHistory struct {
	messages []domain.Message
	station  string
	limit    int
	query    string
}

func (h *fakeHistory) List(station string, limit int) ([]domain.Message, error) {
	h.station, h.limit = station, limit
	return h.messages, nil
}

func (h *fakeHistory) Search(_ context.Context, query string, limit int) ([]domain.Message, error) {
	h.query, h.limit = query, limit
	return h.messages, nil
}

func newPrompt(t *testing.T) (*Prompt, *mocks.MockIStation, *fakeHistory, *bytes.Buffer) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockIStation(ctrl)
	history := &fakeHistory{}
	var out bytes.Buffer
	shell := NewShell(&out, "TITANIC", "yellow", false)
	return NewPrompt(shell, st, station.Titanic(), history, 20), st, history, &out
}

func TestPrompt_TransmitCommands(t *testing.T) {
	req := require.New(t)
	prompt, st, _, out := newPrompt(t)
	ctx := context.Background()

	gomock.InOrder(
		st.EXPECT().Transmit("we are sinking").Return(nil),
		st.EXPECT().TransmitQuick().Return(nil),
		st.EXPECT().TransmitCatalogue(2).Return(nil),
		st.EXPECT().TransmitCatalogue(99).Return(errors.ErrCatalogueIndex),
		st.EXPECT().TransmitCatalogue(0).Return(errors.ErrPoolSaturated),
	)

	req.False(prompt.Execute(ctx, "  we are sinking "))
	req.False(prompt.Execute(ctx, "/sos"))
	req.False(prompt.Execute(ctx, "/send 3"))
	req.False(prompt.Execute(ctx, "/send 100"))
	req.Contains(out.String(), "No predefined message 100")

	// Other failures keep the status written by the station
	out.Reset()
	req.False(prompt.Execute(ctx, "/send 1"))
	req.NotContains(out.String(), "No predefined message")

	req.False(prompt.Execute(ctx, "/send three"))
	req.Contains(out.String(), "Usage: /send N")
	req.False(prompt.Execute(ctx, ""))
}

func TestPrompt_JournalCommands(t *testing.T) {
	req := require.New(t)
	prompt, _, history, out := newPrompt(t)
	ctx := context.Background()

	req.False(prompt.Execute(ctx, "/list"))
	req.Equal("TITANIC", history.station)
	req.Equal(20, history.limit)
	req.Contains(out.String(), "Journal is empty")

	history.messages = []domain.Message{
		domain.NewMessage("TITANIC", "CARPATHIA", domain.SENT, "WE HAVE STRUCK ICEBERG", ".--", time.Now()),
	}
	req.False(prompt.Execute(ctx, "/list 5"))
	req.Equal(5, history.limit)
	req.Contains(out.String(), "SENT: WE HAVE STRUCK ICEBERG")

	req.False(prompt.Execute(ctx, "/find iceberg"))
	req.Equal("iceberg", history.query)
}

func TestPrompt_Catalogue(t *testing.T) {
	req := require.New(t)
	prompt, _, _, out := newPrompt(t)

	req.False(prompt.Execute(context.Background(), "/catalogue"))
	for i, entry := range station.Titanic().Catalogue {
		req.Contains(out.String(), fmt.Sprintf("  %d. %s\n", i+1, entry))
	}
}

func TestPrompt_RunStopsOnQuit(t *testing.T) {
	req := require.New(t)
	prompt, st, _, out := newPrompt(t)
	st.EXPECT().Transmit("CQD").Return(nil)

	err := prompt.Run(context.Background(), strings.NewReader("CQD\n/bogus\n/quit\nnever sent\n"))
	req.NoError(err)
	req.Contains(out.String(), "Unknown command /bogus")
}

func TestPrompt_RunStopsAtEndOfInput(t *testing.T) {
	req := require.New(t)
	prompt, _, _, _ := newPrompt(t)

	req.NoError(prompt.Run(context.Background(), strings.NewReader("/help\n")))
}
