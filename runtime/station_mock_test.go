package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"radio-lab/distress"
	"radio-lab/domain"
	"radio-lab/domain/morse"
	"radio-lab/domain/noise"
	"radio-lab/domain/packet"
	"radio-lab/domain/playback"
	"radio-lab/domain/station"
	"radio-lab/errors"
	"radio-lab/mocks"
	"radio-lab/runtime/workers"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newMockedStation(t *testing.T, transmitter *mocks.MockITransmitter, shell *mocks.MockShell, journal *mocks.MockIJournal) *Station {
	t.Helper()
	log := slog.New(slog.DiscardHandler)
	profile := station.Titanic()
	profile.Noise = noise.Profile{}
	detector, err := distress.NewDetector(distress.DefaultSignals)
	require.NoError(t, err)

	s := NewStation(
		log, profile,
		Settings{ListenAddress: "127.0.0.1:0", PeerAddress: "127.0.0.1:1", NumWorkers: 1, BufferSize: 4, Seed: 3},
		morse.NewTranscoder('?'),
		playback.NewPlayer(log, fastTiming, false),
		transmitter, shell, journal, detector,
		workers.NewSupervisor(log, 10*time.Millisecond),
	)
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(s.Stop)
	return s
}

func TestStation_JournalFailureDoesNotStopTransmission(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	transmitter := mocks.NewMockITransmitter(ctrl)
	shell := mocks.NewMockShell(ctrl)
	journal := mocks.NewMockIJournal(ctrl)

	transmitted := make(chan struct{})
	shell.EXPECT().Status(gomock.Any()).AnyTimes()
	transmitter.EXPECT().Send(gomock.Any(), packet.New("CQD", "-.-. --.- -..")).Return(nil)
	shell.EXPECT().Log(gomock.Cond(func(m domain.Message) bool {
		return m.Direction == domain.SENT && m.Text == "CQD"
	}))
	journal.EXPECT().Store(gomock.Any()).DoAndReturn(func(domain.Message) error {
		close(transmitted)
		return fmt.Errorf("%w: disk full", errors.ErrJournal)
	})

	s := newMockedStation(t, transmitter, shell, journal)
	req.NoError(s.Transmit("cqd"))

	select {
	case <-transmitted:
	case <-time.After(2 * time.Second):
		req.FailNow("message not journaled")
	}
}

func TestStation_StatusFlowOnUnreachablePeer(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	transmitter := mocks.NewMockITransmitter(ctrl)
	shell := mocks.NewMockShell(ctrl)
	journal := mocks.NewMockIJournal(ctrl)

	failed := make(chan struct{})
	gomock.InOrder(
		shell.EXPECT().Status("Listening for messages..."),
		shell.EXPECT().Status("Establishing radio contact..."),
		shell.EXPECT().Status("Transmitting message..."),
		transmitter.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.ErrPeerUnreachable),
		shell.EXPECT().Status("Cannot establish contact with CARPATHIA").Do(func(string) {
			close(failed)
		}),
	)

	s := newMockedStation(t, transmitter, shell, journal)
	req.NoError(s.Transmit("SOS"))

	select {
	case <-failed:
	case <-time.After(2 * time.Second):
		req.FailNow("no error status")
	}
}

func TestStatusFor(t *testing.T) {
	req := require.New(t)

	req.Equal("Cannot establish contact with TITANIC", statusFor(fmt.Errorf("%w: refused", errors.ErrPeerUnreachable), "TITANIC"))
	req.Equal("Type a message to transmit", statusFor(errors.ErrEmptyMessage, "TITANIC"))
	req.Equal("Message cannot contain '|'", statusFor(errors.ErrDelimiterInText, "TITANIC"))
	req.Equal("Message too long", statusFor(errors.ErrPacketTooLarge, "TITANIC"))
	req.Equal("Station busy, try again", statusFor(errors.ErrPoolSaturated, "TITANIC"))
	req.Equal("Error: boom", statusFor(fmt.Errorf("boom"), "TITANIC"))
}
