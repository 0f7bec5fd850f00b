package e2e

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"testing"

	"radio-lab/distress"
	"radio-lab/domain/morse"
	"radio-lab/domain/playback"
	"radio-lab/domain/station"
	"radio-lab/infrastructure/storage"
	"radio-lab/runtime"
	"radio-lab/runtime/workers"
	"radio-lab/ui/console"

	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
)

type BaseStationSuite struct {
	suite.Suite
	Config Config
}

// Node is one running station with its console output and journal.
type Node struct {
	Station *runtime.Station
	Journal *storage.JournalRepository
	Output  *syncBuffer
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseStationSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
}

// WithStations starts both stations wired to each other and stops them after fn.
// Profiles are taken as given, noise included.
func (s *BaseStationSuite) WithStations(name string, titanic, carpathia station.Profile, fn func(ctx context.Context, titanic, carpathia *Node)) {
	s.header(s.T(), name)
	ctx, cancel := context.WithTimeout(context.Background(), 2*s.Config.Timeout)
	defer cancel()

	titanicAddr := s.freeAddress()
	carpathiaAddr := s.freeAddress()
	t := s.startNode(ctx, titanic, titanicAddr, carpathiaAddr)
	defer t.Station.Stop()
	c := s.startNode(ctx, carpathia, carpathiaAddr, titanicAddr)
	defer c.Station.Stop()

	fn(ctx, t, c)

	if s.Config.Verbose {
		s.T().Logf("%s console:\n%s", titanic.Name, t.Output.String())
		s.T().Logf("%s console:\n%s", carpathia.Name, c.Output.String())
	}
}

func (s *BaseStationSuite) startNode(ctx context.Context, profile station.Profile, listen, peer string) *Node {
	log := slog.New(slog.DiscardHandler)
	d := s.Config.DotDuration
	timing := playback.Timing{Dot: d, Dash: 3 * d, Gap: d, LetterGap: 2 * d, WordGap: 5 * d}

	db, index, err := storage.Open("")
	s.Require().NoError(err)
	s.T().Cleanup(func() {
		_ = index.Close()
		_ = db.Close()
	})
	journal := storage.NewJournalRepository(db, index, log, 0)

	output := &syncBuffer{}
	shell := console.NewShell(output, profile.Name, profile.LampColor, false)
	detector, err := distress.NewDetector(distress.DefaultSignals)
	s.Require().NoError(err)

	st := runtime.NewStation(
		log, profile,
		runtime.Settings{ListenAddress: listen, PeerAddress: peer, NumWorkers: 2, BufferSize: 8, Seed: 7},
		morse.NewTranscoder('?'),
		playback.NewPlayer(log, timing, false, shell.Lamp(), shell.Tone()),
		runtime.NewTransmitter(log, peer),
		shell, journal, detector,
		workers.NewSupervisor(log, 0),
	)
	s.Require().NoError(st.Start(ctx))
	return &Node{Station: st, Journal: journal, Output: output}
}

func (s *BaseStationSuite) freeAddress() string {
	l, err := net.Listen("tcp", fmt.Sprintf("%s:0", s.Config.Host))
	s.Require().NoError(err)
	address := l.Addr().String()
	s.Require().NoError(l.Close())
	return address
}

// header prints a colorized header for the step in logs
func (s *BaseStationSuite) header(t *testing.T, name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

var _ io.Writer = (*syncBuffer)(nil)

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
