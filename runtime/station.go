// Package runtime runs a station: it listens for packets, transmits messages
// and schedules displays on a supervised worker pool.
// It orchestrates the system without containing transcoding or timing rules.
package runtime

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"radio-lab/contract"
	"radio-lab/distress"
	"radio-lab/domain"
	"radio-lab/domain/morse"
	"radio-lab/domain/noise"
	"radio-lab/domain/packet"
	"radio-lab/domain/playback"
	"radio-lab/domain/station"
	"radio-lab/errors"
	"radio-lab/runtime/workers"
	"strings"
	"sync"
	"time"
)

var _ contract.IStation = (*Station)(nil)

// Settings are the runtime knobs of a station.
type Settings struct {
	ListenAddress  string
	PeerAddress    string
	HandshakeDelay time.Duration
	NumWorkers     int
	BufferSize     int
	Seed           uint64
	// MonitorInterval enables queue sampling when positive
	MonitorInterval   time.Duration
	CapacityThreshold int
}

type Station struct {
	mu          sync.Mutex
	playMu      sync.Mutex
	log         *slog.Logger
	profile     station.Profile
	settings    Settings
	transcoder  morse.Transcoder
	injector    *noise.Injector
	player      *playback.Player
	transmitter contract.ITransmitter
	shell       contract.Shell
	journal     contract.IJournal
	detector    distress.Detector
	supervisor  contract.ISupervisor
	pool        *TaskPool
	mailbox     *Mailbox
	dice        *dice
	listener    net.Listener
	cancel      context.CancelFunc
	done        chan struct{}
}

func NewStation(
	log *slog.Logger,
	profile station.Profile,
	settings Settings,
	transcoder morse.Transcoder,
	player *playback.Player,
	transmitter contract.ITransmitter,
	shell contract.Shell,
	journal contract.IJournal,
	detector distress.Detector,
	supervisor contract.ISupervisor,
) *Station {
	return &Station{
		log:         log.With("station", profile.Name),
		profile:     profile,
		settings:    settings,
		transcoder:  transcoder,
		injector:    noise.NewInjector(settings.Seed),
		player:      player,
		transmitter: transmitter,
		shell:       shell,
		journal:     journal,
		detector:    detector,
		supervisor:  supervisor,
		pool:        NewTaskPool(log, settings.NumWorkers, settings.BufferSize),
		mailbox:     NewMailbox(),
		dice:        newDice(settings.Seed),
	}
}

// Start binds the listening socket and launches the supervised workers.
// It returns once the station accepts connections.
func (s *Station) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.settings.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.settings.ListenAddress, err)
	}

	supervisedCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	s.mu.Lock()
	s.listener = listener
	s.cancel = cancel
	s.done = done
	s.supervisor.Add(workers.NewListenerWorker(listener, s.receive, s.log))
	s.supervisor.Add(s.pool.Workers()...)
	if s.settings.MonitorInterval > 0 {
		s.supervisor.Add(s.pool.Monitor(s.settings.MonitorInterval, s.settings.CapacityThreshold))
	}
	s.mu.Unlock()

	go func() {
		defer close(done)
		s.supervisor.Run(supervisedCtx)
	}()

	s.log.Info("Station ready", "address", listener.Addr().String(), "peer", s.settings.PeerAddress)
	s.shell.Status("Listening for messages...")
	return nil
}

// Addr is the address the station listens on, nil before Start.
func (s *Station) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *Station) Profile() station.Profile {
	return s.profile
}

// Stop cancels every worker and waits for them.
func (s *Station) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	s.log.Info("Requesting station shutdown")
	cancel()
	<-done
	s.log.Info("Station stopped")
}

// Transmit validates text and queues its transmission.
// Validation errors are returned; delivery errors only reach the status line.
func (s *Station) Transmit(text string) error {
	text = strings.ToUpper(strings.TrimSpace(text))
	code := s.transcoder.Encode(text)
	p := packet.New(text, code)
	if err := p.Validate(); err != nil {
		s.shell.Status(statusFor(err, s.profile.Peer))
		return err
	}
	err := s.pool.Submit("transmit", func(ctx context.Context) {
		s.transmit(ctx, p)
	})
	if err != nil {
		s.shell.Status(statusFor(err, s.profile.Peer))
	}
	return err
}

// TransmitQuick sends the station's predefined urgent message.
func (s *Station) TransmitQuick() error {
	return s.Transmit(s.profile.QuickMessage)
}

// TransmitCatalogue sends the i-th predefined message.
func (s *Station) TransmitCatalogue(index int) error {
	entry, err := s.profile.CatalogueEntry(index)
	if err != nil {
		return err
	}
	return s.Transmit(entry)
}

func (s *Station) transmit(ctx context.Context, p packet.Packet) {
	s.shell.Status("Establishing radio contact...")
	if err := sleep(ctx, s.dice.Jitter(s.settings.HandshakeDelay)); err != nil {
		return
	}

	s.shell.Status("Transmitting message...")
	s.play(ctx, p.Morse)

	noisy := s.injector.Apply(p.Morse, s.profile.Noise)
	if noisy != p.Morse {
		s.log.Debug("Interference on transmission", "morse", noisy)
	}

	if err := s.transmitter.Send(ctx, packet.New(p.Text, noisy)); err != nil {
		s.log.Warn("Transmission failed", "error", err)
		s.shell.Status(statusFor(err, s.profile.Peer))
		return
	}

	s.shell.Status("Message transmitted")
	s.record(domain.NewMessage(s.profile.Name, s.profile.Peer, domain.SENT, p.Text, noisy, time.Now()))
}

// receive is called by the listener for every packet. A packet arriving while
// another one is displayed is dropped.
func (s *Station) receive(_ context.Context, p packet.Packet) {
	release, ok := s.mailbox.TryClaim()
	if !ok {
		s.log.Info("Station busy, inbound message dropped", "text", p.Text)
		return
	}

	err := s.pool.Submit("display", func(ctx context.Context) {
		defer release()
		s.display(ctx, p)
	})
	if err != nil {
		release()
	}
}

func (s *Station) display(ctx context.Context, p packet.Packet) {
	s.shell.Status("Receiving message...")
	s.play(ctx, p.Morse)

	msg := domain.NewMessage(s.profile.Name, s.profile.Peer, domain.RECEIVED, p.Text, p.Morse, time.Now())
	msg.Decoded = s.transcoder.Decode(p.Morse)
	s.record(msg)
	s.shell.Status("Message received")

	s.autoReply(p.Text)
}

// autoReply answers a distress call with a random catalogue message.
func (s *Station) autoReply(text string) {
	reply := s.profile.AutoReply
	if !reply.Enabled || len(s.profile.Catalogue) == 0 {
		return
	}
	signals := s.detector.Detect(text)
	if len(signals) == 0 || !s.dice.Roll(reply.Probability) {
		return
	}

	entry := s.profile.Catalogue[s.dice.IntN(len(s.profile.Catalogue))]
	s.log.Info("Distress call detected, replying", "signals", signals, "delay", reply.Delay)
	err := s.pool.Submit("auto-reply", func(ctx context.Context) {
		if err := sleep(ctx, reply.Delay); err != nil {
			return
		}
		if err := s.Transmit(entry); err != nil {
			s.log.Warn("Auto reply failed", "error", err)
		}
	})
	if err != nil {
		s.log.Warn("Auto reply not scheduled", "error", err)
	}
}

func (s *Station) play(ctx context.Context, code string) {
	s.playMu.Lock()
	defer s.playMu.Unlock()

	report, err := s.player.Play(ctx, code)
	if err != nil {
		s.log.Warn("Playback interrupted", "error", err, "rendered", report.Rendered, "events", report.Events)
		if stderrors.Is(err, errors.ErrPlaybackAborted) {
			s.shell.Status("Signal lamp failure")
		}
		return
	}
	if failures := report.Err(); failures != nil {
		s.log.Warn("Signal failures during playback", "error", failures)
	}
}

func (s *Station) record(msg domain.Message) {
	s.shell.Log(msg)
	if err := s.journal.Store(msg); err != nil {
		s.log.Error("Unable to journal message", "id", msg.ID, "error", err)
	}
}

// statusFor turns an error into the status line shown to the operator.
func statusFor(err error, peer string) string {
	switch {
	case stderrors.Is(err, errors.ErrPeerUnreachable):
		return fmt.Sprintf("Cannot establish contact with %s", peer)
	case stderrors.Is(err, errors.ErrEmptyMessage):
		return "Type a message to transmit"
	case stderrors.Is(err, errors.ErrDelimiterInText):
		return "Message cannot contain '|'"
	case stderrors.Is(err, errors.ErrPacketTooLarge):
		return "Message too long"
	case stderrors.Is(err, errors.ErrPoolSaturated):
		return "Station busy, try again"
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
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
