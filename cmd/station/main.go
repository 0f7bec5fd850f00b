package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"radio-lab/contract"
	"radio-lab/distress"
	"radio-lab/domain/morse"
	"radio-lab/domain/playback"
	"radio-lab/infrastructure/storage"
	"radio-lab/internal"
	"radio-lab/runtime"
	"radio-lab/runtime/workers"
	"radio-lab/ui/console"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Station terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires one station and blocks until the operator quits or a signal arrives.
// Deferred cleanups run before main exits.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	placeholder, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return exitConfig, err
	}
	profile, err := config.Profile()
	if err != nil {
		return exitConfig, err
	}
	timing, err := config.Timing()
	if err != nil {
		return exitConfig, err
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	// 2. Journal (BadgerDB + Bluge), in memory unless JOURNAL_PATH is set
	db, index, err := storage.Open(config.JournalPath)
	if err != nil {
		return exitRuntime, err
	}
	defer func() {
		logger.Info("Closing journal...")
		_ = index.Close()
		_ = db.Close()
	}()
	journal := storage.NewJournalRepository(db, index, logger, config.JournalLimit)

	// 3. Presentation
	shell := console.NewShell(os.Stdout, profile.Name, profile.LampColor, config.Colours)
	signals := []contract.Signal{shell.Lamp()}
	if config.EnableTone {
		signals = append(signals, shell.Tone())
	}

	detector, err := distress.NewDetector(distress.DefaultSignals)
	if err != nil {
		return exitConfig, err
	}

	// 4. Station
	settings := config.Settings(profile)
	st := runtime.NewStation(
		logger, profile, settings,
		morse.NewTranscoder(placeholder),
		playback.NewPlayer(logger, timing, config.AbortOnSignalError, signals...),
		runtime.NewTransmitter(logger, settings.PeerAddress),
		shell, journal, detector,
		workers.NewSupervisor(logger, config.RestartInterval),
	)

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = st.Start(ctx); err != nil {
		return exitRuntime, fmt.Errorf("station failed to start: %w", err)
	}
	defer st.Stop()

	// 6. Operator prompt, returns on /quit, end of input or signal
	prompt := console.NewPrompt(shell, st, profile, journal, config.JournalLimit)
	if err = prompt.Run(ctx, os.Stdin); err != nil {
		return exitRuntime, fmt.Errorf("prompt failed: %w", err)
	}
	logger.Info("Station closing", "station", profile.Name)
	return exitOK, nil
}
