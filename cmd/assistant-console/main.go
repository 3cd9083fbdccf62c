package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/user/assistant-console/internal/api"
	"github.com/user/assistant-console/internal/audio"
	"github.com/user/assistant-console/internal/config"
	"github.com/user/assistant-console/internal/health"
	"github.com/user/assistant-console/internal/history"
	"github.com/user/assistant-console/internal/orchestrator"
	"github.com/user/assistant-console/internal/ui"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logging
	setupLogging(cfg.LogLevel)

	log.Info().Str("backend_url", cfg.BackendURL).Msg("Starting assistant console")

	client := api.NewClient(cfg.BackendURL, time.Duration(cfg.HTTPTimeoutSeconds)*time.Second)

	recorder, err := audio.NewExecRecorder(cfg.RecorderCmd)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid recorder command")
	}

	player, err := audio.NewExecPlayer(cfg.PlayerCmd)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid player command")
	}

	capture := audio.NewCaptureController(recorder, cfg.RecorderMIME)
	playback := audio.NewPlaybackController(player)
	store := history.NewStore()
	orch := orchestrator.New(client)
	poller := health.NewPoller(client, time.Duration(cfg.HealthPollSeconds)*time.Second)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	program := tea.NewProgram(ui.New(ui.Deps{
		Orchestrator: orch,
		Capture:      capture,
		Playback:     playback,
		History:      store,
		Poller:       poller,
		Client:       client,
		AutoSpeak:    cfg.AutoSpeak,
		ReadScreen:   cfg.ReadScreen,
	}), tea.WithAltScreen())

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		_, err := program.Run()
		stop()
		return err
	})

	g.Go(func() error {
		<-ctx.Done()
		program.Quit()
		return nil
	})

	err = g.Wait()

	// Make sure the playback temp file is gone on every exit path.
	playback.Stop()

	if err != nil {
		log.Fatal().Err(err).Msg("Console exited with error")
	}
	log.Info().Msg("Console stopped")
}

func setupLogging(level string) {
	// Setup zerolog
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})

	// Set log level
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
