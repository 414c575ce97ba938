package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alkime/blogsmith/internal/archive"
	"github.com/alkime/blogsmith/internal/config"
	"github.com/alkime/blogsmith/internal/hub"
	"github.com/alkime/blogsmith/internal/logger"
	"github.com/alkime/blogsmith/internal/metrics"
	"github.com/alkime/blogsmith/internal/server"
	"github.com/alkime/blogsmith/internal/session"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup structured logging
	logger := logger.SetupLogger(cfg)

	logger.Info("Starting Blogsmith server",
		"env", cfg.Env,
		"port", cfg.Port,
		"generation_latency", cfg.GenerationLatency,
		"archive_dir", cfg.ArchiveDir,
	)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store *archive.Store
	if cfg.ArchiveDir != "" {
		var err error
		if store, err = archive.Open(cfg.ArchiveDir); err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Error("Failed to close archive", "error", err)
			}
		}()
	}

	h := hub.New(logger)
	if store != nil {
		recorder := archive.NewRecorder(store, logger)
		if err := h.AttachWithTimeout("archive", func(ev session.Event) { recorder.Record(ev) }, time.Second); err != nil {
			return err
		}
	}
	if err := h.Attach("metrics", metrics.Observe); err != nil {
		return err
	}
	if err := h.Attach("log", hub.LogSink(logger)); err != nil {
		return err
	}

	events, err := h.Start(ctx)
	if err != nil {
		return err
	}
	defer func() {
		stop()
		h.Wait()
	}()

	srv := server.New(cfg, logger, server.Deps{
		Archive: store,
		Events:  events,
	})

	return server.Run(ctx, srv)
}
