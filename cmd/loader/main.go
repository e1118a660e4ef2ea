// The loader moves scraper output into Postgres: the CSV message dump
// into raw_messages and, when present, the detector's JSON output into
// detections.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/betselot/telegram-market-extractor/internal/ingest"
	"github.com/betselot/telegram-market-extractor/internal/platform/config"
	"github.com/betselot/telegram-market-extractor/internal/platform/observability"
	"github.com/betselot/telegram-market-extractor/internal/storage"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := cfg.ValidateLoader(); err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	db, err := storage.New(ctx, cfg.PostgresDSN, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	if cfg.RawCSVPath != "" {
		loadMessages(ctx, cfg, db, logger)
	}

	if cfg.DetectionsPath != "" {
		loadDetections(ctx, cfg, db, logger)
	}

	logger.Info().Msg("Load finished")
}

func loadMessages(ctx context.Context, cfg *config.Config, db *storage.DB, logger zerolog.Logger) {
	rows, stats, err := ingest.ReadCSVFile(cfg.RawCSVPath, ingest.Options{MaxMessageLength: cfg.MaxMessageLength}, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.RawCSVPath).Msg("Failed to read dump")
	}

	for reason, count := range stats.Drops {
		logger.Info().Str("reason", reason).Int("count", count).Msg("dump rows dropped")
	}

	inserted, err := db.InsertRawMessages(ctx, rows)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to insert raw messages")
	}

	total, err := db.CountRawMessages(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to count raw messages")
	}

	logger.Info().Int("read", stats.Rows).Int64("inserted", inserted).Int64("total", total).Msg("raw messages loaded")
}

func loadDetections(ctx context.Context, cfg *config.Config, db *storage.DB, logger zerolog.Logger) {
	detections, err := ingest.ReadDetections(cfg.DetectionsPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.DetectionsPath).Msg("Failed to read detections")
	}

	if err := db.ReplaceDetections(ctx, detections); err != nil {
		logger.Fatal().Err(err).Msg("Failed to store detections")
	}

	observability.DetectionsLoaded.Add(float64(len(detections)))
	logger.Info().Int("count", len(detections)).Msg("detections loaded")
}
