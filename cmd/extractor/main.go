package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/betselot/telegram-market-extractor/internal/ingest"
	"github.com/betselot/telegram-market-extractor/internal/platform/config"
	"github.com/betselot/telegram-market-extractor/internal/platform/observability"
	"github.com/betselot/telegram-market-extractor/internal/process/pipeline"
	"github.com/betselot/telegram-market-extractor/internal/storage"
	"github.com/betselot/telegram-market-extractor/internal/storage/sqlitesink"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setLogLevel(cfg.LogLevel)

	if err := cfg.ValidateExtractor(); err != nil {
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

	var db *storage.DB

	if cfg.PostgresDSN != "" {
		db, err = storage.New(ctx, cfg.PostgresDSN, &logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to database")
		}

		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			logger.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	source := pickSource(cfg, db, logger)
	sink, pinger := pickSink(cfg, db, logger)

	p := pipeline.New(source, sink, &logger)

	if cfg.RunInterval <= 0 {
		if err := p.RunOnce(ctx); err != nil {
			logger.Fatal().Err(err).Msg("Extraction run failed")
		}

		return
	}

	healthServer := observability.NewServer(pinger, cfg.HealthPort, &logger)

	go func() {
		if err := healthServer.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Health server error")
		}
	}()

	logger.Info().Dur("interval", cfg.RunInterval).Msg("Starting periodic extraction")

	if err := p.Run(ctx, cfg.RunInterval); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("Extractor error")
	}

	logger.Info().Msg("Extractor stopped")
}

func pickSource(cfg *config.Config, db *storage.DB, logger zerolog.Logger) pipeline.Source {
	if cfg.RawCSVPath != "" {
		logger.Info().Str("path", cfg.RawCSVPath).Msg("Reading raw messages from dump file")

		return ingest.NewCSVSource(cfg.RawCSVPath, ingest.Options{MaxMessageLength: cfg.MaxMessageLength}, logger)
	}

	return db
}

func pickSink(cfg *config.Config, db *storage.DB, logger zerolog.Logger) (pipeline.Sink, observability.Pinger) {
	if cfg.SQLitePath != "" {
		logger.Info().Str("path", cfg.SQLitePath).Msg("Materializing relations into SQLite")

		sink, err := sqlitesink.Open(cfg.SQLitePath)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to open SQLite sink")
		}

		return sink, sink
	}

	return db, db
}

// setLogLevel sets the global log level based on the configuration.
func setLogLevel(level string) {
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
