package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"local"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Postgres is the default source and sink. When SQLitePath is set the
	// relations are materialized into a local SQLite file instead; when
	// RawCSVPath is set the pipeline reads the scraped dump directly.
	PostgresDSN string `env:"POSTGRES_DSN"`
	SQLitePath  string `env:"SQLITE_PATH"`

	RawCSVPath     string `env:"RAW_CSV_PATH"`
	DetectionsPath string `env:"DETECTIONS_PATH"`

	// MaxMessageLength caps raw message bodies at ingest; longer rows are
	// dropped as scraper noise.
	MaxMessageLength int `env:"MAX_MESSAGE_LENGTH" envDefault:"1000"`

	// RunInterval turns the extractor into a periodic job with a health
	// and metrics server. Zero means a single one-shot run.
	RunInterval time.Duration `env:"RUN_INTERVAL"`
	HealthPort  int           `env:"HEALTH_PORT" envDefault:"8080"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ValidateExtractor checks that the extractor has a usable source and sink.
func (c *Config) ValidateExtractor() error {
	if c.PostgresDSN == "" && c.RawCSVPath == "" {
		return errors.New("either POSTGRES_DSN or RAW_CSV_PATH must be set")
	}

	if c.PostgresDSN == "" && c.SQLitePath == "" {
		return errors.New("SQLITE_PATH must be set when running without POSTGRES_DSN")
	}

	return nil
}

// ValidateLoader checks that the loader has input and a database.
func (c *Config) ValidateLoader() error {
	if c.PostgresDSN == "" {
		return errors.New("POSTGRES_DSN must be set")
	}

	if c.RawCSVPath == "" && c.DetectionsPath == "" {
		return errors.New("RAW_CSV_PATH or DETECTIONS_PATH must be set")
	}

	return nil
}
