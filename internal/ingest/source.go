package ingest

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/betselot/telegram-market-extractor/internal/core/domain"
)

// CSVSource adapts a scraped dump file to the pipeline's Source interface,
// for running the extractor without a database.
type CSVSource struct {
	path   string
	opts   Options
	logger zerolog.Logger
}

func NewCSVSource(path string, opts Options, logger zerolog.Logger) *CSVSource {
	return &CSVSource{path: path, opts: opts, logger: logger}
}

func (s *CSVSource) LoadRawMessages(_ context.Context) ([]domain.RawMessage, error) {
	rows, _, err := ReadCSVFile(s.path, s.opts, s.logger)
	return rows, err
}
