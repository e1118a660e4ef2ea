// Package pipeline orchestrates the batch extraction run: load raw
// messages, assemble records, project the entity views, and replace the
// materialized relations in the sink. Every run recomputes everything from
// the raw messages; output is a full refresh, so a run is safe to repeat.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/betselot/telegram-market-extractor/internal/core/domain"
	"github.com/betselot/telegram-market-extractor/internal/platform/observability"
	"github.com/betselot/telegram-market-extractor/internal/process/assemble"
	"github.com/betselot/telegram-market-extractor/internal/process/project"
)

// Source supplies the full raw message history in a stable total order
// (arrival order of ingestion).
type Source interface {
	LoadRawMessages(ctx context.Context) ([]domain.RawMessage, error)
}

// Sink persists the derived relations. Each Replace call swaps the entire
// prior materialization; consumers must not assume append semantics.
type Sink interface {
	ReplaceChannels(ctx context.Context, channels []domain.Channel) error
	ReplaceProducts(ctx context.Context, products []domain.Product) error
	ReplaceContacts(ctx context.Context, contacts []domain.Contact) error
}

type Pipeline struct {
	source Source
	sink   Sink
	logger *zerolog.Logger
}

func New(source Source, sink Sink, logger *zerolog.Logger) *Pipeline {
	return &Pipeline{source: source, sink: sink, logger: logger}
}

// RunOnce executes a single batch run to completion.
func (p *Pipeline) RunOnce(ctx context.Context) error {
	runID := uuid.New().String()
	logger := p.logger.With().Str(LogFieldRunID, runID).Logger()
	start := time.Now()

	logger.Info().Msg("starting extraction run")

	rows, err := p.source.LoadRawMessages(ctx)
	if err != nil {
		observability.RunsTotal.WithLabelValues(observability.StatusError).Inc()

		return fmt.Errorf("load raw messages: %w", err)
	}

	observability.MessagesLoaded.Add(float64(len(rows)))

	records, stats := assemble.Assemble(rows, logger)
	recordStats(logger, stats)

	if err := p.materialize(ctx, logger, records); err != nil {
		observability.RunsTotal.WithLabelValues(observability.StatusError).Inc()

		return err
	}

	observability.RunsTotal.WithLabelValues(observability.StatusOK).Inc()
	observability.RunDuration.Observe(time.Since(start).Seconds())

	logger.Info().
		Int("input", stats.Input).
		Int("records", stats.Records).
		Dur("duration", time.Since(start)).
		Msg("extraction run finished")

	return nil
}

// Run executes RunOnce on a fixed interval until the context is canceled.
// A failed run is logged and retried on the next tick; the full-refresh
// contract means there is no partial state to repair.
func (p *Pipeline) Run(ctx context.Context, interval time.Duration) error {
	for {
		if err := p.RunOnce(ctx); err != nil {
			p.logger.Error().Err(err).Msg("extraction run failed")
		}

		select {
		case <-ctx.Done():
			return ctx.Err() //nolint:wrapcheck
		case <-time.After(interval):
		}
	}
}

func (p *Pipeline) materialize(ctx context.Context, logger zerolog.Logger, records []domain.ExtractedRecord) error {
	channels := project.Channels(records)
	products := project.Products(records)
	contacts := project.Contacts(records)

	if err := p.sink.ReplaceChannels(ctx, channels); err != nil {
		return fmt.Errorf("replace %s relation: %w", RelationChannel, err)
	}

	if err := p.sink.ReplaceProducts(ctx, products); err != nil {
		return fmt.Errorf("replace %s relation: %w", RelationProduct, err)
	}

	if err := p.sink.ReplaceContacts(ctx, contacts); err != nil {
		return fmt.Errorf("replace %s relation: %w", RelationContact, err)
	}

	for relation, count := range map[string]int{
		RelationChannel: len(channels),
		RelationProduct: len(products),
		RelationContact: len(contacts),
	} {
		observability.RelationRows.WithLabelValues(relation).Set(float64(count))
		logger.Info().Str(LogFieldRelation, relation).Int(LogFieldCount, count).Msg("relation materialized")
	}

	return nil
}

func recordStats(logger zerolog.Logger, stats assemble.Stats) {
	for reason, count := range stats.Drops {
		observability.DropsTotal.WithLabelValues(reason).Add(float64(count))
		logger.Info().Str(LogFieldReason, reason).Int(LogFieldCount, count).Msg("rows dropped")
	}

	if stats.Conflicts > 0 {
		observability.ConflictingMessageIDs.Add(float64(stats.Conflicts))
		logger.Info().Int(LogFieldCount, stats.Conflicts).Msg("duplicate message ids resolved")
	}

	observability.RecordsExtracted.Add(float64(stats.Records))
}
