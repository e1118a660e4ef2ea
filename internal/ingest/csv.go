// Package ingest reads scraper output into raw messages: a CSV dump of
// channel messages and an optional JSON file of object detection
// annotations. Ingest is lenient about row-level noise (counted drops) but
// strict about the file shape itself.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/araddon/dateparse"
	"github.com/rs/zerolog"

	"github.com/betselot/telegram-market-extractor/internal/core/domain"
	"github.com/betselot/telegram-market-extractor/internal/platform/observability"
	"github.com/betselot/telegram-market-extractor/internal/process/textnorm"
)

// Ingest drop reasons.
const (
	DropBadMessageID = "bad_message_id"
	DropNoChannel    = "no_channel_username"
	DropBadTimestamp = "bad_timestamp"
	DropTooLong      = "message_too_long"
)

// Canonical column names. The scraper's own header variants ("ID",
// "Channel Username", "Message", "Date", "Media Path") are accepted too.
const (
	colMessageID       = "message_id"
	colChannelUsername = "channel_username"
	colChannelTitle    = "channel_title"
	colRawText         = "raw_text"
	colTimestamp       = "timestamp"
	colMediaPath       = "media_path"
)

var headerAliases = map[string]string{
	"id":      colMessageID,
	"message": colRawText,
	"date":    colTimestamp,
}

// Stats summarizes one ingest pass.
type Stats struct {
	Rows  int
	Kept  int
	Drops map[string]int
}

// Options tunes row-level validation.
type Options struct {
	// MaxMessageLength drops rows whose sanitized text has more
	// characters; zero disables the cap.
	MaxMessageLength int
}

// ReadCSV parses a scraped dump into raw messages, preserving file order
// as arrival order. Rows failing validation are dropped and counted, never
// fatal; a missing or unusable header is.
func ReadCSV(r io.Reader, opts Options, logger zerolog.Logger) ([]domain.RawMessage, Stats, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, Stats{}, fmt.Errorf("read csv header: %w", err)
	}

	cols, err := mapHeader(header)
	if err != nil {
		return nil, Stats{}, err
	}

	stats := Stats{Drops: make(map[string]int)}

	var rows []domain.RawMessage

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, Stats{}, fmt.Errorf("read csv row: %w", err)
		}

		stats.Rows++

		row, reason := parseRow(record, cols, opts)
		if reason != "" {
			stats.Drops[reason]++
			observability.IngestDropped.WithLabelValues(reason).Inc()
			logger.Debug().Str("reason", reason).Msg("dump row dropped")

			continue
		}

		observability.RowsIngested.WithLabelValues(row.ChannelUsername).Inc()

		rows = append(rows, row)
		stats.Kept++
	}

	return rows, stats, nil
}

// ReadCSVFile is ReadCSV over a file on disk.
func ReadCSVFile(path string, opts Options, logger zerolog.Logger) ([]domain.RawMessage, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open dump: %w", err)
	}

	defer func() {
		_ = f.Close()
	}()

	return ReadCSV(f, opts, logger)
}

func mapHeader(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))

	for i, name := range header {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
		if canonical, ok := headerAliases[key]; ok {
			key = canonical
		}

		cols[key] = i
	}

	for _, required := range []string{colMessageID, colChannelUsername, colRawText, colTimestamp} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("dump header missing column %q", required)
		}
	}

	return cols, nil
}

func parseRow(record []string, cols map[string]int, opts Options) (domain.RawMessage, string) {
	field := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}

		return record[idx]
	}

	id, err := strconv.ParseInt(strings.TrimSpace(field(colMessageID)), 10, 64)
	if err != nil {
		return domain.RawMessage{}, DropBadMessageID
	}

	username := strings.TrimSpace(field(colChannelUsername))
	if username == "" {
		return domain.RawMessage{}, DropNoChannel
	}

	date, err := dateparse.ParseAny(strings.TrimSpace(field(colTimestamp)))
	if err != nil {
		return domain.RawMessage{}, DropBadTimestamp
	}

	text := textnorm.Sanitize(field(colRawText))
	if opts.MaxMessageLength > 0 && utf8.RuneCountInString(text) > opts.MaxMessageLength {
		return domain.RawMessage{}, DropTooLong
	}

	return domain.RawMessage{
		MessageID:       id,
		ChannelUsername: username,
		ChannelTitle:    strings.TrimSpace(field(colChannelTitle)),
		Text:            text,
		Date:            date,
		MediaPath:       strings.TrimSpace(field(colMediaPath)),
	}, ""
}
