// Package assemble joins the extractor outputs per message and resolves
// conflicts, emitting at most one ExtractedRecord per message id.
package assemble

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/betselot/telegram-market-extractor/internal/core/domain"
	"github.com/betselot/telegram-market-extractor/internal/process/extract"
	"github.com/betselot/telegram-market-extractor/internal/process/textnorm"
)

// Drop reasons. All are silent filtering decisions, counted and logged but
// never surfaced as errors.
const (
	DropNoText       = "no_text"
	DropNoMatch      = "no_match"
	DropInvalidPrice = "invalid_price"
	DropEmptyName    = "empty_product_name"
	DropDegenerate   = "degenerate_match"
)

// Stats summarizes one assembly pass over a batch.
type Stats struct {
	Input     int
	Drops     map[string]int
	Conflicts int
	Records   int
}

type candidate struct {
	rec     domain.ExtractedRecord
	arrival int
}

// Assemble runs normalize, phone extraction and price extraction over every
// row, applies the filter policy in order, and resolves duplicate message
// ids deterministically: most recent timestamp wins, exact timestamp ties
// go to the earliest row. The returned stream keeps input-arrival order of
// the winning rows, so downstream first-wins projections see the earliest
// ingested row for a key first.
func Assemble(rows []domain.RawMessage, logger zerolog.Logger) ([]domain.ExtractedRecord, Stats) {
	stats := Stats{Input: len(rows), Drops: make(map[string]int)}

	// Pass 1: extract candidates per message id, preserving arrival order.
	byID := make(map[int64][]candidate)

	for i, row := range rows {
		rec, reason := extractOne(row)
		if reason != "" {
			stats.Drops[reason]++
			logger.Debug().Int64("message_id", row.MessageID).Str("reason", reason).Msg("row dropped")

			continue
		}

		byID[rec.MessageID] = append(byID[rec.MessageID], candidate{rec: rec, arrival: i})
	}

	// Pass 2: pick one winner per message id.
	winners := make([]candidate, 0, len(byID))

	for id, cands := range byID {
		if len(cands) > 1 {
			stats.Conflicts++
			logger.Debug().Int64("message_id", id).Int("candidates", len(cands)).Msg("resolving duplicate message id")
		}

		winners = append(winners, pickWinner(cands))
	}

	sort.Slice(winners, func(i, j int) bool { return winners[i].arrival < winners[j].arrival })

	records := make([]domain.ExtractedRecord, len(winners))
	for i, w := range winners {
		records[i] = w.rec
	}

	stats.Records = len(records)

	return records, stats
}

// extractOne applies the per-row filter policy and returns either a record
// or a non-empty drop reason.
func extractOne(row domain.RawMessage) (domain.ExtractedRecord, string) {
	text := textnorm.Normalize(row.Text)
	if text == "" {
		return domain.ExtractedRecord{}, DropNoText
	}

	cleaned, phones := extract.Phones(text)

	m, ok := extract.FindFirstPriceMatch(cleaned)
	if !ok {
		return domain.ExtractedRecord{}, DropNoMatch
	}

	price, err := strconv.ParseInt(m.Digits, 10, 64)
	if err != nil || price < 0 {
		return domain.ExtractedRecord{}, DropInvalidPrice
	}

	name := strings.TrimSpace(m.Prefix)
	if name == "" {
		return domain.ExtractedRecord{}, DropEmptyName
	}

	// Guards a degenerate match where the name capture collapsed onto the
	// price digits.
	if name == strings.TrimSpace(m.Digits) {
		return domain.ExtractedRecord{}, DropDegenerate
	}

	return domain.ExtractedRecord{
		MessageID:       row.MessageID,
		ChannelTitle:    strings.TrimSpace(row.ChannelTitle),
		ChannelUsername: normalizeUsername(row.ChannelUsername),
		Date:            row.Date,
		MediaPath:       row.MediaPath,
		ProductName:     name,
		PriceInBirr:     price,
		ContactPhones:   phones,
	}, ""
}

// pickWinner selects the candidate with the most recent timestamp; on an
// exact tie the first-arrived candidate wins.
func pickWinner(cands []candidate) candidate {
	best := cands[0]

	for _, c := range cands[1:] {
		if c.rec.Date.After(best.rec.Date) {
			best = c
		}
	}

	return best
}

// normalizeUsername lower-cases the channel username for a consistent join
// key across the entity views.
func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(username), "@"))
}
