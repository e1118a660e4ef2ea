// Package project derives the three entity views from the assembled
// record stream. Each projection is an independent pure function of the
// full stream; first-wins ties are broken by stream order, not timestamp.
package project

import "github.com/betselot/telegram-market-extractor/internal/core/domain"

// Channels keeps the first (username, title) pair encountered per
// username. A username appearing later with a different title keeps its
// earliest-seen title.
func Channels(records []domain.ExtractedRecord) []domain.Channel {
	seen := make(map[string]struct{}, len(records))

	var out []domain.Channel

	for _, r := range records {
		if _, ok := seen[r.ChannelUsername]; ok {
			continue
		}

		seen[r.ChannelUsername] = struct{}{}
		out = append(out, domain.Channel{Username: r.ChannelUsername, Title: r.ChannelTitle})
	}

	return out
}

// Products is a pass-through: one row per extracted record, no dedup.
func Products(records []domain.ExtractedRecord) []domain.Product {
	out := make([]domain.Product, len(records))

	for i, r := range records {
		out[i] = domain.Product{
			ProductID:   r.MessageID,
			ProductName: r.ProductName,
			Date:        r.Date,
			PriceInBirr: r.PriceInBirr,
		}
	}

	return out
}

// Contacts keeps the first non-empty phone list per username. Lists are
// not merged across messages.
func Contacts(records []domain.ExtractedRecord) []domain.Contact {
	seen := make(map[string]struct{}, len(records))

	var out []domain.Contact

	for _, r := range records {
		if len(r.ContactPhones) == 0 {
			continue
		}

		if _, ok := seen[r.ChannelUsername]; ok {
			continue
		}

		seen[r.ChannelUsername] = struct{}{}
		out = append(out, domain.Contact{Username: r.ChannelUsername, Phones: r.ContactPhones})
	}

	return out
}
