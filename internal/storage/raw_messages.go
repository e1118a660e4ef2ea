package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/betselot/telegram-market-extractor/internal/core/domain"
)

// InsertRawMessages bulk-loads ingested rows. Rows are appended; the
// serial id column preserves arrival order for deterministic reprocessing.
func (db *DB) InsertRawMessages(ctx context.Context, rows []domain.RawMessage) (int64, error) {
	copied, err := db.Pool.CopyFrom(
		ctx,
		pgx.Identifier{"raw_messages"},
		[]string{"message_id", "channel_username", "channel_title", "raw_text", "message_date", "media_path"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := rows[i]

			return []any{
				r.MessageID,
				r.ChannelUsername,
				toText(r.ChannelTitle),
				toText(r.Text),
				toTimestamptz(r.Date),
				toText(r.MediaPath),
			}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy raw messages: %w", err)
	}

	return copied, nil
}

// LoadRawMessages returns the full raw message history in arrival order.
func (db *DB) LoadRawMessages(ctx context.Context) ([]domain.RawMessage, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT message_id, channel_username, channel_title, raw_text, message_date, media_path
		FROM raw_messages
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query raw messages: %w", err)
	}
	defer rows.Close()

	var out []domain.RawMessage

	for rows.Next() {
		var (
			m     domain.RawMessage
			title pgtype.Text
			text  pgtype.Text
			date  pgtype.Timestamptz
			media pgtype.Text
		)

		if err := rows.Scan(&m.MessageID, &m.ChannelUsername, &title, &text, &date, &media); err != nil {
			return nil, fmt.Errorf("scan raw message: %w", err)
		}

		m.ChannelTitle = fromText(title)
		m.Text = fromText(text)
		m.Date = fromTimestamptz(date)
		m.MediaPath = fromText(media)

		out = append(out, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate raw messages: %w", err)
	}

	return out, nil
}

// CountRawMessages returns the size of the raw message history.
func (db *DB) CountRawMessages(ctx context.Context) (int64, error) {
	var count int64
	if err := db.Pool.QueryRow(ctx, "SELECT count(*) FROM raw_messages").Scan(&count); err != nil {
		return 0, fmt.Errorf("count raw messages: %w", err)
	}

	return count, nil
}
