// Package sqlitesink materializes the derived relations into a local
// SQLite file, for running the extractor without a warehouse. It honors
// the same full-refresh contract as the Postgres sink: each replace swaps
// the whole relation inside one transaction.
package sqlitesink

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/betselot/telegram-market-extractor/internal/core/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS channels (
    channel_username TEXT PRIMARY KEY,
    channel_title TEXT
);
CREATE TABLE IF NOT EXISTS products (
    product_id INTEGER PRIMARY KEY,
    product_name TEXT NOT NULL,
    date TEXT,
    price_in_birr INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS contacts (
    channel_username TEXT PRIMARY KEY,
    contact_phone_numbers TEXT
);
`

type Sink struct {
	db *sql.DB
}

// Open creates or opens the SQLite file and ensures the schema exists.
func Open(path string) (*Sink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}

	return &Sink{db: db}, nil
}

func (s *Sink) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close sqlite: %w", err)
	}

	return nil
}

// Ping reports whether the file is usable.
func (s *Sink) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping sqlite: %w", err)
	}

	return nil
}

func (s *Sink) ReplaceChannels(ctx context.Context, channels []domain.Channel) error {
	return s.replace(ctx, "channels",
		"INSERT INTO channels (channel_username, channel_title) VALUES (?, ?)",
		len(channels), func(i int) []any {
			c := channels[i]
			return []any{c.Username, c.Title}
		},
	)
}

func (s *Sink) ReplaceProducts(ctx context.Context, products []domain.Product) error {
	return s.replace(ctx, "products",
		"INSERT INTO products (product_id, product_name, date, price_in_birr) VALUES (?, ?, ?, ?)",
		len(products), func(i int) []any {
			p := products[i]
			return []any{p.ProductID, p.ProductName, p.Date.UTC().Format("2006-01-02T15:04:05Z"), p.PriceInBirr}
		},
	)
}

func (s *Sink) ReplaceContacts(ctx context.Context, contacts []domain.Contact) error {
	return s.replace(ctx, "contacts",
		"INSERT INTO contacts (channel_username, contact_phone_numbers) VALUES (?, ?)",
		len(contacts), func(i int) []any {
			c := contacts[i]
			phones, _ := json.Marshal(c.Phones) //nolint:errchkjson // string slice cannot fail to marshal

			return []any{c.Username, string(phones)}
		},
	)
}

func (s *Sink) replace(ctx context.Context, table, insert string, n int, args func(int) []any) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace %s: %w", table, err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("prepare insert %s: %w", table, err)
	}

	defer func() {
		_ = stmt.Close()
	}()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace %s: %w", table, err)
	}

	return nil
}
