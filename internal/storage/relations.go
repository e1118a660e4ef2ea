package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/betselot/telegram-market-extractor/internal/core/domain"
)

// The derived relations are materialized by full refresh: truncate and
// reload inside one transaction, so readers never observe a partial state.

func (db *DB) ReplaceChannels(ctx context.Context, channels []domain.Channel) error {
	return db.replace(ctx, "channels",
		[]string{"channel_username", "channel_title"},
		pgx.CopyFromSlice(len(channels), func(i int) ([]any, error) {
			c := channels[i]
			return []any{c.Username, toText(c.Title)}, nil
		}),
	)
}

func (db *DB) ReplaceProducts(ctx context.Context, products []domain.Product) error {
	return db.replace(ctx, "products",
		[]string{"product_id", "product_name", "date", "price_in_birr"},
		pgx.CopyFromSlice(len(products), func(i int) ([]any, error) {
			p := products[i]
			return []any{p.ProductID, p.ProductName, toTimestamptz(p.Date), p.PriceInBirr}, nil
		}),
	)
}

func (db *DB) ReplaceContacts(ctx context.Context, contacts []domain.Contact) error {
	return db.replace(ctx, "contacts",
		[]string{"channel_username", "contact_phone_numbers"},
		pgx.CopyFromSlice(len(contacts), func(i int) ([]any, error) {
			c := contacts[i]
			return []any{c.Username, c.Phones}, nil
		}),
	)
}

func (db *DB) replace(ctx context.Context, table string, columns []string, source pgx.CopyFromSource) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace %s: %w", table, err)
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, "TRUNCATE "+table); err != nil {
		return fmt.Errorf("truncate %s: %w", table, err)
	}

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{table}, columns, source); err != nil {
		return fmt.Errorf("copy %s: %w", table, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace %s: %w", table, err)
	}

	return nil
}
