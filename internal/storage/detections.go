package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/betselot/telegram-market-extractor/internal/core/domain"
)

// ReplaceDetections swaps the detection annotations wholesale, matching
// the full-refresh contract of the derived relations. Detections are an
// enrichment input keyed by media path; they are never joined into the
// entity views here.
func (db *DB) ReplaceDetections(ctx context.Context, detections []domain.Detection) error {
	return db.replace(ctx, "detections",
		[]string{"media_path", "label", "confidence"},
		pgx.CopyFromSlice(len(detections), func(i int) ([]any, error) {
			d := detections[i]
			return []any{d.MediaPath, d.Label, d.Confidence}, nil
		}),
	)
}

// GetDetections returns the annotations for one media path.
func (db *DB) GetDetections(ctx context.Context, mediaPath string) ([]domain.Detection, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT media_path, label, confidence
		FROM detections
		WHERE media_path = $1
		ORDER BY id
	`, mediaPath)
	if err != nil {
		return nil, fmt.Errorf("query detections: %w", err)
	}
	defer rows.Close()

	var out []domain.Detection

	for rows.Next() {
		var d domain.Detection
		if err := rows.Scan(&d.MediaPath, &d.Label, &d.Confidence); err != nil {
			return nil, fmt.Errorf("scan detection: %w", err)
		}

		out = append(out, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate detections: %w", err)
	}

	return out, nil
}
