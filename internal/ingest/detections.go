package ingest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/betselot/telegram-market-extractor/internal/core/domain"
)

// detectionFile is the detector's output shape: one entry per annotated
// image, labels nested under it.
type detectionFile []struct {
	MediaPath string `json:"media_path"`
	Labels    []struct {
		Label      string  `json:"label"`
		Confidence float64 `json:"confidence"`
	} `json:"labels"`
}

// ReadDetections flattens a detector output file into one row per label.
// Entries without a media path or label are skipped.
func ReadDetections(path string) ([]domain.Detection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read detections: %w", err)
	}

	var file detectionFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse detections: %w", err)
	}

	var out []domain.Detection

	for _, entry := range file {
		if entry.MediaPath == "" {
			continue
		}

		for _, l := range entry.Labels {
			if l.Label == "" {
				continue
			}

			out = append(out, domain.Detection{
				MediaPath:  entry.MediaPath,
				Label:      l.Label,
				Confidence: l.Confidence,
			})
		}
	}

	return out, nil
}
