package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDetections(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "detections.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestReadDetections(t *testing.T) {
	path := writeDetections(t, `[
		{"media_path": "photos/DoctorsET_101.jpg", "labels": [
			{"label": "bottle", "confidence": 0.91},
			{"label": "person", "confidence": 0.44}
		]},
		{"media_path": "photos/DoctorsET_102.jpg", "labels": [
			{"label": "syringe", "confidence": 0.77}
		]}
	]`)

	got, err := ReadDetections(path)

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "photos/DoctorsET_101.jpg", got[0].MediaPath)
	assert.Equal(t, "bottle", got[0].Label)
	assert.InDelta(t, 0.91, got[0].Confidence, 1e-9)
	assert.Equal(t, "syringe", got[2].Label)
}

func TestReadDetectionsSkipsIncompleteEntries(t *testing.T) {
	path := writeDetections(t, `[
		{"media_path": "", "labels": [{"label": "bottle", "confidence": 0.9}]},
		{"media_path": "photos/a.jpg", "labels": [{"label": "", "confidence": 0.5}]},
		{"media_path": "photos/b.jpg", "labels": []},
		{"media_path": "photos/c.jpg", "labels": [{"label": "gloves", "confidence": 0.6}]}
	]`)

	got, err := ReadDetections(path)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "photos/c.jpg", got[0].MediaPath)
}

func TestReadDetectionsBadFile(t *testing.T) {
	_, err := ReadDetections(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	path := writeDetections(t, `{"not": "a list"}`)
	_, err = ReadDetections(path)
	require.Error(t, err)
}
