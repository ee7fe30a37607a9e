package store

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/prismdirectory/venue-search-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "venues.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSeed(t *testing.T) {
	path := writeSeed(t, `[
		{"id": "v1", "name": "Blue Moon Pub", "category": "pub", "rating": 4.5, "lat": 51.5, "lon": -0.12},
		{"id": "v2", "name": "Corner Cafe", "category": "restaurant"},
		{"name": "No ID"}
	]`)

	s := New(discardLogger())
	require.NoError(t, s.LoadSeed(path))

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Loaded())

	snapshot := s.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "v1", snapshot[0].ID)
	assert.Equal(t, domain.CategoryPub, snapshot[0].Category)
	require.NotNil(t, snapshot[0].Coordinate)
}

func TestLoadSeed_MissingFile(t *testing.T) {
	s := New(discardLogger())
	err := s.LoadSeed(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.False(t, s.Loaded())
}

func TestLoadSeed_MalformedJSON(t *testing.T) {
	path := writeSeed(t, `{"not": "an array"}`)
	s := New(discardLogger())
	assert.Error(t, s.LoadSeed(path))
}

func TestUpsertAndDelete(t *testing.T) {
	s := New(discardLogger())

	require.NoError(t, s.Upsert(domain.RawVenue{ID: "v1", Name: "First"}))
	require.NoError(t, s.Upsert(domain.RawVenue{ID: "v1", Name: "Renamed"}))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "Renamed", s.Snapshot()[0].Name)

	s.Delete("v1")
	assert.Equal(t, 0, s.Len())
	s.Delete("v1") // deleting again is a no-op
}

func TestUpsert_MissingID(t *testing.T) {
	s := New(discardLogger())
	assert.Error(t, s.Upsert(domain.RawVenue{Name: "anonymous"}))
}

func TestSnapshot_ExcludesInactive(t *testing.T) {
	s := New(discardLogger())
	inactive := false
	require.NoError(t, s.Upsert(domain.RawVenue{ID: "v1", Name: "Open"}))
	require.NoError(t, s.Upsert(domain.RawVenue{ID: "v2", Name: "Closed down", Active: &inactive}))

	snapshot := s.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, "v1", snapshot[0].ID)
	assert.Equal(t, 2, s.Len(), "inactive venues stay stored")
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := New(discardLogger())
	require.NoError(t, s.Upsert(domain.RawVenue{ID: "v1", Name: "Original"}))

	snapshot := s.Snapshot()
	snapshot[0].Name = "Mutated"

	assert.Equal(t, "Original", s.Snapshot()[0].Name)
}
