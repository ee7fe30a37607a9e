// Package store holds the in-memory venue snapshot the search service reads
// from. It is populated from a JSON seed file at startup and kept current by
// the Kafka venue feed; every read hands out normalized copies, so the
// search pipeline never observes a half-applied update.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/prismdirectory/venue-search-service/internal/domain"
)

// VenueStore is a thread-safe snapshot store keyed by venue ID.
type VenueStore struct {
	mu     sync.RWMutex
	venues map[string]domain.Venue
	loaded bool
	logger *slog.Logger
}

// New creates an empty VenueStore.
func New(logger *slog.Logger) *VenueStore {
	return &VenueStore{
		venues: make(map[string]domain.Venue),
		logger: logger,
	}
}

// LoadSeed reads a JSON array of raw venue records, normalizes each, and
// replaces the store's contents. Records without an ID are skipped with a
// warning rather than aborting the load.
func (s *VenueStore) LoadSeed(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var raws []domain.RawVenue
	if err := json.Unmarshal(data, &raws); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	venues := make(map[string]domain.Venue, len(raws))
	skipped := 0
	for _, raw := range raws {
		v := domain.NormalizeVenue(raw)
		if v.ID == "" {
			skipped++
			continue
		}
		venues[v.ID] = v
	}
	if skipped > 0 {
		s.logger.Warn("seed records without IDs skipped", "count", skipped, "path", path)
	}

	s.mu.Lock()
	s.venues = venues
	s.loaded = true
	s.mu.Unlock()

	s.logger.Info("venue seed loaded", "path", path, "venues", len(venues))
	return nil
}

// Upsert normalizes and stores one venue. Records without an ID are rejected.
func (s *VenueStore) Upsert(raw domain.RawVenue) error {
	v := domain.NormalizeVenue(raw)
	if v.ID == "" {
		return fmt.Errorf("upsert venue: missing id")
	}

	s.mu.Lock()
	s.venues[v.ID] = v
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// Delete removes a venue. Deleting an unknown ID is a no-op.
func (s *VenueStore) Delete(id string) {
	s.mu.Lock()
	delete(s.venues, id)
	s.mu.Unlock()
}

// Snapshot returns the active venues as a fresh slice in stable ID order.
// Callers may hold or reorder the result freely; it shares nothing mutable
// with the store.
func (s *VenueStore) Snapshot() []domain.Venue {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Venue, 0, len(s.venues))
	for _, v := range s.venues {
		if v.Active {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len reports the number of stored venues, active or not.
func (s *VenueStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.venues)
}

// Loaded reports whether the store has received data from any source. Used
// by readiness checks: an empty-but-loaded store is ready, an untouched one
// is not.
func (s *VenueStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}
