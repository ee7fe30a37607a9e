// Package search orchestrates one venue search end to end: snapshot the
// store, run the domain pipeline, record metrics, and publish an analytics
// event. It is the seam between adapters and the pure domain code.
package search

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/prismdirectory/venue-search-service/internal/domain"
	"github.com/prismdirectory/venue-search-service/internal/observability"
)

// VenueSource supplies the venue snapshot for one search.
type VenueSource interface {
	Snapshot() []domain.Venue
	Loaded() bool
}

// SearchEvent is the per-search analytics record published to the events
// topic.
type SearchEvent struct {
	ID          string             `json:"id"`
	Query       string             `json:"query,omitempty"`
	Location    string             `json:"location,omitempty"`
	Sort        string             `json:"sort"`
	ResultCount int                `json:"result_count"`
	LatencyMs   int64              `json:"latency_ms"`
	Reference   *domain.Coordinate `json:"reference,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// EventRecorder publishes search analytics events. Implementations must not
// block search latency on delivery guarantees.
type EventRecorder interface {
	Record(ctx context.Context, event SearchEvent) error
}

// Service wires the venue store, coordinate resolver, and observability into
// a single search entry point for the HTTP layer.
type Service struct {
	venues   VenueSource
	resolver *domain.Resolver
	recorder EventRecorder
	metrics  *observability.Metrics
	logger   *slog.Logger
	clock    clockwork.Clock
}

// New creates a Service. recorder may be nil to disable analytics events.
func New(venues VenueSource, resolver *domain.Resolver, recorder EventRecorder, metrics *observability.Metrics, logger *slog.Logger, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		venues:   venues,
		resolver: resolver,
		recorder: recorder,
		metrics:  metrics,
		logger:   logger,
		clock:    clock,
	}
}

// Search runs the full pipeline over the current snapshot and returns the
// ordered results plus the resolution info for the response envelope.
func (s *Service) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.AnnotatedVenue, domain.SearchInfo) {
	start := s.clock.Now()

	snapshot := s.venues.Snapshot()
	s.metrics.VenuesActive.Set(float64(len(snapshot)))

	results, info := domain.Search(ctx, snapshot, filter, s.resolver)
	latency := s.clock.Since(start)

	outcome := "ok"
	if len(results) == 0 {
		outcome = "empty"
	}
	s.metrics.SearchesTotal.WithLabelValues(string(filter.Clamp().Sort), outcome).Inc()
	s.metrics.SearchDuration.Observe(latency.Seconds())
	s.metrics.SearchResults.Observe(float64(len(results)))
	s.metrics.ResolveTotal.WithLabelValues(string(info.Source)).Inc()

	s.recordEvent(ctx, filter, results, info, latency)

	return results, info
}

// Distance computes a one-off distance for display, without a full search.
func (s *Service) Distance(from, to domain.Coordinate) (km, miles float64) {
	km = domain.HaversineKm(from, to)
	return km, domain.RoundMiles1dp(domain.KmToMiles(km))
}

// CheckReadiness returns nil once venue data has been loaded from any
// source.
func (s *Service) CheckReadiness(_ context.Context) error {
	if !s.venues.Loaded() {
		return errors.New("venue store has not loaded any data yet")
	}
	return nil
}

func (s *Service) recordEvent(ctx context.Context, filter domain.SearchFilter, results []domain.AnnotatedVenue, info domain.SearchInfo, latency time.Duration) {
	if s.recorder == nil {
		return
	}

	event := SearchEvent{
		ID:          uuid.NewString(),
		Query:       filter.Query,
		Location:    filter.LocationText,
		Sort:        string(filter.Clamp().Sort),
		ResultCount: len(results),
		LatencyMs:   latency.Milliseconds(),
		Reference:   info.Reference,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.recorder.Record(ctx, event); err != nil {
		// Analytics loss is not a search failure.
		s.logger.Warn("search event publish failed", "event_id", event.ID, "error", err)
		return
	}
	s.metrics.EventsPublished.Inc()
}
