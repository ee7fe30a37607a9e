package search

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismdirectory/venue-search-service/internal/domain"
	"github.com/prismdirectory/venue-search-service/internal/observability"
)

// --- mock collaborators ---

type stubSource struct {
	venues []domain.Venue
	loaded bool
}

func (s *stubSource) Snapshot() []domain.Venue { return s.venues }
func (s *stubSource) Loaded() bool             { return s.loaded }

type capturingRecorder struct {
	events []SearchEvent
	err    error
}

func (r *capturingRecorder) Record(_ context.Context, event SearchEvent) error {
	r.events = append(r.events, event)
	return r.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testService(source *stubSource, recorder EventRecorder) *Service {
	return New(
		source,
		domain.NewResolver(nil, "gb", discardLogger()),
		recorder,
		observability.NewMetricsForTesting(),
		discardLogger(),
		clockwork.NewFakeClockAt(time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)),
	)
}

// --- tests ---

func TestService_Search(t *testing.T) {
	source := &stubSource{
		loaded: true,
		venues: []domain.Venue{
			{ID: "1", Name: "Blue Moon Pub", Category: domain.CategoryPub, Rating: 4.5, Active: true},
			{ID: "2", Name: "Corner Cafe", Category: domain.CategoryRestaurant, Rating: 4.0, Active: true},
		},
	}
	recorder := &capturingRecorder{}
	svc := testService(source, recorder)

	results, info := svc.Search(context.Background(), domain.SearchFilter{Query: "blue"})

	require.Len(t, results, 1)
	assert.Equal(t, "Blue Moon Pub", results[0].Name)
	assert.Nil(t, info.Reference)

	require.Len(t, recorder.events, 1)
	event := recorder.events[0]
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "blue", event.Query)
	assert.Equal(t, "relevance", event.Sort)
	assert.Equal(t, 1, event.ResultCount)
	assert.Equal(t, time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC), event.CreatedAt)
}

func TestService_Search_RecorderFailureIsAbsorbed(t *testing.T) {
	source := &stubSource{loaded: true, venues: []domain.Venue{{ID: "1", Name: "A", Active: true}}}
	recorder := &capturingRecorder{err: errors.New("broker down")}
	svc := testService(source, recorder)

	results, _ := svc.Search(context.Background(), domain.SearchFilter{})

	assert.Len(t, results, 1, "search succeeds despite analytics failure")
}

func TestService_Search_NilRecorder(t *testing.T) {
	source := &stubSource{loaded: true, venues: []domain.Venue{{ID: "1", Name: "A", Active: true}}}
	svc := testService(source, nil)

	results, _ := svc.Search(context.Background(), domain.SearchFilter{})
	assert.Len(t, results, 1)
}

func TestService_Search_EmptyStore(t *testing.T) {
	svc := testService(&stubSource{loaded: true}, nil)

	results, _ := svc.Search(context.Background(), domain.SearchFilter{Query: "anything"})
	assert.Empty(t, results)
}

func TestService_Distance(t *testing.T) {
	svc := testService(&stubSource{loaded: true}, nil)

	km, miles := svc.Distance(
		domain.Coordinate{Lat: 51.5074, Lon: -0.1278},
		domain.Coordinate{Lat: 53.4808, Lon: -2.2426},
	)

	assert.InDelta(t, 262, km, 5)
	assert.InDelta(t, 163, miles, 3)
}

func TestService_CheckReadiness(t *testing.T) {
	source := &stubSource{}
	svc := testService(source, nil)

	assert.Error(t, svc.CheckReadiness(context.Background()))

	source.loaded = true
	assert.NoError(t, svc.CheckReadiness(context.Background()))
}
