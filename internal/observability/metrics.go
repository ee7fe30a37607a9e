package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// venue search service.
type Metrics struct {
	SearchesTotal  *prometheus.CounterVec // labels: sort, outcome={ok,empty}
	SearchDuration prometheus.Histogram
	SearchResults  prometheus.Histogram
	VenuesActive   prometheus.Gauge

	// Coordinate resolution metrics.
	ResolveTotal       *prometheus.CounterVec // labels: source={device,geocoder,fallback,none}
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram

	// Venue feed and analytics metrics.
	FeedEvents      *prometheus.CounterVec // labels: op={upsert,delete}, outcome={ok,error}
	EventsPublished prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.SearchesTotal,
		m.SearchDuration,
		m.SearchResults,
		m.VenuesActive,
		m.ResolveTotal,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.FeedEvents,
		m.EventsPublished,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SearchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "venue_search",
			Name:      "searches_total",
			Help:      "Completed searches by sort key and outcome.",
		}, []string{"sort", "outcome"}),
		SearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "venue_search",
			Name:      "search_duration_seconds",
			Help:      "Duration of a complete resolve-annotate-filter-sort cycle.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		}),
		SearchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "venue_search",
			Name:      "search_results",
			Help:      "Number of venues returned per search.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
		}),
		VenuesActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "venue_search",
			Name:      "venues_active",
			Help:      "Venues currently held in the snapshot store.",
		}),
		ResolveTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "venue_search",
			Name:      "resolve_total",
			Help:      "Reference coordinate resolutions by source.",
		}, []string{"source"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "venue_search",
			Name:      "geocode_requests_total",
			Help:      "Geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "venue_search",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "venue_search",
			Name:      "geocode_api_duration_seconds",
			Help:      "Geocoding API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		FeedEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "venue_search",
			Name:      "feed_events_total",
			Help:      "Venue feed events by operation and outcome.",
		}, []string{"op", "outcome"}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "venue_search",
			Name:      "search_events_published_total",
			Help:      "Search analytics events published to the events topic.",
		}),
	}
}
