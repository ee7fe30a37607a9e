package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prismdirectory/venue-search-service/internal/domain"
)

// SearchService is the application-layer surface the HTTP handlers call.
type SearchService interface {
	Search(ctx context.Context, filter domain.SearchFilter) ([]domain.AnnotatedVenue, domain.SearchInfo)
	Distance(from, to domain.Coordinate) (km, miles float64)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the search API plus health, readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	service    SearchService
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the /v1 API and operational routes.
func NewServer(addr string, service SearchService, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		service: service,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /v1/search", s.handleSearch)
	mux.HandleFunc("GET /v1/distance", s.handleDistance)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.service.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

type searchResponse struct {
	Results   []domain.AnnotatedVenue `json:"results"`
	Count     int                     `json:"count"`
	Reference *domain.Coordinate      `json:"reference"`
}

// handleSearch maps query parameters onto a search filter. Malformed numeric
// parameters are dropped rather than rejected; the pipeline degrades, it does
// not 400.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	filter := domain.SearchFilter{
		Query:            strings.TrimSpace(params.Get("q")),
		LocationText:     strings.TrimSpace(params.Get("near")),
		Position:         parseCoordinate(params, "lat", "lon"),
		MaxDistanceMiles: parseFloat(params, "radius"),
		Categories:       params["category"],
		RequiredFeatures: params["feature"],
		Sort:             domain.ParseSortKey(params.Get("sort")),
	}
	if v := parseFloat(params, "min_rating"); v != nil {
		filter.MinRating = *v
	}

	results, info := s.service.Search(r.Context(), filter)
	if results == nil {
		results = []domain.AnnotatedVenue{}
	}
	writeJSON(w, http.StatusOK, searchResponse{
		Results:   results,
		Count:     len(results),
		Reference: info.Reference,
	})
}

type distanceResponse struct {
	Km    float64 `json:"km"`
	Miles float64 `json:"miles"`
}

// handleDistance computes the great-circle distance between two points. Unlike
// search there is nothing sensible to degrade to, so bad input is a 400.
func (s *Server) handleDistance(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	from := parseCoordinate(params, "from_lat", "from_lon")
	to := parseCoordinate(params, "to_lat", "to_lon")
	if from == nil || to == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "from_lat, from_lon, to_lat and to_lon must be valid coordinates",
		})
		return
	}

	km, miles := s.service.Distance(*from, *to)
	writeJSON(w, http.StatusOK, distanceResponse{Km: km, Miles: miles})
}

// parseCoordinate reads a lat/lon parameter pair. Returns nil unless both
// parse and form a valid coordinate.
func parseCoordinate(params url.Values, latKey, lonKey string) *domain.Coordinate {
	lat := parseFloat(params, latKey)
	lon := parseFloat(params, lonKey)
	if lat == nil || lon == nil {
		return nil
	}
	c := domain.Coordinate{Lat: *lat, Lon: *lon}
	if !c.Valid() {
		return nil
	}
	return &c
}

// parseFloat reads one float parameter, treating absent and malformed values
// the same way.
func parseFloat(params url.Values, key string) *float64 {
	raw := strings.TrimSpace(params.Get(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}
