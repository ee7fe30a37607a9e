package domain

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// shortQueryRunes: location queries shorter than this that hit the fallback
// table skip the geocoder entirely. Cheap common queries ("lon", "ldn")
// shouldn't cost a network round-trip.
const shortQueryRunes = 4

// ResolveSource identifies how a reference coordinate was determined.
type ResolveSource string

const (
	ResolveDevice   ResolveSource = "device"
	ResolveGeocoder ResolveSource = "geocoder"
	ResolveFallback ResolveSource = "fallback"
	ResolveNone     ResolveSource = "none"
)

// Resolver turns a free-text location or a device position into a reference
// coordinate. Geocoder failures degrade to the static city table rather than
// erroring the search; at most one outbound call is made per Resolve and
// there are no retries on this path.
type Resolver struct {
	geocoder Geocoder
	country  string
	logger   *slog.Logger
}

// NewResolver creates a Resolver. A nil geocoder is allowed and limits
// resolution to device positions and the static fallback table.
func NewResolver(geocoder Geocoder, countryCode string, logger *slog.Logger) *Resolver {
	return &Resolver{
		geocoder: geocoder,
		country:  countryCode,
		logger:   logger,
	}
}

// Resolve determines the reference coordinate for one search.
//
// A valid device position is authoritative and wins over text resolution.
// Otherwise the location text is resolved: short queries that match the
// fallback table never reach the geocoder; everything else goes to the
// geocoder first, with the table as the degradation path. The false return
// is the "no reference point" outcome — callers treat it as distance
// unavailable, never as a search error.
func (r *Resolver) Resolve(ctx context.Context, locationText string, devicePos *Coordinate) (Coordinate, ResolveSource, bool) {
	if devicePos != nil && devicePos.Valid() {
		return *devicePos, ResolveDevice, true
	}

	locationText = strings.TrimSpace(locationText)
	if locationText == "" {
		return Coordinate{}, ResolveNone, false
	}

	if utf8.RuneCountInString(locationText) < shortQueryRunes {
		if coord, ok := matchCity(locationText); ok {
			return coord, ResolveFallback, true
		}
	}

	if r.geocoder != nil {
		result, err := r.geocoder.Geocode(ctx, locationText, r.country)
		if err != nil {
			r.logger.Warn("geocoding failed, using fallback table",
				"query", locationText,
				"error", err,
			)
		} else if (Coordinate{Lat: result.Lat, Lon: result.Lon}).Valid() && (result.Lat != 0 || result.Lon != 0) {
			return Coordinate{Lat: result.Lat, Lon: result.Lon}, ResolveGeocoder, true
		}
	}

	if coord, ok := matchCity(locationText); ok {
		return coord, ResolveFallback, true
	}

	return Coordinate{}, ResolveNone, false
}
