package domain

import "context"

// GeocodeResult contains location data returned by a geocoding provider.
type GeocodeResult struct {
	Lat              float64
	Lon              float64
	FormattedAddress string
	PlaceName        string
	Confidence       float64 // 0.0–1.0 provider confidence score
}

// Geocoder resolves free-text location queries to coordinates. A zero-valued
// result with a nil error means the provider found no match.
type Geocoder interface {
	// Geocode converts a free-text query to coordinates, restricted to the
	// given ISO 3166-1 alpha-2 country code (empty means unrestricted).
	// Only the provider's best candidate is returned.
	Geocode(ctx context.Context, query, countryCode string) (GeocodeResult, error)
}
