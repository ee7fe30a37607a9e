package domain

import "math"

const (
	// earthRadiusKm is Earth's mean radius used by the haversine formula.
	earthRadiusKm = 6371.0

	// milesPerKm converts kilometers to statute miles for display.
	milesPerKm = 0.621371
)

// Coordinate is a WGS-84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether both components are finite and within
// latitude [-90, 90] and longitude [-180, 180].
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) {
		return false
	}
	if math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// HaversineKm computes the great-circle distance between two coordinates in
// kilometers. Symmetric, zero at identity. The longitude difference is
// normalized into [-180, 180] so points either side of the ±180° seam measure
// short, not around-the-world.
func HaversineKm(a, b Coordinate) float64 {
	dLatDeg := b.Lat - a.Lat
	dLonDeg := b.Lon - a.Lon
	for dLonDeg > 180 {
		dLonDeg -= 360
	}
	for dLonDeg < -180 {
		dLonDeg += 360
	}

	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(dLatDeg)
	dLon := radians(dLonDeg)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// KmToMiles converts kilometers to statute miles.
func KmToMiles(km float64) float64 {
	return km * milesPerKm
}

// RoundMiles1dp rounds a mile value to one decimal place for presentation.
func RoundMiles1dp(miles float64) float64 {
	return math.Round(miles*10) / 10
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Annotate computes the distance in miles from reference to each venue that
// has a usable coordinate. Venues without one keep a nil distance; a nil
// distance is never encoded as 0 or -1, which would read as "very close".
// The input slice is not mutated.
func Annotate(reference Coordinate, venues []Venue) []AnnotatedVenue {
	annotated := make([]AnnotatedVenue, len(venues))
	for i, v := range venues {
		annotated[i] = AnnotatedVenue{Venue: v}
		if v.Coordinate == nil || !v.Coordinate.Valid() {
			continue
		}
		miles := KmToMiles(HaversineKm(reference, *v.Coordinate))
		annotated[i].DistanceMiles = &miles
		annotated[i].DistanceUnit = "mi"
	}
	return annotated
}
