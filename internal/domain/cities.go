package domain

import "strings"

// fallbackCity is an entry in the static resolver fallback table.
type fallbackCity struct {
	name  string
	coord Coordinate
}

// ukCities is the static fallback table: major UK cities the resolver can
// match without a geocoder. Coordinates are city centres, which is plenty for
// directory-radius searches.
var ukCities = []fallbackCity{
	{"London", Coordinate{Lat: 51.5074, Lon: -0.1278}},
	{"Manchester", Coordinate{Lat: 53.4808, Lon: -2.2426}},
	{"Birmingham", Coordinate{Lat: 52.4862, Lon: -1.8904}},
	{"Leeds", Coordinate{Lat: 53.8008, Lon: -1.5491}},
	{"Glasgow", Coordinate{Lat: 55.8642, Lon: -4.2518}},
	{"Edinburgh", Coordinate{Lat: 55.9533, Lon: -3.1883}},
	{"Liverpool", Coordinate{Lat: 53.4084, Lon: -2.9916}},
	{"Bristol", Coordinate{Lat: 51.4545, Lon: -2.5879}},
	{"Cardiff", Coordinate{Lat: 51.4816, Lon: -3.1791}},
	{"Newcastle", Coordinate{Lat: 54.9783, Lon: -1.6178}},
	{"Brighton", Coordinate{Lat: 50.8225, Lon: -0.1372}},
	{"Belfast", Coordinate{Lat: 54.5973, Lon: -5.9301}},
}

// matchCity looks up a location query in the fallback table. Exact
// (case-insensitive) matches win; failing that, the first city whose name
// contains the query or appears inside it (so "central manchester" still
// resolves) is returned.
func matchCity(query string) (Coordinate, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Coordinate{}, false
	}

	for _, city := range ukCities {
		if strings.EqualFold(city.name, query) {
			return city.coord, true
		}
	}

	lower := strings.ToLower(query)
	for _, city := range ukCities {
		name := strings.ToLower(city.name)
		if strings.Contains(name, lower) || strings.Contains(lower, name) {
			return city.coord, true
		}
	}

	return Coordinate{}, false
}
