package domain

import "strings"

// NormalizeVenue maps a raw stored record to a Venue with the type's
// invariants guaranteed. It runs once per record at the storage boundary so
// the search pipeline never re-derives defaults inline.
//
// Repairs applied:
//   - rating clamped into [0, 5]; absent rating means 0 ("unrated")
//   - negative review counts zeroed
//   - unknown categories mapped to CategoryOther
//   - a coordinate is kept only when both components are present and valid
//   - feature tags trimmed, empties dropped
//   - absent active flag defaults to true
func NormalizeVenue(raw RawVenue) Venue {
	v := Venue{
		ID:        strings.TrimSpace(raw.ID),
		Name:      strings.TrimSpace(raw.Name),
		Category:  NormalizeCategory(raw.Category),
		Address:   strings.TrimSpace(raw.Address),
		Hours:     raw.Hours,
		HoursText: strings.TrimSpace(raw.HoursText),
		Active:    true,
	}

	if raw.Rating != nil {
		v.Rating = clampRating(*raw.Rating)
	}
	if raw.ReviewCount != nil && *raw.ReviewCount > 0 {
		v.ReviewCount = *raw.ReviewCount
	}
	if raw.Lat != nil && raw.Lon != nil {
		c := Coordinate{Lat: *raw.Lat, Lon: *raw.Lon}
		if c.Valid() {
			v.Coordinate = &c
		}
	}
	for _, f := range raw.Features {
		f = strings.TrimSpace(f)
		if f != "" {
			v.Features = append(v.Features, f)
		}
	}
	if raw.Active != nil {
		v.Active = *raw.Active
	}

	return v
}

// NormalizeCategory maps a free-form category string onto the fixed set,
// falling back to CategoryOther for anything unrecognized.
func NormalizeCategory(value string) Category {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "pub":
		return CategoryPub
	case "restaurant":
		return CategoryRestaurant
	case "shop":
		return CategoryShop
	case "gym":
		return CategoryGym
	default:
		return CategoryOther
	}
}

func clampRating(rating float64) float64 {
	if rating != rating { // NaN
		return 0
	}
	if rating < 0 {
		return 0
	}
	if rating > 5 {
		return 5
	}
	return rating
}
