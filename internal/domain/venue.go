package domain

// Category classifies a venue into one of the directory's fixed buckets.
type Category string

const (
	CategoryPub        Category = "pub"
	CategoryRestaurant Category = "restaurant"
	CategoryShop       Category = "shop"
	CategoryGym        Category = "gym"
	CategoryOther      Category = "other"
)

// Venue is a normalized directory listing. Instances are produced by
// NormalizeVenue at the storage boundary, so consumers can rely on the
// invariants: Rating in [0, 5], ReviewCount >= 0, Coordinate nil or valid.
type Venue struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Category    Category     `json:"category"`
	Address     string       `json:"address,omitempty"`
	Coordinate  *Coordinate  `json:"coordinate,omitempty"`
	Rating      float64      `json:"rating"` // 0 means unrated
	ReviewCount int          `json:"review_count"`
	Features    []string     `json:"features,omitempty"`
	Hours       OpeningHours `json:"hours,omitempty"`
	HoursText   string       `json:"hours_text,omitempty"`
	Active      bool         `json:"active"`
}

// AnnotatedVenue is a Venue plus per-search computed fields. DistanceMiles is
// nil when either the search had no reference coordinate or the venue has
// none; DistanceUnit is set only alongside a distance.
type AnnotatedVenue struct {
	Venue
	DistanceMiles *float64 `json:"distance_miles,omitempty"`
	DistanceUnit  string   `json:"distance_unit,omitempty"`
	OpenNow       *bool    `json:"open_now,omitempty"`
}

// RawVenue is the wire/storage shape of a venue before normalization: the
// seed file, the Kafka venue feed, and cmd/genseed all speak this form.
// Optional numeric fields are pointers so "absent" and "zero" stay distinct.
type RawVenue struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Category    string       `json:"category,omitempty"`
	Address     string       `json:"address,omitempty"`
	Lat         *float64     `json:"lat,omitempty"`
	Lon         *float64     `json:"lon,omitempty"`
	Rating      *float64     `json:"rating,omitempty"`
	ReviewCount *int         `json:"review_count,omitempty"`
	Features    []string     `json:"features,omitempty"`
	Hours       OpeningHours `json:"hours,omitempty"`
	HoursText   string       `json:"hours_text,omitempty"`
	Active      *bool        `json:"active,omitempty"`
}
