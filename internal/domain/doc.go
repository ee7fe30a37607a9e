// Package domain models venue directory listings and implements the
// location-aware search pipeline: coordinate resolution, great-circle
// distance, and multi-criterion filtering and ranking.
//
// # Data Conventions
//
// Venues:
//
//	Categories form a small fixed set: pub, restaurant, shop, gym, other.
//	Anything else normalizes to "other". Ratings run 0.0–5.0 with 0 meaning
//	"unrated", never "bad". Feature tags are free-form strings such as
//	"All-Gender Facilities", matched case-insensitively.
//
// Coordinates:
//
//	WGS-84 latitude/longitude. Stored venue coordinates are optional; a
//	record with a non-finite or out-of-range pair is treated as having no
//	coordinate at all, which downgrades that single venue's distance
//	features without affecting the rest of a search.
//
// Distances:
//
//	Computed with the haversine formula over Earth's mean radius (6371 km)
//	and exposed to callers in unrounded kilometers. Display values are
//	converted to statute miles (×0.621371) and rounded to one decimal
//	place. An unknown distance is represented as nil, never as a sentinel
//	number, because 0 reads as "right here".
//
// Opening hours:
//
//	Structured hours map weekday names to "HH:MM" open/close intervals; a
//	close at or before the open means the venue runs past midnight. Open
//	state is computed from these deterministically via the package clock
//	(see [SetClock]); venues with only free-text hours get a nil open
//	state rather than a guess.
//
// # Degradation
//
// The pipeline is built to degrade rather than fail. Geocoding outages fall
// back to a static table of UK city centres; total resolution failure turns
// distance filtering and sorting into no-ops; malformed filter values are
// clamped into range. A search over valid input always returns a list — the
// only way to get zero results is genuinely strict filtering.
package domain
