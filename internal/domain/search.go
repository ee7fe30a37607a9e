package domain

import (
	"context"
	"slices"
	"strings"
)

// SortKey selects the result ordering for a search.
type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortDistance  SortKey = "distance"
	SortRating    SortKey = "rating"
	SortName      SortKey = "name"
)

// ParseSortKey maps a caller-supplied sort string onto a SortKey, defaulting
// to relevance for anything unrecognized.
func ParseSortKey(value string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(value))) {
	case SortDistance:
		return SortDistance
	case SortRating:
		return SortRating
	case SortName:
		return SortName
	default:
		return SortRelevance
	}
}

// SearchFilter is the caller-supplied filter specification for one search.
// Zero values mean "no constraint": empty Categories accepts every category,
// empty RequiredFeatures requires nothing, nil MaxDistanceMiles disables the
// radius filter.
type SearchFilter struct {
	Query            string
	LocationText     string
	Position         *Coordinate // device position; wins over LocationText
	MaxDistanceMiles *float64
	Categories       []string
	MinRating        float64
	RequiredFeatures []string
	Sort             SortKey
}

// Clamp repairs malformed filter values instead of rejecting them, keeping
// search resilient to caller bugs. Returns a copy; the receiver is unchanged.
func (f SearchFilter) Clamp() SearchFilter {
	f.MinRating = clampRating(f.MinRating)
	if f.MaxDistanceMiles != nil && (*f.MaxDistanceMiles != *f.MaxDistanceMiles || *f.MaxDistanceMiles < 0) {
		f.MaxDistanceMiles = nil
	}
	if f.Position != nil && !f.Position.Valid() {
		f.Position = nil
	}
	if f.Sort == "" {
		f.Sort = SortRelevance
	}
	return f
}

// wantsReference reports whether the filter asks for anything distance-based.
func (f SearchFilter) wantsReference() bool {
	return f.Position != nil ||
		strings.TrimSpace(f.LocationText) != "" ||
		f.MaxDistanceMiles != nil ||
		f.Sort == SortDistance
}

// SearchInfo describes how one search was resolved: the reference coordinate
// distances were measured against (nil when none could be determined) and
// where it came from.
type SearchInfo struct {
	Reference *Coordinate
	Source    ResolveSource
}

// Search runs the resolve → annotate → filter → sort pipeline over a snapshot
// of venues and returns a freshly allocated, ordered result list. The input
// slice is never mutated, and valid input cannot fail: resolver failure is
// absorbed (distance features degrade to no-ops) rather than surfaced.
func Search(ctx context.Context, venues []Venue, filter SearchFilter, resolver *Resolver) ([]AnnotatedVenue, SearchInfo) {
	filter = filter.Clamp()

	reference, source, refOK := resolveReference(ctx, filter, resolver)
	info := SearchInfo{Source: source}
	if refOK {
		info.Reference = &reference
	}

	var annotated []AnnotatedVenue
	if refOK {
		annotated = Annotate(reference, venues)
	} else {
		annotated = make([]AnnotatedVenue, len(venues))
		for i, v := range venues {
			annotated[i] = AnnotatedVenue{Venue: v}
		}
	}
	for i := range annotated {
		annotated[i].OpenNow = OpenNow(annotated[i].Hours)
	}

	results := make([]AnnotatedVenue, 0, len(annotated))
	for _, av := range annotated {
		if matches(av, filter) {
			results = append(results, av)
		}
	}

	sortResults(results, filter, refOK)
	return results, info
}

func resolveReference(ctx context.Context, filter SearchFilter, resolver *Resolver) (Coordinate, ResolveSource, bool) {
	if !filter.wantsReference() {
		return Coordinate{}, ResolveNone, false
	}
	if resolver == nil {
		if filter.Position != nil {
			return *filter.Position, ResolveDevice, true
		}
		return Coordinate{}, ResolveNone, false
	}
	return resolver.Resolve(ctx, filter.LocationText, filter.Position)
}

// matches applies every filter predicate; all must hold for the venue to be
// retained.
func matches(av AnnotatedVenue, filter SearchFilter) bool {
	if q := strings.TrimSpace(filter.Query); q != "" && !matchesQuery(av.Venue, q) {
		return false
	}

	if len(filter.Categories) > 0 {
		found := false
		for _, c := range filter.Categories {
			if strings.EqualFold(c, string(av.Category)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if av.Rating < filter.MinRating {
		return false
	}

	for _, required := range filter.RequiredFeatures {
		if !containsFold(av.Features, required) {
			return false
		}
	}

	// A venue with no distance annotation is retained: absence of location
	// data must not silently erase it from radius-filtered results.
	if filter.MaxDistanceMiles != nil && av.DistanceMiles != nil && *av.DistanceMiles > *filter.MaxDistanceMiles {
		return false
	}

	return true
}

// matchesQuery reports whether the query appears, case-insensitively, in the
// venue's name, address, any feature tag, or category name.
func matchesQuery(v Venue, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(v.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(v.Address), q) {
		return true
	}
	for _, f := range v.Features {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(string(v.Category)), q)
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}

// sortResults orders the filtered list, stably, by the requested key.
// Distance sort without a resolved reference degrades to the rating order
// rather than leaving results arbitrarily arranged.
func sortResults(results []AnnotatedVenue, filter SearchFilter, refOK bool) {
	switch filter.Sort {
	case SortDistance:
		if !refOK {
			slices.SortStableFunc(results, compareRating)
			return
		}
		slices.SortStableFunc(results, compareDistance)
	case SortRating:
		slices.SortStableFunc(results, compareRating)
	case SortName:
		slices.SortStableFunc(results, compareName)
	default:
		query := strings.TrimSpace(filter.Query)
		if query == "" {
			// Relevance without a query degenerates to rating order.
			slices.SortStableFunc(results, compareRating)
			return
		}
		q := strings.ToLower(query)
		slices.SortStableFunc(results, func(a, b AnnotatedVenue) int {
			return compareRelevance(a, b, q)
		})
	}
}

// compareDistance orders ascending by distance; venues with no distance sort
// after all venues that have one.
func compareDistance(a, b AnnotatedVenue) int {
	switch {
	case a.DistanceMiles == nil && b.DistanceMiles == nil:
		return 0
	case a.DistanceMiles == nil:
		return 1
	case b.DistanceMiles == nil:
		return -1
	case *a.DistanceMiles < *b.DistanceMiles:
		return -1
	case *a.DistanceMiles > *b.DistanceMiles:
		return 1
	default:
		return 0
	}
}

// compareRating orders descending by rating, ties broken by descending review
// count, then name ascending.
func compareRating(a, b AnnotatedVenue) int {
	switch {
	case a.Rating > b.Rating:
		return -1
	case a.Rating < b.Rating:
		return 1
	}
	switch {
	case a.ReviewCount > b.ReviewCount:
		return -1
	case a.ReviewCount < b.ReviewCount:
		return 1
	}
	return compareName(a, b)
}

// compareName orders ascending, case-insensitive.
func compareName(a, b AnnotatedVenue) int {
	return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
}

// compareRelevance: name-prefix matches rank before mere containment; within
// a bucket, rating descending, then distance ascending (absent last), then
// name ascending. The query is already lowercased.
func compareRelevance(a, b AnnotatedVenue, query string) int {
	bucketA := relevanceBucket(a.Name, query)
	bucketB := relevanceBucket(b.Name, query)
	if bucketA != bucketB {
		return bucketA - bucketB
	}

	switch {
	case a.Rating > b.Rating:
		return -1
	case a.Rating < b.Rating:
		return 1
	}

	if c := compareDistance(a, b); c != 0 {
		return c
	}

	return compareName(a, b)
}

func relevanceBucket(name, query string) int {
	if strings.HasPrefix(strings.ToLower(name), query) {
		return 0
	}
	return 1
}
