// Command validate performs offline integrity checks on a venue seed file:
// schema presence, duplicate IDs, coordinate ranges, rating bounds, category
// values, and opening-hours format. It exits non-zero when any check fails,
// so it can gate seed updates in CI.
//
// Usage:
//
//	go run ./cmd/validate -seed data/venues.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/prismdirectory/venue-search-service/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	os.Exit(run())
}

func run() int {
	seedPath := flag.String("seed", "data/venues.json", "venue seed file to validate")
	flag.Parse()

	data, err := os.ReadFile(*seedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read seed: %v\n", err)
		return 1
	}

	var records []domain.RawVenue
	if err := json.Unmarshal(data, &records); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: parse seed: %v\n", err)
		return 1
	}

	fmt.Println("=== Venue Seed Validation ===")
	fmt.Println()

	phases := []*phase{
		validateSchema(records),
		validateCoordinates(records),
		validateRatings(records),
		validateCategories(records),
		validateHours(records),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-30s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d\n", len(records))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// validateSchema checks required fields and ID uniqueness.
func validateSchema(records []domain.RawVenue) *phase {
	p := &phase{name: "schema"}
	seen := map[string]int{}

	for i, r := range records {
		if r.ID == "" {
			p.errorf("record %d: missing id (name %q)", i, r.Name)
			continue
		}
		if prev, dup := seen[r.ID]; dup {
			p.errorf("record %d: duplicate id %q (first seen at record %d)", i, r.ID, prev)
		}
		seen[r.ID] = i
		if r.Name == "" {
			p.errorf("record %d (%s): missing name", i, r.ID)
		}
	}
	return p
}

// validateCoordinates checks that lat/lon come in complete, in-range pairs.
func validateCoordinates(records []domain.RawVenue) *phase {
	p := &phase{name: "coordinates"}

	for i, r := range records {
		switch {
		case r.Lat == nil && r.Lon == nil:
			// No coordinate is allowed; distance stays unknown.
		case r.Lat == nil || r.Lon == nil:
			p.errorf("record %d (%s): incomplete coordinate pair", i, r.ID)
		default:
			c := domain.Coordinate{Lat: *r.Lat, Lon: *r.Lon}
			if !c.Valid() {
				p.errorf("record %d (%s): coordinate out of range (%.4f, %.4f)", i, r.ID, *r.Lat, *r.Lon)
			}
		}
	}
	return p
}

// validateRatings checks the rating scale and review counts.
func validateRatings(records []domain.RawVenue) *phase {
	p := &phase{name: "ratings"}

	for i, r := range records {
		if r.Rating != nil && (*r.Rating < 0 || *r.Rating > 5) {
			p.errorf("record %d (%s): rating %.2f outside [0, 5]", i, r.ID, *r.Rating)
		}
		if r.ReviewCount != nil && *r.ReviewCount < 0 {
			p.errorf("record %d (%s): negative review count %d", i, r.ID, *r.ReviewCount)
		}
	}
	return p
}

// validateCategories warns on values the service would bucket into "other".
func validateCategories(records []domain.RawVenue) *phase {
	p := &phase{name: "categories"}

	for i, r := range records {
		if r.Category == "" {
			continue
		}
		if domain.NormalizeCategory(r.Category) == domain.CategoryOther && r.Category != "other" {
			p.errorf("record %d (%s): unknown category %q", i, r.ID, r.Category)
		}
	}
	return p
}

var weekdays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// validateHours checks weekday names and HH:MM interval bounds.
func validateHours(records []domain.RawVenue) *phase {
	p := &phase{name: "opening hours"}

	for i, r := range records {
		for day, intervals := range r.Hours {
			if !weekdays[day] {
				p.errorf("record %d (%s): unknown weekday %q", i, r.ID, day)
			}
			for _, iv := range intervals {
				if _, err := time.Parse("15:04", iv.Open); err != nil {
					p.errorf("record %d (%s): bad open time %q on %s", i, r.ID, iv.Open, day)
				}
				if _, err := time.Parse("15:04", iv.Close); err != nil {
					p.errorf("record %d (%s): bad close time %q on %s", i, r.ID, iv.Close, day)
				}
			}
		}
	}
	return p
}
