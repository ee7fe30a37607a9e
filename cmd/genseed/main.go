// Command genseed reads a CSV venue export and generates the JSON seed file
// the search service loads at startup. It runs every record through the
// domain normalization so the generated seed matches real service behavior,
// and drops records the service would reject.
//
// Usage:
//
//	go run ./cmd/genseed -csv data/venues.csv -out data/venues.json
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/prismdirectory/venue-search-service/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvPath := flag.String("csv", "", "input CSV venue export")
	outPath := flag.String("out", "", "output path for JSON seed file")
	flag.Parse()

	if *csvPath == "" || *outPath == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -csv, -out")
	}

	rows, header, err := loadCSV(*csvPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", *csvPath, err)
	}

	colIdx := map[string]int{}
	for i, h := range header {
		colIdx[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var records []domain.RawVenue
	dropped := 0
	for i, row := range rows {
		raw := rowToVenue(row, colIdx)

		// Run the same normalization the store applies at load time.
		v := domain.NormalizeVenue(raw)
		if v.ID == "" {
			log.Printf("row %d: dropping record without id (%q)", i+2, raw.Name)
			dropped++
			continue
		}
		records = append(records, raw)
	}

	if err := writeJSON(*outPath, records); err != nil {
		return fmt.Errorf("writing seed: %w", err)
	}

	log.Printf("wrote %d venues to %s (%d dropped)", len(records), *outPath, dropped)
	printStats(records)
	return nil
}

func loadCSV(path string) (rows [][]string, header []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	all, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) < 2 {
		return nil, nil, fmt.Errorf("no data rows")
	}
	return all[1:], all[0], nil
}

// rowToVenue maps one CSV row onto the wire shape. Empty cells stay nil so
// normalization sees "absent" rather than zero.
func rowToVenue(row []string, colIdx map[string]int) domain.RawVenue {
	raw := domain.RawVenue{
		ID:       get(row, colIdx, "id"),
		Name:     get(row, colIdx, "name"),
		Category: get(row, colIdx, "category"),
		Address:  get(row, colIdx, "address"),
		Lat:      getFloat(row, colIdx, "lat"),
		Lon:      getFloat(row, colIdx, "lon"),
		Rating:   getFloat(row, colIdx, "rating"),
	}

	if n := getFloat(row, colIdx, "review_count"); n != nil {
		count := int(*n)
		raw.ReviewCount = &count
	}
	if features := get(row, colIdx, "features"); features != "" {
		for _, f := range strings.Split(features, "|") {
			if f = strings.TrimSpace(f); f != "" {
				raw.Features = append(raw.Features, f)
			}
		}
	}
	raw.HoursText = get(row, colIdx, "hours_text")
	if active := get(row, colIdx, "active"); active != "" {
		v := strings.EqualFold(active, "true") || active == "1"
		raw.Active = &v
	}
	return raw
}

func get(row []string, colIdx map[string]int, col string) string {
	i, ok := colIdx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func getFloat(row []string, colIdx map[string]int, col string) *float64 {
	s := get(row, colIdx, col)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printStats(records []domain.RawVenue) {
	counts := map[string]int{}
	for _, r := range records {
		counts[string(domain.NormalizeCategory(r.Category))]++
	}

	categories := make([]string, 0, len(counts))
	for c := range counts {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	for _, c := range categories {
		log.Printf("  %-12s %d", c, counts[c])
	}
}
