// Command genmock generates a deterministic pair of sample seismic catalog
// CSVs for local development when the real Japan exports are not available.
// The two files mirror the real datasets' shape: the old catalog covers
// 2001-2018, the recent catalog covers 2000-2023 and overlaps the old one
// with revised magnitudes, so the merge and dedup paths behave as they do
// on real data. It then runs the generated files through the actual domain
// pipeline and prints the resulting stats.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -old-out datasets/Japan_2001-2018.csv \
//	  -recent-out datasets/Japan_2000_2023.csv \
//	  -events 5000
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/quakelens/quake-catalog-etl/internal/domain"
)

var header = []string{"time", "latitude", "longitude", "depth", "mag", "magType", "place"}

// sample is one synthetic catalog row before CSV encoding.
type sample struct {
	t         time.Time
	lat, lon  float64
	depth     float64
	magnitude float64
	place     string
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	oldOut := flag.String("old-out", "datasets/Japan_2001-2018.csv", "output path for the old catalog CSV")
	recentOut := flag.String("recent-out", "datasets/Japan_2000_2023.csv", "output path for the recent catalog CSV")
	events := flag.Int("events", 5000, "number of synthetic events across 2000-2023")
	seed := flag.Int64("seed", 20110311, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	samples := generate(rng, *events)

	old, recent := split(rng, samples)
	if err := writeCSV(*oldOut, old); err != nil {
		return fmt.Errorf("writing old catalog: %w", err)
	}
	log.Printf("wrote old catalog: %s (%d rows)", *oldOut, len(old))

	if err := writeCSV(*recentOut, recent); err != nil {
		return fmt.Errorf("writing recent catalog: %w", err)
	}
	log.Printf("wrote recent catalog: %s (%d rows)", *recentOut, len(recent))

	return printStats(old, recent)
}

// generate produces events spread over 2000-2023 with strictly increasing
// timestamps, so no two synthetic rows collide by accident.
func generate(rng *rand.Rand, n int) []sample {
	start := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)
	span := end.Sub(start)

	samples := make([]sample, n)
	for i := range samples {
		// Spacing each event inside its own slice of the range keeps the
		// sequence sorted and collision free.
		slice := span / time.Duration(n)
		offset := time.Duration(i)*slice + time.Duration(rng.Int63n(int64(slice)))
		t := start.Add(offset).Truncate(time.Millisecond)

		lat, lon, place := samplePoint(rng)
		samples[i] = sample{
			t:         t,
			lat:       lat,
			lon:       lon,
			depth:     roundTo(rng.Float64()*600, 2),
			magnitude: sampleMagnitude(rng),
			place:     place,
		}
	}
	return samples
}

// samplePoint picks a coordinate inside one of the classification regions,
// with an occasional point outside all of them.
func samplePoint(rng *rand.Rand) (lat, lon float64, place string) {
	if rng.Float64() < 0.03 {
		// Offshore, south of every region box.
		return roundTo(15+rng.Float64()*4, 4), roundTo(125+rng.Float64()*20, 4), "far offshore"
	}
	r := domain.JapanRegions[rng.Intn(len(domain.JapanRegions))]
	lat = roundTo(r.LatMin+rng.Float64()*(r.LatMax-r.LatMin), 4)
	lon = roundTo(r.LonMin+rng.Float64()*(r.LonMax-r.LonMin), 4)
	return lat, lon, r.Name
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// sampleMagnitude skews toward the 4-6 band with a thin tail of large events,
// roughly matching a real catalog's distribution above the export cutoff.
func sampleMagnitude(rng *rand.Rand) float64 {
	m := 4.0 + rng.ExpFloat64()*0.6
	if m > 9.2 {
		m = 9.2
	}
	return roundTo(m, 1)
}

// split assigns samples to the two catalog files. Rows in 2001-2018 land in
// both files; the recent copy gets a slightly revised magnitude, so merging
// must prefer the old catalog's value. Rows outside that range land only in
// the recent file, with a few pre-2000 strays the window filter must drop.
func split(rng *rand.Rand, samples []sample) (old, recent []sample) {
	oldStart := time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)
	oldEnd := time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)

	for _, s := range samples {
		inOld := !s.t.Before(oldStart) && s.t.Before(oldEnd)
		if inOld {
			old = append(old, s)
			revised := s
			revised.magnitude = roundTo(s.magnitude+(rng.Float64()-0.5)*0.2, 1)
			recent = append(recent, revised)
			continue
		}
		recent = append(recent, s)
	}

	// A couple of strays predating the recent window.
	for i := 0; i < 3; i++ {
		old = append(old, sample{
			t:         time.Date(1999, time.Month(1+i), 15, 12, 0, 0, 0, time.UTC),
			lat:       38.0,
			lon:       142.0,
			depth:     30,
			magnitude: 5.0,
			place:     "pre-window stray",
		})
	}
	return old, recent
}

func writeCSV(path string, samples []sample) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			s.t.UTC().Format("2006-01-02T15:04:05.000Z"),
			strconv.FormatFloat(s.lat, 'f', 4, 64),
			strconv.FormatFloat(s.lon, 'f', 4, 64),
			strconv.FormatFloat(s.depth, 'f', 2, 64),
			strconv.FormatFloat(s.magnitude, 'f', 1, 64),
			"mww",
			s.place,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// printStats runs the generated rows through the real merge and
// classification code and prints counts useful for eyeballing the output.
func printStats(old, recent []sample) error {
	parse := func(samples []sample, catalog string) ([]domain.SeismicEvent, error) {
		events := make([]domain.SeismicEvent, 0, len(samples))
		for i, s := range samples {
			ev, err := domain.ParseRecord(domain.RawCatalogRecord{
				Time:      s.t.UTC().Format("2006-01-02T15:04:05.000Z"),
				Latitude:  strconv.FormatFloat(s.lat, 'f', 4, 64),
				Longitude: strconv.FormatFloat(s.lon, 'f', 4, 64),
				Depth:     strconv.FormatFloat(s.depth, 'f', 2, 64),
				Magnitude: strconv.FormatFloat(s.magnitude, 'f', 1, 64),
				Catalog:   catalog,
				Line:      i + 2,
			})
			if err != nil {
				return nil, err
			}
			events = append(events, ev)
		}
		return events, nil
	}

	oldEvents, err := parse(old, "old")
	if err != nil {
		return fmt.Errorf("generated old catalog does not parse: %w", err)
	}
	recentEvents, err := parse(recent, "recent")
	if err != nil {
		return fmt.Errorf("generated recent catalog does not parse: %w", err)
	}

	merged := domain.MergeCatalogs(oldEvents, recentEvents, domain.OldCatalogWindow, domain.RecentCatalogWindow)
	classified := domain.Classify(merged, domain.JapanRegions)

	fmt.Println("\n=== Stats for the generated catalogs ===")
	fmt.Printf("Rows: old=%d recent=%d merged=%d\n", len(old), len(recent), len(merged))

	severities := map[string]int{}
	for i := range classified {
		severities[classified[i].Severity]++
	}
	fmt.Printf("By severity: minor=%d, moderate=%d, severe=%d, extreme=%d\n",
		severities["minor"], severities["moderate"], severities["severe"], severities["extreme"])

	fmt.Println("By region:")
	for _, b := range domain.CountByRegion(classified) {
		fmt.Printf("  %-20s %d\n", b.Key, b.Count)
	}

	if counts := domain.CountByYear(classified); len(counts) > 0 {
		fmt.Printf("Years: %d-%d\n", counts[0].Year, counts[len(counts)-1].Year)
	}
	return nil
}
