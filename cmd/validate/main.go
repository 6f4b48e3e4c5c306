// Command validate performs data integrity checks over the real Japan
// seismic catalogs: row counts and field sanity, merge-window partitioning,
// timestamp deduplication, region classification completeness, and known
// dataset landmarks such as the March 2011 aftershock spike.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -old datasets/Japan_2001-2018.csv \
//	  -recent datasets/Japan_2000_2023.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/quakelens/quake-catalog-etl/internal/catalog"
	"github.com/quakelens/quake-catalog-etl/internal/domain"
)

// march2011Count is the expected number of events in March 2011 on the
// merged, deduplicated dataset. The Tōhoku mainshock and its aftershock
// sequence dominate that month; the count is stable across both exports.
const march2011Count = 1984

var tohokuMainshock = time.Date(2011, time.March, 11, 5, 46, 24, 120_000_000, time.UTC)

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
	oldPath := flag.String("old", "datasets/Japan_2001-2018.csv", "path to the 2001-2018 catalog CSV")
	recentPath := flag.String("recent", "datasets/Japan_2000_2023.csv", "path to the 2000-2023 catalog CSV")
	flag.Parse()

	if code := run(*oldPath, *recentPath); code != 0 {
		os.Exit(code)
	}
}

func run(oldPath, recentPath string) int {
	ctx := context.Background()
	loader := catalog.NewLoader()

	fmt.Println("=== Seismic Catalog Integrity Validation ===")
	fmt.Println()

	old, err := loader.Load(ctx, oldPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load old catalog: %v\n", err)
		return 1
	}
	recent, err := loader.Load(ctx, recentPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load recent catalog: %v\n", err)
		return 1
	}

	merged := domain.MergeCatalogs(old, recent, domain.OldCatalogWindow, domain.RecentCatalogWindow)
	classified := domain.Classify(merged, domain.JapanRegions)

	phases := []*phase{
		validateCatalogSanity(old, recent),
		validateWindowPartition(old, recent, merged),
		validateDedup(old, merged),
		validateRegionPartition(classified),
		validateLandmarks(classified),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-44s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Events: %d old catalog, %d recent catalog, %d merged\n",
		len(old), len(recent), len(merged))

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

// ── Phase 1: Catalog Sanity ──
// Validates that both catalogs loaded non-trivially and every row carries
// plausible values. Coordinate ranges are already enforced by the loader.

func validateCatalogSanity(old, recent []domain.SeismicEvent) *phase {
	p := &phase{name: "Phase 1: Catalog Sanity (row values)"}

	if len(old) == 0 {
		p.errorf("old catalog has no events")
	}
	if len(recent) == 0 {
		p.errorf("recent catalog has no events")
	}

	for label, events := range map[string][]domain.SeismicEvent{"old": old, "recent": recent} {
		for i := range events {
			ev := &events[i]
			if ev.Time.IsZero() {
				p.errorf("%s catalog event %d: zero timestamp", label, i)
			}
			if ev.Magnitude < 0 || ev.Magnitude > 10 {
				p.errorf("%s catalog event %d: implausible magnitude %g", label, i, ev.Magnitude)
			}
			if ev.ID == "" {
				p.errorf("%s catalog event %d: missing ID", label, i)
			}
			if ev.Severity == "" {
				p.errorf("%s catalog event %d: missing severity", label, i)
			}
		}
	}
	return p
}

// ── Phase 2: Window Partition ──
// Validates the merge arithmetic: every merged event falls inside at least
// one validity window, and the merged count equals filtered old plus
// filtered recent minus timestamp duplicates.

func validateWindowPartition(old, recent, merged []domain.SeismicEvent) *phase {
	p := &phase{name: "Phase 2: Window Partition (merge arithmetic)"}

	filteredOld := domain.FilterWindow(old, domain.OldCatalogWindow)
	filteredRecent := domain.FilterWindow(recent, domain.RecentCatalogWindow)

	for i := range merged {
		t := merged[i].Time
		if !domain.OldCatalogWindow.Contains(t) && !domain.RecentCatalogWindow.Contains(t) {
			p.errorf("merged event %d (%s): outside both validity windows", i, t.Format(time.RFC3339))
		}
	}

	oldTimes := make(map[int64]struct{}, len(filteredOld))
	for i := range filteredOld {
		oldTimes[filteredOld[i].Time.UnixNano()] = struct{}{}
	}
	overlap := 0
	for i := range filteredRecent {
		if _, ok := oldTimes[filteredRecent[i].Time.UnixNano()]; ok {
			overlap++
		}
	}

	expected := len(filteredOld) + len(filteredRecent) - overlap
	if len(merged) != expected {
		p.errorf("merged count: expected %d (%d old + %d recent - %d overlap), got %d",
			expected, len(filteredOld), len(filteredRecent), overlap, len(merged))
	}
	return p
}

// ── Phase 3: Deduplication ──
// Validates that merged timestamps are unique, deduplication is idempotent,
// and the old catalog's row wins on overlapping instants.

func validateDedup(old, merged []domain.SeismicEvent) *phase {
	p := &phase{name: "Phase 3: Deduplication (first wins)"}

	seen := make(map[int64]int, len(merged))
	for i := range merged {
		key := merged[i].Time.UnixNano()
		if prev, dup := seen[key]; dup {
			p.errorf("merged events %d and %d share timestamp %s", prev, i, merged[i].Time.Format(time.RFC3339Nano))
			continue
		}
		seen[key] = i
	}

	if again := domain.Dedup(merged); len(again) != len(merged) {
		p.errorf("dedup is not idempotent: %d events became %d", len(merged), len(again))
	}

	// On overlapping instants the merged row must carry the old catalog's
	// magnitude, since the old export's rows are concatenated first.
	filteredOld := domain.FilterWindow(old, domain.OldCatalogWindow)
	for i := range filteredOld {
		j, ok := seen[filteredOld[i].Time.UnixNano()]
		if !ok {
			p.errorf("old catalog event at %s missing from merged set", filteredOld[i].Time.Format(time.RFC3339Nano))
			continue
		}
		if merged[j].ID != filteredOld[i].ID {
			p.errorf("merged event at %s: expected old catalog row (ID %s), got ID %s",
				filteredOld[i].Time.Format(time.RFC3339Nano), filteredOld[i].ID, merged[j].ID)
		}
	}
	return p
}

// ── Phase 4: Region Partition ──
// Validates that classification assigns every event exactly one region, that
// assigned regions agree with a fresh first-match scan, and that the region
// counts partition the dataset.

func validateRegionPartition(classified []domain.SeismicEvent) *phase {
	p := &phase{name: "Phase 4: Region Partition (classification)"}

	for i := range classified {
		ev := &classified[i]
		if ev.Region == "" {
			p.errorf("event %d (%s): no region assigned", i, ev.ID)
			continue
		}
		if want := domain.ClassifyRegion(domain.JapanRegions, ev.Latitude, ev.Longitude); want != ev.Region {
			p.errorf("event %d (%s): assigned %q but first match is %q", i, ev.ID, ev.Region, want)
		}
		if ev.Year != ev.Time.Year() || ev.Month != ev.Time.Month() {
			p.errorf("event %d (%s): year/month fields disagree with timestamp", i, ev.ID)
		}
	}

	total := 0
	for _, b := range domain.CountByRegion(classified) {
		total += b.Count
	}
	if total != len(classified) {
		p.errorf("region counts sum to %d, want %d", total, len(classified))
	}
	return p
}

// ── Phase 5: Dataset Landmarks ──
// Validates well-known facts about the merged Japan dataset: the Tōhoku
// mainshock row and the March 2011 aftershock spike.

func validateLandmarks(classified []domain.SeismicEvent) *phase {
	p := &phase{name: "Phase 5: Dataset Landmarks (March 2011)"}

	var mainshock *domain.SeismicEvent
	march2011 := 0
	maxMag := 0.0
	for i := range classified {
		ev := &classified[i]
		if ev.Year == 2011 && ev.Month == time.March {
			march2011++
		}
		if ev.Time.Equal(tohokuMainshock) {
			mainshock = ev
		}
		if ev.Magnitude > maxMag {
			maxMag = ev.Magnitude
		}
	}

	if march2011 != march2011Count {
		p.errorf("March 2011 event count: expected %d, got %d", march2011Count, march2011)
	}

	if mainshock == nil {
		p.errorf("Tōhoku mainshock (%s) not found in merged dataset", tohokuMainshock.Format(time.RFC3339Nano))
		return p
	}
	if mainshock.Magnitude < 9.0 {
		p.errorf("mainshock magnitude %g, expected at least 9.0", mainshock.Magnitude)
	}
	if mainshock.Severity != "extreme" {
		p.errorf("mainshock severity %q, expected \"extreme\"", mainshock.Severity)
	}
	if mainshock.Magnitude != maxMag {
		p.errorf("mainshock magnitude %g is not the dataset maximum %g", mainshock.Magnitude, maxMag)
	}
	return p
}
