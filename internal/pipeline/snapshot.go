package pipeline

import (
	"time"

	"github.com/quakelens/quake-catalog-etl/internal/domain"
)

// Snapshot is the immutable result of one pipeline pass. All slices are
// freshly built per pass and never mutated afterwards; readers share the
// snapshot through an atomic pointer swap.
type Snapshot struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	Events []domain.SeismicEvent `json:"-"`

	Points         []domain.SpatialPoint   `json:"points"`
	DepthMagnitude []domain.DepthMagnitude `json:"depth_magnitude"`

	MonthlyCounts        []domain.Bucket       `json:"monthly_counts"`
	MonthlyMeanMagnitude []domain.Bucket       `json:"monthly_mean_magnitude"`
	RegionCounts         []domain.Bucket       `json:"region_counts"`
	YearlyCounts         []domain.YearCount    `json:"yearly_counts"`
	YearlyByRegion       []domain.RegionSeries `json:"yearly_by_region"`

	Summary Summary `json:"summary"`
}

// Summary describes the cleaned dataset behind a snapshot.
type Summary struct {
	TotalEvents         int       `json:"total_events"`
	OldCatalogEvents    int       `json:"old_catalog_events"`
	RecentCatalogEvents int       `json:"recent_catalog_events"`
	DuplicatesDropped   int       `json:"duplicates_dropped"`
	FirstEventTime      time.Time `json:"first_event_time"`
	LastEventTime       time.Time `json:"last_event_time"`
	MinMagnitude        float64   `json:"min_magnitude"`
	MaxMagnitude        float64   `json:"max_magnitude"`
}

// buildSnapshot runs the pure merge-classify-aggregate chain over two loaded
// catalogs.
func buildSnapshot(runID string, old, recent []domain.SeismicEvent, regions []domain.Region) *Snapshot {
	filteredOld := domain.FilterWindow(old, domain.OldCatalogWindow)
	filteredRecent := domain.FilterWindow(recent, domain.RecentCatalogWindow)

	merged := domain.Dedup(append(filteredOld[:len(filteredOld):len(filteredOld)], filteredRecent...))
	events := domain.Classify(merged, regions)

	snap := &Snapshot{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Events:      events,

		Points:         domain.SpatialPoints(events),
		DepthMagnitude: domain.DepthMagnitudeSamples(events),

		MonthlyCounts:        domain.CountByMonth(events),
		MonthlyMeanMagnitude: domain.MeanMagnitudeByMonth(events),
		RegionCounts:         domain.CountByRegion(events),
		YearlyCounts:         domain.CountByYear(events),
		YearlyByRegion:       domain.CountByYearAndRegion(events, regions),

		Summary: Summary{
			TotalEvents:         len(events),
			OldCatalogEvents:    len(filteredOld),
			RecentCatalogEvents: len(filteredRecent),
			DuplicatesDropped:   len(filteredOld) + len(filteredRecent) - len(events),
		},
	}

	for i, ev := range events {
		if i == 0 {
			snap.Summary.FirstEventTime = ev.Time
			snap.Summary.LastEventTime = ev.Time
			snap.Summary.MinMagnitude = ev.Magnitude
			snap.Summary.MaxMagnitude = ev.Magnitude
			continue
		}
		if ev.Time.Before(snap.Summary.FirstEventTime) {
			snap.Summary.FirstEventTime = ev.Time
		}
		if ev.Time.After(snap.Summary.LastEventTime) {
			snap.Summary.LastEventTime = ev.Time
		}
		if ev.Magnitude < snap.Summary.MinMagnitude {
			snap.Summary.MinMagnitude = ev.Magnitude
		}
		if ev.Magnitude > snap.Summary.MaxMagnitude {
			snap.Summary.MaxMagnitude = ev.Magnitude
		}
	}

	return snap
}
