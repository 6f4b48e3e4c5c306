package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventAt(ts time.Time, lat, lon float64) SeismicEvent {
	return SeismicEvent{
		ID:        "eq-test",
		Time:      ts,
		Latitude:  lat,
		Longitude: lon,
		Depth:     10,
		Magnitude: 5.0,
	}
}

func TestClassifyRegion(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		expected string
	}{
		{"Sapporo", 43.06, 141.35, "Hokkaidō"},
		{"Sendai", 38.27, 140.87, "Tōhoku"},
		{"Tokyo", 35.68, 139.69, "Kantō"},
		{"Nagoya", 35.18, 136.91, "Chūbu"},
		{"Hiroshima", 34.39, 132.46, "Chūgoku"},
		{"Matsuyama shadowed by Chūgoku", 33.84, 132.77, "Chūgoku"},
		{"Cape Muroto", 33.25, 134.17, "Shikoku"},
		{"Naha", 26.21, 127.68, "Kyūshū & Okinawa"},
		{"Kuril trench", 45.0, 150.0, "North East Shore"},
		{"Sea of Japan", 39.0, 135.0, "North West Shore"},
		{"off Sanriku coast", 38.3, 142.4, "East Shore"},
		{"Izu islands", 33.0, 139.5, "South East Shore"},
		{"mid-Pacific equator", 0, 0, OtherRegion},
		{"well outside all boxes", 55.0, 100.0, OtherRegion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyRegion(JapanRegions, tt.lat, tt.lon))
		})
	}
}

// A point on the shared edge of two boxes always goes to the earlier
// declaration. (36.5, 140) sits on Tōhoku's southern bound and strictly
// inside Kantō; Tōhoku is declared first, so Tōhoku it is.
func TestClassifyRegion_SharedEdgeTieBreak(t *testing.T) {
	assert.Equal(t, "Tōhoku", ClassifyRegion(JapanRegions, 36.5, 140))

	// Interior of both Tōhoku and North West Shore: Tōhoku declared earlier.
	assert.Equal(t, "Tōhoku", ClassifyRegion(JapanRegions, 39.0, 139.5))

	// Reversing the overlapping pair flips the result: the tie-break is the
	// table order, not anything about the point.
	reversed := []Region{
		{Name: "North West Shore", LatMin: 37.5, LatMax: 43, LonMin: 130, LonMax: 139},
		{Name: "Tōhoku", LatMin: 36.5, LatMax: 41.5, LonMin: 139, LonMax: 142},
	}
	assert.Equal(t, "North West Shore", ClassifyRegion(reversed, 39.0, 139.0))
}

func TestClassifyRegion_InclusiveBounds(t *testing.T) {
	r := Region{Name: "box", LatMin: 10, LatMax: 20, LonMin: 30, LonMax: 40}

	assert.True(t, r.Contains(10, 30))
	assert.True(t, r.Contains(20, 40))
	assert.True(t, r.Contains(10, 40))
	assert.False(t, r.Contains(9.999, 35))
	assert.False(t, r.Contains(15, 40.001))
}

func TestClassify(t *testing.T) {
	frozen := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(frozen))
	defer SetClock(nil)

	events := []SeismicEvent{
		eventAt(time.Date(2011, 3, 11, 5, 46, 24, 0, time.UTC), 38.297, 142.373),
		eventAt(time.Date(2003, 9, 25, 19, 50, 6, 0, time.UTC), 0, 0),
	}

	classified := Classify(events, JapanRegions)

	require.Len(t, classified, 2)
	assert.Equal(t, "East Shore", classified[0].Region)
	assert.Equal(t, 2011, classified[0].Year)
	assert.Equal(t, time.March, classified[0].Month)
	assert.Equal(t, frozen, classified[0].ProcessedAt)

	assert.Equal(t, OtherRegion, classified[1].Region)
	assert.Equal(t, 2003, classified[1].Year)
	assert.Equal(t, time.September, classified[1].Month)

	// Input slice untouched.
	assert.Empty(t, events[0].Region)
	assert.Zero(t, events[0].Year)
}

// Every event lands in exactly one bucket: region counts plus Other always
// sum to the input size, whatever the coordinates.
func TestClassify_PartitionCompleteness(t *testing.T) {
	var events []SeismicEvent
	base := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	for lat := -80.0; lat <= 80.0; lat += 7.3 {
		for lon := -170.0; lon <= 170.0; lon += 11.7 {
			events = append(events, eventAt(base, lat, lon))
			base = base.Add(time.Second)
		}
	}

	classified := Classify(events, JapanRegions)

	total := 0
	for _, b := range CountByRegion(classified) {
		total += b.Count
	}
	assert.Equal(t, len(events), total)

	for _, ev := range classified {
		assert.NotEmpty(t, ev.Region)
	}
}
