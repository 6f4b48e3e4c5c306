package domain

import (
	"sort"
	"time"
)

// Aggregations operate on classified events, i.e. events whose Year, Month,
// and Region fields have been populated by Classify. Buckets are built only
// from observed events, so a bucket's mean is always over a non-empty group.

// MeanMagnitude returns the arithmetic mean magnitude of the events.
// An empty input is an error, never 0: a mean over zero events is undefined.
func MeanMagnitude(events []SeismicEvent) (float64, error) {
	if len(events) == 0 {
		return 0, ErrEmptyGroup
	}
	var sum float64
	for _, ev := range events {
		sum += ev.Magnitude
	}
	return sum / float64(len(events)), nil
}

// CountByYear counts events per calendar year, ascending by year.
func CountByYear(events []SeismicEvent) []YearCount {
	counts := make(map[int]int)
	for _, ev := range events {
		counts[ev.Year]++
	}
	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)

	out := make([]YearCount, len(years))
	for i, y := range years {
		out[i] = YearCount{Year: y, Count: counts[y]}
	}
	return out
}

// CountByMonth counts events per calendar month. Output follows natural
// calendar order (January through December), never count order: the monthly
// frequency chart reads as a season profile, not a ranking. Only observed
// months are emitted.
func CountByMonth(events []SeismicEvent) []Bucket {
	counts := make(map[time.Month]int)
	for _, ev := range events {
		counts[ev.Month]++
	}

	out := make([]Bucket, 0, len(counts))
	for m := time.January; m <= time.December; m++ {
		if n, ok := counts[m]; ok {
			out = append(out, Bucket{Key: m.String(), Count: n})
		}
	}
	return out
}

// MeanMagnitudeByMonth computes the mean magnitude per calendar month, in
// calendar order, observed months only.
func MeanMagnitudeByMonth(events []SeismicEvent) []Bucket {
	groups := make(map[time.Month][]SeismicEvent)
	for _, ev := range events {
		groups[ev.Month] = append(groups[ev.Month], ev)
	}

	out := make([]Bucket, 0, len(groups))
	for m := time.January; m <= time.December; m++ {
		group, ok := groups[m]
		if !ok {
			continue
		}
		mean, err := MeanMagnitude(group)
		if err != nil {
			// Unreachable: groups only exist for observed events.
			continue
		}
		out = append(out, Bucket{Key: m.String(), Count: len(group), AverageMagnitude: mean})
	}
	return out
}

// CountByRegion counts events per assigned region, sorted descending by
// count with name as the tie-break. The ordering is presentational; the
// partition itself is the invariant (bucket counts sum to the input length).
func CountByRegion(events []SeismicEvent) []Bucket {
	counts := make(map[string]int)
	for _, ev := range events {
		counts[ev.Region]++
	}

	out := make([]Bucket, 0, len(counts))
	for name, n := range counts {
		out = append(out, Bucket{Key: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// CountByYearAndRegion builds the per-region yearly series feeding the
// region time chart. Every observed region gets a series over the full
// ascending range of observed years, zero-filled for years where it saw no
// events. Series follow the classification-table order with Other last.
func CountByYearAndRegion(events []SeismicEvent, regions []Region) []RegionSeries {
	type cell struct {
		year   int
		region string
	}
	counts := make(map[cell]int)
	yearSet := make(map[int]struct{})
	observed := make(map[string]struct{})
	for _, ev := range events {
		counts[cell{ev.Year, ev.Region}]++
		yearSet[ev.Year] = struct{}{}
		observed[ev.Region] = struct{}{}
	}

	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)

	names := make([]string, 0, len(regions)+1)
	for _, r := range regions {
		if _, ok := observed[r.Name]; ok {
			names = append(names, r.Name)
		}
	}
	if _, ok := observed[OtherRegion]; ok {
		names = append(names, OtherRegion)
	}

	out := make([]RegionSeries, len(names))
	for i, name := range names {
		points := make([]YearCount, len(years))
		for j, y := range years {
			points[j] = YearCount{Year: y, Count: counts[cell{y, name}]}
		}
		out[i] = RegionSeries{Region: name, Points: points}
	}
	return out
}
