package domain

// Region is a named rectangular bounding box in decimal degrees.
type Region struct {
	Name   string
	LatMin float64
	LatMax float64
	LonMin float64
	LonMax float64
}

// OtherRegion is assigned to events outside every declared box.
const OtherRegion = "Other"

// JapanRegions is the classification table for the Japanese archipelago and
// its surrounding waters. The boxes overlap (Tōhoku shares edges with both
// Kantō and North West Shore) and classification is first-match, so the
// order below is load-bearing: the published per-region counts change if it
// is touched. First-match on overlapping boxes is a questionable policy on
// its own merits, but it is the one the historical numbers were produced
// with.
var JapanRegions = []Region{
	{Name: "Hokkaidō", LatMin: 41, LatMax: 45.5, LonMin: 139, LonMax: 146},
	{Name: "Tōhoku", LatMin: 36.5, LatMax: 41.5, LonMin: 139, LonMax: 142},
	{Name: "Kantō", LatMin: 34, LatMax: 37, LonMin: 138, LonMax: 141},
	{Name: "Chūbu", LatMin: 34, LatMax: 38.5, LonMin: 136, LonMax: 139},
	{Name: "Kansai", LatMin: 33.5, LatMax: 36, LonMin: 134, LonMax: 137},
	{Name: "Chūgoku", LatMin: 33.5, LatMax: 36.5, LonMin: 130.5, LonMax: 134},
	{Name: "Shikoku", LatMin: 32.5, LatMax: 34.5, LonMin: 132, LonMax: 135},
	{Name: "Kyūshū & Okinawa", LatMin: 23.5, LatMax: 34, LonMin: 123.5, LonMax: 132},
	{Name: "North East Shore", LatMin: 42, LatMax: 50, LonMin: 145.5, LonMax: 155.5},
	{Name: "North West Shore", LatMin: 37.5, LatMax: 43, LonMin: 130, LonMax: 139},
	{Name: "East Shore", LatMin: 35, LatMax: 42, LonMin: 141, LonMax: 150},
	{Name: "South East Shore", LatMin: 20, LatMax: 35, LonMin: 135, LonMax: 150},
}

// Contains reports whether the point lies inside the box, inclusive on all
// four bounds.
func (r Region) Contains(lat, lon float64) bool {
	return r.LatMin <= lat && lat <= r.LatMax && r.LonMin <= lon && lon <= r.LonMax
}

// ClassifyRegion returns the name of the first region in the table containing
// the point, or OtherRegion when none does. Deterministic for a fixed table:
// a point on a shared edge always belongs to the earlier declaration.
func ClassifyRegion(regions []Region, lat, lon float64) string {
	for _, r := range regions {
		if r.Contains(lat, lon) {
			return r.Name
		}
	}
	return OtherRegion
}

// Classify assigns region, calendar fields, and a processing stamp to every
// event, returning a new slice. Input order is preserved; the input slice is
// not modified.
func Classify(events []SeismicEvent, regions []Region) []SeismicEvent {
	out := make([]SeismicEvent, len(events))
	now := clock.Now()
	for i, ev := range events {
		ev.Region = ClassifyRegion(regions, ev.Latitude, ev.Longitude)
		ev.Year = ev.Time.Year()
		ev.Month = ev.Time.Month()
		ev.ProcessedAt = now
		out[i] = ev
	}
	return out
}
