package domain

// Chart-facing records. The rendering layer owns styling, palettes, and
// layout; the pipeline owes it nothing beyond these plain values.

// SpatialPoint is one sample of the 3D epicenter plot. Lookup is the
// magnitude normalized to [0,1] over the dataset for palette mapping, and
// Size is the point size class (large spheres for magnitude above 6.0).
type SpatialPoint struct {
	Longitude float64 `json:"x"`
	Latitude  float64 `json:"y"`
	Depth     float64 `json:"z"`
	Magnitude float64 `json:"magnitude"`
	Lookup    float64 `json:"value"`
	Size      int     `json:"size"`
}

// DepthMagnitude is one sample of the depth-versus-magnitude scatter.
type DepthMagnitude struct {
	Depth     float64 `json:"depth"`
	Magnitude float64 `json:"magnitude"`
}

const (
	pointSizeRegular = 4
	pointSizeLarge   = 7

	largeMagnitudeThreshold = 6.0
)

// SpatialPoints converts events into 3D plot samples. Lookup values are
// min-max normalized over the input; when all magnitudes are equal the
// lookup is 0 for every point.
func SpatialPoints(events []SeismicEvent) []SpatialPoint {
	if len(events) == 0 {
		return nil
	}

	minMag, maxMag := events[0].Magnitude, events[0].Magnitude
	for _, ev := range events[1:] {
		if ev.Magnitude < minMag {
			minMag = ev.Magnitude
		}
		if ev.Magnitude > maxMag {
			maxMag = ev.Magnitude
		}
	}
	magRange := maxMag - minMag

	out := make([]SpatialPoint, len(events))
	for i, ev := range events {
		lookup := 0.0
		if magRange > 0 {
			lookup = (ev.Magnitude - minMag) / magRange
		}
		size := pointSizeRegular
		if ev.Magnitude > largeMagnitudeThreshold {
			size = pointSizeLarge
		}
		out[i] = SpatialPoint{
			Longitude: ev.Longitude,
			Latitude:  ev.Latitude,
			Depth:     ev.Depth,
			Magnitude: ev.Magnitude,
			Lookup:    lookup,
			Size:      size,
		}
	}
	return out
}

// DepthMagnitudeSamples extracts the scatter-chart pairs in event order.
func DepthMagnitudeSamples(events []SeismicEvent) []DepthMagnitude {
	out := make([]DepthMagnitude, len(events))
	for i, ev := range events {
		out[i] = DepthMagnitude{Depth: ev.Depth, Magnitude: ev.Magnitude}
	}
	return out
}
