package domain

import "time"

// RawCatalogRecord is one row of a source catalog CSV, fields still as
// strings. Catalog and Line identify the row in error messages.
type RawCatalogRecord struct {
	Time      string
	Latitude  string
	Longitude string
	Depth     string
	Magnitude string

	Catalog string
	Line    int // 1-based line in the source file, header is line 1
}

// SeismicEvent is the typed representation of one recorded earthquake.
// Raw catalogs carry up to 22 columns; only the five the pipeline touches
// survive the load boundary.
type SeismicEvent struct {
	ID        string    `json:"id"`
	Time      time.Time `json:"time"` // always UTC
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Depth     float64   `json:"depth"` // kilometers; source anomalies (negative) pass through
	Magnitude float64   `json:"magnitude"`
	Severity  string    `json:"severity,omitempty"`

	// Derived by the pipeline after merge; zero-valued on loader output.
	Year   int        `json:"year,omitempty"`
	Month  time.Month `json:"month,omitempty"`
	Region string     `json:"region,omitempty"`

	ProcessedAt time.Time `json:"processed_at,omitempty"`
}

// Bucket is one aggregation group: a category key with its event count and,
// where the aggregation computes one, the mean magnitude of the group.
type Bucket struct {
	Key              string  `json:"category"`
	Count            int     `json:"value"`
	AverageMagnitude float64 `json:"average_magnitude,omitempty"`
}

// YearCount is one point of a per-year time series.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// RegionSeries is the per-region yearly series for the stacked time chart.
// Every series covers the same ascending year range, zero-filled.
type RegionSeries struct {
	Region string      `json:"region"`
	Points []YearCount `json:"points"`
}
