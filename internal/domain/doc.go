// Package domain models seismic-event catalog data for Japan and the pure
// transformations applied to it: merge, deduplication, region classification,
// and temporal aggregation.
//
// # Data Source
//
// Events come from two USGS-style earthquake catalog exports covering Japan:
// an older export spanning 2001–2018 and a newer one spanning 2000–2023. Both
// are CSV files whose rows carry at least the columns
//
//	time, latitude, longitude, depth, mag
//
// plus up to 17 additional columns (place, magType, net, ...) that the
// pipeline ignores. The time column is an ISO-8601 instant with explicit
// offset, e.g. "2011-03-11T05:46:24.120Z", normalized to UTC on load.
//
// # Merge Windows
//
// The two exports overlap heavily, so each catalog is trusted only inside a
// declared validity window: the old catalog for times before 2019-01-01, the
// recent catalog from 2000-01-01 onward. Filtered rows are concatenated
// old-then-recent and deduplicated by exact timestamp identity, keeping the
// first occurrence. The timestamp is the dedup key: within one catalog export
// it uniquely identifies an event.
//
// # Region Classification
//
// Twelve rectangular bounding boxes cover the Japanese archipelago and its
// surrounding waters (Hokkaidō through South East Shore). The boxes are NOT
// disjoint (Tōhoku overlaps both Kantō and North West Shore) and assignment
// is first-match in declaration order, inclusive on all four bounds. Points
// inside no box get the sentinel "Other". The published per-region counts
// depend on this exact order, so [JapanRegions] must not be reordered; see
// [ClassifyRegion].
//
// # Severity
//
// A four-level label (minor, moderate, severe, extreme) derived from
// magnitude, with thresholds at 4.5 / 6.0 / 7.0. The label rides along for
// sink consumers and is not used by any aggregation.
//
// # ID Generation
//
// Event IDs are deterministic SHA-256 short hashes of
// time|lat|lon|depth|mag. Reprocessing the same row always produces the same
// ID, which makes downstream upserts idempotent (ON CONFLICT DO NOTHING) and
// replays safe. See [generateID].
package domain
