package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// timeLayouts are tried in order when parsing the time column. USGS exports
// use RFC 3339 with fractional seconds; some older dumps drop the offset.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999",
	"2006-01-02 15:04:05",
}

// ParseRecord converts a raw catalog row into a SeismicEvent.
// Every required field must be present and well formed: a bad row fails with
// a RecordError naming the row rather than producing a misleading default.
// An event with lat/lon silently zeroed would classify as "Other" and be
// indistinguishable from a genuine open-ocean event.
func ParseRecord(rec RawCatalogRecord) (SeismicEvent, error) {
	ts, err := parseTimestamp(rec)
	if err != nil {
		return SeismicEvent{}, err
	}

	lat, err := parseCoordinate(rec, "latitude", rec.Latitude, 90)
	if err != nil {
		return SeismicEvent{}, err
	}
	lon, err := parseCoordinate(rec, "longitude", rec.Longitude, 180)
	if err != nil {
		return SeismicEvent{}, err
	}

	depth, err := parseRequiredFloat(rec, "depth", rec.Depth)
	if err != nil {
		return SeismicEvent{}, err
	}
	mag, err := parseRequiredFloat(rec, "mag", rec.Magnitude)
	if err != nil {
		return SeismicEvent{}, err
	}

	return SeismicEvent{
		ID:        generateID(ts, lat, lon, depth, mag),
		Time:      ts,
		Latitude:  lat,
		Longitude: lon,
		Depth:     depth,
		Magnitude: mag,
		Severity:  deriveSeverity(mag),
	}, nil
}

func parseTimestamp(rec RawCatalogRecord) (time.Time, error) {
	raw := strings.TrimSpace(rec.Time)
	if raw == "" {
		return time.Time{}, recordErr(rec, "time", "", ErrMissingField)
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, recordErr(rec, "time", raw, ErrUnparsableTimestamp)
}

func parseCoordinate(rec RawCatalogRecord, field, raw string, limit float64) (float64, error) {
	v, err := parseRequiredFloat(rec, field, raw)
	if err != nil {
		return 0, err
	}
	if v < -limit || v > limit {
		return 0, recordErr(rec, field, raw, ErrOutOfRangeCoordinate)
	}
	return v, nil
}

func parseRequiredFloat(rec RawCatalogRecord, field, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, recordErr(rec, field, "", ErrMissingField)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, recordErr(rec, field, raw, ErrMissingField)
	}
	return v, nil
}

// generateID produces a deterministic ID from the event's key fields.
// The same row always hashes to the same ID, so downstream upserts and
// replays are idempotent.
func generateID(ts time.Time, lat, lon, depth, mag float64) string {
	input := fmt.Sprintf("%d|%.4f|%.4f|%.2f|%g", ts.UnixMilli(), lat, lon, depth, mag)
	hash := sha256.Sum256([]byte(input))
	return "eq-" + hex.EncodeToString(hash[:8])
}

// deriveSeverity maps magnitude to a four-level label. Thresholds follow the
// bands commonly used for Japan: below 4.5 rarely damaging, 6.0 the onset of
// structural damage, 7.0 and above major events.
func deriveSeverity(magnitude float64) string {
	switch {
	case magnitude < 4.5:
		return "minor"
	case magnitude < 6.0:
		return "moderate"
	case magnitude < 7.0:
		return "severe"
	default:
		return "extreme"
	}
}
