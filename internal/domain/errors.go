package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the malformed-row taxonomy. Wrapped by [RecordError]
// so callers can branch with errors.Is while logs keep row context.
var (
	// ErrMissingField marks a required column absent or empty in a raw row.
	ErrMissingField = errors.New("missing required field")

	// ErrUnparsableTimestamp marks a time value that cannot be normalized
	// to a UTC instant.
	ErrUnparsableTimestamp = errors.New("unparsable timestamp")

	// ErrOutOfRangeCoordinate marks a latitude outside [-90,90] or a
	// longitude outside [-180,180].
	ErrOutOfRangeCoordinate = errors.New("coordinate out of range")

	// ErrEmptyGroup is returned when a mean is requested over zero events.
	ErrEmptyGroup = errors.New("mean magnitude of empty group")
)

// RecordError identifies the offending row and field behind a sentinel error.
type RecordError struct {
	Catalog string
	Line    int
	Field   string
	Value   string
	Err     error
}

func (e *RecordError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s line %d: field %q: %v", e.Catalog, e.Line, e.Field, e.Err)
	}
	return fmt.Sprintf("%s line %d: field %q=%q: %v", e.Catalog, e.Line, e.Field, e.Value, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

func recordErr(rec RawCatalogRecord, field, value string, sentinel error) error {
	return &RecordError{Catalog: rec.Catalog, Line: rec.Line, Field: field, Value: value, Err: sentinel}
}
