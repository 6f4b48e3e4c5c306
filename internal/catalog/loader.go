// Package catalog reads seismic-event catalog CSV files into typed events.
//
// A catalog file needs the columns time, latitude, longitude, depth, and mag;
// USGS exports carry up to 22 columns and everything else is ignored. Rows
// that fail to parse abort the load with a row-numbered error: a catalog
// with a malformed row is treated as corrupt, not trimmed.
package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/quakelens/quake-catalog-etl/internal/domain"
)

var requiredColumns = []string{"time", "latitude", "longitude", "depth", "mag"}

// Loader reads catalog files from the local filesystem.
type Loader struct{}

// NewLoader creates a filesystem catalog loader.
func NewLoader() *Loader { return &Loader{} }

// Load reads and parses the catalog at path. The returned events preserve
// file order and carry UTC timestamps; derived fields are left unset.
func (l *Loader) Load(ctx context.Context, path string) ([]domain.SeismicEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	events, err := Read(ctx, f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return events, nil
}

// Read parses catalog CSV data from r. name labels the source in errors.
func Read(ctx context.Context, r io.Reader, name string) ([]domain.SeismicEvent, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // source exports occasionally pad short rows

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := columnIndices(header)
	if err != nil {
		return nil, err
	}

	var events []domain.SeismicEvent
	line := 1 // header
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line++

		rec := domain.RawCatalogRecord{
			Time:      field(row, cols["time"]),
			Latitude:  field(row, cols["latitude"]),
			Longitude: field(row, cols["longitude"]),
			Depth:     field(row, cols["depth"]),
			Magnitude: field(row, cols["mag"]),
			Catalog:   name,
			Line:      line,
		}

		ev, err := domain.ParseRecord(rec)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	return events, nil
}

// columnIndices maps required column names to their header positions.
func columnIndices(header []string) (map[string]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[h] = i
	}

	cols := make(map[string]int, len(requiredColumns))
	for _, name := range requiredColumns {
		i, ok := pos[name]
		if !ok {
			return nil, fmt.Errorf("catalog header: missing column %q", name)
		}
		cols[name] = i
	}
	return cols, nil
}

// field returns row[i], or "" when the row is short. A short row surfaces as
// a missing-field parse error rather than an index panic.
func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}
