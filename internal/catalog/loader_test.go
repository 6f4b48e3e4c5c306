package catalog

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quakelens/quake-catalog-etl/internal/domain"
)

func TestLoad(t *testing.T) {
	loader := NewLoader()

	events, err := loader.Load(context.Background(), "testdata/japan_old.csv")

	require.NoError(t, err)
	require.Len(t, events, 8)

	first := events[0]
	assert.Equal(t, time.Date(2001, 3, 24, 6, 27, 53, 550_000_000, time.UTC), first.Time)
	assert.Equal(t, 34.083, first.Latitude)
	assert.Equal(t, 132.526, first.Longitude)
	assert.Equal(t, 50.0, first.Depth)
	assert.Equal(t, 6.8, first.Magnitude)
	assert.Equal(t, "extreme", events[3].Severity)

	// File order preserved, derived fields untouched.
	assert.True(t, events[3].Time.After(events[2].Time))
	assert.Empty(t, first.Region)
	assert.Zero(t, first.Year)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), "testdata/no_such_catalog.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open catalog")
}

func TestRead(t *testing.T) {
	t.Run("extra columns ignored", func(t *testing.T) {
		data := "id,time,latitude,longitude,depth,mag,net,status\n" +
			"us123,2010-07-04T21:55:52.000Z,39.7,142.4,23.0,6.3,us,reviewed\n"

		events, err := Read(context.Background(), strings.NewReader(data), "mixed.csv")

		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, 39.7, events[0].Latitude)
		assert.Equal(t, 6.3, events[0].Magnitude)
	})

	t.Run("missing required column", func(t *testing.T) {
		data := "time,latitude,longitude,mag\n2010-07-04T21:55:52.000Z,39.7,142.4,6.3\n"

		_, err := Read(context.Background(), strings.NewReader(data), "nodepth.csv")

		require.Error(t, err)
		assert.Contains(t, err.Error(), `missing column "depth"`)
	})

	t.Run("malformed row aborts with row context", func(t *testing.T) {
		data := "time,latitude,longitude,depth,mag\n" +
			"2010-07-04T21:55:52.000Z,39.7,142.4,23.0,6.3\n" +
			"not-a-time,39.7,142.4,23.0,6.3\n"

		_, err := Read(context.Background(), strings.NewReader(data), "bad.csv")

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnparsableTimestamp)

		var recErr *domain.RecordError
		require.ErrorAs(t, err, &recErr)
		assert.Equal(t, 3, recErr.Line)
		assert.Equal(t, "bad.csv", recErr.Catalog)
	})

	t.Run("short row surfaces as missing field", func(t *testing.T) {
		data := "time,latitude,longitude,depth,mag\n" +
			"2010-07-04T21:55:52.000Z,39.7,142.4\n"

		_, err := Read(context.Background(), strings.NewReader(data), "short.csv")

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMissingField)
	})

	t.Run("scaled March 2011 spike survives the full chain", func(t *testing.T) {
		loader := NewLoader()
		old, err := loader.Load(context.Background(), "testdata/japan_old.csv")
		require.NoError(t, err)
		recent, err := loader.Load(context.Background(), "testdata/japan_recent.csv")
		require.NoError(t, err)

		merged := domain.MergeCatalogs(old, recent, domain.OldCatalogWindow, domain.RecentCatalogWindow)
		classified := domain.Classify(merged, domain.JapanRegions)
		require.Len(t, classified, 14)

		// The fixtures carry the Tōhoku sequence scaled down; with the other
		// March rows (Geiyo 2001, Fukuoka 2005, Miyagi 2021, Fukushima 2022)
		// it is by far the busiest calendar month.
		counts := domain.CountByMonth(classified)
		top := counts[0]
		for _, b := range counts[1:] {
			if b.Count > top.Count {
				top = b
			}
		}
		assert.Equal(t, "March", top.Key)
		assert.Equal(t, 8, top.Count)
	})

	t.Run("cancelled context stops the read", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		data := "time,latitude,longitude,depth,mag\n" +
			"2010-07-04T21:55:52.000Z,39.7,142.4,23.0,6.3\n"

		_, err := Read(ctx, strings.NewReader(data), "cancelled.csv")

		require.ErrorIs(t, err, context.Canceled)
	})
}
