package pipeline_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quakelens/quake-catalog-etl/internal/config"
	"github.com/quakelens/quake-catalog-etl/internal/domain"
	"github.com/quakelens/quake-catalog-etl/internal/observability"
	"github.com/quakelens/quake-catalog-etl/internal/pipeline"
)

// --- mocks ---

type mockLoader struct {
	catalogs map[string][]domain.SeismicEvent
	err      error
	calls    int
}

func (m *mockLoader) Load(_ context.Context, path string) ([]domain.SeismicEvent, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.catalogs[path], nil
}

type mockSink struct {
	name      string
	err       error
	published [][]domain.SeismicEvent
}

func (m *mockSink) Name() string { return m.name }

func (m *mockSink) Publish(_ context.Context, events []domain.SeismicEvent) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, events)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		CatalogOldPath:    "old.csv",
		CatalogRecentPath: "recent.csv",
	}
}

func event(ts time.Time, lat, lon, mag float64) domain.SeismicEvent {
	return domain.SeismicEvent{
		ID:        "eq-" + ts.Format("150405"),
		Time:      ts,
		Latitude:  lat,
		Longitude: lon,
		Depth:     30,
		Magnitude: mag,
	}
}

func testCatalogs() map[string][]domain.SeismicEvent {
	shared := time.Date(2011, 3, 11, 5, 46, 24, 0, time.UTC)
	return map[string][]domain.SeismicEvent{
		"old.csv": {
			event(time.Date(2005, 3, 20, 1, 53, 42, 0, time.UTC), 33.81, 130.13, 6.6),
			event(shared, 38.297, 142.373, 9.1),
			// Outside the old catalog's validity window.
			event(time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC), 35, 139, 5.0),
		},
		"recent.csv": {
			event(shared, 38.297, 142.373, 9.0), // duplicate timestamp, must lose
			event(time.Date(2022, 3, 16, 14, 36, 30, 0, time.UTC), 37.71, 141.58, 7.3),
		},
	}
}

// --- tests ---

func TestPipeline_RunOnce(t *testing.T) {
	loader := &mockLoader{catalogs: testCatalogs()}
	sink := &mockSink{name: "kafka"}
	metrics := observability.NewMetricsForTesting()

	p := pipeline.New(loader, []pipeline.EventSink{sink}, discardLogger(), metrics, testConfig())

	require.Nil(t, p.Snapshot())
	require.Error(t, p.CheckReadiness(context.Background()))

	require.NoError(t, p.RunOnce(context.Background()))

	snap := p.Snapshot()
	require.NotNil(t, snap)
	assert.NotEmpty(t, snap.RunID)

	// 2 valid old + 2 recent, one shared timestamp, one out-of-window row.
	assert.Equal(t, 3, snap.Summary.TotalEvents)
	assert.Equal(t, 1, snap.Summary.DuplicatesDropped)
	assert.Equal(t, 2, snap.Summary.OldCatalogEvents)
	assert.Equal(t, 2, snap.Summary.RecentCatalogEvents)
	assert.Equal(t, 9.1, snap.Summary.MaxMagnitude, "old catalog's reading wins the duplicate")
	assert.Equal(t, 6.6, snap.Summary.MinMagnitude)

	// Classified events flow to the sink.
	require.Len(t, sink.published, 1)
	require.Len(t, sink.published[0], 3)
	for _, ev := range sink.published[0] {
		assert.NotEmpty(t, ev.Region)
		assert.NotZero(t, ev.Year)
	}

	// Aggregates are present and consistent.
	assert.Len(t, snap.Points, 3)
	assert.Len(t, snap.DepthMagnitude, 3)
	total := 0
	for _, b := range snap.RegionCounts {
		total += b.Count
	}
	assert.Equal(t, 3, total)

	assert.NoError(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_RunOnce_LoaderError(t *testing.T) {
	loader := &mockLoader{err: errors.New("disk gone")}
	metrics := observability.NewMetricsForTesting()
	p := pipeline.New(loader, nil, discardLogger(), metrics, testConfig())

	err := p.RunOnce(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load old catalog")
	assert.Nil(t, p.Snapshot())
	assert.Error(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_RunOnce_SinkFailureDoesNotFailPass(t *testing.T) {
	loader := &mockLoader{catalogs: testCatalogs()}
	broken := &mockSink{name: "kafka", err: errors.New("broker down")}
	working := &mockSink{name: "postgres"}
	metrics := observability.NewMetricsForTesting()

	p := pipeline.New(loader, []pipeline.EventSink{broken, working}, discardLogger(), metrics, testConfig())

	require.NoError(t, p.RunOnce(context.Background()))

	assert.NotNil(t, p.Snapshot())
	require.Len(t, working.published, 1, "later sinks still run after one fails")
}

func TestPipeline_Run_ServesUntilCancelled(t *testing.T) {
	loader := &mockLoader{catalogs: testCatalogs()}
	metrics := observability.NewMetricsForTesting()
	p := pipeline.New(loader, nil, discardLogger(), metrics, testConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)

	require.NoError(t, err)
	assert.NotNil(t, p.Snapshot())
	// Refresh interval zero: exactly one pass, two catalog loads.
	assert.Equal(t, 2, loader.calls)
}

func TestPipeline_Run_RefreshReloadsCatalogs(t *testing.T) {
	loader := &mockLoader{catalogs: testCatalogs()}
	metrics := observability.NewMetricsForTesting()
	cfg := testConfig()
	cfg.RefreshInterval = 50 * time.Millisecond

	p := pipeline.New(loader, nil, discardLogger(), metrics, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 400*time.Millisecond)
	defer cancel()

	require.NoError(t, p.Run(ctx))
	assert.Greater(t, loader.calls, 2, "expected at least one refresh pass")
}
