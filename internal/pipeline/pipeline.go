package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/quakelens/quake-catalog-etl/internal/config"
	"github.com/quakelens/quake-catalog-etl/internal/domain"
	"github.com/quakelens/quake-catalog-etl/internal/observability"
)

// CatalogLoader reads one catalog file into events.
type CatalogLoader interface {
	Load(ctx context.Context, path string) ([]domain.SeismicEvent, error)
}

// EventSink receives the classified events of a completed pass.
type EventSink interface {
	Name() string
	Publish(ctx context.Context, events []domain.SeismicEvent) error
}

// Pipeline orchestrates the load-merge-classify-aggregate passes and holds
// the snapshot served to readers.
type Pipeline struct {
	loader  CatalogLoader
	sinks   []EventSink
	logger  *slog.Logger
	metrics *observability.Metrics

	oldPath    string
	recentPath string
	refresh    time.Duration
	regions    []domain.Region

	snapshot atomic.Pointer[Snapshot]
	ready    atomic.Bool
}

// New creates a Pipeline over the configured catalog paths. Sinks may be nil.
func New(loader CatalogLoader, sinks []EventSink, logger *slog.Logger, metrics *observability.Metrics, cfg *config.Config) *Pipeline {
	return &Pipeline{
		loader:     loader,
		sinks:      sinks,
		logger:     logger,
		metrics:    metrics,
		oldPath:    cfg.CatalogOldPath,
		recentPath: cfg.CatalogRecentPath,
		refresh:    cfg.RefreshInterval,
		regions:    domain.JapanRegions,
	}
}

// Snapshot returns the most recent completed snapshot, or nil before the
// first successful pass.
func (p *Pipeline) Snapshot() *Snapshot {
	return p.snapshot.Load()
}

// CheckReadiness returns nil once at least one pass has completed.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no catalog pass has completed yet")
	}
	return nil
}

// Run executes passes until the context is cancelled. The first pass is
// retried with exponential backoff until it succeeds; afterwards the
// pipeline refreshes on the configured interval, keeping the last good
// snapshot when a refresh fails. A zero interval means load once and serve.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "old_catalog", p.oldPath, "recent_catalog", p.recentPath, "refresh_interval", p.refresh)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	backoff := 200 * time.Millisecond
	const maxBackoff = 5 * time.Second

	for {
		if err := p.RunOnce(ctx); err == nil {
			break
		} else if ctx.Err() != nil {
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		} else {
			p.logger.Error("initial pass failed", "error", err, "retry_in", backoff)
			if !sleepWithContext(ctx, backoff) {
				return nil
			}
			backoff = nextBackoff(backoff, maxBackoff)
		}
	}

	if p.refresh <= 0 {
		<-ctx.Done()
		p.logger.Info("pipeline stopping", "reason", ctx.Err())
		return nil
	}

	ticker := time.NewTicker(p.refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := p.RunOnce(ctx); err != nil && ctx.Err() == nil {
				// Keep serving the previous snapshot.
				p.logger.Error("refresh pass failed", "error", err)
			}
		}
	}
}

// RunOnce executes a single pass: load both catalogs, build a fresh
// snapshot, swap it in, and hand the classified events to the sinks.
func (p *Pipeline) RunOnce(ctx context.Context) error {
	runID := uuid.NewString()
	start := time.Now()

	old, err := p.loader.Load(ctx, p.oldPath)
	if err != nil {
		p.metrics.PassFailures.Inc()
		return fmt.Errorf("load old catalog: %w", err)
	}
	recent, err := p.loader.Load(ctx, p.recentPath)
	if err != nil {
		p.metrics.PassFailures.Inc()
		return fmt.Errorf("load recent catalog: %w", err)
	}

	snap := buildSnapshot(runID, old, recent, p.regions)
	p.snapshot.Store(snap)
	p.ready.Store(true)

	p.observePass(snap, len(old), len(recent), time.Since(start))
	p.logger.Info("pass complete",
		"run_id", runID,
		"events", snap.Summary.TotalEvents,
		"duplicates_dropped", snap.Summary.DuplicatesDropped,
		"duration", time.Since(start),
	)

	p.publish(ctx, runID, snap.Events)
	return nil
}

// publish delivers classified events to every sink. Sink failures are
// logged and counted but never fail the pass: the snapshot is already live.
func (p *Pipeline) publish(ctx context.Context, runID string, events []domain.SeismicEvent) {
	for _, sink := range p.sinks {
		if err := sink.Publish(ctx, events); err != nil {
			p.metrics.SinkErrors.WithLabelValues(sink.Name()).Inc()
			p.logger.Error("sink publish failed", "sink", sink.Name(), "run_id", runID, "error", err)
			continue
		}
		p.metrics.SinkPublished.WithLabelValues(sink.Name()).Add(float64(len(events)))
	}
}

func (p *Pipeline) observePass(snap *Snapshot, oldLoaded, recentLoaded int, elapsed time.Duration) {
	p.metrics.PassesTotal.Inc()
	p.metrics.PassDuration.Observe(elapsed.Seconds())
	p.metrics.EventsLoaded.WithLabelValues("old").Set(float64(oldLoaded))
	p.metrics.EventsLoaded.WithLabelValues("recent").Set(float64(recentLoaded))
	p.metrics.SnapshotEvents.Set(float64(snap.Summary.TotalEvents))
	p.metrics.DuplicatesDropped.Set(float64(snap.Summary.DuplicatesDropped))
	for _, b := range snap.RegionCounts {
		p.metrics.EventsByRegion.WithLabelValues(b.Key).Set(float64(b.Count))
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
