package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// catalog pipeline.
type Metrics struct {
	PassesTotal     prometheus.Counter
	PassFailures    prometheus.Counter
	PassDuration    prometheus.Histogram
	PipelineRunning prometheus.Gauge

	// Per-pass dataset gauges, overwritten on every successful pass.
	EventsLoaded      *prometheus.GaugeVec // labels: catalog={old,recent}
	SnapshotEvents    prometheus.Gauge
	DuplicatesDropped prometheus.Gauge
	EventsByRegion    *prometheus.GaugeVec // labels: region

	// Sink metrics.
	SinkPublished *prometheus.CounterVec // labels: sink={kafka,postgres}
	SinkErrors    *prometheus.CounterVec // labels: sink={kafka,postgres}
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.PassesTotal,
		m.PassFailures,
		m.PassDuration,
		m.PipelineRunning,
		m.EventsLoaded,
		m.SnapshotEvents,
		m.DuplicatesDropped,
		m.EventsByRegion,
		m.SinkPublished,
		m.SinkErrors,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		PassesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_etl",
			Name:      "passes_total",
			Help:      "Total completed load-merge-classify-aggregate passes.",
		}),
		PassFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_etl",
			Name:      "pass_failures_total",
			Help:      "Total failed pipeline passes.",
		}),
		PassDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_etl",
			Name:      "pass_duration_seconds",
			Help:      "Duration of a complete pipeline pass.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_etl",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		EventsLoaded: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "quake_etl",
			Name:      "events_loaded",
			Help:      "Events read from each source catalog in the last pass.",
		}, []string{"catalog"}),
		SnapshotEvents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_etl",
			Name:      "snapshot_events",
			Help:      "Unique events in the current snapshot.",
		}),
		DuplicatesDropped: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_etl",
			Name:      "duplicates_dropped",
			Help:      "Duplicate timestamps removed during the last merge.",
		}),
		EventsByRegion: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "quake_etl",
			Name:      "events_by_region",
			Help:      "Events per assigned region in the current snapshot.",
		}, []string{"region"}),
		SinkPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_etl",
			Name:      "sink_published_total",
			Help:      "Classified events delivered to each sink.",
		}, []string{"sink"}),
		SinkErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_etl",
			Name:      "sink_errors_total",
			Help:      "Failed sink deliveries.",
		}, []string{"sink"}),
	}
}
