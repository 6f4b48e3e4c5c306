package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quakelens/quake-catalog-etl/internal/pipeline"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// SnapshotProvider hands out the latest completed pipeline snapshot.
type SnapshotProvider interface {
	Snapshot() *pipeline.Snapshot
}

// Server exposes health, readiness, metrics, and dashboard-data endpoints.
// The /api/v1 routes return exactly the records the charting layer consumes:
// spatial points and category/value series, nothing about styling.
type Server struct {
	httpServer *http.Server
	provider   SnapshotProvider
	logger     *slog.Logger
}

// NewServer creates the HTTP server and registers all routes.
func NewServer(addr string, ready ReadinessChecker, provider SnapshotProvider, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		provider: provider,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/v1/points", s.snapshotHandler(func(snap *pipeline.Snapshot) any { return snap.Points }))
	mux.HandleFunc("GET /api/v1/depth-magnitude", s.snapshotHandler(func(snap *pipeline.Snapshot) any { return snap.DepthMagnitude }))
	mux.HandleFunc("GET /api/v1/monthly", s.snapshotHandler(func(snap *pipeline.Snapshot) any { return snap.MonthlyCounts }))
	mux.HandleFunc("GET /api/v1/monthly-magnitude", s.snapshotHandler(func(snap *pipeline.Snapshot) any { return snap.MonthlyMeanMagnitude }))
	mux.HandleFunc("GET /api/v1/regions", s.snapshotHandler(func(snap *pipeline.Snapshot) any { return snap.RegionCounts }))
	mux.HandleFunc("GET /api/v1/yearly", s.snapshotHandler(func(snap *pipeline.Snapshot) any { return snap.YearlyCounts }))
	mux.HandleFunc("GET /api/v1/yearly-by-region", s.snapshotHandler(func(snap *pipeline.Snapshot) any { return snap.YearlyByRegion }))
	mux.HandleFunc("GET /api/v1/summary", s.snapshotHandler(func(snap *pipeline.Snapshot) any { return snap.Summary }))

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// snapshotHandler serves one view of the current snapshot, or 503 before the
// first pass completes.
func (s *Server) snapshotHandler(view func(*pipeline.Snapshot) any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		snap := s.provider.Snapshot()
		if snap == nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"error": "no snapshot available yet",
			})
			return
		}
		writeJSON(w, http.StatusOK, view(snap))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
