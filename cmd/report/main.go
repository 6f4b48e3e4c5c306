// Command report runs the catalog pipeline once and writes the chart-ready
// JSON documents to a directory, without starting a service.
//
// Usage:
//
//	go run ./cmd/report \
//	  --old datasets/Japan_2001-2018.csv \
//	  --recent datasets/Japan_2000_2023.csv \
//	  --out build/report
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quakelens/quake-catalog-etl/internal/catalog"
	"github.com/quakelens/quake-catalog-etl/internal/config"
	"github.com/quakelens/quake-catalog-etl/internal/observability"
	"github.com/quakelens/quake-catalog-etl/internal/pipeline"
)

var (
	oldPath    string
	recentPath string
	outDir     string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate dashboard data files from two seismic catalogs",
	Long: `report loads two Japan seismic-event catalogs, merges and deduplicates
them, classifies every event into a geographic region, and writes the
aggregated chart data as JSON files.

Examples:
  report --old datasets/Japan_2001-2018.csv --recent datasets/Japan_2000_2023.csv --out build/report`,
	RunE: runReport,
}

func init() {
	rootCmd.Flags().StringVar(&oldPath, "old", "datasets/Japan_2001-2018.csv", "path to the 2001-2018 catalog CSV")
	rootCmd.Flags().StringVar(&recentPath, "recent", "datasets/Japan_2000_2023.csv", "path to the 2000-2023 catalog CSV")
	rootCmd.Flags().StringVar(&outDir, "out", "report", "output directory for JSON documents")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline progress")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runReport(cmd *cobra.Command, _ []string) error {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	cfg := &config.Config{
		CatalogOldPath:    oldPath,
		CatalogRecentPath: recentPath,
	}

	p := pipeline.New(catalog.NewLoader(), nil, logger, observability.NewMetricsForTesting(), cfg)
	if err := p.RunOnce(cmd.Context()); err != nil {
		return err
	}
	snap := p.Snapshot()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	documents := map[string]any{
		"points.json":                 snap.Points,
		"depth_magnitude.json":        snap.DepthMagnitude,
		"monthly_counts.json":         snap.MonthlyCounts,
		"monthly_mean_magnitude.json": snap.MonthlyMeanMagnitude,
		"region_counts.json":          snap.RegionCounts,
		"yearly_counts.json":          snap.YearlyCounts,
		"yearly_by_region.json":       snap.YearlyByRegion,
		"summary.json":                snap.Summary,
	}

	for name, doc := range documents {
		if err := writeJSON(filepath.Join(outDir, name), doc); err != nil {
			return err
		}
	}

	fmt.Printf("wrote %d documents to %s (%d events, %d duplicates dropped)\n",
		len(documents), outDir, snap.Summary.TotalEvents, snap.Summary.DuplicatesDropped)
	return nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
