// Package postgres persists classified seismic events for downstream query
// workloads. Inserts are idempotent: the deterministic event ID is the
// primary key and conflicts are ignored, so re-running a pass or replaying a
// catalog never duplicates rows.
package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quakelens/quake-catalog-etl/internal/domain"
)

// schemaSQL is embedded so the service can self-bootstrap its schema.
//
//go:embed schema.sql
var schemaSQL string

const insertEventSQL = `
	INSERT INTO seismic_events
		(id, time, latitude, longitude, depth, magnitude, severity, region, year, month, processed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (id) DO NOTHING
`

// Store is the durable sink for classified events.
// It implements pipeline.EventSink.
type Store struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewStore creates a connection pool and fails fast if the database is
// unreachable.
func NewStore(ctx context.Context, dsn string, logger *slog.Logger) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return &Store{pool: pool, logger: logger}, nil
}

// EnsureSchema applies schema.sql. Safe to run multiple times.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schemaSQL)
	return err
}

// Name identifies the sink in logs and metrics.
func (s *Store) Name() string { return "postgres" }

// Publish upserts all events in one batch round-trip.
func (s *Store) Publish(ctx context.Context, events []domain.SeismicEvent) error {
	if len(events) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, ev := range events {
		batch.Queue(insertEventSQL,
			ev.ID, ev.Time, ev.Latitude, ev.Longitude, ev.Depth,
			ev.Magnitude, ev.Severity, ev.Region, ev.Year, int(ev.Month), ev.ProcessedAt,
		)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := range events {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert event %s: %w", events[i].ID, err)
		}
	}
	return nil
}

// Close shuts down the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}
