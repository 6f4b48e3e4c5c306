package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/quakelens/quake-catalog-etl/internal/adapter/http"
	kafkaadapter "github.com/quakelens/quake-catalog-etl/internal/adapter/kafka"
	"github.com/quakelens/quake-catalog-etl/internal/adapter/postgres"
	"github.com/quakelens/quake-catalog-etl/internal/catalog"
	"github.com/quakelens/quake-catalog-etl/internal/config"
	"github.com/quakelens/quake-catalog-etl/internal/observability"
	"github.com/quakelens/quake-catalog-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Sinks are feature-flagged: brokers enable Kafka, a DSN enables Postgres.
	var sinks []pipeline.EventSink

	var kafkaWriter *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		kafkaWriter = kafkaadapter.NewWriter(cfg, logger)
		sinks = append(sinks, kafkaWriter)
		logger.Info("kafka sink enabled", "topic", cfg.KafkaSinkTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka sink disabled")
	}

	var store *postgres.Store
	if cfg.PostgresEnabled {
		store, err = postgres.NewStore(ctx, cfg.PostgresDSN, logger)
		if err != nil {
			logger.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			logger.Error("failed to apply schema", "error", err)
			os.Exit(1)
		}
		sinks = append(sinks, store)
		logger.Info("postgres sink enabled")
	} else {
		logger.Info("postgres sink disabled")
	}

	p := pipeline.New(catalog.NewLoader(), sinks, logger, metrics, cfg)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, p, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start catalog pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaWriter != nil {
		if err := kafkaWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}
	if store != nil {
		store.Close()
	}

	logger.Info("shutdown complete")
}
