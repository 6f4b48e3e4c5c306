package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	CatalogOldPath    string
	CatalogRecentPath string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// RefreshInterval controls how often the pipeline re-reads the catalog
	// files. Zero means load once and keep serving the snapshot.
	RefreshInterval time.Duration

	// Kafka sink configuration. The sink is enabled by setting brokers.
	KafkaBrokers   []string
	KafkaSinkTopic string
	KafkaEnabled   bool

	// Postgres store configuration. The store is enabled by setting a DSN.
	PostgresDSN     string
	PostgresEnabled bool
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	refreshInterval, err := parseNonNegativeDuration("REFRESH_INTERVAL", "0s")
	if err != nil {
		return nil, err
	}

	brokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))

	cfg := &Config{
		CatalogOldPath:    envOrDefault("CATALOG_OLD_PATH", "datasets/Japan_2001-2018.csv"),
		CatalogRecentPath: envOrDefault("CATALOG_RECENT_PATH", "datasets/Japan_2000_2023.csv"),
		HTTPAddr:          envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:          envOrDefault("LOG_LEVEL", "info"),
		LogFormat:         envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:   shutdownTimeout,
		RefreshInterval:   refreshInterval,

		KafkaBrokers:   brokers,
		KafkaSinkTopic: envOrDefault("KAFKA_SINK_TOPIC", "classified-seismic-events"),
		KafkaEnabled:   len(brokers) > 0,

		PostgresDSN: os.Getenv("POSTGRES_DSN"),
	}
	cfg.PostgresEnabled = cfg.PostgresDSN != ""

	if cfg.CatalogOldPath == "" {
		return nil, errors.New("CATALOG_OLD_PATH is required")
	}
	if cfg.CatalogRecentPath == "" {
		return nil, errors.New("CATALOG_RECENT_PATH is required")
	}
	if cfg.KafkaEnabled && cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parseBrokers splits a comma-separated broker list, dropping empty entries.
func parseBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive duration", key)
	}
	return d, nil
}

func parseNonNegativeDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s: must be a non-negative duration", key)
	}
	return d, nil
}
