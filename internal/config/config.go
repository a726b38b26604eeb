package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	TraceDir string // directory of per-day trace JSON files from the download collaborator

	// Report sinks. At least one of ReportCSV, ReportDB, or Kafka must be
	// configured; each configured sink receives the full assembled report.
	ReportCSV string
	ReportDB  string

	HTTPAddr  string
	LogLevel  string
	LogFormat string

	Workers         int           // parallel per-day workers; days are independent
	WatchInterval   time.Duration // 0 means a single batch sweep, then exit
	SourceCacheSize int           // payload LRU entries kept between watch sweeps
	ShutdownTimeout time.Duration

	// Kafka summary publishing, feature-flagged like the rest of the sinks.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	workers, err := parsePositiveInt("WORKERS", 4)
	if err != nil {
		return nil, err
	}

	cacheSize, err := parsePositiveInt("SOURCE_CACHE_SIZE", 64)
	if err != nil {
		return nil, err
	}

	watchInterval, err := parseDuration("WATCH_INTERVAL", 0)
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	kafkaEnabled := false
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		TraceDir:        os.Getenv("TRACE_DIR"),
		ReportCSV:       lookupOrDefault("REPORT_CSV", "flight_report.csv"),
		ReportDB:        os.Getenv("REPORT_DB"),
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		Workers:         workers,
		WatchInterval:   watchInterval,
		SourceCacheSize: cacheSize,
		ShutdownTimeout: shutdownTimeout,
		KafkaEnabled:    kafkaEnabled,
		KafkaBrokers:    splitList(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:      envOrDefault("KAFKA_TOPIC", "flight-summaries"),
	}

	if cfg.TraceDir == "" {
		return nil, errors.New("TRACE_DIR is required")
	}
	if cfg.ReportCSV == "" && cfg.ReportDB == "" && !cfg.KafkaEnabled {
		return nil, errors.New("no report sink configured: set REPORT_CSV, REPORT_DB, or KAFKA_ENABLED")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_TOPIC is empty")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// lookupOrDefault differs from envOrDefault in honoring a variable that is
// set to the empty string, which is how the CSV sink is disabled.
func lookupOrDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func parsePositiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
