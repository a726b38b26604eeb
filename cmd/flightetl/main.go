// Command flightetl derives per-day flight segments from cached aircraft
// trace files and writes the assembled flight-summary report.
//
// With WATCH_INTERVAL unset it performs a single sweep over TRACE_DIR and
// exits; with an interval it keeps the report current and serves health,
// status, and metrics endpoints while doing so.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/flight-trace-etl/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/flight-trace-etl/internal/adapter/kafka"
	"github.com/couchcryptid/flight-trace-etl/internal/adapter/report"
	"github.com/couchcryptid/flight-trace-etl/internal/adapter/tracefile"
	"github.com/couchcryptid/flight-trace-etl/internal/config"
	"github.com/couchcryptid/flight-trace-etl/internal/observability"
	"github.com/couchcryptid/flight-trace-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	var source pipeline.TraceSource = tracefile.NewSource(cfg.TraceDir, logger)
	if cfg.WatchInterval > 0 {
		// Watch-mode sweeps revisit every day; cache unchanged payloads.
		source = tracefile.NewCachedSource(tracefile.NewSource(cfg.TraceDir, logger), cfg.SourceCacheSize)
	}

	var sinks []pipeline.ReportSink
	if cfg.ReportCSV != "" {
		sinks = append(sinks, report.NewCSVSink(cfg.ReportCSV, logger))
		logger.Info("csv sink enabled", "path", cfg.ReportCSV)
	}
	if cfg.ReportDB != "" {
		dbSink, err := report.NewSQLiteSink(cfg.ReportDB, logger)
		if err != nil {
			logger.Error("failed to open report db", "error", err)
			os.Exit(1)
		}
		defer dbSink.Close()
		sinks = append(sinks, dbSink)
		logger.Info("sqlite sink enabled", "path", cfg.ReportDB)
	}

	var publisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		publisher = kafkaadapter.NewPublisher(cfg, logger)
		sinks = append(sinks, publisher)
		logger.Info("kafka sink enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	transformer := pipeline.NewTransformer(logger, metrics)
	p := pipeline.New(source, transformer, sinks, logger, metrics, cfg.Workers)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.WatchInterval <= 0 {
		if err := p.Run(ctx, 0); err != nil {
			logger.Error("sweep failed", "error", err)
			closePublisher(publisher, logger)
			os.Exit(1)
		}
		closePublisher(publisher, logger)
		return
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := p.Run(ctx, cfg.WatchInterval); err != nil {
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
	closePublisher(publisher, logger)

	logger.Info("shutdown complete")
}

func closePublisher(publisher *kafkaadapter.Publisher, logger *slog.Logger) {
	if publisher == nil {
		return
	}
	if err := publisher.Close(); err != nil {
		logger.Error("kafka publisher close error", "error", err)
	}
}
