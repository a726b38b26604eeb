package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/flight-trace-etl/internal/domain"
	"github.com/couchcryptid/flight-trace-etl/internal/observability"
)

// TraceSource enumerates and fetches the per-day raw trace payloads produced
// by the download/cache collaborator.
type TraceSource interface {
	ListDays(ctx context.Context) ([]time.Time, error)
	Fetch(ctx context.Context, day time.Time) ([]byte, error)
}

// DayTransformer turns one day's raw payload into retained flight summaries.
type DayTransformer interface {
	TransformDay(ctx context.Context, day time.Time, payload []byte) ([]domain.FlightSummary, error)
}

// ReportSink persists or publishes the fully assembled report.
type ReportSink interface {
	WriteReport(ctx context.Context, rows []domain.FlightSummary) error
}

// SweepStatus describes the most recent completed sweep, exposed on /status.
type SweepStatus struct {
	CompletedAt   time.Time `json:"completed_at"`
	Days          int       `json:"days"`
	MalformedDays int       `json:"malformed_days"`
	Rows          int       `json:"rows"`
}

// Pipeline orchestrates the extract-transform-load run: list days, fan the
// independent per-day transforms out across workers, assemble the sorted
// report, and write it to every configured sink.
type Pipeline struct {
	source      TraceSource
	transformer DayTransformer
	sinks       []ReportSink
	logger      *slog.Logger
	metrics     *observability.Metrics
	workers     int

	ready  atomic.Bool
	mu     sync.Mutex
	status SweepStatus
}

// New creates a Pipeline with the given stages and observability.
func New(source TraceSource, transformer DayTransformer, sinks []ReportSink, logger *slog.Logger, metrics *observability.Metrics, workers int) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{
		source:      source,
		transformer: transformer,
		sinks:       sinks,
		logger:      logger,
		metrics:     metrics,
		workers:     workers,
	}
}

// CheckReadiness returns nil once at least one sweep has completed.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not completed a sweep yet")
	}
	return nil
}

// Status returns a copy of the last completed sweep's stats.
func (p *Pipeline) Status() SweepStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Run executes a single sweep, or keeps sweeping on the given interval until
// the context is cancelled when interval is positive. In watch mode a failed
// sweep is logged and retried on the next tick rather than stopping the
// service.
func (p *Pipeline) Run(ctx context.Context, interval time.Duration) error {
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	if interval <= 0 {
		p.logger.Info("pipeline starting single sweep")
		return p.Sweep(ctx)
	}

	p.logger.Info("pipeline watching trace directory", "interval", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := p.Sweep(ctx); err != nil {
		p.logger.Error("sweep failed", "error", err)
	}
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := p.Sweep(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				p.logger.Error("sweep failed", "error", err)
			}
		}
	}
}

// Sweep runs one complete pass: every known day is processed independently,
// the retained summaries are assembled into the sorted report, and the report
// is written to each sink. Per-day failures are contained; Sweep itself fails
// only when the source cannot be listed or a sink cannot be written.
func (p *Pipeline) Sweep(ctx context.Context) error {
	start := time.Now()

	days, err := p.source.ListDays(ctx)
	if err != nil {
		return fmt.Errorf("list days: %w", err)
	}

	rows, malformed := p.processDays(ctx, days)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	domain.SortSummaries(rows)

	for _, sink := range p.sinks {
		if err := sink.WriteReport(ctx, rows); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	p.metrics.SummariesWritten.Add(float64(len(rows)))
	p.metrics.SweepDuration.Observe(time.Since(start).Seconds())

	p.mu.Lock()
	p.status = SweepStatus{
		CompletedAt:   time.Now().UTC(),
		Days:          len(days),
		MalformedDays: malformed,
		Rows:          len(rows),
	}
	p.mu.Unlock()
	p.ready.Store(true)

	p.logger.Info("sweep complete",
		"days", len(days),
		"malformed_days", malformed,
		"rows", len(rows),
		"duration", time.Since(start),
	)
	return nil
}

// processDays fans the per-day transforms out across the worker pool. Days
// share no state, so the only synchronization is collecting results. The
// within-day scan stays sequential inside the transformer.
func (p *Pipeline) processDays(ctx context.Context, days []time.Time) ([]domain.FlightSummary, int) {
	dayCh := make(chan time.Time)
	var (
		mu        sync.Mutex
		rows      []domain.FlightSummary
		malformed int
	)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for day := range dayCh {
				summaries, ok := p.processDay(ctx, day)
				mu.Lock()
				rows = append(rows, summaries...)
				if !ok {
					malformed++
				}
				mu.Unlock()
			}
		}()
	}

	for _, day := range days {
		select {
		case <-ctx.Done():
			close(dayCh)
			wg.Wait()
			return rows, malformed
		case dayCh <- day:
		}
	}
	close(dayCh)
	wg.Wait()
	return rows, malformed
}

// processDay fetches and transforms one day. A malformed or unreadable day is
// logged and yields zero summaries (ok=false); it never aborts the sweep.
func (p *Pipeline) processDay(ctx context.Context, day time.Time) ([]domain.FlightSummary, bool) {
	start := time.Now()
	defer func() {
		p.metrics.DaysProcessed.Inc()
		p.metrics.DayProcessingDuration.Observe(time.Since(start).Seconds())
	}()

	payload, err := p.source.Fetch(ctx, day)
	if err != nil {
		p.logger.Warn("fetch day failed, skipping", "day", day.Format(time.DateOnly), "error", err)
		p.metrics.MalformedDays.Inc()
		return nil, false
	}

	summaries, err := p.transformer.TransformDay(ctx, day, payload)
	if err != nil {
		p.logger.Warn("transform day failed, skipping", "day", day.Format(time.DateOnly), "error", err)
		p.metrics.MalformedDays.Inc()
		return nil, false
	}
	return summaries, true
}
