package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/flight-trace-etl/internal/domain"
	"github.com/couchcryptid/flight-trace-etl/internal/observability"
)

// TraceTransformer implements DayTransformer using the domain stage functions:
// ingest, label, segment, summarize, classify, filter.
type TraceTransformer struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewTransformer creates a TraceTransformer.
func NewTransformer(logger *slog.Logger, metrics *observability.Metrics) *TraceTransformer {
	return &TraceTransformer{logger: logger, metrics: metrics}
}

// TransformDay runs the full per-day stage chain and returns only the
// summaries that survive the retention filter. Segments filtered out are
// dropped silently; no flight that day is a normal outcome.
func (t *TraceTransformer) TransformDay(ctx context.Context, day time.Time, payload []byte) ([]domain.FlightSummary, error) {
	points, dropped, err := domain.ParseDayTrace(day, payload)
	if err != nil {
		return nil, err
	}
	t.metrics.PointsIngested.Add(float64(len(points)))
	if dropped > 0 {
		t.metrics.PointsDropped.Add(float64(dropped))
		t.logger.Debug("dropped tuples without lat/lon",
			"day", day.Format(time.DateOnly), "dropped", dropped)
	}

	segments := domain.SegmentDay(day, domain.Label(points))
	t.metrics.SegmentsDetected.Add(float64(len(segments)))

	summaries := make([]domain.FlightSummary, 0, len(segments))
	for _, seg := range segments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		s := domain.Summarize(seg)
		s.Takeoff.Location = domain.ClassifyLocation(s.Takeoff, domain.RoleTakeoff)
		s.Landing.Location = domain.ClassifyLocation(s.Landing, domain.RoleLanding)

		if !domain.Retain(s) {
			t.metrics.SegmentsFiltered.Inc()
			continue
		}
		summaries = append(summaries, s)
	}

	return summaries, nil
}
