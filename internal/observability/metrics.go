package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// trace-to-report pipeline.
type Metrics struct {
	DaysProcessed  prometheus.Counter
	MalformedDays  prometheus.Counter
	PointsIngested prometheus.Counter
	PointsDropped  prometheus.Counter

	SegmentsDetected prometheus.Counter
	SegmentsFiltered prometheus.Counter
	SummariesWritten prometheus.Counter

	DayProcessingDuration prometheus.Histogram
	SweepDuration         prometheus.Histogram
	PipelineRunning       prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		DaysProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flight_etl",
			Name:      "days_processed_total",
			Help:      "Total day traces processed, including days with no data.",
		}),
		MalformedDays: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flight_etl",
			Name:      "malformed_days_total",
			Help:      "Total day traces that failed to parse and contributed zero segments.",
		}),
		PointsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flight_etl",
			Name:      "points_ingested_total",
			Help:      "Total track points accepted by the ingester.",
		}),
		PointsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flight_etl",
			Name:      "points_dropped_total",
			Help:      "Total positional tuples dropped for missing lat/lon.",
		}),
		SegmentsDetected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flight_etl",
			Name:      "segments_detected_total",
			Help:      "Total candidate flight segments detected before filtering.",
		}),
		SegmentsFiltered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flight_etl",
			Name:      "segments_filtered_total",
			Help:      "Total candidate segments rejected by the duration/point-count filter.",
		}),
		SummariesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flight_etl",
			Name:      "summaries_written_total",
			Help:      "Total flight summary rows written to the report sinks.",
		}),
		DayProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flight_etl",
			Name:      "day_processing_duration_seconds",
			Help:      "Duration of a single day's ingest-segment-summarize pass.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		SweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flight_etl",
			Name:      "sweep_duration_seconds",
			Help:      "Duration of a complete sweep over the trace directory.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60},
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "flight_etl",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
	}

	prometheus.MustRegister(
		m.DaysProcessed,
		m.MalformedDays,
		m.PointsIngested,
		m.PointsDropped,
		m.SegmentsDetected,
		m.SegmentsFiltered,
		m.SummariesWritten,
		m.DayProcessingDuration,
		m.SweepDuration,
		m.PipelineRunning,
	)

	return m
}

// NewMetricsForTesting creates Metrics without touching the default registry
// to avoid "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		DaysProcessed:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flight_etl", Name: "days_processed_total"}),
		MalformedDays:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flight_etl", Name: "malformed_days_total"}),
		PointsIngested:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flight_etl", Name: "points_ingested_total"}),
		PointsDropped:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flight_etl", Name: "points_dropped_total"}),
		SegmentsDetected:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flight_etl", Name: "segments_detected_total"}),
		SegmentsFiltered:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flight_etl", Name: "segments_filtered_total"}),
		SummariesWritten:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flight_etl", Name: "summaries_written_total"}),
		DayProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "flight_etl", Name: "day_processing_duration_seconds"}),
		SweepDuration:         prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "flight_etl", Name: "sweep_duration_seconds"}),
		PipelineRunning:       prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "flight_etl", Name: "pipeline_running"}),
	}
}
