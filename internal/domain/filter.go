package domain

// Retention thresholds for candidate segments. A single noisy sample
// crossing the ground threshold can fabricate a short segment; real flights
// comfortably clear both gates.
const (
	MinAirborneSeconds = 900 // strictly more than 15 minutes airborne
	MinSegmentPoints   = 50  // strictly more than 50 airborne points
)

// Retain reports whether a summary represents a real flight worth reporting.
// Rejected segments are dropped silently: no flight that day is an expected,
// common outcome.
func Retain(s FlightSummary) bool {
	return s.DurationMinutes*60 > MinAirborneSeconds && s.NumPoints > MinSegmentPoints
}
