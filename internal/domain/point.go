package domain

import "time"

// TrackPoint is one position sample from a day's raw trace. Points are
// immutable once created by the ingester.
//
// Index is 1-based position in the original trace array and defines the only
// valid ordering within a day. TimeOffset is expected to be monotonic but is
// never relied upon for ordering.
type TrackPoint struct {
	Day           time.Time // calendar date, midnight UTC
	BaseTimestamp int64     // epoch seconds anchoring the day's trace
	Index         int
	TimeOffset    float64 // seconds since BaseTimestamp
	Lat           float64
	Lon           float64
	AltitudeFt    int
	AltitudeKnown bool // false when the sample had no numeric altitude
}

// Timestamp returns the absolute sample time: BaseTimestamp + TimeOffset.
func (p TrackPoint) Timestamp() time.Time {
	return time.Unix(p.BaseTimestamp, 0).UTC().
		Add(time.Duration(p.TimeOffset * float64(time.Second)))
}

// LabeledPoint is a TrackPoint with its ground/air classification attached.
type LabeledPoint struct {
	TrackPoint
	IsGround bool
}

// FlightSegment is one detected airborne interval: the ordered airborne
// points between a takeoff and the next takeoff or end of day. Segments
// within a day are disjoint, ordered by FlightNum, and hold at least one
// point. Ground points are never part of a segment.
type FlightSegment struct {
	Day       time.Time
	FlightNum int // 1-based, increments once per detected takeoff
	Points    []TrackPoint
}

// Endpoint is one end of a flight: the raw first or last airborne sample of
// a segment, plus the site name assigned by the location classifier.
type Endpoint struct {
	Timestamp     time.Time
	TimeOffset    float64
	Lat           float64
	Lon           float64
	AltitudeFt    int
	AltitudeKnown bool
	Location      string
}

// FlightSummary is the reportable reduction of a FlightSegment. Computed once
// per retained segment and never mutated afterwards.
type FlightSummary struct {
	FlightDate      time.Time
	FlightNum       int
	Takeoff         Endpoint
	Landing         Endpoint
	DurationMinutes float64
	NumPoints       int

	// ProcessedAt records when this summary was derived. It is carried on
	// published messages but excluded from the persisted report so re-runs
	// over identical input stay byte-identical.
	ProcessedAt time.Time
}
