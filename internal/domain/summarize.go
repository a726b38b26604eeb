package domain

// Summarize reduces a segment to its endpoint attributes and duration.
//
// The takeoff endpoint is the segment's first point by index and the landing
// endpoint its last. Endpoints are raw observed samples: no smoothing,
// averaging, or interpolation. Location names are assigned separately by
// [ClassifyLocation]; Summarize leaves them empty.
func Summarize(seg FlightSegment) FlightSummary {
	takeoff := seg.Points[0]
	landing := seg.Points[len(seg.Points)-1]

	return FlightSummary{
		FlightDate:      seg.Day,
		FlightNum:       seg.FlightNum,
		Takeoff:         newEndpoint(takeoff),
		Landing:         newEndpoint(landing),
		DurationMinutes: (landing.TimeOffset - takeoff.TimeOffset) / 60,
		NumPoints:       len(seg.Points),
		ProcessedAt:     clock.Now().UTC(),
	}
}

func newEndpoint(p TrackPoint) Endpoint {
	return Endpoint{
		Timestamp:     p.Timestamp(),
		TimeOffset:    p.TimeOffset,
		Lat:           p.Lat,
		Lon:           p.Lon,
		AltitudeFt:    p.AltitudeFt,
		AltitudeKnown: p.AltitudeKnown,
	}
}
