package domain

import "time"

// SegmentDay scans one day's labeled points in index order and groups
// airborne points into flight segments, one per detected takeoff.
//
// A takeoff is a ground-to-air edge: the previous point was ground and the
// current one is not. The scan starts with an assumed ground state, so a
// trace whose very first sample is already airborne registers a takeoff at
// that sample. Known edge case: a flight already in the air when the trace
// window opens is indistinguishable from a genuine ground start, and its
// recorded takeoff is really just the first observed point.
//
// Ground points are never buffered into a segment; they exist only to drive
// edge detection. Points before the first takeoff (flight number 0) produce
// no segment. Flight numbers are contiguous from 1 and each returned segment
// holds at least one point.
func SegmentDay(day time.Time, points []LabeledPoint) []FlightSegment {
	var segments []FlightSegment
	prevGround := true
	flightNum := 0

	for _, p := range points {
		if prevGround && !p.IsGround {
			flightNum++
			segments = append(segments, FlightSegment{Day: day, FlightNum: flightNum})
		}
		if !p.IsGround && flightNum > 0 {
			seg := &segments[len(segments)-1]
			seg.Points = append(seg.Points, p.TrackPoint)
		}
		prevGround = p.IsGround
	}

	return segments
}
