package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// rawDayTrace is the shape the download collaborator caches per day: a base
// epoch timestamp plus an array of positional tuples.
type rawDayTrace struct {
	Timestamp int64             `json:"timestamp"`
	Trace     []json.RawMessage `json:"trace"`
}

// ParseDayTrace parses one day's raw trace payload into ordered TrackPoints.
//
// Each tuple is [time_offset, lat, lon, altitude, ...]; trailing fields are
// ignored. A tuple missing lat or lon cannot be placed in space and is
// dropped (counted in the second return value). A missing or non-numeric
// altitude coerces to 0 with AltitudeKnown=false rather than dropping the
// point: treating it as ground level is the conservative choice for
// segmentation.
//
// Index is assigned from the tuple's 1-based position in the input array, so
// dropped tuples leave gaps but ordering stays strictly increasing.
//
// A payload that is not a JSON object with a trace array (for example an
// HTML error page the cache saved in place of data) returns an error; the
// caller treats that day as having no data.
func ParseDayTrace(day time.Time, payload []byte) ([]TrackPoint, int, error) {
	var raw rawDayTrace
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, 0, fmt.Errorf("parse day trace %s: %w", day.Format(time.DateOnly), err)
	}
	if raw.Trace == nil {
		return nil, 0, fmt.Errorf("parse day trace %s: no trace array in payload", day.Format(time.DateOnly))
	}

	points := make([]TrackPoint, 0, len(raw.Trace))
	dropped := 0
	for i, tuple := range raw.Trace {
		p, ok := parseTuple(tuple)
		if !ok {
			dropped++
			continue
		}
		p.Day = day
		p.BaseTimestamp = raw.Timestamp
		p.Index = i + 1
		points = append(points, p)
	}
	return points, dropped, nil
}

// parseTuple decodes a single positional tuple. Returns false when the tuple
// is not an array or lacks a numeric time offset, lat, or lon.
func parseTuple(tuple json.RawMessage) (TrackPoint, bool) {
	var fields []json.RawMessage
	if err := json.Unmarshal(tuple, &fields); err != nil || len(fields) < 3 {
		return TrackPoint{}, false
	}

	offset, ok := parseNumber(fields[0])
	if !ok {
		return TrackPoint{}, false
	}
	lat, ok := parseNumber(fields[1])
	if !ok {
		return TrackPoint{}, false
	}
	lon, ok := parseNumber(fields[2])
	if !ok {
		return TrackPoint{}, false
	}

	p := TrackPoint{TimeOffset: offset, Lat: lat, Lon: lon}
	if len(fields) > 3 {
		if alt, ok := parseNumber(fields[3]); ok {
			p.AltitudeFt = int(math.Round(alt))
			p.AltitudeKnown = true
		}
	}
	return p, true
}

// parseNumber decodes a JSON value as float64. Nulls, strings (the feed uses
// markers like "ground"), and other non-numeric values return false.
func parseNumber(raw json.RawMessage) (float64, bool) {
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	return v, true
}
