package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	fixed := time.Date(2024, 5, 15, 6, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	defer SetClock(nil)

	labeled := trace(100, 3500, 8000, 8200, 7900, 400)
	segments := SegmentDay(testDay, labeled)
	require.Len(t, segments, 1)

	s := Summarize(segments[0])

	assert.Equal(t, testDay, s.FlightDate)
	assert.Equal(t, 1, s.FlightNum)
	assert.Equal(t, 4, s.NumPoints)

	// Takeoff is the first airborne point (index 2, offset 30s), landing the
	// last (index 5, offset 120s). Raw samples, no smoothing.
	assert.Equal(t, 3500, s.Takeoff.AltitudeFt)
	assert.Equal(t, 30.0, s.Takeoff.TimeOffset)
	assert.Equal(t, 7900, s.Landing.AltitudeFt)
	assert.Equal(t, 120.0, s.Landing.TimeOffset)
	assert.Equal(t, time.Date(2024, 5, 14, 0, 0, 30, 0, time.UTC), s.Takeoff.Timestamp)
	assert.Equal(t, time.Date(2024, 5, 14, 0, 2, 0, 0, time.UTC), s.Landing.Timestamp)

	assert.InDelta(t, 1.5, s.DurationMinutes, 1e-9)
	assert.Equal(t, fixed, s.ProcessedAt)
	assert.Empty(t, s.Takeoff.Location)
	assert.Empty(t, s.Landing.Location)
}

func TestSummarizeSinglePointSegment(t *testing.T) {
	segments := SegmentDay(testDay, trace(100, 2100, 100))
	require.Len(t, segments, 1)

	s := Summarize(segments[0])
	assert.Equal(t, 1, s.NumPoints)
	assert.Zero(t, s.DurationMinutes)
	assert.Equal(t, s.Takeoff.Timestamp, s.Landing.Timestamp)
}

func TestRetain(t *testing.T) {
	tests := []struct {
		name      string
		minutes   float64
		numPoints int
		want      bool
	}{
		{"real flight", 45, 120, true},
		{"too short and too sparse", 5, 10, false},
		{"duration passes but point count fails", 20, 40, false},
		{"point count passes but duration fails", 10, 200, false},
		{"exactly 15 minutes is rejected", 15, 120, false},
		{"exactly 50 points is rejected", 45, 50, false},
		{"just over both thresholds", 15.1, 51, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := FlightSummary{DurationMinutes: tt.minutes, NumPoints: tt.numPoints}
			assert.Equal(t, tt.want, Retain(s))
		})
	}
}

func TestSortSummaries(t *testing.T) {
	day2 := testDay.AddDate(0, 0, 1)
	rows := []FlightSummary{
		{FlightDate: day2, FlightNum: 1},
		{FlightDate: testDay, FlightNum: 2},
		{FlightDate: testDay, FlightNum: 1},
	}

	SortSummaries(rows)

	assert.Equal(t, "2024-05-14-1", rows[0].RowID())
	assert.Equal(t, "2024-05-14-2", rows[1].RowID())
	assert.Equal(t, "2024-05-15-1", rows[2].RowID())
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "2024-05-14T10:30:05Z", FormatTimestamp(time.Date(2024, 5, 14, 10, 30, 5, 0, time.UTC)))
	assert.Equal(t, "-25.900000", FormatCoord(-25.9))
	assert.Equal(t, "40.523456", FormatCoord(40.5234561))
	assert.Equal(t, "92.5", FormatDuration(92.5))
	assert.Equal(t, "0.0", FormatDuration(0))
}
