package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC)

const testBaseTimestamp = int64(1715644800) // 2024-05-14T00:00:00Z

func TestParseDayTrace(t *testing.T) {
	t.Run("well-formed trace", func(t *testing.T) {
		payload := []byte(`{"timestamp":1715644800,"trace":[
			[0,-25.92,32.57,150],
			[30.5,-25.90,32.60,2500,410,88,"adsb_icao"],
			[61,-25.88,32.63,4100]
		]}`)

		points, dropped, err := ParseDayTrace(testDay, payload)
		require.NoError(t, err)
		assert.Zero(t, dropped)
		require.Len(t, points, 3)

		first := points[0]
		assert.Equal(t, testDay, first.Day)
		assert.Equal(t, testBaseTimestamp, first.BaseTimestamp)
		assert.Equal(t, 1, first.Index)
		assert.Equal(t, -25.92, first.Lat)
		assert.Equal(t, 32.57, first.Lon)
		assert.Equal(t, 150, first.AltitudeFt)
		assert.True(t, first.AltitudeKnown)

		// Trailing tuple fields beyond altitude are ignored.
		assert.Equal(t, 2500, points[1].AltitudeFt)
		assert.Equal(t, 30.5, points[1].TimeOffset)
		assert.Equal(t, []int{1, 2, 3}, indices(points))
	})

	t.Run("null altitude coerces to ground", func(t *testing.T) {
		payload := []byte(`{"timestamp":1715644800,"trace":[[0,-12.99,40.52,null]]}`)

		points, dropped, err := ParseDayTrace(testDay, payload)
		require.NoError(t, err)
		assert.Zero(t, dropped)
		require.Len(t, points, 1)
		assert.Equal(t, 0, points[0].AltitudeFt)
		assert.False(t, points[0].AltitudeKnown)
	})

	t.Run("string altitude marker coerces to ground", func(t *testing.T) {
		payload := []byte(`{"timestamp":1715644800,"trace":[[0,-12.99,40.52,"ground"]]}`)

		points, _, err := ParseDayTrace(testDay, payload)
		require.NoError(t, err)
		require.Len(t, points, 1)
		assert.Equal(t, 0, points[0].AltitudeFt)
		assert.False(t, points[0].AltitudeKnown)
	})

	t.Run("missing altitude field coerces to ground", func(t *testing.T) {
		payload := []byte(`{"timestamp":1715644800,"trace":[[0,-12.99,40.52]]}`)

		points, _, err := ParseDayTrace(testDay, payload)
		require.NoError(t, err)
		require.Len(t, points, 1)
		assert.Equal(t, 0, points[0].AltitudeFt)
		assert.False(t, points[0].AltitudeKnown)
	})

	t.Run("fractional altitude rounds to the nearest foot", func(t *testing.T) {
		payload := []byte(`{"timestamp":1715644800,"trace":[[0,-12.99,40.52,1999.6]]}`)

		points, _, err := ParseDayTrace(testDay, payload)
		require.NoError(t, err)
		require.Len(t, points, 1)
		assert.Equal(t, 2000, points[0].AltitudeFt)
	})

	t.Run("tuple without lat or lon is dropped", func(t *testing.T) {
		payload := []byte(`{"timestamp":1715644800,"trace":[
			[0,-25.92,32.57,150],
			[30],
			[60,null,32.60,2500],
			[90,-25.88,null,2500],
			[120,-25.85,32.70,3000]
		]}`)

		points, dropped, err := ParseDayTrace(testDay, payload)
		require.NoError(t, err)
		assert.Equal(t, 3, dropped)
		require.Len(t, points, 2)

		// Dropped tuples still consume their input position, so indices keep
		// gaps but stay strictly increasing.
		assert.Equal(t, []int{1, 5}, indices(points))
	})

	t.Run("empty trace array yields no points", func(t *testing.T) {
		payload := []byte(`{"timestamp":1715644800,"trace":[]}`)

		points, dropped, err := ParseDayTrace(testDay, payload)
		require.NoError(t, err)
		assert.Zero(t, dropped)
		assert.Empty(t, points)
	})

	t.Run("HTML error page is malformed input", func(t *testing.T) {
		payload := []byte("<!DOCTYPE html><html><body><h1>404 Not Found</h1></body></html>")

		_, _, err := ParseDayTrace(testDay, payload)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse day trace 2024-05-14")
	})

	t.Run("error JSON payload is malformed input", func(t *testing.T) {
		payload := []byte(`{"error":"no data for this aircraft"}`)

		_, _, err := ParseDayTrace(testDay, payload)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no trace array")
	})

	t.Run("non-array tuple is dropped", func(t *testing.T) {
		payload := []byte(`{"timestamp":1715644800,"trace":[
			{"lat":-25.92},
			[30,-25.90,32.60,2500]
		]}`)

		points, dropped, err := ParseDayTrace(testDay, payload)
		require.NoError(t, err)
		assert.Equal(t, 1, dropped)
		require.Len(t, points, 1)
		assert.Equal(t, 2, points[0].Index)
	})
}

func TestTrackPointTimestamp(t *testing.T) {
	p := TrackPoint{BaseTimestamp: testBaseTimestamp, TimeOffset: 90.5}
	assert.Equal(t, time.Date(2024, 5, 14, 0, 1, 30, 500000000, time.UTC), p.Timestamp())
}

func indices(points []TrackPoint) []int {
	out := make([]int, len(points))
	for i, p := range points {
		out[i] = p.Index
	}
	return out
}
