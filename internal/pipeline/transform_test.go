package pipeline_test

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/flight-trace-etl/internal/observability"
	"github.com/couchcryptid/flight-trace-etl/internal/pipeline"
)

func newTestTransformer() *pipeline.TraceTransformer {
	return pipeline.NewTransformer(slog.Default(), observability.NewMetricsForTesting())
}

func TestTransformDay_FiltersShortSegments(t *testing.T) {
	// 40 airborne points over 20 minutes: the duration gate passes but the
	// point-count gate fails, so the segment produces no summary.
	var tuples []string
	tuples = append(tuples, `[0,-25.92,32.57,120]`)
	for i := 0; i < 40; i++ {
		tuples = append(tuples, fmt.Sprintf("[%d,-25.9,32.6,%d]", 30+i*31, 8000+i))
	}
	payload := []byte(fmt.Sprintf(`{"timestamp":1715644800,"trace":[%s]}`, strings.Join(tuples, ",")))

	summaries, err := newTestTransformer().TransformDay(context.Background(), day1, payload)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestTransformDay_NoTransitionsYieldsNoSummaries(t *testing.T) {
	payload := []byte(`{"timestamp":1715644800,"trace":[[0,-25.92,32.57,120],[30,-25.92,32.58,150],[60,-25.91,32.58,300]]}`)

	summaries, err := newTestTransformer().TransformDay(context.Background(), day1, payload)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestTransformDay_ClassifiesBothEndpoints(t *testing.T) {
	// Takeoff roll at Maputo, cruise, last airborne sample still at 6500 ft
	// in the broad Afungi vicinity: the landing-only relaxed rule applies.
	var tuples []string
	tuples = append(tuples, `[0,-25.92,32.57,120]`)
	for i := 0; i < 60; i++ {
		lat := -25.9 + float64(i)*0.24
		lon := 32.6 + float64(i)*(7.8/59)
		tuples = append(tuples, fmt.Sprintf("[%d,%.4f,%.4f,%d]", 30+i*30, lat, lon, 20000-(i*225)))
	}
	payload := []byte(fmt.Sprintf(`{"timestamp":1715644800,"trace":[%s]}`, strings.Join(tuples, ",")))

	summaries, err := newTestTransformer().TransformDay(context.Background(), day1, payload)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, "Maputo", s.Takeoff.Location)
	assert.Equal(t, "Afungi", s.Landing.Location)
}

func TestTransformDay_MalformedPayload(t *testing.T) {
	_, err := newTestTransformer().TransformDay(context.Background(), day1, []byte("<html>nope</html>"))
	require.Error(t, err)
}
