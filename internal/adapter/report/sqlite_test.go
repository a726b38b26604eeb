package report

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteSink(t *testing.T) *SQLiteSink {
	t.Helper()
	sink, err := NewSQLiteSink(filepath.Join(t.TempDir(), "flights.db"), slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { sink.Close() })
	return sink
}

func TestSQLiteSink_WriteReport(t *testing.T) {
	sink := newTestSQLiteSink(t)

	require.NoError(t, sink.WriteReport(context.Background(), sampleRows()))

	var count int
	require.NoError(t, sink.db.QueryRow(`SELECT COUNT(*) FROM flight_summaries`).Scan(&count))
	assert.Equal(t, 2, count)

	var takeoffLoc, duration string
	var landingAlt int
	row := sink.db.QueryRow(`
		SELECT takeoff_location, landing_altitude_ft, flight_duration_minutes
		FROM flight_summaries WHERE flight_date = '2024-05-14' AND flight_num = 2`)
	require.NoError(t, row.Scan(&takeoffLoc, &landingAlt, &duration))
	assert.Equal(t, "Afungi", takeoffLoc)
	assert.Equal(t, 310, landingAlt)
	assert.Equal(t, "90.8", duration)
}

func TestSQLiteSink_WriteReport_UpsertIsIdempotent(t *testing.T) {
	sink := newTestSQLiteSink(t)

	require.NoError(t, sink.WriteReport(context.Background(), sampleRows()))
	require.NoError(t, sink.WriteReport(context.Background(), sampleRows()))

	var count int
	require.NoError(t, sink.db.QueryRow(`SELECT COUNT(*) FROM flight_summaries`).Scan(&count))
	assert.Equal(t, 2, count)
}

func TestSQLiteSink_WriteReport_UpsertReplacesChangedRow(t *testing.T) {
	sink := newTestSQLiteSink(t)

	rows := sampleRows()
	require.NoError(t, sink.WriteReport(context.Background(), rows))

	rows[0].Landing.Location = "Pemba"
	require.NoError(t, sink.WriteReport(context.Background(), rows))

	var loc string
	row := sink.db.QueryRow(`
		SELECT landing_location FROM flight_summaries
		WHERE flight_date = '2024-05-14' AND flight_num = 1`)
	require.NoError(t, row.Scan(&loc))
	assert.Equal(t, "Pemba", loc)
}

func TestSQLiteSink_WriteReport_EmptyReport(t *testing.T) {
	sink := newTestSQLiteSink(t)
	require.NoError(t, sink.WriteReport(context.Background(), nil))

	var count int
	require.NoError(t, sink.db.QueryRow(`SELECT COUNT(*) FROM flight_summaries`).Scan(&count))
	assert.Zero(t, count)
}
