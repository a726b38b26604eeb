package report

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/couchcryptid/flight-trace-etl/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS flight_summaries (
	flight_date             TEXT    NOT NULL,
	flight_num              INTEGER NOT NULL,
	takeoff_timestamp       TEXT    NOT NULL,
	takeoff_lat             TEXT    NOT NULL,
	takeoff_lng             TEXT    NOT NULL,
	takeoff_altitude_ft     INTEGER NOT NULL,
	takeoff_location        TEXT    NOT NULL,
	landing_timestamp       TEXT    NOT NULL,
	landing_lat             TEXT    NOT NULL,
	landing_lng             TEXT    NOT NULL,
	landing_altitude_ft     INTEGER NOT NULL,
	landing_location        TEXT    NOT NULL,
	flight_duration_minutes TEXT    NOT NULL,
	PRIMARY KEY (flight_date, flight_num)
);`

const upsert = `
INSERT INTO flight_summaries (
	flight_date, flight_num,
	takeoff_timestamp, takeoff_lat, takeoff_lng, takeoff_altitude_ft, takeoff_location,
	landing_timestamp, landing_lat, landing_lng, landing_altitude_ft, landing_location,
	flight_duration_minutes
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (flight_date, flight_num) DO UPDATE SET
	takeoff_timestamp = excluded.takeoff_timestamp,
	takeoff_lat = excluded.takeoff_lat,
	takeoff_lng = excluded.takeoff_lng,
	takeoff_altitude_ft = excluded.takeoff_altitude_ft,
	takeoff_location = excluded.takeoff_location,
	landing_timestamp = excluded.landing_timestamp,
	landing_lat = excluded.landing_lat,
	landing_lng = excluded.landing_lng,
	landing_altitude_ft = excluded.landing_altitude_ft,
	landing_location = excluded.landing_location,
	flight_duration_minutes = excluded.flight_duration_minutes;`

// SQLiteSink upserts report rows into a flight_summaries table keyed by
// (flight_date, flight_num), so re-running over the same input set is
// idempotent. Coordinate and duration columns store the rendered strings to
// keep every sink's formatting identical.
// It implements pipeline.ReportSink.
type SQLiteSink struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteSink opens (or creates) the report database and ensures the schema.
func NewSQLiteSink(path string, logger *slog.Logger) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open report db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure report schema: %w", err)
	}
	return &SQLiteSink{db: db, logger: logger}, nil
}

// WriteReport upserts all rows in one transaction.
func (s *SQLiteSink) WriteReport(ctx context.Context, rows []domain.FlightSummary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin report tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, upsert)
	if err != nil {
		return fmt.Errorf("prepare report upsert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		fields := renderRow(row)
		args := make([]any, len(fields))
		for i, f := range fields {
			args[i] = f
		}
		// Altitude columns are integers in the schema; pass them as such.
		args[5] = row.Takeoff.AltitudeFt
		args[10] = row.Landing.AltitudeFt

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("upsert report row %s: %w", row.RowID(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit report tx: %w", err)
	}

	s.logger.Info("report upserted", "rows", len(rows))
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
