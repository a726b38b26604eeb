// Package report persists the assembled flight-summary dataset. Two sinks
// share the same row rendering so the CSV file and the SQLite table agree
// byte for byte.
package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/couchcryptid/flight-trace-etl/internal/domain"
)

// columns is the persisted schema, in order.
var columns = []string{
	"flight_date", "flight_num",
	"takeoff_timestamp", "takeoff_lat", "takeoff_lng", "takeoff_altitude_ft", "takeoff_location",
	"landing_timestamp", "landing_lat", "landing_lng", "landing_altitude_ft", "landing_location",
	"flight_duration_minutes",
}

// renderRow renders one summary to its persisted string fields. Altitude is
// 0 when unknown; the sentinel used during classification never leaks into
// the report.
func renderRow(s domain.FlightSummary) []string {
	return []string{
		s.FlightDate.Format("2006-01-02"),
		strconv.Itoa(s.FlightNum),
		domain.FormatTimestamp(s.Takeoff.Timestamp),
		domain.FormatCoord(s.Takeoff.Lat),
		domain.FormatCoord(s.Takeoff.Lon),
		strconv.Itoa(s.Takeoff.AltitudeFt),
		s.Takeoff.Location,
		domain.FormatTimestamp(s.Landing.Timestamp),
		domain.FormatCoord(s.Landing.Lat),
		domain.FormatCoord(s.Landing.Lon),
		strconv.Itoa(s.Landing.AltitudeFt),
		s.Landing.Location,
		domain.FormatDuration(s.DurationMinutes),
	}
}

// CSVSink writes the report to a CSV file, replacing it wholesale on every
// write so re-runs over identical input leave a byte-identical file.
// It implements pipeline.ReportSink.
type CSVSink struct {
	path   string
	logger *slog.Logger
}

// NewCSVSink creates a CSV sink writing to path.
func NewCSVSink(path string, logger *slog.Logger) *CSVSink {
	return &CSVSink{path: path, logger: logger}
}

// WriteReport renders all rows to a temp file in the target directory and
// renames it into place, so a crash mid-write never leaves a torn report.
func (s *CSVSink) WriteReport(ctx context.Context, rows []domain.FlightSummary) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create report temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(columns); err != nil {
		tmp.Close()
		return fmt.Errorf("write report header: %w", err)
	}
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			tmp.Close()
			return err
		}
		if err := w.Write(renderRow(row)); err != nil {
			tmp.Close()
			return fmt.Errorf("write report row %s: %w", row.RowID(), err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close report temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace report file: %w", err)
	}

	s.logger.Info("report written", "path", s.path, "rows", len(rows))
	return nil
}
