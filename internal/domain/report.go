package domain

import (
	"fmt"
	"sort"
	"time"
)

// SortSummaries orders report rows by flight date ascending, then flight
// number ascending. The sort is stable so re-running over the same input set
// renders byte-identical output.
func SortSummaries(rows []FlightSummary) {
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].FlightDate.Equal(rows[j].FlightDate) {
			return rows[i].FlightDate.Before(rows[j].FlightDate)
		}
		return rows[i].FlightNum < rows[j].FlightNum
	})
}

// RowID is the summary's identity within a report: "<flight_date>-<flight_num>".
// Used as the message key on the publish path and handy in log lines.
func (s FlightSummary) RowID() string {
	return fmt.Sprintf("%s-%d", s.FlightDate.Format(time.DateOnly), s.FlightNum)
}

// Persisted field renderings, shared by every sink so the CSV file, the
// SQLite table, and published messages agree byte for byte.

// FormatTimestamp renders an endpoint time as ISO-8601 UTC, second precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}

// FormatCoord renders a latitude or longitude with six decimal places.
func FormatCoord(v float64) string {
	return fmt.Sprintf("%.6f", v)
}

// FormatDuration renders a flight duration in minutes with one decimal place.
func FormatDuration(minutes float64) string {
	return fmt.Sprintf("%.1f", minutes)
}
