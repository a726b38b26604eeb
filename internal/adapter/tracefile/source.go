// Package tracefile reads the per-day raw trace JSON files that the
// download/cache collaborator leaves in a local directory, one
// <YYYY-MM-DD>.json per calendar day.
package tracefile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Source lists and reads day trace files from a directory.
// It implements pipeline.TraceSource.
type Source struct {
	dir    string
	logger *slog.Logger
}

// NewSource creates a Source over the given trace directory.
func NewSource(dir string, logger *slog.Logger) *Source {
	return &Source{dir: dir, logger: logger}
}

// ListDays returns the calendar days present in the directory, ascending.
// Files whose names do not parse as <YYYY-MM-DD>.json are ignored; the
// collaborator drops partial downloads and lockfiles alongside the data.
func (s *Source) ListDays(_ context.Context) ([]time.Time, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read trace dir: %w", err)
	}

	var days []time.Time
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		day, ok := dayFromFilename(e.Name())
		if !ok {
			s.logger.Debug("ignoring non-trace file", "name", e.Name())
			continue
		}
		days = append(days, day)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days, nil
}

// Fetch reads one day's raw payload. The payload is returned as-is; parsing
// and malformed-input handling belong to the ingester.
func (s *Source) Fetch(_ context.Context, day time.Time) ([]byte, error) {
	payload, err := os.ReadFile(s.path(day))
	if err != nil {
		return nil, fmt.Errorf("read trace file: %w", err)
	}
	return payload, nil
}

func (s *Source) path(day time.Time) string {
	return filepath.Join(s.dir, day.Format(time.DateOnly)+".json")
}

func dayFromFilename(name string) (time.Time, bool) {
	if filepath.Ext(name) != ".json" {
		return time.Time{}, false
	}
	day, err := time.Parse(time.DateOnly, name[:len(name)-len(".json")])
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}
