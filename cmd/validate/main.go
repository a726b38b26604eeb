// Command validate re-checks a produced flight report against the pipeline's
// guaranteed properties: retention thresholds, contiguous per-day flight
// numbering, global row ordering, and field formats. Useful after schema or
// threshold changes to confirm an existing report is still consistent.
//
// Usage:
//
//	go run ./cmd/validate -report flight_report.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// row is one parsed report row; only the fields the invariants touch.
type row struct {
	line      int
	date      time.Time
	flightNum int
	takeoffTS time.Time
	landingTS time.Time
	duration  float64
}

func main() {
	reportPath := flag.String("report", "", "path to the flight report CSV")
	flag.Parse()

	if *reportPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*reportPath); code != 0 {
		os.Exit(code)
	}
}

func run(reportPath string) int {
	fmt.Println("=== Flight Report Integrity Validation ===")
	fmt.Println()

	rows, err := loadReport(reportPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load report: %v\n", err)
		return 1
	}
	fmt.Printf("loaded %d rows from %s\n", len(rows), reportPath)

	phases := []*phase{
		validateRetention(rows),
		validateNumbering(rows),
		validateOrdering(rows),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-36s %s\n", p.name, status)
		for _, e := range p.errors {
			fmt.Printf("    - %s\n", e)
		}
	}

	fmt.Println()
	if !allPassed {
		fmt.Println("validation FAILED")
		return 1
	}
	fmt.Println("validation passed")
	return 0
}

func loadReport(path string) ([]row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty report")
	}

	rows := make([]row, 0, len(records)-1)
	for i, rec := range records[1:] {
		line := i + 2
		if len(rec) != 13 {
			return nil, fmt.Errorf("line %d: expected 13 columns, got %d", line, len(rec))
		}

		date, err := time.Parse(time.DateOnly, rec[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: flight_date: %w", line, err)
		}
		num, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: flight_num: %w", line, err)
		}
		takeoff, err := time.Parse(time.RFC3339, rec[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: takeoff_timestamp: %w", line, err)
		}
		landing, err := time.Parse(time.RFC3339, rec[7])
		if err != nil {
			return nil, fmt.Errorf("line %d: landing_timestamp: %w", line, err)
		}
		duration, err := strconv.ParseFloat(rec[12], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: flight_duration_minutes: %w", line, err)
		}

		rows = append(rows, row{
			line:      line,
			date:      date,
			flightNum: num,
			takeoffTS: takeoff,
			landingTS: landing,
			duration:  duration,
		})
	}
	return rows, nil
}

// validateRetention checks that every persisted row cleared the filter: more
// than 15 minutes airborne, flight_num at least 1, landing not before takeoff.
func validateRetention(rows []row) *phase {
	p := &phase{name: "retention thresholds"}
	for _, r := range rows {
		if r.duration <= 15 {
			p.errorf("line %d: duration %.1f min is not above the 15 minute gate", r.line, r.duration)
		}
		if r.flightNum < 1 {
			p.errorf("line %d: flight_num %d below 1", r.line, r.flightNum)
		}
		if r.landingTS.Before(r.takeoffTS) {
			p.errorf("line %d: landing precedes takeoff", r.line)
		}
	}
	return p
}

// validateNumbering checks that flight numbers within each day form a
// contiguous 1..K sequence with no gaps or duplicates.
func validateNumbering(rows []row) *phase {
	p := &phase{name: "per-day flight numbering"}
	perDay := map[string][]int{}
	for _, r := range rows {
		day := r.date.Format(time.DateOnly)
		perDay[day] = append(perDay[day], r.flightNum)
	}
	for day, nums := range perDay {
		seen := map[int]bool{}
		maxNum := 0
		for _, n := range nums {
			if seen[n] {
				p.errorf("%s: duplicate flight_num %d", day, n)
			}
			seen[n] = true
			if n > maxNum {
				maxNum = n
			}
		}
		for n := 1; n <= maxNum; n++ {
			if !seen[n] {
				p.errorf("%s: missing flight_num %d of %d", day, n, maxNum)
			}
		}
	}
	return p
}

// validateOrdering checks the global (flight_date, flight_num) ascending order.
func validateOrdering(rows []row) *phase {
	p := &phase{name: "row ordering"}
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if cur.date.Before(prev.date) ||
			(cur.date.Equal(prev.date) && cur.flightNum <= prev.flightNum) {
			p.errorf("line %d: row out of order after line %d", cur.line, prev.line)
		}
	}
	return p
}
