// Command genmock writes synthetic day-trace fixtures in the shape the
// download collaborator caches, one <YYYY-MM-DD>.json per day. It flies a
// configurable number of hops between the known sites, so the generated days
// exercise the real geofences and retention thresholds end to end.
//
// Usage:
//
//	go run ./cmd/genmock -out testdata/traces -start 2024-05-14 -days 3 -flights 2 -seed 7
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

type site struct {
	name     string
	lat, lon float64
}

var sites = []site{
	{"Maputo", -25.92, 32.57},
	{"Pemba", -12.99, 40.52},
	{"Afungi", -10.82, 40.53},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output directory for day trace JSON files")
	start := flag.String("start", "2024-05-14", "first day (YYYY-MM-DD)")
	days := flag.Int("days", 3, "number of consecutive days to generate")
	flights := flag.Int("flights", 2, "flights per day")
	seed := flag.Int64("seed", 1, "PRNG seed for reproducible fixtures")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	firstDay, err := time.Parse(time.DateOnly, *start)
	if err != nil {
		return fmt.Errorf("invalid -start: %w", err)
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	rng := rand.New(rand.NewSource(*seed))
	for d := 0; d < *days; d++ {
		day := firstDay.AddDate(0, 0, d)
		payload, err := makeDayTrace(rng, day, *flights)
		if err != nil {
			return fmt.Errorf("generate %s: %w", day.Format(time.DateOnly), err)
		}
		path := filepath.Join(*out, day.Format(time.DateOnly)+".json")
		if err := os.WriteFile(path, payload, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		log.Printf("wrote %s (%d flights)", path, *flights)
	}

	return nil
}

// makeDayTrace renders one day's trace: per flight a short ground roll at the
// origin, a cruise of 70 samples at 30-second spacing, and either a tracked
// landing roll or, when the destination is Afungi, a coverage-loss cutoff
// that leaves the last sample still at altitude.
func makeDayTrace(rng *rand.Rand, day time.Time, flights int) ([]byte, error) {
	base := day.Unix()
	var trace [][]any
	offset := float64(6 * 3600) // first movement around 06:00 local

	for f := 0; f < flights; f++ {
		origin := sites[(f)%len(sites)]
		dest := sites[(f+1)%len(sites)]

		// Ground roll at the origin.
		for n, c := 0, 3+rng.Intn(3); n < c; n++ {
			trace = append(trace, tuple(offset, jitter(rng, origin.lat), jitter(rng, origin.lon), 100+rng.Intn(400)))
			offset += 30
		}

		// Cruise: 70 samples, 34.5 minutes, comfortably past both gates.
		const cruiseSamples = 70
		for i := 0; i < cruiseSamples; i++ {
			frac := float64(i) / float64(cruiseSamples-1)
			lat := origin.lat + (dest.lat-origin.lat)*frac
			lon := origin.lon + (dest.lon-origin.lon)*frac
			alt := cruiseAltitude(frac)
			trace = append(trace, tuple(offset, jitter(rng, lat), jitter(rng, lon), alt))
			offset += 30
		}

		if dest.name == "Afungi" {
			// Coverage loss on final approach: no ground samples at all.
			offset += 1800
			continue
		}

		for n, c := 0, 2+rng.Intn(3); n < c; n++ {
			trace = append(trace, tuple(offset, jitter(rng, dest.lat), jitter(rng, dest.lon), 150+rng.Intn(300)))
			offset += 30
		}
		offset += 1800 // turnaround on the ground
	}

	return json.Marshal(map[string]any{
		"timestamp": base,
		"trace":     trace,
	})
}

// cruiseAltitude ramps from takeoff through an 18000 ft cruise back toward
// approach, never dipping below the airborne threshold mid-flight.
func cruiseAltitude(frac float64) int {
	switch {
	case frac < 0.2:
		return 2500 + int(frac/0.2*15500)
	case frac > 0.8:
		return 18000 - int((frac-0.8)/0.2*11000)
	default:
		return 18000
	}
}

func jitter(rng *rand.Rand, v float64) float64 {
	return v + (rng.Float64()-0.5)*0.02
}

func tuple(offset, lat, lon float64, alt int) []any {
	return []any{offset, round6(lat), round6(lon), alt}
}

func round6(v float64) float64 {
	return float64(int64(v*1e6)) / 1e6
}
