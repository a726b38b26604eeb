// Package domain derives discrete flight segments from raw ADS-B position
// traces.
//
// # Data Source
//
// Traces arrive as one JSON file per aircraft per calendar day, produced by
// the upstream download/cache collaborator. Each file carries a base epoch
// timestamp anchoring the day and a "trace" array of positional tuples:
//
//	[time_offset_seconds, lat, lon, altitude_ft, ...]
//
// Trailing tuple fields beyond altitude (ground speed, heading, squawk, and
// whatever else the receiver network tacks on) are ignored. Altitude may be
// null or a non-numeric marker when barometric telemetry is absent.
//
// The cache occasionally holds an HTML error page or an error JSON object
// saved in place of a real trace. Such days parse to an error and contribute
// zero segments; they never abort a run.
//
// # Segmentation Model
//
// A sample is "ground" when its altitude is below [GroundThresholdFt]
// (2000 ft). This single threshold is the only ground/air signal; it is
// deliberately coarse because GPS/barometric noise near the boundary is
// absorbed by the downstream duration and point-count filters rather than
// by a higher-fidelity classifier.
//
// A takeoff is a ground-to-air edge in index order. Each takeoff opens a new
// flight number, counting from 1 within the day. A segment's end is implicit:
// the last consecutive airborne point before the next takeoff or end of day.
// There is no landing-edge detection: coverage is routinely lost on final
// approach, so the landing endpoint is simply the last airborne sample.
//
// # Site Geofences
//
// Takeoff and landing endpoints are named by an ordered chain of rectangular
// geofence rules covering the sites this fleet operates between:
//
//	Maputo:  ±0.5° around (-25.9, 32.57), both roles.
//	Pemba:   ±0.5° around (-12.99, 40.52), both roles.
//	Afungi:  ±1.0° around (-10.82, 40.53) for takeoffs.
//	         Landings additionally require altitude > 3000 ft, or fall in the
//	         broader lat (-12, -10) x lon (39.5, 41.5) region above 5000 ft.
//
// The relaxed Afungi landing rule compensates for ADS-B coverage loss on
// final approach: the last recorded point of a real Afungi landing is
// typically still at altitude, well away from the runway. "Last known
// position, still high, in the general vicinity" counts as an Afungi landing.
//
// First matching rule wins; no match yields "Unknown".
//
// # Noise Rejection
//
// A candidate segment becomes a reportable flight only when it spans more
// than 15 minutes airborne and more than 50 points. Both gates reject the
// short altitude excursions a single noisy sample can fabricate. A day with
// no retained segment is a normal outcome, not an error.
package domain
