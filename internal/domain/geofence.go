package domain

import "math"

// EndpointRole distinguishes takeoff from landing when classifying an
// endpoint's location. Some site rules differ by role.
type EndpointRole string

const (
	RoleTakeoff EndpointRole = "takeoff"
	RoleLanding EndpointRole = "landing"
)

// UnknownLocation is returned when no geofence rule matches.
const UnknownLocation = "Unknown"

// unknownAltitudeFt stands in for a missing altitude during classification.
// Sentinel-high so altitude-gated rules pass: a valid Afungi landing must not
// be rejected merely because altitude telemetry was absent on the last point.
const unknownAltitudeFt = math.MaxInt32

// ClassifyLocation maps an endpoint to a site name. Rule evaluation is
// ordered and the first match wins, so the result is deterministic for a
// fixed input. See the package doc for the rules and the rationale behind
// the relaxed Afungi landing geofence.
func ClassifyLocation(e Endpoint, role EndpointRole) string {
	alt := e.AltitudeFt
	if !e.AltitudeKnown {
		alt = unknownAltitudeFt
	}

	switch {
	case within(e.Lat, e.Lon, -25.9, 32.57, 0.5):
		return "Maputo"
	case within(e.Lat, e.Lon, -12.99, 40.52, 0.5):
		return "Pemba"
	case role == RoleTakeoff && within(e.Lat, e.Lon, -10.82, 40.53, 1.0):
		// Ground-truth departures are reliably tracked: no altitude gate.
		return "Afungi"
	case role == RoleLanding && within(e.Lat, e.Lon, -10.82, 40.53, 1.0) && alt > 3000:
		return "Afungi"
	case role == RoleLanding && e.Lat > -12.0 && e.Lat < -10.0 && e.Lon > 39.5 && e.Lon < 41.5 && alt > 5000:
		// Coverage is lost on final approach to Afungi, so a last known
		// position still at altitude in the general vicinity counts.
		return "Afungi"
	default:
		return UnknownLocation
	}
}

// within reports whether (lat, lon) falls inside the square box of the given
// half-width in degrees centred on (clat, clon).
func within(lat, lon, clat, clon, tol float64) bool {
	return math.Abs(lat-clat) < tol && math.Abs(lon-clon) < tol
}
