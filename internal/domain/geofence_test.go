package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyLocation(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		alt      int
		known    bool
		role     EndpointRole
		want     string
	}{
		{"Maputo takeoff", -25.92, 32.58, 150, true, RoleTakeoff, "Maputo"},
		{"Maputo landing", -25.88, 32.55, 400, true, RoleLanding, "Maputo"},
		{"Pemba takeoff", -12.99, 40.52, 300, true, RoleTakeoff, "Pemba"},
		{"Pemba landing at box edge", -13.40, 40.90, 200, true, RoleLanding, "Pemba"},
		{"Afungi takeoff low altitude", -10.82, 40.53, 120, true, RoleTakeoff, "Afungi"},
		{"Afungi takeoff in wide box at altitude", -10.5, 40.4, 4000, true, RoleTakeoff, "Afungi"},
		{"Afungi landing in wide box above gate", -10.5, 40.4, 4000, true, RoleLanding, "Afungi"},
		{"Afungi landing in wide box below gate", -10.5, 40.4, 2500, true, RoleLanding, "Unknown"},
		{"Afungi landing in broad region above 5000", -11.9, 39.6, 6500, true, RoleLanding, "Afungi"},
		{"Afungi landing in broad region below 5000", -11.9, 39.6, 4500, true, RoleLanding, "Unknown"},
		{"broad region does not apply to takeoffs", -11.9, 39.6, 6500, true, RoleTakeoff, "Unknown"},
		{"unknown altitude passes the landing gate", -10.5, 40.4, 0, false, RoleLanding, "Afungi"},
		{"unknown altitude passes the broad region gate", -11.9, 39.6, 0, false, RoleLanding, "Afungi"},
		{"middle of nowhere", -17.0, 35.0, 30000, true, RoleLanding, "Unknown"},
		{"ocean point outside every box", 0, 0, 0, true, RoleTakeoff, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Endpoint{Lat: tt.lat, Lon: tt.lon, AltitudeFt: tt.alt, AltitudeKnown: tt.known}
			assert.Equal(t, tt.want, ClassifyLocation(e, tt.role))
		})
	}
}

func TestClassifyLocationDeterministic(t *testing.T) {
	e := Endpoint{Lat: -10.5, Lon: 40.4, AltitudeFt: 4000, AltitudeKnown: true}
	first := ClassifyLocation(e, RoleLanding)
	for n := 0; n < 10; n++ {
		assert.Equal(t, first, ClassifyLocation(e, RoleLanding))
	}
}

func TestClassifyLocationOrderSensitive(t *testing.T) {
	// Pemba sits inside no Afungi box, but a point near the Pemba centre must
	// resolve by the earlier Pemba rule even at altitudes that would satisfy
	// a later gate.
	e := Endpoint{Lat: -12.99, Lon: 40.52, AltitudeFt: 9000, AltitudeKnown: true}
	assert.Equal(t, "Pemba", ClassifyLocation(e, RoleLanding))
}
