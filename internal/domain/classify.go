package domain

// GroundThresholdFt is the altitude below which a sample counts as on the
// ground or taxiing. The sole ground/air signal; see the package doc for why
// it is deliberately coarse.
const GroundThresholdFt = 2000

// IsGround reports whether a sample is on the ground. A point ingested
// without altitude carries AltitudeFt 0 and therefore classifies as ground.
func IsGround(p TrackPoint) bool {
	return p.AltitudeFt < GroundThresholdFt
}

// Label attaches the ground/air classification to each point, preserving
// index order.
func Label(points []TrackPoint) []LabeledPoint {
	labeled := make([]LabeledPoint, len(points))
	for i, p := range points {
		labeled[i] = LabeledPoint{TrackPoint: p, IsGround: IsGround(p)}
	}
	return labeled
}
