package ephemeris

// NodeDailyMotion is the mean daily motion of the lunar nodes in degrees.
// The nodes are always retrograde.
const NodeDailyMotion = -0.05295

// RahuPosition returns the mean ascending lunar node.
func RahuPosition(t float64) BodyPosition {
	t2, t3, t4 := t*t, t*t*t, t*t*t*t
	lon := 125.0445479 - 1934.1362891*t + 0.0020754*t2 + t3/467441 - t4/60616000
	return BodyPosition{Longitude: NormalizeDegrees(lon), Speed: NodeDailyMotion}
}

// KetuPosition returns the descending node, always opposite Rahu.
func KetuPosition(t float64) BodyPosition {
	rahu := RahuPosition(t)
	return BodyPosition{Longitude: NormalizeDegrees(rahu.Longitude + 180), Speed: rahu.Speed}
}
