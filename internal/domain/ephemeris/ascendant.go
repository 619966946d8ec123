package ephemeris

import "math"

// Ascendant returns the tropical ecliptic degree rising on the eastern
// horizon for an observer at lat/lng (degrees, +N/+E).
//
// tan(lat) diverges at the poles; callers must keep |lat| < 90.
func Ascendant(jd, lat, lng float64) float64 {
	ramc := degToRad(LocalSiderealTime(jd, lng))
	eps := degToRad(MeanObliquity(JulianCenturies(jd)))
	phi := degToRad(lat)

	y := math.Cos(ramc)
	x := -(math.Sin(eps)*math.Tan(phi) + math.Cos(eps)*math.Sin(ramc))
	return NormalizeDegrees(radToDeg(math.Atan2(y, x)))
}
