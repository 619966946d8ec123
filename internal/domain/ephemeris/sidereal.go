package ephemeris

import "math"

// GreenwichMeanSiderealTime returns GMST in degrees, [0, 360).
func GreenwichMeanSiderealTime(jd float64) float64 {
	jd0 := math.Floor(jd-0.5) + 0.5
	ut := (jd - jd0) * 24
	t0 := JulianCenturies(jd0)

	gmst := 100.46061837 +
		36000.770053608*t0 +
		0.000387933*t0*t0 -
		t0*t0*t0/38710000 +
		360.98564736629*(ut/24)
	return NormalizeDegrees(gmst)
}

// LocalSiderealTime returns LST in degrees for an east-positive longitude.
func LocalSiderealTime(jd, lng float64) float64 {
	return NormalizeDegrees(GreenwichMeanSiderealTime(jd) + lng)
}

// MeanObliquity returns the mean obliquity of the ecliptic in degrees.
func MeanObliquity(t float64) float64 {
	return 23.439291 - 0.0130042*t - 0.000000164*t*t + 0.000000504*t*t*t
}
