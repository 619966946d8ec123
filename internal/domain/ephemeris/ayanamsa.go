package ephemeris

import "math"

const (
	lahiriAtJ2000       = 23.856
	lahiriRateArcsec    = 50.2888
	daysPerJulianYear   = 365.25
	arcsecondsPerDegree = 3600.0
)

// LahiriAyanamsa returns the linear Lahiri ayanamsa in degrees for a Julian Day.
func LahiriAyanamsa(jd float64) float64 {
	years := (jd - J2000) / daysPerJulianYear
	return lahiriAtJ2000 + years*(lahiriRateArcsec/arcsecondsPerDegree)
}

// Sidereal converts a tropical longitude to the sidereal zodiac.
func Sidereal(tropical, ayanamsa float64) float64 {
	lon := math.Mod(math.Mod(tropical-ayanamsa, 360)+360, 360)
	if lon >= 360 {
		lon -= 360
	}
	return lon
}
