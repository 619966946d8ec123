package ephemeris

import "math"

const (
	// J2000 is the Julian Day of the J2000.0 epoch.
	J2000 = 2451545.0
	// DaysPerCentury is the length of a Julian century in days.
	DaysPerCentury = 36525.0
)

// NormalizeDegrees reduces an angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// -1e-15 + 360 rounds to 360.
	if deg >= 360 {
		deg -= 360
	}
	return deg
}

// wrapDelta folds a longitude difference into (-180, 180].
func wrapDelta(deg float64) float64 {
	switch {
	case deg > 180:
		return deg - 360
	case deg <= -180:
		return deg + 360
	default:
		return deg
	}
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

func sinDeg(deg float64) float64 {
	return math.Sin(degToRad(deg))
}

func cosDeg(deg float64) float64 {
	return math.Cos(degToRad(deg))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
