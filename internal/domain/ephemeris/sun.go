package ephemeris

import "math"

// BodyPosition is the raw output of a body model in its native (tropical) frame.
type BodyPosition struct {
	Longitude float64 // degrees, [0, 360)
	Speed     float64 // degrees/day, negative when retrograde
}

// SunPosition returns the Sun's apparent tropical longitude at T Julian
// centuries from J2000.0.
//
// The daily speed is a separate closed-form approximation of the orbital
// velocity and is not the derivative of the longitude series.
func SunPosition(t float64) BodyPosition {
	m := degToRad(NormalizeDegrees(357.52911 + 35999.05029*t - 0.0001537*t*t))

	center := (1.914602-0.004817*t-0.000014*t*t)*math.Sin(m) +
		(0.019993-0.000101*t)*math.Sin(2*m) +
		0.000289*math.Sin(3*m)

	l0 := 280.46646 + 36000.76983*t + 0.0003032*t*t
	omega := 125.04 - 1934.136*t

	return BodyPosition{
		Longitude: NormalizeDegrees(l0 + center - 0.00569 - 0.00478*sinDeg(omega)),
		Speed:     0.9856 + 0.0335*math.Cos(m) + 0.0003*math.Cos(2*m),
	}
}
