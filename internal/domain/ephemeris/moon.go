package ephemeris

import "math"

// lunarTerm is one periodic term of the lunar longitude series. The argument
// is d·D + m·M + mp·M′ + f·F; the coefficient is in 1e-6 degrees.
type lunarTerm struct {
	d, m, mp, f float64
	coeff       float64
}

// lunarLongitudeTerms lists the periodic terms for the Moon's longitude
// (Meeus, Astronomical Algorithms, table 47.A).
var lunarLongitudeTerms = [...]lunarTerm{
	{0, 0, 1, 0, 6288774},
	{2, 0, -1, 0, 1274027},
	{2, 0, 0, 0, 658314},
	{0, 0, 2, 0, 213618},
	{0, 1, 0, 0, -185116},
	{0, 0, 0, 2, -114332},
	{2, 0, -2, 0, 58793},
	{2, -1, -1, 0, 57066},
	{2, 0, 1, 0, 53322},
	{2, -1, 0, 0, 45758},
	{0, 1, -1, 0, -40923},
	{1, 0, 0, 0, -34720},
	{0, 1, 1, 0, -30383},
	{2, 0, 0, -2, 15327},
	{0, 0, 1, 2, -12528},
	{0, 0, 1, -2, 10980},
	{4, 0, -1, 0, 10675},
	{0, 0, 3, 0, 10034},
	{4, 0, -2, 0, 8548},
	{2, 1, -1, 0, -7888},
	{2, 1, 0, 0, -6766},
	{1, 0, -1, 0, -5163},
	{1, 1, 0, 0, 4987},
	{2, -1, 1, 0, 4036},
	{2, 0, 2, 0, 3994},
	{4, 0, 0, 0, 3861},
	{2, 0, -3, 0, 3665},
	{0, 1, -2, 0, -2689},
	{2, 0, -1, 2, -2602},
	{2, -1, -2, 0, 2390},
	{1, 0, 1, 0, -2348},
	{2, -2, 0, 0, 2236},
	{0, 1, 2, 0, -2120},
	{0, 2, 0, 0, -2069},
	{2, -2, -1, 0, 2048},
	{2, 0, 1, -2, -1773},
	{2, 0, 0, 2, -1595},
	{4, -1, -1, 0, 1215},
	{0, 0, 2, 2, -1110},
	{3, 0, -1, 0, -892},
	{2, 1, 1, 0, -810},
	{4, -1, -2, 0, 759},
	{0, 2, -1, 0, -713},
	{2, 2, -1, 0, -700},
	{2, 1, -2, 0, 691},
	{2, -1, 0, -2, 596},
	{4, 0, 1, 0, 549},
	{0, 0, 4, 0, 537},
	{4, -1, 0, 0, 520},
	{1, 0, -2, 0, -487},
	{2, 1, 0, -2, -399},
	{0, 0, 2, -2, -381},
	{1, 1, 1, 0, 351},
	{3, 0, -2, 0, -340},
	{4, 0, -3, 0, 330},
	{2, -1, 2, 0, 327},
	{0, 2, 1, 0, -323},
	{1, 1, -1, 0, 299},
	{2, 0, 3, 0, 294},
	{2, 0, -1, -2, 0},
}

// lunarArguments holds the fundamental arguments of the lunar theory in degrees.
type lunarArguments struct {
	meanLongitude   float64 // L′
	elongation      float64 // D
	sunAnomaly      float64 // M
	moonAnomaly     float64 // M′
	argumentOfLat   float64 // F
	eccentricityFac float64 // E
}

func newLunarArguments(t float64) lunarArguments {
	t2, t3, t4 := t*t, t*t*t, t*t*t*t
	return lunarArguments{
		meanLongitude:   218.3164477 + 481267.88123421*t - 0.0015786*t2 + t3/538841 - t4/65194000,
		elongation:      297.8501921 + 445267.1114034*t - 0.0018819*t2 + t3/545868 - t4/113065000,
		sunAnomaly:      357.5291092 + 35999.0502909*t - 0.0001536*t2 + t3/24490000,
		moonAnomaly:     134.9633964 + 477198.8675055*t + 0.0087414*t2 + t3/69699 - t4/14712000,
		argumentOfLat:   93.2720950 + 483202.0175233*t - 0.0036539*t2 - t3/3526000 + t4/863310000,
		eccentricityFac: 1 - 0.002516*t - 0.0000074*t2,
	}
}

// MoonPosition returns the Moon's tropical longitude at T Julian centuries
// from J2000.0. The speed is a four-term closed form in M′ and D rather than
// a derivative of the series.
func MoonPosition(t float64) BodyPosition {
	args := newLunarArguments(t)
	e := args.eccentricityFac

	var sum float64
	for _, term := range lunarLongitudeTerms {
		arg := term.d*args.elongation + term.m*args.sunAnomaly + term.mp*args.moonAnomaly + term.f*args.argumentOfLat
		v := term.coeff * sinDeg(NormalizeDegrees(arg))
		switch math.Abs(term.m) {
		case 1:
			v *= e
		case 2:
			v *= e * e
		}
		sum += v
	}

	a1 := NormalizeDegrees(119.75 + 131.849*t)
	a2 := NormalizeDegrees(53.09 + 479264.290*t)
	sum += 3958*sinDeg(a1) +
		1962*sinDeg(NormalizeDegrees(args.meanLongitude-args.argumentOfLat)) +
		318*sinDeg(a2)

	d := degToRad(NormalizeDegrees(args.elongation))
	mp := degToRad(NormalizeDegrees(args.moonAnomaly))

	return BodyPosition{
		Longitude: NormalizeDegrees(args.meanLongitude + sum/1e6),
		Speed:     13.176396 + 1.434006*math.Cos(mp) + 0.280135*math.Cos(2*d) + 0.251632*math.Cos(2*d-mp),
	}
}
