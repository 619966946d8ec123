package ephemeris

import "math"

// Planet identifies a body handled by the Keplerian planetary model.
type Planet int

const (
	Mercury Planet = iota
	Venus
	Earth
	Mars
	Jupiter
	Saturn
	numPlanets
)

var planetNames = [numPlanets]string{"mercury", "venus", "earth", "mars", "jupiter", "saturn"}

func (p Planet) String() string {
	if p < 0 || p >= numPlanets {
		return "unknown"
	}
	return planetNames[p]
}

const (
	keplerTolerance     = 1e-12
	keplerMaxIterations = 15
)

// elementRate is a J2000 value and its rate per Julian century.
type elementRate struct {
	value, rate float64
}

func (r elementRate) at(t float64) float64 {
	return r.value + r.rate*t
}

// orbitalElementRates are the Keplerian elements of one planet.
type orbitalElementRates struct {
	a         elementRate // semi-major axis, AU
	e         elementRate // eccentricity
	i         elementRate // inclination, degrees
	l         elementRate // mean longitude, degrees
	perihelia elementRate // longitude of perihelion ϖ, degrees
	node      elementRate // longitude of ascending node Ω, degrees
}

// planetElements holds the approximate elements of Standish (JPL), valid
// 1800-2050. Earth is the Earth-Moon barycenter.
var planetElements = [numPlanets]orbitalElementRates{
	Mercury: {
		a:         elementRate{0.38709927, 0.00000037},
		e:         elementRate{0.20563593, 0.00001906},
		i:         elementRate{7.00497902, -0.00594749},
		l:         elementRate{252.25032350, 149472.67411175},
		perihelia: elementRate{77.45779628, 0.16047689},
		node:      elementRate{48.33076593, -0.12534081},
	},
	Venus: {
		a:         elementRate{0.72333566, 0.00000390},
		e:         elementRate{0.00677672, -0.00004107},
		i:         elementRate{3.39467605, -0.00078890},
		l:         elementRate{181.97909950, 58517.81538729},
		perihelia: elementRate{131.60246718, 0.00268329},
		node:      elementRate{76.67984255, -0.27769418},
	},
	Earth: {
		a:         elementRate{1.00000261, 0.00000562},
		e:         elementRate{0.01671123, -0.00004392},
		i:         elementRate{-0.00001531, -0.01294668},
		l:         elementRate{100.46457166, 35999.37244981},
		perihelia: elementRate{102.93768193, 0.32327364},
		node:      elementRate{0.0, 0.0},
	},
	Mars: {
		a:         elementRate{1.52371034, 0.00001847},
		e:         elementRate{0.09339410, 0.00007882},
		i:         elementRate{1.84969142, -0.00813131},
		l:         elementRate{-4.55343205, 19140.30268499},
		perihelia: elementRate{-23.94362959, 0.44441088},
		node:      elementRate{49.55953891, -0.29257343},
	},
	Jupiter: {
		a:         elementRate{5.20288700, -0.00011607},
		e:         elementRate{0.04838624, -0.00013253},
		i:         elementRate{1.30439695, -0.00183714},
		l:         elementRate{34.39644051, 3034.74612775},
		perihelia: elementRate{14.72847983, 0.21252668},
		node:      elementRate{100.47390909, 0.20469106},
	},
	Saturn: {
		a:         elementRate{9.53667594, -0.00125060},
		e:         elementRate{0.05386179, -0.00050991},
		i:         elementRate{2.48599187, 0.00193609},
		l:         elementRate{49.95424423, 1222.49362201},
		perihelia: elementRate{92.59887831, -0.41897216},
		node:      elementRate{113.66242448, -0.28867794},
	},
}

// orbitalElements are the elements of a planet evaluated at one instant.
type orbitalElements struct {
	a, e, i, l, perihelion, node float64
}

func elementsAt(p Planet, t float64) orbitalElements {
	r := planetElements[p]
	return orbitalElements{
		a:          r.a.at(t),
		e:          r.e.at(t),
		i:          r.i.at(t),
		l:          r.l.at(t),
		perihelion: r.perihelia.at(t),
		node:       r.node.at(t),
	}
}

// meanAnomaly returns M = L − ϖ in degrees, [0, 360).
func (el orbitalElements) meanAnomaly() float64 {
	return NormalizeDegrees(el.l - el.perihelion)
}

// argumentOfPerihelion returns ω = ϖ − Ω in degrees, [0, 360).
func (el orbitalElements) argumentOfPerihelion() float64 {
	return NormalizeDegrees(el.perihelion - el.node)
}

// vec3 is a heliocentric ecliptic position in AU.
type vec3 struct {
	x, y, z float64
}

// SolveKepler solves E − e·sin(E) = M for the eccentric anomaly (radians)
// by Newton-Raphson, stopping once |ΔE| < 1e-12 or after 15 iterations.
func SolveKepler(meanAnomaly, eccentricity float64) float64 {
	ecc := meanAnomaly + eccentricity*math.Sin(meanAnomaly)
	for i := 0; i < keplerMaxIterations; i++ {
		delta := (ecc - eccentricity*math.Sin(ecc) - meanAnomaly) / (1 - eccentricity*math.Cos(ecc))
		ecc -= delta
		if math.Abs(delta) < keplerTolerance {
			break
		}
	}
	return ecc
}

// heliocentric returns the heliocentric ecliptic coordinates of p.
func heliocentric(p Planet, t float64) vec3 {
	el := elementsAt(p, t)
	ecc := SolveKepler(degToRad(el.meanAnomaly()), el.e)

	xp := el.a * (math.Cos(ecc) - el.e)
	yp := el.a * math.Sqrt(1-el.e*el.e) * math.Sin(ecc)

	sw, cw := math.Sincos(degToRad(el.argumentOfPerihelion()))
	sn, cn := math.Sincos(degToRad(el.node))
	si, ci := math.Sincos(degToRad(el.i))

	return vec3{
		x: (cw*cn-sw*sn*ci)*xp + (-sw*cn-cw*sn*ci)*yp,
		y: (cw*sn+sw*cn*ci)*xp + (-sw*sn+cw*cn*ci)*yp,
		z: sw*si*xp + cw*si*yp,
	}
}

// perturbation returns the Jupiter/Saturn great-inequality correction in
// degrees. Other planets are unperturbed.
//
// Terms follow Schlyter's "Computing planetary positions" perturbation
// table: seven longitude terms for Jupiter and five for Saturn.
func perturbation(p Planet, t float64) float64 {
	if p != Jupiter && p != Saturn {
		return 0
	}
	mj := elementsAt(Jupiter, t).meanAnomaly()
	ms := elementsAt(Saturn, t).meanAnomaly()

	if p == Jupiter {
		return -0.332*sinDeg(2*mj-5*ms-67.6) -
			0.056*sinDeg(2*mj-2*ms+21) +
			0.042*sinDeg(3*mj-5*ms+21) -
			0.036*sinDeg(mj-2*ms) +
			0.022*cosDeg(mj-ms) +
			0.023*sinDeg(2*mj-3*ms+52) -
			0.016*sinDeg(mj-5*ms-69)
	}
	return 0.812*sinDeg(2*mj-5*ms-67.6) -
		0.229*cosDeg(2*mj-4*ms-2) +
		0.119*sinDeg(mj-2*ms-3) +
		0.046*sinDeg(2*mj-6*ms-69) +
		0.014*sinDeg(mj-3*ms+32)
}

// geocentricLongitude returns the geocentric ecliptic longitude of p.
func geocentricLongitude(p Planet, t float64) float64 {
	body := heliocentric(p, t)
	earth := heliocentric(Earth, t)
	lon := radToDeg(math.Atan2(body.y-earth.y, body.x-earth.x))
	return NormalizeDegrees(lon + perturbation(p, t))
}

// PlanetPosition returns the geocentric tropical longitude of p and its
// daily motion from a one-day forward difference. Earth has no meaningful
// geocentric position and returns NaN.
func PlanetPosition(p Planet, t float64) BodyPosition {
	if p == Earth || p < 0 || p >= numPlanets {
		return BodyPosition{Longitude: math.NaN(), Speed: math.NaN()}
	}
	lon := geocentricLongitude(p, t)
	next := geocentricLongitude(p, t+1/DaysPerCentury)
	return BodyPosition{
		Longitude: lon,
		Speed:     wrapDelta(next - lon),
	}
}
