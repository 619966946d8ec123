package ephemeris

import "math"

// BirthInput is a civil birth moment and place. It is trusted as given.
type BirthInput struct {
	Date           string  // YYYY-MM-DD
	Time           string  // HH:MM
	UTCOffsetHours float64 // signed, east positive
	Lat            float64 // degrees, +N
	Lng            float64 // degrees, +E
}

// NormalizedPosition is a sidereal longitude broken into sign and degree.
type NormalizedPosition struct {
	Longitude    float64 `json:"longitude"`
	Speed        float64 `json:"speed"`
	SignIndex    int     `json:"signIndex"`
	DegreeInSign float64 `json:"degreeInSign"`
}

// Normalize splits a longitude into its sign index and degree within the
// sign. A non-finite longitude yields SignIndex -1.
func Normalize(pos BodyPosition) NormalizedPosition {
	if !isFinite(pos.Longitude) {
		return NormalizedPosition{
			Longitude:    pos.Longitude,
			Speed:        pos.Speed,
			SignIndex:    -1,
			DegreeInSign: math.NaN(),
		}
	}
	lon := NormalizeDegrees(pos.Longitude)
	sign := int(math.Floor(lon/30)) % 12
	return NormalizedPosition{
		Longitude:    lon,
		Speed:        pos.Speed,
		SignIndex:    sign,
		DegreeInSign: lon - float64(sign)*30,
	}
}

// Body names a chart point.
type Body int

const (
	BodySun Body = iota
	BodyMoon
	BodyMars
	BodyMercury
	BodyJupiter
	BodyVenus
	BodySaturn
	BodyRahu
	BodyKetu
	BodyAscendant
	numBodies
)

var bodyNames = [numBodies]string{
	"sun", "moon", "mars", "mercury", "jupiter", "venus", "saturn", "rahu", "ketu", "ascendant",
}

func (b Body) String() string {
	if b < 0 || b >= numBodies {
		return "unknown"
	}
	return bodyNames[b]
}

// Bodies lists every chart point in chart order.
func Bodies() []Body {
	out := make([]Body, numBodies)
	for i := range out {
		out[i] = Body(i)
	}
	return out
}

// Chart is the sidereal birth chart. Field names are part of the JSON
// contract consumed by rule tables and renderers.
type Chart struct {
	Sun       NormalizedPosition `json:"sun"`
	Moon      NormalizedPosition `json:"moon"`
	Mars      NormalizedPosition `json:"mars"`
	Mercury   NormalizedPosition `json:"mercury"`
	Jupiter   NormalizedPosition `json:"jupiter"`
	Venus     NormalizedPosition `json:"venus"`
	Saturn    NormalizedPosition `json:"saturn"`
	Rahu      NormalizedPosition `json:"rahu"`
	Ketu      NormalizedPosition `json:"ketu"`
	Ascendant NormalizedPosition `json:"ascendant"`
	Ayanamsa  float64            `json:"ayanamsa"`
	JulianDay float64            `json:"julianDay"`
}

// Position returns the placement of b.
func (c Chart) Position(b Body) NormalizedPosition {
	switch b {
	case BodySun:
		return c.Sun
	case BodyMoon:
		return c.Moon
	case BodyMars:
		return c.Mars
	case BodyMercury:
		return c.Mercury
	case BodyJupiter:
		return c.Jupiter
	case BodyVenus:
		return c.Venus
	case BodySaturn:
		return c.Saturn
	case BodyRahu:
		return c.Rahu
	case BodyKetu:
		return c.Ketu
	case BodyAscendant:
		return c.Ascendant
	default:
		return NormalizedPosition{Longitude: math.NaN(), Speed: math.NaN(), SignIndex: -1, DegreeInSign: math.NaN()}
	}
}

// Valid reports whether every numeric field is finite. Malformed input
// produces a chart full of NaN rather than an error.
func (c Chart) Valid() bool {
	if !isFinite(c.Ayanamsa) || !isFinite(c.JulianDay) {
		return false
	}
	for _, b := range Bodies() {
		pos := c.Position(b)
		if !isFinite(pos.Longitude) || !isFinite(pos.Speed) || pos.SignIndex < 0 {
			return false
		}
	}
	return true
}

// ComputeChart computes the Lahiri sidereal chart for a birth moment.
func ComputeChart(in BirthInput) Chart {
	jd := JulianDayFromCivil(in.Date, in.Time, in.UTCOffsetHours)
	t := JulianCenturies(jd)
	ayanamsa := LahiriAyanamsa(jd)

	sidereal := func(pos BodyPosition) NormalizedPosition {
		pos.Longitude = Sidereal(pos.Longitude, ayanamsa)
		return Normalize(pos)
	}

	return Chart{
		Sun:       sidereal(SunPosition(t)),
		Moon:      sidereal(MoonPosition(t)),
		Mars:      sidereal(PlanetPosition(Mars, t)),
		Mercury:   sidereal(PlanetPosition(Mercury, t)),
		Jupiter:   sidereal(PlanetPosition(Jupiter, t)),
		Venus:     sidereal(PlanetPosition(Venus, t)),
		Saturn:    sidereal(PlanetPosition(Saturn, t)),
		Rahu:      sidereal(RahuPosition(t)),
		Ketu:      sidereal(KetuPosition(t)),
		Ascendant: sidereal(BodyPosition{Longitude: Ascendant(jd, in.Lat, in.Lng)}),
		Ayanamsa:  ayanamsa,
		JulianDay: jd,
	}
}
