package chart

import (
	"math"

	"github.com/cocreateceo/Vedic-Astro-sub002/internal/domain/ephemeris"
)

// padaSpan is one quarter of a lunar mansion, 3°20′.
const padaSpan = 360.0 / 108

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

var nakshatraNames = [27]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni", "Uttara Phalguni",
	"Hasta", "Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha",
	"Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana", "Dhanishta", "Shatabhisha",
	"Purva Bhadrapada", "Uttara Bhadrapada", "Revati",
}

// SignName returns the zodiac sign for index 0..11.
func SignName(index int) string {
	if index < 0 || index >= len(signNames) {
		return ""
	}
	return signNames[index]
}

// nakshatraOf returns the lunar mansion index (0..26) and its quarter (1..4).
// Both derive from one quarter index so they never disagree at a boundary.
func nakshatraOf(longitude float64) (int, int) {
	quarter := int(math.Floor(longitude / padaSpan))
	if quarter > 107 {
		quarter = 107
	}
	if quarter < 0 {
		quarter = 0
	}
	return quarter / 4, quarter%4 + 1
}

// canRetrograde lists the bodies whose negative speed marks retrograde motion.
// The nodes always move backwards and the luminaries never do.
func canRetrograde(body ephemeris.Body) bool {
	switch body {
	case ephemeris.BodyMercury, ephemeris.BodyVenus, ephemeris.BodyMars, ephemeris.BodyJupiter, ephemeris.BodySaturn:
		return true
	default:
		return false
	}
}

// Placements decorates every chart point with its sign and nakshatra.
func Placements(c ephemeris.Chart) []Placement {
	bodies := ephemeris.Bodies()
	out := make([]Placement, 0, len(bodies))
	for _, body := range bodies {
		pos := c.Position(body)
		nakshatra, pada := nakshatraOf(pos.Longitude)
		out = append(out, Placement{
			Body:           body.String(),
			Longitude:      pos.Longitude,
			Speed:          pos.Speed,
			SignIndex:      pos.SignIndex,
			Sign:           SignName(pos.SignIndex),
			DegreeInSign:   pos.DegreeInSign,
			NakshatraIndex: nakshatra,
			Nakshatra:      nakshatraNames[nakshatra],
			Pada:           pada,
			Retrograde:     canRetrograde(body) && pos.Speed < 0,
		})
	}
	return out
}
