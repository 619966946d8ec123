package chart

import "github.com/cocreateceo/Vedic-Astro-sub002/internal/domain/ephemeris"

// Request is a civil birth moment and place as supplied by API callers.
type Request struct {
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	UTCOffsetHours float64 `json:"utcOffsetHours"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
}

// Placement is one chart point decorated with its sign and lunar mansion.
type Placement struct {
	Body           string  `json:"body"`
	Longitude      float64 `json:"longitude"`
	Speed          float64 `json:"speed"`
	SignIndex      int     `json:"signIndex"`
	Sign           string  `json:"sign"`
	DegreeInSign   float64 `json:"degreeInSign"`
	NakshatraIndex int     `json:"nakshatraIndex"`
	Nakshatra      string  `json:"nakshatra"`
	Pada           int     `json:"pada"`
	Retrograde     bool    `json:"retrograde"`
}

// Response is returned to the HTTP transport.
type Response struct {
	Chart         ephemeris.Chart `json:"chart"`
	Placements    []Placement     `json:"placements"`
	CacheHit      bool            `json:"cacheHit"`
	ComputeMicros int64           `json:"computeMicros"`
}
