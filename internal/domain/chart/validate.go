package chart

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cocreateceo/Vedic-Astro-sub002/internal/domain/ephemeris"
	apperrors "github.com/cocreateceo/Vedic-Astro-sub002/pkg/errors"
)

const maxUTCOffsetHours = 14

var clockLayouts = []string{"15:04", "15:04:05"}

// toBirthInput validates req and returns the canonical engine input.
func toBirthInput(req Request) (ephemeris.BirthInput, error) {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
	if err != nil {
		return ephemeris.BirthInput{}, invalid("date must be formatted as YYYY-MM-DD")
	}

	clock, ok := parseClock(strings.TrimSpace(req.Time))
	if !ok {
		return ephemeris.BirthInput{}, invalid("time must be formatted as HH:MM or HH:MM:SS")
	}

	for _, v := range []float64{req.UTCOffsetHours, req.Latitude, req.Longitude} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ephemeris.BirthInput{}, invalid("coordinates and offset must be finite numbers")
		}
	}
	if req.Latitude <= -90 || req.Latitude >= 90 {
		return ephemeris.BirthInput{}, invalid("latitude must be strictly between -90 and 90")
	}
	if req.Longitude < -180 || req.Longitude > 180 {
		return ephemeris.BirthInput{}, invalid("longitude must be between -180 and 180")
	}
	if math.Abs(req.UTCOffsetHours) > maxUTCOffsetHours {
		return ephemeris.BirthInput{}, invalid(fmt.Sprintf("utcOffsetHours must be between -%d and %d", maxUTCOffsetHours, maxUTCOffsetHours))
	}

	return ephemeris.BirthInput{
		Date:           date.Format("2006-01-02"),
		Time:           clock.Format("15:04:05"),
		UTCOffsetHours: req.UTCOffsetHours,
		Lat:            req.Latitude,
		Lng:            req.Longitude,
	}, nil
}

func parseClock(raw string) (time.Time, bool) {
	for _, layout := range clockLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func invalid(message string) error {
	return apperrors.Wrap("invalid_input", message, nil)
}
