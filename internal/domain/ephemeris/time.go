package ephemeris

import (
	"math"
	"strconv"
	"strings"
)

// JulianDayFromCivil converts a local civil date ("YYYY-MM-DD") and clock time
// ("HH:MM" or "HH:MM:SS") observed at utcOffsetHours into a Julian Day.
// Malformed strings yield NaN.
func JulianDayFromCivil(date, clock string, utcOffsetHours float64) float64 {
	year, month, day := parseDate(date)
	ut := parseClock(clock) - utcOffsetHours

	// Keep UT inside the civil day; the day number absorbs the overflow.
	if ut < 0 {
		ut += 24
		day--
	} else if ut >= 24 {
		ut -= 24
		day++
	}
	return julianDay(year, month, day, ut)
}

// JulianCenturies returns Julian centuries elapsed since J2000.0.
func JulianCenturies(jd float64) float64 {
	return (jd - J2000) / DaysPerCentury
}

// julianDay implements the Gregorian calendar algorithm for a UT hour on
// the given day.
func julianDay(year, month, day, ut float64) float64 {
	if month <= 2 {
		year--
		month += 12
	}
	a := math.Floor(year / 100)
	b := 2 - a + math.Floor(a/4)
	return math.Floor(365.25*(year+4716)) + math.Floor(30.6001*(month+1)) + day + ut/24 + b - 1524.5
}

func parseDate(date string) (year, month, day float64) {
	parts := strings.Split(strings.TrimSpace(date), "-")
	if len(parts) != 3 {
		return math.NaN(), math.NaN(), math.NaN()
	}
	return parseNumber(parts[0]), parseNumber(parts[1]), parseNumber(parts[2])
}

// parseClock returns the decimal hour of an "HH:MM[:SS]" string.
func parseClock(clock string) float64 {
	parts := strings.Split(strings.TrimSpace(clock), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return math.NaN()
	}
	hours := parseNumber(parts[0]) + parseNumber(parts[1])/60
	if len(parts) == 3 {
		hours += parseNumber(parts[2]) / 3600
	}
	return hours
}

func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
