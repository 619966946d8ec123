package ephemeris

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJulianDayEpochAnchor(t *testing.T) {
	jd := JulianDayFromCivil("2000-01-01", "12:00", 0)
	require.InDelta(t, J2000, jd, 1e-9)
	require.InDelta(t, 0, JulianCenturies(jd), 1e-12)
}

func TestJulianDayKnownDates(t *testing.T) {
	cases := []struct {
		date, clock string
		offset      float64
		want        float64
	}{
		{"2000-01-01", "00:00", 0, 2451544.5},
		{"1987-01-27", "00:00", 0, 2446822.5},
		{"1988-06-19", "12:00", 0, 2447332.0},
		{"1979-07-30", "19:30", 5.5, 2444085.0833333335},
	}
	for _, tc := range cases {
		got := JulianDayFromCivil(tc.date, tc.clock, tc.offset)
		require.InDelta(t, tc.want, got, 1e-9, "%s %s %+v", tc.date, tc.clock, tc.offset)
	}
}

func TestJulianDayCarriesAcrossMidnight(t *testing.T) {
	// 02:00 IST on the 31st is 20:30 UT on the 30th.
	require.InDelta(t,
		JulianDayFromCivil("1979-07-30", "20:30", 0),
		JulianDayFromCivil("1979-07-31", "02:00", 5.5),
		1e-9)

	// 23:59 at UTC-5 on a leap day rolls into 1 March UT.
	require.InDelta(t,
		JulianDayFromCivil("2024-03-01", "04:59", 0),
		JulianDayFromCivil("2024-02-29", "23:59", -5),
		1e-9)
}

func TestJulianDayIsMonotonic(t *testing.T) {
	prev := math.Inf(-1)
	for _, date := range []string{"1999-12-31", "2000-01-01", "2000-02-28", "2000-02-29", "2000-03-01"} {
		for _, clock := range []string{"00:00", "05:45", "12:00", "23:59"} {
			jd := JulianDayFromCivil(date, clock, 5.5)
			require.Greater(t, jd, prev, "%s %s", date, clock)
			prev = jd
		}
	}
}

func TestJulianDaySeconds(t *testing.T) {
	withSeconds := JulianDayFromCivil("2000-01-01", "12:00:36", 0)
	require.InDelta(t, J2000+36.0/86400, withSeconds, 1e-9)
}

func TestJulianDayMalformedInputIsNaN(t *testing.T) {
	require.True(t, math.IsNaN(JulianDayFromCivil("not-a-date", "12:00", 0)))
	require.True(t, math.IsNaN(JulianDayFromCivil("2000-01", "12:00", 0)))
	require.True(t, math.IsNaN(JulianDayFromCivil("2000-01-01", "noon", 0)))
	require.True(t, math.IsNaN(JulianDayFromCivil("2000-01-01", "12:xx", 0)))
}
