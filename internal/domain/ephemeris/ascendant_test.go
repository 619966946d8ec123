package ephemeris

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAscendantReferenceBirth(t *testing.T) {
	jd := JulianDayFromCivil("1979-07-30", "19:30", 5.5)
	asc := Ascendant(jd, 12+59.0/60, 77+35.0/60)
	require.InDelta(t, 319.2167, asc, 1e-3)
}

func TestAscendantSweepsTheZodiacInADay(t *testing.T) {
	signs := map[int]bool{}
	for minute := 0.0; minute < 24*60; minute += 10 {
		jd := J2000 + minute/1440
		asc := Ascendant(jd, 28.6, 77.2)
		require.GreaterOrEqual(t, asc, 0.0)
		require.Less(t, asc, 360.0)
		signs[int(asc/30)] = true
	}
	require.Len(t, signs, 12)
}
