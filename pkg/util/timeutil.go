package util

import "time"

// NowUTC returns the wall clock in UTC at microsecond precision, the
// resolution Postgres keeps for timestamptz.
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
