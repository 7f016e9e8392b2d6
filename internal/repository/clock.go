package repository

import "time"

// now returns the current time at the precision Postgres keeps, so values
// read back compare equal to the ones written.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// nextUpdate returns a timestamp strictly after prev.
func nextUpdate(clock func() time.Time, prev time.Time) time.Time {
	t := clock()
	if !t.After(prev) {
		t = prev.Add(time.Microsecond)
	}
	return t
}
