package clock

import "time"

// Clock abstracts time to keep usecases deterministic in tests.
//
// Now returns local time: all day bucketing compares the year/month/day
// components of a timestamp in its own location, never a UTC-normalized
// instant.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// SameLocalDay reports whether a and b fall on the same calendar day,
// comparing Y/M/D components directly.
func SameLocalDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DayKey renders the local calendar day of t as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
