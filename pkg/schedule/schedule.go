// Package schedule classifies timestamps into calendar buckets relative to a
// caller-supplied "now". Every function is pure; nothing here reads the
// ambient clock, so classification is deterministic and testable.
package schedule

import "time"

// StartOfDay returns d with the time-of-day components zeroed.
func StartOfDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// EndOfDay returns the last representable instant of d's calendar day.
func EndOfDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), d.Location())
}

// WeekStart returns the Monday of d's week, at start of day. Sunday belongs
// to the week that began six days earlier, not the week it would start if
// weeks ran Sunday to Saturday.
func WeekStart(d time.Time) time.Time {
	offset := int(d.Weekday()) - 1
	if d.Weekday() == time.Sunday {
		offset = 6
	}
	return StartOfDay(d.AddDate(0, 0, -offset))
}

// WeekEnd returns the Sunday of d's week, at end of day.
func WeekEnd(d time.Time) time.Time {
	return EndOfDay(WeekStart(d).AddDate(0, 0, 6))
}

// SameDay reports whether two timestamps fall on the same calendar day,
// ignoring the time of day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
