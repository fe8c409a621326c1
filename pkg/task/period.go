package task

import (
	"fmt"
	"strings"
	"time"
)

// Period is an intraday time-of-day bucket. The empty value means the task
// has not been placed into a period.
type Period string

const (
	PeriodNone      Period = ""
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodEvening   Period = "evening"
)

// Period end boundaries, as hours of the day.
const (
	morningEndHour   = 12
	afternoonEndHour = 18
	eveningEndHour   = 22
)

// AllPeriods returns the assigned periods in day order.
func AllPeriods() []Period {
	return []Period{PeriodMorning, PeriodAfternoon, PeriodEvening}
}

// ParsePeriod converts a string to a Period. Empty input means unassigned.
func ParsePeriod(raw string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(raw)))
	if p == PeriodNone {
		return PeriodNone, nil
	}
	for _, candidate := range AllPeriods() {
		if candidate == p {
			return candidate, nil
		}
	}
	return PeriodNone, fmt.Errorf("task: unknown period %q", raw)
}

// EndHour returns the wall-clock hour at which the period ends.
func (p Period) EndHour() int {
	switch p {
	case PeriodMorning:
		return morningEndHour
	case PeriodAfternoon:
		return afternoonEndHour
	case PeriodEvening:
		return eveningEndHour
	default:
		return 0
	}
}

// End returns the period's end boundary on the calendar day of now.
func (p Period) End(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), p.EndHour(), 0, 0, 0, now.Location())
}

// Elapsed reports whether the period has fully passed at now.
func (p Period) Elapsed(now time.Time) bool {
	if p == PeriodNone {
		return false
	}
	return !now.Before(p.End(now))
}

// Order gives the fixed morning < afternoon < evening ordering. Unassigned
// sorts first so it renders before the named periods.
func (p Period) Order() int {
	switch p {
	case PeriodMorning:
		return 1
	case PeriodAfternoon:
		return 2
	case PeriodEvening:
		return 3
	default:
		return 0
	}
}

func (p Period) String() string {
	if p == PeriodNone {
		return "unassigned"
	}
	return string(p)
}
