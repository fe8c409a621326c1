// Package capacity tracks remaining time budget per date bucket and per
// intraday period. A Ledger is derived fresh from the live task list on
// every grouping pass, so there is no invalidation problem: moves made
// elsewhere are always reflected.
package capacity

import (
	"time"

	"tableflip.dev/agenda/pkg/schedule"
	"tableflip.dev/agenda/pkg/task"
)

// MaxMinutesPerDay is the fixed budget for each date bucket.
const MaxMinutesPerDay = 480

// Ledger holds committed remaining-estimate minutes per bucket at one
// evaluation instant.
type Ledger struct {
	now      time.Time
	byGroup  map[schedule.Group]int
	byPeriod map[task.Period]int
}

// NewLedger sums every task's remaining estimate into its date bucket, and
// today's tasks additionally into their time-of-day bucket.
func NewLedger(tasks []*task.Task, now time.Time) *Ledger {
	l := &Ledger{
		now:      now,
		byGroup:  make(map[schedule.Group]int),
		byPeriod: make(map[task.Period]int),
	}
	for _, t := range tasks {
		if t == nil {
			continue
		}
		remaining := t.RemainingEstimate(now)
		if remaining == 0 {
			continue
		}
		group := schedule.GroupFor(t.Due.Time, now)
		l.byGroup[group] += remaining
		if group == schedule.GroupToday && t.TimeOfDay != task.PeriodNone {
			l.byPeriod[t.TimeOfDay] += remaining
		}
	}
	return l
}

// Committed returns the remaining-estimate minutes already held by a bucket.
func (l *Ledger) Committed(g schedule.Group) int {
	return l.byGroup[g]
}

// CommittedPeriod returns the remaining-estimate minutes held by a period.
func (l *Ledger) CommittedPeriod(p task.Period) int {
	return l.byPeriod[p]
}

// Remaining returns the unused budget for a date bucket, floored at zero.
func (l *Ledger) Remaining(g schedule.Group) int {
	r := MaxMinutesPerDay - l.byGroup[g]
	if r < 0 {
		return 0
	}
	return r
}

// PeriodBudget is the wall-clock minutes left in a period at now: the span
// from now to the period's end boundary. A period that has fully elapsed
// has zero budget regardless of task load.
func PeriodBudget(p task.Period, now time.Time) int {
	if p == task.PeriodNone {
		return 0
	}
	left := p.End(now).Sub(now)
	if left <= 0 {
		return 0
	}
	return int(left.Minutes())
}

// RemainingPeriod returns the unused wall-clock budget for a period.
func (l *Ledger) RemainingPeriod(p task.Period) int {
	r := PeriodBudget(p, l.now) - l.byPeriod[p]
	if r < 0 {
		return 0
	}
	return r
}

// OverCapacity reports whether placing incoming remaining-estimate minutes
// into the date bucket would exceed its budget. Zero-minute tasks are
// weightless and never rejected. Both the hover preview and the commit path
// call this same predicate.
func (l *Ledger) OverCapacity(g schedule.Group, incoming int) bool {
	if incoming <= 0 {
		return false
	}
	return l.byGroup[g]+incoming > MaxMinutesPerDay
}

// PeriodOverCapacity is the period-granularity check. excludeSelf subtracts
// the moving task's own contribution from the current total first, so a
// task moving within the period it already occupies never self-rejects.
func (l *Ledger) PeriodOverCapacity(p task.Period, incoming int, excludeSelf bool) bool {
	if incoming <= 0 {
		return false
	}
	total := l.byPeriod[p]
	if excludeSelf {
		total -= incoming
		if total < 0 {
			total = 0
		}
	}
	return total+incoming > PeriodBudget(p, l.now)
}
