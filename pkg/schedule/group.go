package schedule

import "time"

// Group is a relative date bucket. It is derived from a due date and "now"
// on every read, never stored.
type Group string

const (
	GroupPast      Group = "past"
	GroupToday     Group = "today"
	GroupMonday    Group = "monday"
	GroupTuesday   Group = "tuesday"
	GroupWednesday Group = "wednesday"
	GroupThursday  Group = "thursday"
	GroupFriday    Group = "friday"
	GroupSaturday  Group = "saturday"
	GroupSunday    Group = "sunday"
	GroupNextWeek  Group = "next-week"
	GroupFuture    Group = "future"
	GroupNoDate    Group = "no-date"
)

var weekdayGroups = map[time.Weekday]Group{
	time.Monday:    GroupMonday,
	time.Tuesday:   GroupTuesday,
	time.Wednesday: GroupWednesday,
	time.Thursday:  GroupThursday,
	time.Friday:    GroupFriday,
	time.Saturday:  GroupSaturday,
	time.Sunday:    GroupSunday,
}

var groupOrder = map[Group]int{
	GroupPast:      0,
	GroupToday:     1,
	GroupMonday:    2,
	GroupTuesday:   3,
	GroupWednesday: 4,
	GroupThursday:  5,
	GroupFriday:    6,
	GroupSaturday:  7,
	GroupSunday:    8,
	GroupNextWeek:  9,
	GroupFuture:    10,
	GroupNoDate:    11,
}

// Order gives the fixed total order used to sort group headers:
// past < today < mon..sun < next-week < future < no-date.
func (g Group) Order() int {
	if o, ok := groupOrder[g]; ok {
		return o
	}
	return groupOrder[GroupNoDate]
}

// Label returns the display name for a group header.
func (g Group) Label() string {
	switch g {
	case GroupPast:
		return "Past"
	case GroupToday:
		return "Today"
	case GroupNextWeek:
		return "Next week"
	case GroupFuture:
		return "Future"
	case GroupNoDate:
		return "No date"
	default:
		return string(g[0]-'a'+'A') + string(g[1:])
	}
}

// GroupFor maps a due date to its bucket relative to now. A zero due date is
// no-date. Weekday groups only occur for days strictly after today inside
// the current Monday-Sunday week; the following week collapses to next-week
// and anything beyond is future.
func GroupFor(due time.Time, now time.Time) Group {
	if due.IsZero() {
		return GroupNoDate
	}
	if SameDay(due, now) {
		return GroupToday
	}
	if due.Before(StartOfDay(now)) {
		return GroupPast
	}
	weekEnd := WeekEnd(now)
	if !due.After(weekEnd) {
		return weekdayGroups[due.Weekday()]
	}
	if !due.After(weekEnd.AddDate(0, 0, 7)) {
		return GroupNextWeek
	}
	return GroupFuture
}

// DateForGroup is the inverse mapping used when a task is dropped into a
// bucket: it returns the concrete date to assign as the new due date. The
// past, future, and no-date buckets are not reassignment targets, so they
// report ok=false.
func DateForGroup(g Group, now time.Time) (time.Time, bool) {
	switch g {
	case GroupToday:
		return StartOfDay(now), true
	case GroupNextWeek:
		return WeekStart(now).AddDate(0, 0, 7), true
	case GroupPast, GroupFuture, GroupNoDate:
		return time.Time{}, false
	}
	for weekday, group := range weekdayGroups {
		if group != g {
			continue
		}
		start := WeekStart(now)
		offset := int(weekday) - 1
		if weekday == time.Sunday {
			offset = 6
		}
		return start.AddDate(0, 0, offset), true
	}
	return time.Time{}, false
}
