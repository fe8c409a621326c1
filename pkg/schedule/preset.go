package schedule

import "time"

// Preset is a named pre-defined date filter.
type Preset string

const (
	PresetAll          Preset = "all"
	PresetToday        Preset = "today"
	PresetTomorrow     Preset = "tomorrow"
	PresetThisWeek     Preset = "this-week"
	PresetSpecificDate Preset = "specific-date"
	PresetDateRange    Preset = "date-range"
)

// DateRange is an inclusive calendar-day range.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether d falls within the range, inclusive on both ends
// and ignoring the time of day.
func (r DateRange) Contains(d time.Time) bool {
	if r.From.IsZero() || r.To.IsZero() {
		return false
	}
	return !d.Before(StartOfDay(r.From)) && !d.After(EndOfDay(r.To))
}

// PresetOptions carries the payload presets that need one.
type PresetOptions struct {
	SpecificDate time.Time
	Range        *DateRange
}

// MatchesPreset reports whether a due date satisfies the preset at now.
// A zero due date means the task is undated: "all" still matches it, every
// other preset excludes it. Unrecognized presets match everything.
func MatchesPreset(due time.Time, preset Preset, now time.Time, opts PresetOptions) bool {
	if preset == PresetAll {
		return true
	}
	if due.IsZero() {
		return false
	}
	switch preset {
	case PresetToday:
		return SameDay(due, now)
	case PresetTomorrow:
		return SameDay(due, now.AddDate(0, 0, 1))
	case PresetThisWeek:
		return !due.Before(WeekStart(now)) && !due.After(WeekEnd(now))
	case PresetSpecificDate:
		if opts.SpecificDate.IsZero() {
			return false
		}
		return SameDay(due, opts.SpecificDate)
	case PresetDateRange:
		if opts.Range == nil {
			return false
		}
		return opts.Range.Contains(due)
	default:
		return true
	}
}
