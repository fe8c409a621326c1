// Package filter evaluates tasks against composite multi-field filters.
// A filter never errors: malformed patterns degrade to substring matching
// and absent filters are unconstrained, so evaluation is total.
package filter

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"tableflip.dev/agenda/pkg/schedule"
	"tableflip.dev/agenda/pkg/task"
)

// Kind discriminates the Value union.
type Kind string

const (
	// KindMultiselect restricts a field to a set of allowed raw values.
	KindMultiselect Kind = "multiselect"
	// KindText matches a wildcard/substring pattern.
	KindText Kind = "text"
	// KindDate matches an exact calendar day.
	KindDate Kind = "date"
	// KindTitle is text matching with an optional explicit row selection
	// layered over it; a non-nil id set is authoritative.
	KindTitle Kind = "title"
)

// Value is one column filter. Exactly the payload for its Kind is set.
type Value struct {
	Kind Kind

	// KindMultiselect: an empty set means unconstrained.
	Selected []string

	// KindText and KindTitle: "*" is the only wildcard character.
	Pattern string

	// KindDate.
	Date time.Time

	// KindTitle: nil means no explicit selection; an empty non-nil set
	// selects nothing.
	IDs []string
}

// Multiselect builds a multiselect filter over the given raw values.
func Multiselect(values ...string) *Value {
	return &Value{Kind: KindMultiselect, Selected: values}
}

// Text builds a wildcard text filter.
func Text(pattern string) *Value {
	return &Value{Kind: KindText, Pattern: pattern}
}

// Date builds an exact calendar-day filter.
func Date(d time.Time) *Value {
	return &Value{Kind: KindDate, Date: d}
}

// TitleSelection builds a title filter that matches exactly the given ids.
func TitleSelection(ids ...string) *Value {
	if ids == nil {
		ids = []string{}
	}
	return &Value{Kind: KindTitle, IDs: ids}
}

// TitleText builds a title filter matching a wildcard pattern.
func TitleText(pattern string) *Value {
	return &Value{Kind: KindTitle, Pattern: pattern}
}

// MatchesMultiselect applies a multiselect filter to a raw field value.
// Absent filters, filters of another kind, and empty selections are all
// unconstrained.
func MatchesMultiselect(f *Value, value string) bool {
	if f == nil || f.Kind != KindMultiselect || len(f.Selected) == 0 {
		return true
	}
	for _, allowed := range f.Selected {
		if allowed == value {
			return true
		}
	}
	return false
}

// MatchesText applies a wildcard/substring filter to a field value. An empty
// pattern matches everything. Patterns without "*" are case-insensitive
// substring tests; patterns with "*" compile to an anchored case-insensitive
// regexp, degrading to a substring match with the stars stripped if the
// compile fails.
func MatchesText(f *Value, value string) bool {
	if f == nil || (f.Kind != KindText && f.Kind != KindTitle) {
		return true
	}
	return matchesPattern(f.Pattern, value)
}

func matchesPattern(pattern, value string) bool {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return true
	}
	if !strings.Contains(pattern, "*") {
		return strings.Contains(strings.ToLower(value), strings.ToLower(pattern))
	}
	expr := "(?i)^" + strings.ReplaceAll(regexp.QuoteMeta(pattern), `\*`, ".*") + "$"
	re, err := regexp.Compile(expr)
	if err != nil {
		plain := strings.ReplaceAll(pattern, "*", "")
		return strings.Contains(strings.ToLower(value), strings.ToLower(plain))
	}
	return re.MatchString(value)
}

// MatchesDate applies an exact-day filter to an optional task date. A filter
// that is present excludes undated tasks.
func MatchesDate(f *Value, taskDate time.Time) bool {
	if f == nil || f.Kind != KindDate || f.Date.IsZero() {
		return true
	}
	if taskDate.IsZero() {
		return false
	}
	return schedule.SameDay(taskDate, f.Date)
}

// MatchesTitle applies the title filter: when an explicit id selection is
// present it is authoritative and the pattern is ignored; otherwise this is
// plain wildcard matching on the title.
func MatchesTitle(f *Value, t *task.Task) bool {
	if f == nil || f.Kind != KindTitle {
		return true
	}
	if f.IDs != nil {
		for _, id := range f.IDs {
			if id == t.ID {
				return true
			}
		}
		return false
	}
	return matchesPattern(f.Pattern, t.Title)
}

// Field names a filterable task column.
type Field string

const (
	FieldTitle      Field = "title"
	FieldType       Field = "type"
	FieldStatus     Field = "status"
	FieldImportance Field = "importance"
	FieldAssignee   Field = "assignee"
	FieldDue        Field = "due"
)

// Columns maps fields to their active filter. Absent entries are
// unconstrained; present entries combine by logical AND.
type Columns map[Field]*Value

// State is the full filter state for one evaluation pass.
type State struct {
	Columns Columns
	Preset  schedule.Preset
	Options schedule.PresetOptions
}

// Matches evaluates one task against the composite filter at now. When a
// date preset other than "all" is active, the due-date column filter is
// skipped: the preset already constrains dates and applying both would
// double-filter.
func Matches(t *task.Task, state State, now time.Time) bool {
	if t == nil {
		return false
	}
	preset := state.Preset
	if preset == "" {
		preset = schedule.PresetAll
	}
	if !schedule.MatchesPreset(t.Due.Time, preset, now, state.Options) {
		return false
	}
	for field, f := range state.Columns {
		if f == nil {
			continue
		}
		switch field {
		case FieldTitle:
			if !MatchesTitle(f, t) {
				return false
			}
		case FieldType:
			if !MatchesMultiselect(f, string(t.Type)) {
				return false
			}
		case FieldStatus:
			if !MatchesMultiselect(f, string(t.Status)) {
				return false
			}
		case FieldImportance:
			if !MatchesMultiselect(f, string(t.Importance)) {
				return false
			}
		case FieldAssignee:
			if !MatchesMultiselect(f, t.AssigneeID) {
				return false
			}
		case FieldDue:
			if preset != schedule.PresetAll {
				continue
			}
			if !MatchesDate(f, t.Due.Time) {
				return false
			}
		default:
			// Unknown fields never constrain.
		}
	}
	return true
}

// Apply returns the tasks passing the filter, preserving input order.
func Apply(tasks []*task.Task, state State, now time.Time) []*task.Task {
	out := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		if Matches(t, state, now) {
			out = append(out, t)
		}
	}
	return out
}

func (k Kind) String() string {
	return string(k)
}

// Describe renders a short human-readable summary, used by CLI output.
func (v *Value) Describe() string {
	if v == nil {
		return "none"
	}
	switch v.Kind {
	case KindMultiselect:
		return fmt.Sprintf("in [%s]", strings.Join(v.Selected, ", "))
	case KindText, KindTitle:
		if v.IDs != nil {
			return fmt.Sprintf("%d selected rows", len(v.IDs))
		}
		return fmt.Sprintf("matches %q", v.Pattern)
	case KindDate:
		return "on " + v.Date.Format("2006-01-02")
	default:
		return string(v.Kind)
	}
}
