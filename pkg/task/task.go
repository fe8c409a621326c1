// Package task defines the task data model shared by the grouping,
// filtering, and capacity engines. Tasks are owned by a store; everything
// here is a value type plus derived math over it.
package task

import (
	"fmt"
	"strings"
	"time"
)

// Type identifies what kind of item a task is.
type Type string

const (
	TypeNote        Type = "note"
	TypeChore       Type = "chore"
	TypeErrand      Type = "errand"
	TypeAppointment Type = "appointment"
)

// AllTypes returns the supported task types in display order.
func AllTypes() []Type {
	return []Type{TypeNote, TypeChore, TypeErrand, TypeAppointment}
}

// ParseType converts a string to a Type or returns an error for unknown values.
func ParseType(raw string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	if t == "" {
		return TypeChore, nil
	}
	for _, candidate := range AllTypes() {
		if candidate == t {
			return candidate, nil
		}
	}
	return TypeChore, fmt.Errorf("task: unknown type %q", raw)
}

// Status is the workflow state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusBlocked    Status = "blocked"
	StatusDone       Status = "done"
)

// AllStatuses returns the supported statuses in workflow order.
func AllStatuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusBlocked, StatusDone}
}

// ParseStatus converts a string to a Status or returns an error for unknown values.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if s == "" {
		return StatusTodo, nil
	}
	for _, candidate := range AllStatuses() {
		if candidate == s {
			return candidate, nil
		}
	}
	return StatusTodo, fmt.Errorf("task: unknown status %q", raw)
}

// Importance is an optional low/mid/high priority marker. The empty value
// means the task has no importance assigned.
type Importance string

const (
	ImportanceNone Importance = ""
	ImportanceLow  Importance = "low"
	ImportanceMid  Importance = "mid"
	ImportanceHigh Importance = "high"
)

// AllImportances returns assigned importance levels, lowest first.
func AllImportances() []Importance {
	return []Importance{ImportanceLow, ImportanceMid, ImportanceHigh}
}

// ParseImportance converts a string to an Importance. Empty input is the
// unassigned level, not an error.
func ParseImportance(raw string) (Importance, error) {
	i := Importance(strings.ToLower(strings.TrimSpace(raw)))
	if i == ImportanceNone {
		return ImportanceNone, nil
	}
	for _, candidate := range AllImportances() {
		if candidate == i {
			return candidate, nil
		}
	}
	return ImportanceNone, fmt.Errorf("task: unknown importance %q", raw)
}

// Session is one time-tracking interval. An open session has a zero End.
type Session struct {
	Start Timestamp `json:"start"`
	End   Timestamp `json:"end,omitempty"`
}

// Minutes returns the session length in fractional minutes. Open sessions
// count elapsed time up to now.
func (s Session) Minutes(now time.Time) float64 {
	if s.Start.IsZero() {
		return 0
	}
	end := s.End.Time
	if end.IsZero() {
		end = now
	}
	if end.Before(s.Start.Time) {
		return 0
	}
	return end.Sub(s.Start.Time).Minutes()
}

// Open reports whether the session is still running.
func (s Session) Open() bool {
	return !s.Start.IsZero() && s.End.IsZero()
}

// Task is one organizer item. Due has a zero time when the task is undated;
// TimeOfDay is only meaningful while Due falls on "today".
type Task struct {
	ID         string     `json:"id"`
	Type       Type       `json:"type"`
	Title      string     `json:"title"`
	Status     Status     `json:"status"`
	Importance Importance `json:"importance,omitempty"`
	Estimate   int        `json:"estimate,omitempty"` // minutes
	Due        Timestamp  `json:"due,omitempty"`
	TimeOfDay  Period     `json:"timeOfDay,omitempty"`
	Sessions   []Session  `json:"sessions,omitempty"`
	AssigneeID string     `json:"assigneeId,omitempty"`
	Rank       int        `json:"rank,omitempty"`
	Created    Timestamp  `json:"created,omitempty"`
}

// New builds a task with the given title in the default todo state.
func New(typ Type, title string) *Task {
	return &Task{
		Type:    typ,
		Title:   title,
		Status:  StatusTodo,
		Created: Timestamp{Time: time.Now()},
	}
}

// HasDue reports whether the task has a due date assigned.
func (t *Task) HasDue() bool {
	return t != nil && !t.Due.IsZero()
}

// HasEstimate reports whether the task carries a time estimate.
func (t *Task) HasEstimate() bool {
	return t != nil && t.Estimate > 0
}

// MinutesSpent sums all session durations, counting an open session up to now.
func (t *Task) MinutesSpent(now time.Time) float64 {
	if t == nil {
		return 0
	}
	total := 0.0
	for _, s := range t.Sessions {
		total += s.Minutes(now)
	}
	return total
}

// RemainingEstimate is the declared estimate minus whole minutes already
// logged, floored at zero. Tasks without an estimate are weightless.
func (t *Task) RemainingEstimate(now time.Time) int {
	if t == nil || t.Estimate <= 0 {
		return 0
	}
	remaining := t.Estimate - int(t.MinutesSpent(now))
	if remaining < 0 {
		return 0
	}
	return remaining
}

// OpenSession returns the running session index, or -1 when none is open.
func (t *Task) OpenSession() int {
	for i, s := range t.Sessions {
		if s.Open() {
			return i
		}
	}
	return -1
}

// StartSession opens a new tracking session at now. Starting while a session
// is already open is a no-op.
func (t *Task) StartSession(now time.Time) {
	if t.OpenSession() >= 0 {
		return
	}
	t.Sessions = append(t.Sessions, Session{Start: Timestamp{Time: now}})
}

// StopSession closes the open tracking session at now, if any.
func (t *Task) StopSession(now time.Time) {
	if i := t.OpenSession(); i >= 0 {
		t.Sessions[i].End = Timestamp{Time: now}
	}
}
