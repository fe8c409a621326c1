// Package app provides high-level operations over the task store and the
// grouping/filtering/placement engines so CLIs and UIs can share logic.
package app

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/agenda/pkg/filter"
	"tableflip.dev/agenda/pkg/grouping"
	"tableflip.dev/agenda/pkg/reorder"
	"tableflip.dev/agenda/pkg/schedule"
	"tableflip.dev/agenda/pkg/store"
	"tableflip.dev/agenda/pkg/task"
)

// Service wraps persistence and the placement engines. Every method takes an
// explicit now so behavior stays deterministic under test.
type Service struct {
	Persistence store.Persistence
}

var (
	errNoPersistence = errors.New("app: no persistence configured")
	// ErrNotFound is returned when a task id does not resolve.
	ErrNotFound = errors.New("app: task not found")
)

// State is the caller's immutable view configuration for one pass.
type State struct {
	Filter filter.State
	Mode   grouping.Mode
	Opts   grouping.Options
}

// Visible returns the tasks passing the current filter, in store order.
func (s *Service) Visible(ctx context.Context, state State, now time.Time) ([]*task.Task, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return filter.Apply(s.Persistence.ListAll(ctx), state.Filter, now), nil
}

// Board filters, groups, and annotates the current tasks into display rows.
// CompletedToday is derived from the store when the caller did not supply a
// count; a supplied count, zero included, is passed through untouched.
func (s *Service) Board(ctx context.Context, state State, now time.Time) (grouping.Result, error) {
	if s.Persistence == nil {
		return grouping.Result{}, errNoPersistence
	}
	visible, err := s.Visible(ctx, state, now)
	if err != nil {
		return grouping.Result{}, err
	}
	if state.Opts.CompletedToday == nil {
		count := s.completedToday(ctx, now)
		state.Opts.CompletedToday = &count
	}
	return grouping.Build(visible, state.Mode, now, state.Opts), nil
}

func (s *Service) completedToday(ctx context.Context, now time.Time) int {
	count := 0
	for _, t := range s.Persistence.ListAll(ctx) {
		if t.Status == task.StatusDone && t.HasDue() && schedule.SameDay(t.Due.Time, now) {
			count++
		}
	}
	return count
}

// Preview runs the move predicates without mutating anything, to drive a
// "cannot drop here" affordance. It is the same evaluation the commit runs.
func (s *Service) Preview(ctx context.Context, req reorder.Request, now time.Time) (reorder.Result, error) {
	if s.Persistence == nil {
		return reorder.Result{}, errNoPersistence
	}
	return reorder.Plan(s.Persistence.ListAll(ctx), req, now), nil
}

// Move plans and, when accepted, applies a move: field updates go to the
// moved task, and the list order is renumbered so the task sits next to its
// target. A rejected move changes nothing.
func (s *Service) Move(ctx context.Context, req reorder.Request, now time.Time) (reorder.Result, error) {
	if s.Persistence == nil {
		return reorder.Result{}, errNoPersistence
	}
	all := s.Persistence.ListAll(ctx)
	result := reorder.Plan(all, req, now)
	if !result.Accepted {
		return result, nil
	}

	active, ok := s.Persistence.Get(ctx, req.ActiveID)
	if !ok {
		return reorder.Result{}, ErrNotFound
	}
	if result.DueUpdate != nil {
		active.Due = task.Timestamp{Time: *result.DueUpdate}
		active.TimeOfDay = task.PeriodNone
	}
	if result.PeriodUpdate {
		active.TimeOfDay = result.Period
	}
	if err := s.Persistence.Store(active); err != nil {
		return reorder.Result{}, err
	}

	if req.TargetID != "" {
		if err := s.reposition(ctx, req.ActiveID, req.TargetID); err != nil {
			return reorder.Result{}, err
		}
	}
	return result, nil
}

// reposition rewrites ranks so active sits at target's former slot: below
// the target when moving down the list, above it when moving up.
func (s *Service) reposition(ctx context.Context, activeID, targetID string) error {
	all := s.Persistence.ListAll(ctx)
	activeIndex, targetIndex := -1, -1
	for i, t := range all {
		switch t.ID {
		case activeID:
			activeIndex = i
		case targetID:
			targetIndex = i
		}
	}
	if activeIndex < 0 || targetIndex < 0 {
		return ErrNotFound
	}
	active := all[activeIndex]
	rest := make([]*task.Task, 0, len(all)-1)
	rest = append(rest, all[:activeIndex]...)
	rest = append(rest, all[activeIndex+1:]...)
	// Removing the active task shifts everything after it up one slot, so
	// inserting at the target's original index lands after the target on a
	// downward move and before it on an upward move.
	if targetIndex > len(rest) {
		targetIndex = len(rest)
	}
	ordered := make([]*task.Task, 0, len(all))
	ordered = append(ordered, rest[:targetIndex]...)
	ordered = append(ordered, active)
	ordered = append(ordered, rest[targetIndex:]...)
	for i, t := range ordered {
		if t.Rank == i {
			continue
		}
		t.Rank = i
		if err := s.Persistence.Store(t); err != nil {
			return err
		}
	}
	return nil
}

// Add creates and stores a new task.
func (s *Service) Add(ctx context.Context, t *task.Task) (*task.Task, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	if t == nil {
		return nil, errors.New("app: nil task")
	}
	all := s.Persistence.ListAll(ctx)
	t.Rank = len(all)
	if err := s.Persistence.Store(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Get resolves a task by id.
func (s *Service) Get(ctx context.Context, id string) (*task.Task, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	t, ok := s.Persistence.Get(ctx, id)
	if !ok {
		return nil, ErrNotFound
	}
	return t, nil
}

// SetStatus updates the workflow state of a task.
func (s *Service) SetStatus(ctx context.Context, id string, status task.Status) (*task.Task, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Status = status
	if err := s.Persistence.Store(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Complete marks a task done.
func (s *Service) Complete(ctx context.Context, id string) (*task.Task, error) {
	return s.SetStatus(ctx, id, task.StatusDone)
}

// StartSession opens a time-tracking session on the task.
func (s *Service) StartSession(ctx context.Context, id string, now time.Time) (*task.Task, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	t.StartSession(now)
	if err := s.Persistence.Store(t); err != nil {
		return nil, err
	}
	return t, nil
}

// StopSession closes the open time-tracking session on the task.
func (s *Service) StopSession(ctx context.Context, id string, now time.Time) (*task.Task, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	t.StopSession(now)
	if err := s.Persistence.Store(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Watch(ctx)
}
