// Package reorder validates a requested move of one task relative to
// another and emits the resulting field mutations. A single Plan call backs
// both the hover preview and the commit, so a "cannot drop here" affordance
// can never disagree with the commit outcome.
package reorder

import (
	"time"

	"tableflip.dev/agenda/pkg/capacity"
	"tableflip.dev/agenda/pkg/grouping"
	"tableflip.dev/agenda/pkg/schedule"
	"tableflip.dev/agenda/pkg/task"
)

// Reason explains a rejected move. Rejection is a normal outcome, not an
// error: callers surface it as an affordance.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonUnknownTask   Reason = "unknown task"
	ReasonInvalidTarget Reason = "target bucket cannot take a date"
	ReasonOverCapacity  Reason = "target bucket is over capacity"
)

// Request describes one move: the active task, and either a target task or
// a target period subheader.
type Request struct {
	ActiveID string
	TargetID string
	// TargetPeriod is set when dropping directly onto a period subheader.
	// HasTargetPeriod distinguishes "drop on the unassigned bucket" (clear
	// the period) from "no subheader target".
	TargetPeriod    task.Period
	HasTargetPeriod bool
	Mode            grouping.Mode
}

// Result is the outcome of planning a move. When accepted, at most one of
// the mutation fields is set; PositionOnly means the caller should only
// change list order.
type Result struct {
	Accepted bool
	Reason   Reason

	// DueUpdate, when non-nil, is the new due date to assign.
	DueUpdate *time.Time
	// PeriodUpdate, when true, sets the task's time of day to Period
	// (PeriodNone clears it).
	PeriodUpdate bool
	Period       task.Period
	// PositionOnly indicates a pure list-order change.
	PositionOnly bool
}

func rejected(reason Reason) Result {
	return Result{Accepted: false, Reason: reason}
}

// Plan evaluates a move against the current task list at now. It never
// mutates anything; accepted results carry the field updates for the caller
// to apply. Preview (hover) and commit both call Plan.
func Plan(tasks []*task.Task, req Request, now time.Time) Result {
	active := findTask(tasks, req.ActiveID)
	if active == nil {
		return rejected(ReasonUnknownTask)
	}
	ledger := capacity.NewLedger(tasks, now)

	// A subheader drop always targets a period in today, whatever row the
	// request was anchored on.
	if req.HasTargetPeriod {
		return planPeriodMove(active, req.TargetPeriod, ledger, now)
	}

	target := findTask(tasks, req.TargetID)
	if target == nil {
		return rejected(ReasonUnknownTask)
	}

	if req.Mode != grouping.ModeDate {
		return Result{Accepted: true, PositionOnly: true}
	}

	activeKey := grouping.GroupOf(active, grouping.ModeDate, now)
	targetKey := grouping.GroupOf(target, grouping.ModeDate, now)

	if activeKey.Group != targetKey.Group {
		due, ok := schedule.DateForGroup(targetKey.Group, now)
		if !ok {
			return rejected(ReasonInvalidTarget)
		}
		if ledger.OverCapacity(targetKey.Group, active.RemainingEstimate(now)) {
			return rejected(ReasonOverCapacity)
		}
		return Result{Accepted: true, DueUpdate: &due}
	}

	// Same date group. Within today a cross-subgroup move still needs a
	// time-of-day update.
	if activeKey.Group == schedule.GroupToday && active.TimeOfDay != target.TimeOfDay {
		return planPeriodMove(active, target.TimeOfDay, ledger, now)
	}
	return Result{Accepted: true, PositionOnly: true}
}

func planPeriodMove(active *task.Task, target task.Period, ledger *capacity.Ledger, now time.Time) Result {
	if target == task.PeriodNone {
		return Result{Accepted: true, PeriodUpdate: true, Period: task.PeriodNone}
	}
	// Re-dropping into the occupied period is a no-op and never rejects.
	if target == active.TimeOfDay {
		return Result{Accepted: true, PositionOnly: true}
	}
	excludeSelf := active.TimeOfDay != task.PeriodNone && active.TimeOfDay != target
	if ledger.PeriodOverCapacity(target, active.RemainingEstimate(now), excludeSelf) {
		return rejected(ReasonOverCapacity)
	}
	return Result{Accepted: true, PeriodUpdate: true, Period: target}
}

func findTask(tasks []*task.Task, id string) *task.Task {
	if id == "" {
		return nil
	}
	for _, t := range tasks {
		if t != nil && t.ID == id {
			return t
		}
	}
	return nil
}

// NextTaskRow resolves a keyboard move: starting from the active row index
// in the flattened sequence, it returns the next task row in the given
// direction (+1 down, -1 up) to use as the move target. ok is false when
// the active row is already at the edge.
func NextTaskRow(rows []grouping.Row, activeIndex, direction int) (grouping.Row, bool) {
	for i := activeIndex + direction; i >= 0 && i < len(rows); i += direction {
		if rows[i].Kind == grouping.RowTask {
			return rows[i], true
		}
	}
	return grouping.Row{}, false
}
