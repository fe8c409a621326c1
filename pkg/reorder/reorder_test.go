package reorder

import (
	"testing"
	"time"

	"tableflip.dev/agenda/pkg/grouping"
	"tableflip.dev/agenda/pkg/schedule"
	"tableflip.dev/agenda/pkg/task"
)

var wednesday = time.Date(2026, 8, 19, 14, 0, 0, 0, time.UTC)

func sample(id string, due time.Time, estimate int, period task.Period) *task.Task {
	return &task.Task{
		ID:        id,
		Type:      task.TypeChore,
		Title:     id,
		Status:    task.StatusTodo,
		Estimate:  estimate,
		Due:       task.Timestamp{Time: due},
		TimeOfDay: period,
	}
}

func TestPlanSameGroupIsPositionOnly(t *testing.T) {
	tasks := []*task.Task{
		sample("a", wednesday, 60, task.PeriodNone),
		sample("b", wednesday, 30, task.PeriodNone),
	}
	result := Plan(tasks, Request{ActiveID: "a", TargetID: "b", Mode: grouping.ModeDate}, wednesday)
	if !result.Accepted || !result.PositionOnly {
		t.Fatalf("same-bucket reorder must be a pure position change: %+v", result)
	}
	if result.DueUpdate != nil || result.PeriodUpdate {
		t.Fatalf("same-bucket reorder must not mutate fields: %+v", result)
	}
}

func TestPlanNonDateModeIsPositionOnly(t *testing.T) {
	tasks := []*task.Task{
		sample("a", wednesday, 60, task.PeriodNone),
		sample("b", wednesday.AddDate(0, 0, 10), 30, task.PeriodNone),
	}
	result := Plan(tasks, Request{ActiveID: "a", TargetID: "b", Mode: grouping.ModeStatus}, wednesday)
	if !result.Accepted || !result.PositionOnly {
		t.Fatalf("non-date grouping never mutates fields: %+v", result)
	}
}

func TestPlanCrossGroupEmitsDueUpdate(t *testing.T) {
	tasks := []*task.Task{
		sample("a", wednesday, 60, task.PeriodNone),
		sample("b", wednesday.AddDate(0, 0, 2), 30, task.PeriodNone),
	}
	result := Plan(tasks, Request{ActiveID: "a", TargetID: "b", Mode: grouping.ModeDate}, wednesday)
	if !result.Accepted || result.DueUpdate == nil {
		t.Fatalf("cross-group move must emit a due date: %+v", result)
	}
	if !schedule.SameDay(*result.DueUpdate, wednesday.AddDate(0, 0, 2)) {
		t.Fatalf("due update %v, want Friday", *result.DueUpdate)
	}
}

func TestPlanRejectsOverloadedBucket(t *testing.T) {
	// next-week already holds 700 minutes against the 480 minute cap, so a
	// 60 minute task dragged onto it must be rejected outright.
	nextMonday := wednesday.AddDate(0, 0, 5)
	tasks := []*task.Task{
		sample("moving", wednesday, 60, task.PeriodNone),
		sample("heavy1", nextMonday, 400, task.PeriodNone),
		sample("heavy2", nextMonday, 300, task.PeriodNone),
	}
	result := Plan(tasks, Request{ActiveID: "moving", TargetID: "heavy1", Mode: grouping.ModeDate}, wednesday)
	if result.Accepted {
		t.Fatalf("move into an overloaded bucket must be rejected")
	}
	if result.Reason != ReasonOverCapacity {
		t.Fatalf("reason = %q, want over capacity", result.Reason)
	}
	if result.DueUpdate != nil || result.PeriodUpdate || result.PositionOnly {
		t.Fatalf("rejection must emit no mutation: %+v", result)
	}
}

func TestPlanRejectsInvalidTargets(t *testing.T) {
	tasks := []*task.Task{
		sample("moving", wednesday, 60, task.PeriodNone),
		sample("past", wednesday.AddDate(0, 0, -3), 0, task.PeriodNone),
		sample("far", wednesday.AddDate(0, 0, 40), 0, task.PeriodNone),
		sample("undated", time.Time{}, 0, task.PeriodNone),
	}
	for _, target := range []string{"past", "far", "undated"} {
		result := Plan(tasks, Request{ActiveID: "moving", TargetID: target, Mode: grouping.ModeDate}, wednesday)
		if result.Accepted {
			t.Fatalf("move onto %q must be rejected, these buckets take no date", target)
		}
		if result.Reason != ReasonInvalidTarget {
			t.Fatalf("reason = %q, want invalid target", result.Reason)
		}
	}
}

func TestPlanTodaySubgroupMove(t *testing.T) {
	tasks := []*task.Task{
		sample("a", wednesday, 30, task.PeriodNone),
		sample("b", wednesday, 30, task.PeriodEvening),
	}
	result := Plan(tasks, Request{ActiveID: "a", TargetID: "b", Mode: grouping.ModeDate}, wednesday)
	if !result.Accepted || !result.PeriodUpdate || result.Period != task.PeriodEvening {
		t.Fatalf("cross-subgroup move must emit a period update: %+v", result)
	}
}

func TestPlanTodaySubgroupOverCapacity(t *testing.T) {
	// Afternoon at 14:00 has a 240 minute wall-clock budget.
	tasks := []*task.Task{
		sample("a", wednesday, 100, task.PeriodNone),
		sample("b", wednesday, 200, task.PeriodAfternoon),
	}
	result := Plan(tasks, Request{ActiveID: "a", TargetID: "b", Mode: grouping.ModeDate}, wednesday)
	if result.Accepted {
		t.Fatalf("overloading the afternoon must be rejected")
	}
	if result.Reason != ReasonOverCapacity {
		t.Fatalf("reason = %q, want over capacity", result.Reason)
	}
}

func TestPlanSubheaderDrop(t *testing.T) {
	tasks := []*task.Task{
		sample("a", wednesday, 30, task.PeriodNone),
	}
	req := Request{
		ActiveID:        "a",
		TargetPeriod:    task.PeriodEvening,
		HasTargetPeriod: true,
		Mode:            grouping.ModeDate,
	}
	result := Plan(tasks, req, wednesday)
	if !result.Accepted || !result.PeriodUpdate || result.Period != task.PeriodEvening {
		t.Fatalf("subheader drop must set the period: %+v", result)
	}
}

func TestPlanSubheaderDropToUnassignedClears(t *testing.T) {
	tasks := []*task.Task{
		sample("a", wednesday, 30, task.PeriodEvening),
	}
	req := Request{
		ActiveID:        "a",
		TargetPeriod:    task.PeriodNone,
		HasTargetPeriod: true,
		Mode:            grouping.ModeDate,
	}
	result := Plan(tasks, req, wednesday)
	if !result.Accepted || !result.PeriodUpdate || result.Period != task.PeriodNone {
		t.Fatalf("dropping on the unassigned bucket must clear the period: %+v", result)
	}
}

func TestPlanOwnPeriodNeverSelfRejects(t *testing.T) {
	// The afternoon is fully booked by the task itself; re-dropping it
	// into its own bucket must not reject.
	tasks := []*task.Task{
		sample("a", wednesday, 240, task.PeriodAfternoon),
	}
	req := Request{
		ActiveID:        "a",
		TargetPeriod:    task.PeriodAfternoon,
		HasTargetPeriod: true,
		Mode:            grouping.ModeDate,
	}
	result := Plan(tasks, req, wednesday)
	if !result.Accepted {
		t.Fatalf("moving a task to its own period must never reject: %+v", result)
	}
}

func TestPlanSubgroupExcludeSelf(t *testing.T) {
	// Moving between periods subtracts the task's own minutes before the
	// check, so swapping buckets with itself as the only load succeeds.
	morning := time.Date(2026, 8, 19, 8, 0, 0, 0, time.UTC)
	tasks := []*task.Task{
		sample("a", morning, 100, task.PeriodMorning),
		sample("b", morning, 30, task.PeriodAfternoon),
	}
	result := Plan(tasks, Request{ActiveID: "a", TargetID: "b", Mode: grouping.ModeDate}, morning)
	if !result.Accepted || result.Period != task.PeriodAfternoon {
		t.Fatalf("expected accepted afternoon move: %+v", result)
	}
}

func TestPlanZeroEstimateAlwaysFits(t *testing.T) {
	nextMonday := wednesday.AddDate(0, 0, 5)
	tasks := []*task.Task{
		sample("weightless", wednesday, 0, task.PeriodNone),
		sample("heavy", nextMonday, 700, task.PeriodNone),
	}
	result := Plan(tasks, Request{ActiveID: "weightless", TargetID: "heavy", Mode: grouping.ModeDate}, wednesday)
	if !result.Accepted {
		t.Fatalf("tasks with no estimate are weightless and always fit: %+v", result)
	}
}

func TestPlanUnknownIDs(t *testing.T) {
	tasks := []*task.Task{sample("a", wednesday, 0, task.PeriodNone)}
	if r := Plan(tasks, Request{ActiveID: "nope", TargetID: "a", Mode: grouping.ModeDate}, wednesday); r.Accepted {
		t.Fatalf("unknown active id must reject")
	}
	if r := Plan(tasks, Request{ActiveID: "a", TargetID: "nope", Mode: grouping.ModeDate}, wednesday); r.Accepted {
		t.Fatalf("unknown target id must reject")
	}
}

func TestPlanPreviewMatchesCommit(t *testing.T) {
	// The preview pass is the same predicate as the commit pass: planning
	// the same request twice against the same snapshot must agree.
	nextMonday := wednesday.AddDate(0, 0, 5)
	tasks := []*task.Task{
		sample("moving", wednesday, 60, task.PeriodNone),
		sample("heavy", nextMonday, 450, task.PeriodNone),
	}
	req := Request{ActiveID: "moving", TargetID: "heavy", Mode: grouping.ModeDate}

	preview := Plan(tasks, req, wednesday)
	commit := Plan(tasks, req, wednesday)
	if preview.Accepted != commit.Accepted || preview.Reason != commit.Reason {
		t.Fatalf("preview %+v and commit %+v disagree", preview, commit)
	}
}

func TestNextTaskRow(t *testing.T) {
	rows := []grouping.Row{
		{Kind: grouping.RowHeader},
		{Kind: grouping.RowTask, Task: sample("a", wednesday, 0, task.PeriodNone)},
		{Kind: grouping.RowSubheader},
		{Kind: grouping.RowTask, Task: sample("b", wednesday, 0, task.PeriodNone)},
	}
	if row, ok := NextTaskRow(rows, 1, 1); !ok || row.Task.ID != "b" {
		t.Fatalf("expected b below a, got %+v ok=%v", row, ok)
	}
	if row, ok := NextTaskRow(rows, 3, -1); !ok || row.Task.ID != "a" {
		t.Fatalf("expected a above b, got %+v ok=%v", row, ok)
	}
	if _, ok := NextTaskRow(rows, 3, 1); ok {
		t.Fatalf("expected no task below the last row")
	}
}
