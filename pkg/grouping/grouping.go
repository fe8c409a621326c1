// Package grouping partitions a filtered task list into ordered groups and
// flattens them into display rows. Grouping is stable: tasks with equal
// group keys keep their relative manual order.
package grouping

import (
	"fmt"
	"sort"
	"time"

	"tableflip.dev/agenda/pkg/capacity"
	"tableflip.dev/agenda/pkg/schedule"
	"tableflip.dev/agenda/pkg/task"
)

// Mode selects the grouping dimension.
type Mode string

const (
	ModeNone       Mode = "none"
	ModeDate       Mode = "date"
	ModeType       Mode = "type"
	ModeStatus     Mode = "status"
	ModeImportance Mode = "importance"
	ModeAssignee   Mode = "assignee"
)

// AllModes returns the supported grouping modes.
func AllModes() []Mode {
	return []Mode{ModeNone, ModeDate, ModeType, ModeStatus, ModeImportance, ModeAssignee}
}

// ParseMode converts a string to a Mode or returns an error for unknown values.
func ParseMode(raw string) (Mode, error) {
	for _, candidate := range AllModes() {
		if string(candidate) == raw {
			return candidate, nil
		}
	}
	if raw == "" {
		return ModeNone, nil
	}
	return ModeNone, fmt.Errorf("grouping: unknown mode %q", raw)
}

// RowKind discriminates the flattened row variants.
type RowKind int

const (
	// RowHeader introduces a group.
	RowHeader RowKind = iota
	// RowSubheader introduces a time-of-day sub-bucket inside today.
	RowSubheader
	// RowTask is one task line.
	RowTask
)

// Key identifies a group: a stable sort order plus a display label. For the
// date mode the Group field carries the underlying bucket.
type Key struct {
	Order int
	Label string
	Group schedule.Group
}

// Summary aggregates one group.
type Summary struct {
	Key              Key
	Count            int
	RemainingMinutes int
	// CompletedCount is only populated for the date mode's today group,
	// from the caller-supplied completion tally.
	CompletedCount int
}

// Row is one element of the flattened display sequence.
type Row struct {
	Kind    RowKind
	Key     Key
	Period  task.Period // subheader and today task rows
	Task    *task.Task  // RowTask only
	Summary *Summary    // RowHeader only
	// First and Last flag the boundaries of each visual block.
	First bool
	Last  bool
	// RemainingBudget annotates headers (date mode) and subheaders with the
	// bucket's unused minutes.
	RemainingBudget int
}

// Options tunes one grouping pass.
type Options struct {
	// CompletedToday is the caller-supplied count of tasks finished today,
	// shown on the today header in date mode. Nil means the caller did not
	// supply one; an explicit zero is honored.
	CompletedToday *int
	// Focus, when set, hides every group but the one with this label. It is
	// a display filter applied after grouping, not a re-grouping.
	Focus string
}

// Result is the engine output: flattened rows plus per-group summaries.
type Result struct {
	Rows   []Row
	Groups []Summary
	Ledger *capacity.Ledger
}

// Build partitions tasks by mode and flattens them into rows. The input is
// assumed already filtered; the ledger is recomputed from it every pass.
func Build(tasks []*task.Task, mode Mode, now time.Time, opts Options) Result {
	ledger := capacity.NewLedger(tasks, now)

	if mode == ModeNone || mode == "" {
		rows := make([]Row, 0, len(tasks))
		for i, t := range tasks {
			rows = append(rows, Row{
				Kind:  RowTask,
				Task:  t,
				First: i == 0,
				Last:  i == len(tasks)-1,
			})
		}
		return Result{Rows: rows, Ledger: ledger}
	}

	type keyed struct {
		t     *task.Task
		key   Key
		index int
	}
	items := make([]keyed, 0, len(tasks))
	for i, t := range tasks {
		if t == nil {
			continue
		}
		items = append(items, keyed{t: t, key: keyFor(t, mode, now), index: i})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].key.Order != items[j].key.Order {
			return items[i].key.Order < items[j].key.Order
		}
		// Assignee groups share an order slot and cluster by label.
		if items[i].key.Label != items[j].key.Label {
			return items[i].key.Label < items[j].key.Label
		}
		return items[i].index < items[j].index
	})

	var result Result
	result.Ledger = ledger
	for start := 0; start < len(items); {
		end := start
		for end < len(items) && items[end].key == items[start].key {
			end++
		}
		key := items[start].key
		summary := Summary{Key: key, Count: end - start}
		for _, it := range items[start:end] {
			if it.t.HasEstimate() {
				summary.RemainingMinutes += it.t.RemainingEstimate(now)
			}
		}
		if mode == ModeDate && key.Group == schedule.GroupToday && opts.CompletedToday != nil {
			summary.CompletedCount = *opts.CompletedToday
		}
		result.Groups = append(result.Groups, summary)

		header := Row{Kind: RowHeader, Key: key, Summary: &summary}
		if mode == ModeDate {
			header.RemainingBudget = ledger.Remaining(key.Group)
		}
		result.Rows = append(result.Rows, header)

		group := make([]*task.Task, 0, end-start)
		for _, it := range items[start:end] {
			group = append(group, it.t)
		}
		if mode == ModeDate && key.Group == schedule.GroupToday {
			result.Rows = append(result.Rows, todayRows(group, key, ledger, now)...)
		} else {
			result.Rows = append(result.Rows, taskRows(group, key, task.PeriodNone)...)
		}
		start = end
	}

	if opts.Focus != "" {
		result.Rows = focusRows(result.Rows, opts.Focus)
	}
	return result
}

// todayRows splits today's tasks into time-of-day sub-buckets: unassigned
// first with no subheader, then morning/afternoon/evening. A period
// subheader is suppressed only when the period has fully elapsed and holds
// no tasks; empty-but-future periods still render.
func todayRows(tasks []*task.Task, key Key, ledger *capacity.Ledger, now time.Time) []Row {
	byPeriod := make(map[task.Period][]*task.Task)
	for _, t := range tasks {
		byPeriod[t.TimeOfDay] = append(byPeriod[t.TimeOfDay], t)
	}

	rows := taskRows(byPeriod[task.PeriodNone], key, task.PeriodNone)
	for _, p := range task.AllPeriods() {
		inPeriod := byPeriod[p]
		if p.Elapsed(now) && len(inPeriod) == 0 {
			continue
		}
		rows = append(rows, Row{
			Kind:            RowSubheader,
			Key:             key,
			Period:          p,
			RemainingBudget: ledger.RemainingPeriod(p),
		})
		rows = append(rows, taskRows(inPeriod, key, p)...)
	}
	return rows
}

func taskRows(tasks []*task.Task, key Key, period task.Period) []Row {
	rows := make([]Row, 0, len(tasks))
	for i, t := range tasks {
		rows = append(rows, Row{
			Kind:   RowTask,
			Key:    key,
			Period: period,
			Task:   t,
			First:  i == 0,
			Last:   i == len(tasks)-1,
		})
	}
	return rows
}

func focusRows(rows []Row, focus string) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.Key.Label == focus {
			out = append(out, r)
		}
	}
	return out
}

func keyFor(t *task.Task, mode Mode, now time.Time) Key {
	switch mode {
	case ModeDate:
		g := schedule.GroupFor(t.Due.Time, now)
		return Key{Order: g.Order(), Label: g.Label(), Group: g}
	case ModeType:
		for i, typ := range task.AllTypes() {
			if t.Type == typ {
				return Key{Order: i, Label: string(typ)}
			}
		}
		return Key{Order: len(task.AllTypes()), Label: string(t.Type)}
	case ModeStatus:
		for i, s := range task.AllStatuses() {
			if t.Status == s {
				return Key{Order: i, Label: string(s)}
			}
		}
		return Key{Order: len(task.AllStatuses()), Label: string(t.Status)}
	case ModeImportance:
		// Fixed low < mid < high order; unassigned importance sorts last.
		for i, imp := range task.AllImportances() {
			if t.Importance == imp {
				return Key{Order: i, Label: string(imp)}
			}
		}
		return Key{Order: len(task.AllImportances()), Label: "none"}
	case ModeAssignee:
		if t.AssigneeID == "" {
			return Key{Order: 1, Label: "Unassigned"}
		}
		return Key{Order: 0, Label: t.AssigneeID}
	default:
		return Key{}
	}
}

// GroupOf returns the group key a task would land in for the mode, used by
// the reorder coordinator to detect cross-group moves.
func GroupOf(t *task.Task, mode Mode, now time.Time) Key {
	return keyFor(t, mode, now)
}
