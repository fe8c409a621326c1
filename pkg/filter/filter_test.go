package filter

import (
	"testing"
	"time"

	"tableflip.dev/agenda/pkg/schedule"
	"tableflip.dev/agenda/pkg/task"
)

var wednesday = time.Date(2026, 8, 19, 14, 0, 0, 0, time.UTC)

func named(id, title string) *task.Task {
	return &task.Task{ID: id, Type: task.TypeChore, Title: title, Status: task.StatusTodo}
}

func TestMatchesMultiselect(t *testing.T) {
	tests := []struct {
		name  string
		f     *Value
		value string
		want  bool
	}{
		{name: "absent filter", f: nil, value: "todo", want: true},
		{name: "wrong kind", f: Text("x"), value: "todo", want: true},
		{name: "empty selection is unconstrained", f: Multiselect(), value: "todo", want: true},
		{name: "member", f: Multiselect("todo", "blocked"), value: "todo", want: true},
		{name: "non-member", f: Multiselect("todo", "blocked"), value: "done", want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := MatchesMultiselect(tc.f, tc.value); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestMatchesTextWildcard(t *testing.T) {
	titles := []string{"Buy groceries", "Call mom", "Buy flowers"}
	f := Text("Buy*")

	var matched []string
	for _, title := range titles {
		if MatchesText(f, title) {
			matched = append(matched, title)
		}
	}
	if len(matched) != 2 || matched[0] != "Buy groceries" || matched[1] != "Buy flowers" {
		t.Fatalf("expected the two Buy titles, got %v", matched)
	}
}

func TestMatchesText(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		value   string
		want    bool
	}{
		{name: "empty pattern", pattern: "", value: "anything", want: true},
		{name: "substring case-insensitive", pattern: "mom", value: "Call Mom", want: true},
		{name: "substring miss", pattern: "dad", value: "Call Mom", want: false},
		{name: "wildcard anchors", pattern: "Buy*", value: "I should Buy milk", want: false},
		{name: "inner wildcard", pattern: "Buy*milk", value: "Buy some milk", want: true},
		{name: "wildcard case-insensitive", pattern: "buy*", value: "Buy milk", want: true},
		{name: "metacharacters are literal", pattern: "a+b*", value: "a+b and more", want: true},
		{name: "metacharacters do not repeat", pattern: "a+b", value: "aab", want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := MatchesText(Text(tc.pattern), tc.value); got != tc.want {
				t.Fatalf("pattern %q against %q: expected %v, got %v", tc.pattern, tc.value, got, tc.want)
			}
		})
	}
}

func TestMatchesDate(t *testing.T) {
	day := schedule.StartOfDay(wednesday)
	if !MatchesDate(nil, time.Time{}) {
		t.Fatalf("absent filter must match")
	}
	if !MatchesDate(Date(day), wednesday) {
		t.Fatalf("same calendar day must match regardless of time")
	}
	if MatchesDate(Date(day), wednesday.AddDate(0, 0, 1)) {
		t.Fatalf("different day must not match")
	}
	if MatchesDate(Date(day), time.Time{}) {
		t.Fatalf("undated task must not match a present date filter")
	}
}

func TestMatchesTitleSelection(t *testing.T) {
	a := named("a", "Buy groceries")
	b := named("b", "Buy flowers")

	// An explicit selection is authoritative; the pattern is ignored.
	f := TitleSelection("b")
	f.Pattern = "groceries"
	if MatchesTitle(f, a) {
		t.Fatalf("selection must override the pattern")
	}
	if !MatchesTitle(f, b) {
		t.Fatalf("selected id must match")
	}

	// An empty selection set selects nothing.
	if MatchesTitle(TitleSelection(), a) {
		t.Fatalf("empty selection must match nothing")
	}

	// Without a selection the pattern applies.
	if !MatchesTitle(TitleText("Buy*"), a) {
		t.Fatalf("pattern fallback must match")
	}
}

func TestMatchesComposite(t *testing.T) {
	due := task.Timestamp{Time: schedule.StartOfDay(wednesday)}
	tk := &task.Task{
		ID:     "t1",
		Type:   task.TypeChore,
		Title:  "Buy groceries",
		Status: task.StatusTodo,
		Due:    due,
	}

	state := State{
		Columns: Columns{
			FieldTitle:  TitleText("Buy*"),
			FieldStatus: Multiselect("todo"),
		},
		Preset: schedule.PresetToday,
	}
	if !Matches(tk, state, wednesday) {
		t.Fatalf("task should pass all filters")
	}

	state.Columns[FieldStatus] = Multiselect("done")
	if Matches(tk, state, wednesday) {
		t.Fatalf("any failing column must reject the task")
	}
}

func TestMatchesSkipsDateColumnUnderPreset(t *testing.T) {
	tk := &task.Task{
		ID:     "t1",
		Type:   task.TypeChore,
		Title:  "Buy groceries",
		Status: task.StatusTodo,
		Due:    task.Timestamp{Time: schedule.StartOfDay(wednesday)},
	}

	// The date column filter points at a different day, but an active
	// preset other than "all" supersedes it entirely.
	columns := Columns{
		FieldDue: Date(wednesday.AddDate(0, 0, 3)),
	}
	state := State{Columns: columns, Preset: schedule.PresetToday}
	if !Matches(tk, state, wednesday) {
		t.Fatalf("date column must be skipped while a preset is active")
	}

	// With the preset back to "all" the column filter applies again.
	state.Preset = schedule.PresetAll
	if Matches(tk, state, wednesday) {
		t.Fatalf("date column must apply under the all preset")
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	tasks := []*task.Task{
		named("1", "Buy groceries"),
		named("2", "Call mom"),
		named("3", "Buy flowers"),
	}
	state := State{
		Columns: Columns{FieldTitle: TitleText("Buy*")},
		Preset:  schedule.PresetAll,
	}
	got := Apply(tasks, state, wednesday)
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("expected tasks 1 and 3 in order, got %v", got)
	}
}
