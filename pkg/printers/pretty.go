package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/agenda/pkg/grouping"
	"tableflip.dev/agenda/pkg/task"
)

type PrettyPrint struct {
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("171dff69f8b99dca  "))
)

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

// Board renders the flattened row sequence: group headers with counts and
// remaining budget, period subheaders, and task rows.
func (pp *PrettyPrint) Board(result grouping.Result) {
	if len(result.Rows) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	header := color.New(color.Bold, color.Underline)
	sub := color.New(color.Bold, color.Faint)
	faint := color.New(color.Faint)

	var tbl *uitable.Table
	flush := func() {
		if tbl != nil {
			_, _ = fmt.Fprintln(color.Output, tbl)
			tbl = nil
		}
	}

	for _, row := range result.Rows {
		switch row.Kind {
		case grouping.RowHeader:
			flush()
			fmt.Println("")
			_, _ = header.Print(row.Key.Label)
			if s := row.Summary; s != nil {
				_, _ = faint.Printf(" - %d", s.Count)
				switch s.Count {
				case 1:
					_, _ = faint.Print(" task")
				default:
					_, _ = faint.Print(" tasks")
				}
				if s.RemainingMinutes > 0 {
					_, _ = faint.Printf(", %dm planned", s.RemainingMinutes)
				}
				if s.CompletedCount > 0 {
					_, _ = faint.Printf(", %d done", s.CompletedCount)
				}
			}
			if row.RemainingBudget > 0 {
				_, _ = faint.Printf(" (%dm free)", row.RemainingBudget)
			}
			fmt.Println("")
		case grouping.RowSubheader:
			flush()
			_, _ = sub.Printf("  %s", row.Period.String())
			_, _ = faint.Printf(" (%dm free)\n", row.RemainingBudget)
		case grouping.RowTask:
			if tbl == nil {
				tbl = uitable.New()
				tbl.Separator = " "
			}
			tbl.AddRow(pp.taskRow(row.Task)...)
		}
	}
	flush()
	fmt.Println("")
}

func (pp *PrettyPrint) taskRow(t *task.Task) []interface{} {
	cols := make([]interface{}, 0, 6)
	if pp.ShowID {
		cols = append(cols, color.New(color.FgHiYellow, color.Faint).Sprint(t.ID))
	}
	cols = append(cols, statusGlyph(t.Status), t.Title)
	if t.HasEstimate() {
		cols = append(cols, fmt.Sprintf("%dm", t.Estimate))
	} else {
		cols = append(cols, "")
	}
	if t.Importance != task.ImportanceNone {
		cols = append(cols, string(t.Importance))
	} else {
		cols = append(cols, "")
	}
	return cols
}

func statusGlyph(s task.Status) string {
	switch s {
	case task.StatusDone:
		return "✘"
	case task.StatusInProgress:
		return "◐"
	case task.StatusBlocked:
		return "⊘"
	default:
		return "●"
	}
}

// Tasks renders a plain task list without grouping.
func (pp *PrettyPrint) Tasks(tasks ...*task.Task) {
	if len(tasks) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Print(spacing)
		}
		_, _ = f.Print(" none\n\n")
		return
	}

	tbl := uitable.New()
	tbl.Separator = " "
	for _, t := range tasks {
		tbl.AddRow(pp.taskRow(t)...)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
}
