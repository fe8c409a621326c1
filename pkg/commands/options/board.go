package options

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/filter"
	"tableflip.dev/agenda/pkg/grouping"
	"tableflip.dev/agenda/pkg/schedule"
)

// BoardOptions carries the grouping and filtering flags for the board view.
type BoardOptions struct {
	GroupBy    string
	Focus      string
	Preset     string
	OnDate     string
	Title      string
	Status     []string
	Types      []string
	Importance []string
	Assignee   []string
}

func AddBoardArgs(cmd *cobra.Command, o *BoardOptions) {
	cmd.Flags().StringVarP(&o.GroupBy, "group-by", "g", "date",
		"Group tasks by: none, date, type, status, importance, assignee.")
	cmd.Flags().StringVar(&o.Focus, "focus", "",
		"Show only the named group.")
	cmd.Flags().StringVar(&o.Preset, "when", "all",
		"Date preset: all, today, tomorrow, this-week, specific-date.")
	cmd.Flags().StringVar(&o.OnDate, "when-date", "",
		`Date for the specific-date preset, example: --when-date="2026-2-28".`)
	cmd.Flags().StringVar(&o.Title, "title", "",
		`Title filter; "*" wildcards allowed, example: --title="Buy*".`)
	cmd.Flags().StringSliceVar(&o.Status, "status", nil,
		"Only these statuses.")
	cmd.Flags().StringSliceVar(&o.Types, "type", nil,
		"Only these task types.")
	cmd.Flags().StringSliceVar(&o.Importance, "importance", nil,
		"Only these importance levels.")
	cmd.Flags().StringSliceVar(&o.Assignee, "assignee", nil,
		"Only these assignees.")
}

// GetMode parses the grouping mode flag.
func (o *BoardOptions) GetMode() (grouping.Mode, error) {
	return grouping.ParseMode(strings.TrimSpace(o.GroupBy))
}

// GetFilter assembles the composite filter state from the flags.
func (o *BoardOptions) GetFilter() (filter.State, error) {
	state := filter.State{
		Columns: filter.Columns{},
		Preset:  schedule.Preset(strings.TrimSpace(o.Preset)),
	}
	if state.Preset == "" {
		state.Preset = schedule.PresetAll
	}
	if o.OnDate != "" {
		t, err := time.Parse(layoutISO, o.OnDate)
		if err != nil {
			return state, err
		}
		state.Options.SpecificDate = t
	}
	if o.Title != "" {
		state.Columns[filter.FieldTitle] = filter.TitleText(o.Title)
	}
	if len(o.Status) > 0 {
		state.Columns[filter.FieldStatus] = filter.Multiselect(o.Status...)
	}
	if len(o.Types) > 0 {
		state.Columns[filter.FieldType] = filter.Multiselect(o.Types...)
	}
	if len(o.Importance) > 0 {
		state.Columns[filter.FieldImportance] = filter.Multiselect(o.Importance...)
	}
	if len(o.Assignee) > 0 {
		state.Columns[filter.FieldAssignee] = filter.Multiselect(o.Assignee...)
	}
	return state, nil
}
