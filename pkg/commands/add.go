package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/runner/add"
	"tableflip.dev/agenda/pkg/store"
	"tableflip.dev/agenda/pkg/task"
)

func addAdd(topLevel *cobra.Command) {
	ao := &options.AddOptions{}
	oo := &options.OnOptions{}
	io := &options.IDOptions{}
	title := ""

	cmd := &cobra.Command{
		Use:   "add",
		Short: "add a task",
		Example: `
agenda add "Buy groceries" --estimate 30 --on 2/28
agenda add "Call mom" -t errand -i high
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a task title")
			}
			title = strings.Join(args, " ")
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			typ, err := task.ParseType(ao.Type)
			if err != nil {
				return err
			}
			importance, err := task.ParseImportance(ao.Importance)
			if err != nil {
				return err
			}
			period, err := task.ParsePeriod(ao.Period)
			if err != nil {
				return err
			}
			on, err := oo.GetOn()
			if err != nil {
				return err
			}
			s := add.Add{
				Title:       title,
				Type:        typ,
				Importance:  importance,
				Estimate:    ao.Estimate,
				Due:         on,
				TimeOfDay:   period,
				AssigneeID:  ao.Assignee,
				ShowID:      io.ShowID,
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddAddArgs(cmd, ao)
	options.AddOnArgs(cmd, oo)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
