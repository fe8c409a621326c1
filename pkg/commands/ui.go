package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/runner/ui"
	"tableflip.dev/agenda/pkg/store"
)

func addUI(topLevel *cobra.Command) {
	bo := &options.BoardOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "interactive task board",
		Example: `
agenda ui
agenda ui --group-by status
`,
		RunE: func(_ *cobra.Command, _ []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			mode, err := bo.GetMode()
			if err != nil {
				return err
			}
			s := ui.UI{
				Mode:        mode,
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVarP(&bo.GroupBy, "group-by", "g", "date",
		"Group tasks by: none, date, type, status, importance, assignee.")

	topLevel.AddCommand(cmd)
}
