package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/runner/move"
	"tableflip.dev/agenda/pkg/store"
)

func addMove(topLevel *cobra.Command) {
	bo := &options.BoardOptions{}
	targetID := ""
	period := ""

	cmd := &cobra.Command{
		Use:   "move",
		Short: "move a task next to another task or into a period",
		Long: "Move a task relative to a target task, or drop it onto a time-of-day\n" +
			"bucket. Moves that would overload the target bucket's time budget are\n" +
			"rejected.",
		Example: `
agenda move <task id> --to <target id>
agenda move <task id> --period afternoon
agenda move <task id> --period ""
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a task id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			mode, err := bo.GetMode()
			if err != nil {
				return err
			}
			s := move.Move{
				ID:          args[0],
				TargetID:    targetID,
				Period:      period,
				HasPeriod:   cmd.Flags().Changed("period"),
				Mode:        mode,
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&targetID, "to", "", "Target task id to land next to.")
	cmd.Flags().StringVar(&period, "period", "", "Time-of-day bucket to drop into (empty clears it).")
	cmd.Flags().StringVarP(&bo.GroupBy, "group-by", "g", "date",
		"Grouping mode the move happens under.")

	topLevel.AddCommand(cmd)
}
