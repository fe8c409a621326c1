package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/runner/status"
	"tableflip.dev/agenda/pkg/store"
	"tableflip.dev/agenda/pkg/task"
)

func addStatus(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "set the workflow state of a task",
		Example: `
agenda status <task id> in-progress
agenda status <task id> blocked
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("requires a task id and a status")
			}
			return nil
		},
		RunE: func(_ *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			st, err := task.ParseStatus(args[1])
			if err != nil {
				return err
			}
			s := status.Status{
				ID:          args[0],
				Status:      st,
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
