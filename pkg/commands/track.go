package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/runner/track"
	"tableflip.dev/agenda/pkg/store"
)

func addTrack(topLevel *cobra.Command) {
	stop := false

	cmd := &cobra.Command{
		Use:   "track",
		Short: "start or stop tracking time against a task",
		Example: `
agenda track <task id>
agenda track <task id> --stop
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a task id")
			}
			return nil
		},
		RunE: func(_ *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := track.Track{
				ID:          args[0],
				Stop:        stop,
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	cmd.Flags().BoolVar(&stop, "stop", false, "Stop the open session instead of starting one.")

	topLevel.AddCommand(cmd)
}
