package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/runner/board"
	"tableflip.dev/agenda/pkg/store"
)

func addBoard(topLevel *cobra.Command) {
	bo := &options.BoardOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "board",
		Aliases: []string{"get", "ls"},
		Short:   "show the grouped task board",
		Example: `
agenda board
agenda board --group-by status
agenda board --when this-week --title "Buy*"
agenda board --focus Today
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
			state, err := bo.GetFilter()
			if err != nil {
				return err
			}
			s := board.Board{
				ShowID:      io.ShowID,
				Mode:        mode,
				Filter:      state,
				Focus:       bo.Focus,
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddBoardArgs(cmd, bo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
