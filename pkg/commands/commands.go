package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Personal task organizing on the command line.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addBoard(topLevel)
	addMove(topLevel)
	addComplete(topLevel)
	addStatus(topLevel)
	addTrack(topLevel)
	addUI(topLevel)
	addVersion(topLevel)
}
