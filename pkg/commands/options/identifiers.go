package options

import "github.com/spf13/cobra"

// IDOptions
type IDOptions struct {
	ID     string
	ShowID bool
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVar(&o.ShowID, "show-id", false,
		"Show task ids.")
}
