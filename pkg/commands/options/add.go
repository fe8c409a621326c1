package options

import (
	"github.com/spf13/cobra"
)

// AddOptions carries the task creation flags.
type AddOptions struct {
	Type       string
	Importance string
	Estimate   int
	Period     string
	Assignee   string
}

func AddAddArgs(cmd *cobra.Command, o *AddOptions) {
	cmd.Flags().StringVarP(&o.Type, "type", "t", "chore",
		"Task type: note, chore, errand, appointment.")
	cmd.Flags().StringVarP(&o.Importance, "importance", "i", "",
		"Importance: low, mid, high.")
	cmd.Flags().IntVarP(&o.Estimate, "estimate", "e", 0,
		"Estimated minutes.")
	cmd.Flags().StringVarP(&o.Period, "period", "p", "",
		"Time of day: morning, afternoon, evening (today only).")
	cmd.Flags().StringVarP(&o.Assignee, "assignee", "a", "",
		"Assignee id.")
}
