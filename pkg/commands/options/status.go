package options

import (
	"github.com/spf13/cobra"
)

// StatusOptions
type StatusOptions struct {
	Watch bool
}

func AddStatusArgs(cmd *cobra.Command, o *StatusOptions) {
	cmd.Flags().BoolVarP(&o.Watch, "watch", "w", false,
		"Keep running and re-print whenever another process updates the timer.")
}
