package options

import (
	"github.com/spf13/cobra"
)

// StatsOptions
type StatsOptions struct {
	Days int
}

func AddStatsArgs(cmd *cobra.Command, o *StatsOptions) {
	cmd.Flags().IntVarP(&o.Days, "days", "d", 7,
		"Number of recorded days to show.")
}
