package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/pomo/pkg/commands/options"
	"tableflip.dev/pomo/pkg/history"
	"tableflip.dev/pomo/pkg/runner/stats"
	"tableflip.dev/pomo/pkg/store"
)

func addStats(topLevel *cobra.Command) {
	so := &options.StatsOptions{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "show daily focus aggregates",
		Example: `
pomo stats
pomo stats --days 30
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}

			h, err := history.Open(cfg.HistoryPath())
			if err != nil {
				return err
			}
			defer h.Close()

			s := stats.Stats{
				History: h,
				Days:    so.Days,
			}
			return s.Do(context.Background())
		},
	}

	options.AddStatsArgs(cmd, so)

	topLevel.AddCommand(cmd)
}
