package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/pomo/pkg/commands/options"
	"tableflip.dev/pomo/pkg/runner/status"
	"tableflip.dev/pomo/pkg/store"
)

func addStatus(topLevel *cobra.Command) {
	so := &options.StatusOptions{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "show today's totals and multipliers",
		Example: `
pomo status
pomo status --watch
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}

			ctx := context.Background()
			if so.Watch {
				sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()
				ctx = sigCtx
			}

			s := status.Status{
				Persistence: p,
				Watch:       so.Watch,
			}
			return s.Do(ctx)
		},
	}

	options.AddStatusArgs(cmd, so)

	topLevel.AddCommand(cmd)
}
