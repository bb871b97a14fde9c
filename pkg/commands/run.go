package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/pomo/pkg/commands/options"
	"tableflip.dev/pomo/pkg/history"
	"tableflip.dev/pomo/pkg/notify"
	"tableflip.dev/pomo/pkg/runner/run"
	"tableflip.dev/pomo/pkg/sound"
	"tableflip.dev/pomo/pkg/store"
)

func addRun(topLevel *cobra.Command) {
	ro := &options.RunOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "start a focus session",
		Example: `
pomo run
pomo run --mute --quiet
pomo run --headless
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			p, err := store.Load(cfg)
			if err != nil {
				return err
			}

			var player sound.Player = sound.Nop{}
			if !ro.Mute {
				if bp, err := sound.NewBeepPlayer(ro.Sounds); err != nil {
					fmt.Fprintf(os.Stderr, "sound disabled: %v\n", err)
				} else {
					player = bp
				}
			}

			var notifier notify.Notifier = notify.Nop{}
			if !ro.Quiet {
				notifier = notify.Desktop{AppName: "pomo"}
			}

			var hist *history.Store
			if h, err := history.Open(cfg.HistoryPath()); err != nil {
				fmt.Fprintf(os.Stderr, "history disabled: %v\n", err)
			} else {
				hist = h
				defer hist.Close()
			}

			s := run.Run{
				Persistence: p,
				History:     hist,
				Sound:       player,
				Notifier:    notifier,
				Headless:    ro.Headless,
			}
			return s.Do(context.Background())
		},
	}

	options.AddRunArgs(cmd, ro)

	topLevel.AddCommand(cmd)
}
