package options

import (
	"github.com/spf13/cobra"
)

// RunOptions
type RunOptions struct {
	Mute     bool
	Quiet    bool
	Headless bool
	Sounds   string
}

func AddRunArgs(cmd *cobra.Command, o *RunOptions) {
	cmd.Flags().BoolVarP(&o.Mute, "mute", "m", false,
		"Disable sound effects.")
	cmd.Flags().BoolVarP(&o.Quiet, "quiet", "q", false,
		"Disable desktop notifications.")
	cmd.Flags().BoolVar(&o.Headless, "headless", false,
		"Run without the terminal UI until interrupted.")
	cmd.Flags().StringVar(&o.Sounds, "sounds", "assets/sounds",
		"Directory holding the wav cues.")
}
