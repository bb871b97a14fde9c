package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "pomo",
		Short: base.Wrap80("An adaptive focus timer on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addRun(topLevel)
	addStatus(topLevel)
	addStats(topLevel)
	addScore(topLevel)
	addSettings(topLevel)
	addVersion(topLevel)
}
