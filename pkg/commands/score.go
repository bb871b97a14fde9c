package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/pomo/pkg/runner/score"
	"tableflip.dev/pomo/pkg/store"
)

func addScore(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "score [1-5]",
		Short: "record how effective the last stretch felt",
		Example: `
pomo score 4
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("score must be a number 1-5, got %q", args[0])
			}

			p, err := store.Load(nil)
			if err != nil {
				return err
			}

			s := score.Score{
				Persistence: p,
				Value:       value,
			}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
