// Package score submits an efficiency self-assessment.
package score

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/pomo/pkg/app"
	"tableflip.dev/pomo/pkg/store"
)

// Score records a 1-5 efficiency score against the persisted state, giving
// the adaptive adjuster its input between sessions.
type Score struct {
	Persistence store.Persistence
	Value       int
}

func (n *Score) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not score, no persistence")
	}

	svc := app.New(app.Options{Persistence: n.Persistence})
	if err := svc.SubmitEfficiencyScore(n.Value); err != nil {
		return err
	}

	st := svc.State()
	fmt.Println("")
	fmt.Printf("Recorded score %d.\n", n.Value)
	faint := color.New(color.Faint)
	_, _ = faint.Printf("focus ×%.2f  break ×%.2f  (%d scores in window)\n",
		st.FocusMultiplier, st.BreakMultiplier, len(st.Scores))
	fmt.Println("")
	return nil
}
