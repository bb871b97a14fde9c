// Package status prints the persisted timer snapshot.
package status

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/pomo/pkg/store"
	"tableflip.dev/pomo/pkg/timer"
	"tableflip.dev/pomo/pkg/timeutil"
)

// Status renders today's accumulators and the adaptive multipliers from the
// persisted snapshot. A live `pomo run` session keeps the snapshot current,
// so this works from another terminal; with Watch set it keeps running and
// re-renders whenever another process rewrites the store.
type Status struct {
	Persistence store.Persistence
	Watch       bool
	Out         io.Writer
}

func (n *Status) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not get status, no persistence")
	}

	if err := n.print(); err != nil {
		return err
	}
	if !n.Watch {
		return nil
	}

	events, err := n.Persistence.Watch(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
			if err := n.print(); err != nil {
				return err
			}
		}
	}
}

func (n *Status) out() io.Writer {
	if n.Out != nil {
		return n.Out
	}
	return color.Output
}

func (n *Status) print() error {
	out := n.out()

	title := color.New(color.Bold, color.Underline)
	fmt.Fprintln(out, "")
	_, _ = title.Fprintln(out, "pomo")

	snap, ok, err := n.Persistence.Snapshot()
	if err != nil {
		return err
	}
	if !ok {
		faint := color.New(color.Faint, color.Italic)
		_, _ = faint.Fprintln(out, " no timer state recorded yet")
		fmt.Fprintln(out, "")
		return nil
	}

	settings := timer.DefaultSettings()
	if loaded, found, err := n.Persistence.Settings(); err == nil && found {
		settings = loaded
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Today", snap.TodayDate)
	tbl.AddRow("Focus time", timeutil.FormatDuration(time.Duration(snap.TodayFocus)*time.Second))
	tbl.AddRow("Micro-breaks", fmt.Sprintf("%d", snap.MicroBreakCount))
	tbl.AddRow("Focus multiplier", fmt.Sprintf("%.2f", snap.FocusMultiplier))
	tbl.AddRow("Break multiplier", fmt.Sprintf("%.2f", snap.BreakMultiplier))
	tbl.AddRow("Focus block", timeutil.FormatDuration(settings.FocusDuration))
	tbl.AddRow("Break", timeutil.FormatDuration(settings.BreakDuration))
	if len(snap.Scores) > 0 {
		sum := 0
		for _, s := range snap.Scores {
			sum += s
		}
		tbl.AddRow("Avg score", fmt.Sprintf("%.1f over %d", float64(sum)/float64(len(snap.Scores)), len(snap.Scores)))
	}
	_, _ = fmt.Fprintln(out, tbl)

	fmt.Fprintln(out, "")
	return nil
}
