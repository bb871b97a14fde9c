// Package stats renders daily focus aggregates from the history store.
package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/pomo/pkg/history"
	"tableflip.dev/pomo/pkg/printers"
	"tableflip.dev/pomo/pkg/timeutil"
)

// Stats prints per-day aggregates for the most recent recorded days.
type Stats struct {
	History *history.Store
	Days    int
}

func (n *Stats) Do(ctx context.Context) error {
	if n.History == nil {
		return errors.New("can not get stats, no history store")
	}

	days, err := n.History.RecentDays(n.Days)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Title("stats")

	if len(days) == 0 {
		faint := color.New(color.Faint, color.Italic)
		_, _ = faint.Println(" no sessions recorded yet")
		fmt.Println("")
		return nil
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Day"), bold.Sprint("Focus"), bold.Sprint("Sessions"), bold.Sprint("Breaks"), bold.Sprint("Micro"))
	for _, d := range days {
		tbl.AddRow(
			d.Day,
			timeutil.FormatDuration(time.Duration(d.FocusSeconds)*time.Second),
			fmt.Sprintf("%d", d.FocusSessions),
			fmt.Sprintf("%d", d.Breaks),
			fmt.Sprintf("%d", d.MicroBreaks),
		)
	}
	tbl.RightAlign(2)
	_, _ = fmt.Fprintln(color.Output, tbl)

	fmt.Println("")
	return nil
}
