// Package settings shows and updates the timer configuration.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/pomo/pkg/app"
	"tableflip.dev/pomo/pkg/printers"
	"tableflip.dev/pomo/pkg/store"
	"tableflip.dev/pomo/pkg/timer"
	"tableflip.dev/pomo/pkg/timeutil"
)

// Settings prints the configuration, or applies the patch first when it is
// non-empty.
type Settings struct {
	Persistence store.Persistence
	Patch       timer.Patch
}

func (n *Settings) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not get settings, no persistence")
	}

	svc := app.New(app.Options{Persistence: n.Persistence})

	current := svc.Settings()
	if !n.Patch.Empty() {
		current = svc.UpdateSettings(n.Patch)
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Title("settings")

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Focus", timeutil.FormatDuration(current.FocusDuration))
	tbl.AddRow("Break", timeutil.FormatDuration(current.BreakDuration))
	tbl.AddRow("Micro-break every", fmt.Sprintf("%s - %s",
		timeutil.FormatDuration(current.MicroBreakMinInterval),
		timeutil.FormatDuration(current.MicroBreakMaxInterval)))
	tbl.AddRow("Micro-break length", fmt.Sprintf("%s - %s",
		timeutil.FormatDuration(current.MicroBreakMinDuration),
		timeutil.FormatDuration(current.MicroBreakMaxDuration)))
	tbl.AddRow("Forced break after", timeutil.FormatDuration(current.ForcedBreakThreshold))
	tbl.AddRow("Forced break", timeutil.FormatDuration(current.ForcedBreakDuration))
	tbl.AddRow("Adaptive", onOff(current.AdaptiveEnabled))
	tbl.AddRow("Circadian", onOff(current.CircadianEnabled))
	tbl.AddRow("Peak hours", hourList(current.PeakHours))
	tbl.AddRow("Low-energy hours", hourList(current.LowEnergyHours))
	_, _ = fmt.Fprintln(color.Output, tbl)

	fmt.Println("")
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func hourList(hours []int) string {
	if len(hours) == 0 {
		return "none"
	}
	parts := make([]string, len(hours))
	for i, h := range hours {
		parts[i] = fmt.Sprintf("%02d:00", h)
	}
	return strings.Join(parts, ", ")
}
