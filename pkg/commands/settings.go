package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/pomo/pkg/commands/options"
	runner "tableflip.dev/pomo/pkg/runner/settings"
	"tableflip.dev/pomo/pkg/store"
	"tableflip.dev/pomo/pkg/timer"
	"tableflip.dev/pomo/pkg/timeutil"
)

func addSettings(topLevel *cobra.Command) {
	so := &options.SettingsOptions{}

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "show or change the timer configuration",
		Example: `
pomo settings
pomo settings --focus 90m --break 20m
pomo settings --adaptive off --peak-hours 9,10,11
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := buildPatch(so)
			if err != nil {
				return err
			}

			p, err := store.Load(nil)
			if err != nil {
				return err
			}

			s := runner.Settings{
				Persistence: p,
				Patch:       patch,
			}
			return s.Do(context.Background())
		},
	}

	options.AddSettingsArgs(cmd, so)

	topLevel.AddCommand(cmd)
}

func buildPatch(so *options.SettingsOptions) (timer.Patch, error) {
	var p timer.Patch

	durations := []struct {
		raw    string
		target **time.Duration
		flag   string
	}{
		{so.Focus, &p.FocusDuration, "focus"},
		{so.Break, &p.BreakDuration, "break"},
		{so.MicroBreakMin, &p.MicroBreakMinInterval, "micro-min"},
		{so.MicroBreakMax, &p.MicroBreakMaxInterval, "micro-max"},
		{so.MicroBreakLengthMin, &p.MicroBreakMinDuration, "micro-length-min"},
		{so.MicroBreakLengthMax, &p.MicroBreakMaxDuration, "micro-length-max"},
		{so.ForcedBreakThreshold, &p.ForcedBreakThreshold, "forced-after"},
		{so.ForcedBreakLength, &p.ForcedBreakDuration, "forced-length"},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		parsed, err := timeutil.ParseDuration(d.raw)
		if err != nil {
			return timer.Patch{}, fmt.Errorf("--%s: %w", d.flag, err)
		}
		*d.target = &parsed
	}

	toggles := []struct {
		raw    string
		target **bool
		flag   string
	}{
		{so.Adaptive, &p.AdaptiveEnabled, "adaptive"},
		{so.Circadian, &p.CircadianEnabled, "circadian"},
	}
	for _, t := range toggles {
		if t.raw == "" {
			continue
		}
		switch strings.ToLower(t.raw) {
		case "on", "true", "yes":
			v := true
			*t.target = &v
		case "off", "false", "no":
			v := false
			*t.target = &v
		default:
			return timer.Patch{}, fmt.Errorf("--%s: want on or off, got %q", t.flag, t.raw)
		}
	}

	for _, h := range append(append([]int(nil), so.PeakHours...), so.LowEnergyHours...) {
		if h < 0 || h > 23 {
			return timer.Patch{}, fmt.Errorf("hour %d out of range 0-23", h)
		}
	}
	p.PeakHours = so.PeakHours
	p.LowEnergyHours = so.LowEnergyHours

	return p, nil
}
