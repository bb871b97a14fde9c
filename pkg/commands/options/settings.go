package options

import (
	"github.com/spf13/cobra"
)

// SettingsOptions carries raw flag values; the command parses them into a
// patch so unset flags leave the stored settings alone.
type SettingsOptions struct {
	Focus                string
	Break                string
	MicroBreakMin        string
	MicroBreakMax        string
	MicroBreakLengthMin  string
	MicroBreakLengthMax  string
	ForcedBreakThreshold string
	ForcedBreakLength    string
	Adaptive             string
	Circadian            string
	PeakHours            []int
	LowEnergyHours       []int
}

func AddSettingsArgs(cmd *cobra.Command, o *SettingsOptions) {
	cmd.Flags().StringVar(&o.Focus, "focus", "",
		"Focus block length, e.g. 90m or 1h30m.")
	cmd.Flags().StringVar(&o.Break, "break", "",
		"Break length, e.g. 20m.")
	cmd.Flags().StringVar(&o.MicroBreakMin, "micro-min", "",
		"Shortest gap between micro-breaks, e.g. 10m.")
	cmd.Flags().StringVar(&o.MicroBreakMax, "micro-max", "",
		"Longest gap between micro-breaks, e.g. 25m.")
	cmd.Flags().StringVar(&o.MicroBreakLengthMin, "micro-length-min", "",
		"Shortest micro-break, e.g. 10s.")
	cmd.Flags().StringVar(&o.MicroBreakLengthMax, "micro-length-max", "",
		"Longest micro-break, e.g. 60s.")
	cmd.Flags().StringVar(&o.ForcedBreakThreshold, "forced-after", "",
		"Continuous focus before a forced break, e.g. 2h.")
	cmd.Flags().StringVar(&o.ForcedBreakLength, "forced-length", "",
		"Forced break length, e.g. 30m.")
	cmd.Flags().StringVar(&o.Adaptive, "adaptive", "",
		"Adaptive duration adjustment: on or off.")
	cmd.Flags().StringVar(&o.Circadian, "circadian", "",
		"Circadian hour-of-day scaling: on or off.")
	cmd.Flags().IntSliceVar(&o.PeakHours, "peak-hours", nil,
		"Peak energy hours (0-23), e.g. 9,10,11.")
	cmd.Flags().IntSliceVar(&o.LowEnergyHours, "low-hours", nil,
		"Low energy hours (0-23), e.g. 14,15,23.")
}
