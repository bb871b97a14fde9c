package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/pomo/pkg/timer"
	"tableflip.dev/pomo/pkg/timeutil"
)

type PrettyPrint struct{}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

// Phase prints the phase label in its signature color.
func (pp *PrettyPrint) Phase(p timer.Phase) {
	_, _ = phaseColor(p).Print(p.Label())
}

// StateLine renders a one-line summary of the timer state.
func (pp *PrettyPrint) StateLine(st timer.State) {
	c := phaseColor(st.Phase)
	faint := color.New(color.Faint)

	_, _ = c.Printf("%s  ", st.Phase.Label())
	fmt.Printf("%s", timeutil.Clock(st.TimeLeft))
	_, _ = faint.Printf(" / %s", timeutil.Clock(st.TotalTime))
	if st.Active {
		fmt.Printf("  %s", Meter(st.TimeLeft, st.TotalTime, 20))
	} else {
		_, _ = faint.Print("  paused")
	}
	fmt.Println("")
}

// Meter renders a fixed-width progress bar for a countdown.
func Meter(remaining, total, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := 0
	if total > 0 {
		filled = (total - remaining) * width / total
	}
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

func phaseColor(p timer.Phase) *color.Color {
	switch p {
	case timer.Focus:
		return color.New(color.FgHiRed, color.Bold)
	case timer.Break:
		return color.New(color.FgGreen, color.Bold)
	case timer.MicroBreak:
		return color.New(color.FgHiYellow, color.Bold)
	case timer.ForcedBreak:
		return color.New(color.FgHiBlue, color.Bold)
	default:
		return color.New()
	}
}
