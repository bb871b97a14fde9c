package timer

// Phase identifies which interval the engine is currently counting down.
type Phase int

const (
	Focus Phase = iota
	Break
	MicroBreak
	ForcedBreak
)

var phaseNames = map[Phase]string{
	Focus:       "focus",
	Break:       "break",
	MicroBreak:  "micro-break",
	ForcedBreak: "forced-break",
}

var phaseLabels = map[Phase]string{
	Focus:       "Focus",
	Break:       "Break",
	MicroBreak:  "Micro Break",
	ForcedBreak: "Forced Break",
}

func (p Phase) String() string {
	if n, ok := phaseNames[p]; ok {
		return n
	}
	return "unknown"
}

// Label is the human form used by printers and the UI.
func (p Phase) Label() string {
	if l, ok := phaseLabels[p]; ok {
		return l
	}
	return "Unknown"
}

// ParsePhase maps a stored phase name back to its Phase. Unrecognized names
// fall back to Focus so a stale snapshot cannot wedge the engine.
func ParsePhase(name string) Phase {
	for p, n := range phaseNames {
		if n == name {
			return p
		}
	}
	return Focus
}
