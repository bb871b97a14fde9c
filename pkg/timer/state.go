package timer

import (
	"time"
)

const layoutISO = "2006-01-02"

// State is the engine's visible condition. Counters are in seconds, matching
// the 1 Hz tick.
type State struct {
	Phase     Phase `json:"phase"`
	Active    bool  `json:"active"`
	TimeLeft  int   `json:"timeLeft"`
	TotalTime int   `json:"totalTime"`

	SessionStart time.Time `json:"sessionStart"`

	// ContinuousFocus accumulates focus seconds since the last completed
	// break; TodayFocus accumulates across the day named by TodayDate.
	ContinuousFocus int    `json:"continuousFocus"`
	TodayFocus      int    `json:"todayFocus"`
	TodayDate       string `json:"todayDate"`

	// Micro-break bookkeeping, all measured against ContinuousFocus.
	NextMicroBreakIn int `json:"nextMicroBreakIn"`
	LastMicroBreakAt int `json:"lastMicroBreakAt"`
	MicroBreakCount  int `json:"microBreakCount"`

	// Rolling efficiency scores (newest last, at most ten) and the adaptive
	// multiplier pair they feed.
	Scores          []int     `json:"scores"`
	FocusMultiplier float64   `json:"focusMultiplier"`
	BreakMultiplier float64   `json:"breakMultiplier"`
	LastAdjustment  time.Time `json:"lastAdjustment"`
}

// Snapshot is the subset of State that survives a restart. Transient fields
// (phase, timeLeft, active) always reset on load.
type Snapshot struct {
	TodayDate       string    `json:"todayDate"`
	TodayFocus      int       `json:"todayFocus"`
	MicroBreakCount int       `json:"microBreakCount"`
	Scores          []int     `json:"scores"`
	FocusMultiplier float64   `json:"focusMultiplier"`
	BreakMultiplier float64   `json:"breakMultiplier"`
	LastAdjustment  time.Time `json:"lastAdjustment"`
}

// Snapshot extracts the persistable fields.
func (s State) Snapshot() Snapshot {
	return Snapshot{
		TodayDate:       s.TodayDate,
		TodayFocus:      s.TodayFocus,
		MicroBreakCount: s.MicroBreakCount,
		Scores:          append([]int(nil), s.Scores...),
		FocusMultiplier: s.FocusMultiplier,
		BreakMultiplier: s.BreakMultiplier,
		LastAdjustment:  s.LastAdjustment,
	}
}

// clone returns a copy safe to hand to listeners.
func (s State) clone() State {
	s.Scores = append([]int(nil), s.Scores...)
	return s
}

// restore applies a snapshot onto the state, discarding day counters that
// belong to a different day than now.
func (s *State) restore(snap Snapshot, now time.Time) {
	today := now.Format(layoutISO)
	if snap.TodayDate == today {
		s.TodayFocus = snap.TodayFocus
		s.MicroBreakCount = snap.MicroBreakCount
	}
	s.TodayDate = today
	if len(snap.Scores) > 0 {
		s.Scores = append([]int(nil), snap.Scores...)
	}
	if snap.FocusMultiplier != 0 {
		s.FocusMultiplier = clampMultiplier(snap.FocusMultiplier)
	}
	if snap.BreakMultiplier != 0 {
		s.BreakMultiplier = clampMultiplier(snap.BreakMultiplier)
	}
	if !snap.LastAdjustment.IsZero() {
		s.LastAdjustment = snap.LastAdjustment
	}
}
