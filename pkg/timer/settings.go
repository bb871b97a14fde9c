package timer

import (
	"time"
)

// Settings holds the configured durations and scheduling knobs. Values are
// immutable once handed to an Engine; use Engine.UpdateSettings to change
// them.
type Settings struct {
	FocusDuration time.Duration `json:"focusDuration"`
	BreakDuration time.Duration `json:"breakDuration"`

	// Micro-break scheduling bounds. The interval is drawn from an
	// exponential distribution scaled into [min, max]; the duration from a
	// short-skewed distribution in [min, max].
	MicroBreakMinInterval time.Duration `json:"microBreakMinInterval"`
	MicroBreakMaxInterval time.Duration `json:"microBreakMaxInterval"`
	MicroBreakLambda      float64       `json:"microBreakLambda"`
	MicroBreakMinDuration time.Duration `json:"microBreakMinDuration"`
	MicroBreakMaxDuration time.Duration `json:"microBreakMaxDuration"`

	// A forced break replaces the normal break once continuous focus time
	// crosses the threshold.
	ForcedBreakThreshold time.Duration `json:"forcedBreakThreshold"`
	ForcedBreakDuration  time.Duration `json:"forcedBreakDuration"`

	AdaptiveEnabled  bool  `json:"adaptiveEnabled"`
	CircadianEnabled bool  `json:"circadianEnabled"`
	PeakHours        []int `json:"peakHours"`
	LowEnergyHours   []int `json:"lowEnergyHours"`
}

// DefaultSettings returns the stock configuration: 90 minute focus blocks,
// 20 minute breaks, micro-breaks every 10-25 minutes lasting 10-60 seconds,
// and a forced 30 minute break after two hours of continuous focus.
func DefaultSettings() Settings {
	return Settings{
		FocusDuration:         90 * time.Minute,
		BreakDuration:         20 * time.Minute,
		MicroBreakMinInterval: 10 * time.Minute,
		MicroBreakMaxInterval: 25 * time.Minute,
		MicroBreakLambda:      1.5,
		MicroBreakMinDuration: 10 * time.Second,
		MicroBreakMaxDuration: 60 * time.Second,
		ForcedBreakThreshold:  2 * time.Hour,
		ForcedBreakDuration:   30 * time.Minute,
		AdaptiveEnabled:       true,
		CircadianEnabled:      true,
		PeakHours:             []int{9, 10, 11},
		LowEnergyHours:        []int{14, 15, 23},
	}
}

// Patch carries a partial settings update; nil fields keep their current
// value.
type Patch struct {
	FocusDuration         *time.Duration
	BreakDuration         *time.Duration
	MicroBreakMinInterval *time.Duration
	MicroBreakMaxInterval *time.Duration
	MicroBreakLambda      *float64
	MicroBreakMinDuration *time.Duration
	MicroBreakMaxDuration *time.Duration
	ForcedBreakThreshold  *time.Duration
	ForcedBreakDuration   *time.Duration
	AdaptiveEnabled       *bool
	CircadianEnabled      *bool
	PeakHours             []int
	LowEnergyHours        []int
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.FocusDuration == nil &&
		p.BreakDuration == nil &&
		p.MicroBreakMinInterval == nil &&
		p.MicroBreakMaxInterval == nil &&
		p.MicroBreakLambda == nil &&
		p.MicroBreakMinDuration == nil &&
		p.MicroBreakMaxDuration == nil &&
		p.ForcedBreakThreshold == nil &&
		p.ForcedBreakDuration == nil &&
		p.AdaptiveEnabled == nil &&
		p.CircadianEnabled == nil &&
		p.PeakHours == nil &&
		p.LowEnergyHours == nil
}

// Apply merges the patch into a copy of s.
func (s Settings) Apply(p Patch) Settings {
	if p.FocusDuration != nil {
		s.FocusDuration = *p.FocusDuration
	}
	if p.BreakDuration != nil {
		s.BreakDuration = *p.BreakDuration
	}
	if p.MicroBreakMinInterval != nil {
		s.MicroBreakMinInterval = *p.MicroBreakMinInterval
	}
	if p.MicroBreakMaxInterval != nil {
		s.MicroBreakMaxInterval = *p.MicroBreakMaxInterval
	}
	if p.MicroBreakLambda != nil {
		s.MicroBreakLambda = *p.MicroBreakLambda
	}
	if p.MicroBreakMinDuration != nil {
		s.MicroBreakMinDuration = *p.MicroBreakMinDuration
	}
	if p.MicroBreakMaxDuration != nil {
		s.MicroBreakMaxDuration = *p.MicroBreakMaxDuration
	}
	if p.ForcedBreakThreshold != nil {
		s.ForcedBreakThreshold = *p.ForcedBreakThreshold
	}
	if p.ForcedBreakDuration != nil {
		s.ForcedBreakDuration = *p.ForcedBreakDuration
	}
	if p.AdaptiveEnabled != nil {
		s.AdaptiveEnabled = *p.AdaptiveEnabled
	}
	if p.CircadianEnabled != nil {
		s.CircadianEnabled = *p.CircadianEnabled
	}
	if p.PeakHours != nil {
		s.PeakHours = append([]int(nil), p.PeakHours...)
	}
	if p.LowEnergyHours != nil {
		s.LowEnergyHours = append([]int(nil), p.LowEnergyHours...)
	}
	return s.normalized()
}

// normalized clamps nonsense values back to something the engine can run
// with. Loading never fails; bad fields degrade to defaults.
func (s Settings) normalized() Settings {
	def := DefaultSettings()
	if s.FocusDuration < time.Minute {
		s.FocusDuration = def.FocusDuration
	}
	if s.BreakDuration < time.Minute {
		s.BreakDuration = def.BreakDuration
	}
	if s.MicroBreakMinInterval <= 0 {
		s.MicroBreakMinInterval = def.MicroBreakMinInterval
	}
	if s.MicroBreakMaxInterval < s.MicroBreakMinInterval {
		s.MicroBreakMaxInterval = s.MicroBreakMinInterval
	}
	if s.MicroBreakLambda <= 0 {
		s.MicroBreakLambda = def.MicroBreakLambda
	}
	if s.MicroBreakMinDuration <= 0 {
		s.MicroBreakMinDuration = def.MicroBreakMinDuration
	}
	if s.MicroBreakMaxDuration < s.MicroBreakMinDuration {
		s.MicroBreakMaxDuration = s.MicroBreakMinDuration
	}
	if s.ForcedBreakThreshold <= 0 {
		s.ForcedBreakThreshold = def.ForcedBreakThreshold
	}
	if s.ForcedBreakDuration <= 0 {
		s.ForcedBreakDuration = def.ForcedBreakDuration
	}
	return s
}
