package timer

import (
	"fmt"
	"time"
)

const (
	scoreWindow = 10

	multiplierFloor = 0.8
	multiplierCeil  = 1.2

	focusStep = 0.05
	breakStep = 0.02

	adjustEvery = 24 * time.Hour
)

// SubmitEfficiencyScore records a 1-5 self-assessment. Scores feed the
// adjuster on the next daily pass; submitting never adjusts immediately.
func (e *Engine) SubmitEfficiencyScore(score int) error {
	if score < 1 || score > 5 {
		return fmt.Errorf("timer: efficiency score %d out of range 1-5", score)
	}
	e.state.Scores = append(e.state.Scores, score)
	if len(e.state.Scores) > scoreWindow {
		e.state.Scores = e.state.Scores[len(e.state.Scores)-scoreWindow:]
	}
	return nil
}

// maybeAdjust nudges the duration multipliers at most once per 24 hours.
// High averages earn longer focus and slightly shorter breaks; low averages
// the inverse. The score buffer is consumed by an adjustment so stale highs
// cannot mask a bad stretch the next day.
func (e *Engine) maybeAdjust() {
	if !e.settings.AdaptiveEnabled || len(e.state.Scores) == 0 {
		return
	}
	now := e.now()
	if !e.state.LastAdjustment.IsZero() && now.Sub(e.state.LastAdjustment) < adjustEvery {
		return
	}

	sum := 0
	for _, s := range e.state.Scores {
		sum += s
	}
	avg := float64(sum) / float64(len(e.state.Scores))

	switch {
	case avg >= 4:
		e.state.FocusMultiplier = clampMultiplier(e.state.FocusMultiplier + focusStep)
		e.state.BreakMultiplier = clampMultiplier(e.state.BreakMultiplier - breakStep)
	case avg <= 2:
		e.state.FocusMultiplier = clampMultiplier(e.state.FocusMultiplier - focusStep)
		e.state.BreakMultiplier = clampMultiplier(e.state.BreakMultiplier + breakStep)
	default:
		return
	}

	e.state.Scores = nil
	e.state.LastAdjustment = now
}

// circadianMultiplier maps the hour of day to a duration scalar. It is never
// persisted; the hour is consulted each time a focus phase is armed.
func (e *Engine) circadianMultiplier(hour int) float64 {
	for _, h := range e.settings.PeakHours {
		if h == hour {
			return 1.1
		}
	}
	for _, h := range e.settings.LowEnergyHours {
		if h == hour {
			return 0.9
		}
	}
	return 1.0
}

func clampMultiplier(m float64) float64 {
	if m < multiplierFloor {
		return multiplierFloor
	}
	if m > multiplierCeil {
		return multiplierCeil
	}
	return m
}
