package timer

import (
	"time"

	"tableflip.dev/pomo/pkg/random"
)

// TransitionFunc is invoked after the engine moves between phases. The state
// passed in is a copy taken after the transition.
type TransitionFunc func(from, to Phase, st State)

// Engine is the phase state machine at the heart of the timer. It is pure
// bookkeeping: no goroutines, no persistence, no side effects beyond the
// transition hook. The owner drives it with Tick (1 Hz) and PollMicroBreak
// (every 5 s) and serializes access.
type Engine struct {
	settings Settings
	state    State
	rng      *random.Generator
	now      func() time.Time

	// Remaining focus time stashed while a micro-break interrupts it.
	stashedLeft  int
	stashedTotal int

	onTransition TransitionFunc
}

// NewEngine builds an engine with the given settings and a fresh focus phase
// armed but not running.
func NewEngine(settings Settings) *Engine {
	e := &Engine{
		settings: settings.normalized(),
		rng:      random.New(),
		now:      time.Now,
	}
	e.state.Phase = Focus
	e.state.FocusMultiplier = 1.0
	e.state.BreakMultiplier = 1.0
	e.state.TodayDate = e.now().Format(layoutISO)
	e.armPhase(Focus)
	return e
}

// SetClock overrides the engine's time source. Tests use this to pin the
// hour of day and to cross day boundaries.
func (e *Engine) SetClock(now func() time.Time) {
	if now != nil {
		e.now = now
	}
}

// SetRandom overrides the random generator.
func (e *Engine) SetRandom(rng *random.Generator) {
	if rng != nil {
		e.rng = rng
	}
}

// OnTransition registers the side-effect hook fired on every phase change.
func (e *Engine) OnTransition(fn TransitionFunc) {
	e.onTransition = fn
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	return e.state.clone()
}

// Settings returns the active settings.
func (e *Engine) Settings() Settings {
	return e.settings
}

// UpdateSettings merges the patch. When the timer is idle the armed duration
// is recomputed so the new focus length shows immediately.
func (e *Engine) UpdateSettings(p Patch) Settings {
	e.settings = e.settings.Apply(p)
	if !e.state.Active && e.state.Phase == Focus && e.state.TimeLeft == e.state.TotalTime {
		e.armPhase(Focus)
	}
	return e.settings
}

// Restore rehydrates the non-transient fields from a snapshot. Phase,
// timeLeft, and the active flag always start fresh.
func (e *Engine) Restore(snap Snapshot) {
	e.state.restore(snap, e.now())
}

// Start begins (or resumes) the countdown. The first call of a session
// captures the session start and schedules the initial micro-break.
func (e *Engine) Start() {
	if e.state.Active {
		return
	}
	e.state.Active = true
	if e.state.SessionStart.IsZero() {
		e.state.SessionStart = e.now()
	}
	if e.state.NextMicroBreakIn == 0 {
		e.scheduleMicroBreak()
	}
}

// Pause halts the countdown, preserving the remaining time.
func (e *Engine) Pause() {
	e.state.Active = false
}

// Reset stops the timer and re-arms a fresh focus phase. Accumulated day
// totals, scores, and multipliers survive; session-scoped fields do not.
func (e *Engine) Reset() {
	e.state.Active = false
	e.state.Phase = Focus
	e.state.SessionStart = time.Time{}
	e.state.ContinuousFocus = 0
	e.state.NextMicroBreakIn = 0
	e.state.LastMicroBreakAt = 0
	e.stashedLeft = 0
	e.stashedTotal = 0
	e.armPhase(Focus)
}

// SkipToNext ends the current phase immediately, as if timeLeft hit zero.
func (e *Engine) SkipToNext() {
	e.advance()
}

// Tick advances the clock by one second. At zero the engine transitions to
// the next phase within the same tick.
func (e *Engine) Tick() {
	if !e.state.Active {
		return
	}
	if e.state.TimeLeft > 0 {
		e.state.TimeLeft--
		if e.state.Phase == Focus {
			e.state.ContinuousFocus++
			e.addTodayFocus(1)
		}
	}
	if e.state.TimeLeft <= 0 {
		e.advance()
	}
}

// PollMicroBreak runs the 5-second micro-break check. Only an active focus
// phase can be interrupted.
func (e *Engine) PollMicroBreak() {
	if !e.state.Active || e.state.Phase != Focus {
		return
	}
	if e.state.NextMicroBreakIn <= 0 {
		e.scheduleMicroBreak()
	}
	if e.rng.ShouldTriggerMicroBreak(e.state.ContinuousFocus, e.state.LastMicroBreakAt, e.state.NextMicroBreakIn) {
		e.beginMicroBreak()
	}
}

// RolloverDay resets the per-day accumulators when the calendar date moves
// on, and gives the adaptive adjuster its daily chance to run.
func (e *Engine) RolloverDay() {
	today := e.now().Format(layoutISO)
	if e.state.TodayDate != today {
		e.state.TodayDate = today
		e.state.TodayFocus = 0
		e.state.MicroBreakCount = 0
	}
	e.maybeAdjust()
}

// advance moves to the phase that follows the current one and fires the
// transition hook.
func (e *Engine) advance() {
	from := e.state.Phase

	switch from {
	case Focus:
		// Forced break outranks the normal break once continuous focus
		// crosses the threshold.
		if e.state.ContinuousFocus >= int(e.settings.ForcedBreakThreshold.Seconds()) {
			e.enterPhase(ForcedBreak)
		} else {
			e.enterPhase(Break)
		}
	case MicroBreak:
		e.resumeFocus()
	case Break, ForcedBreak:
		e.state.ContinuousFocus = 0
		e.state.LastMicroBreakAt = 0
		e.scheduleMicroBreak()
		e.enterPhase(Focus)
	}

	e.fireTransition(from, e.state.Phase)
}

// enterPhase arms the named phase with its computed duration.
func (e *Engine) enterPhase(p Phase) {
	e.state.Phase = p
	e.armPhase(p)
}

// armPhase computes and sets the countdown for p.
func (e *Engine) armPhase(p Phase) {
	total := e.phaseDuration(p)
	e.state.TotalTime = total
	e.state.TimeLeft = total
}

// phaseDuration computes the phase length in seconds. Focus is scaled by the
// adaptive and circadian multipliers; break by the adaptive break multiplier.
func (e *Engine) phaseDuration(p Phase) int {
	switch p {
	case Focus:
		d := e.settings.FocusDuration.Seconds()
		if e.settings.AdaptiveEnabled {
			d *= e.state.FocusMultiplier
		}
		if e.settings.CircadianEnabled {
			d *= e.circadianMultiplier(e.now().Hour())
		}
		return int(d)
	case Break:
		d := e.settings.BreakDuration.Seconds()
		if e.settings.AdaptiveEnabled {
			d *= e.state.BreakMultiplier
		}
		return int(d)
	case ForcedBreak:
		return int(e.settings.ForcedBreakDuration.Seconds())
	default:
		return 0
	}
}

// scheduleMicroBreak draws the next interrupt interval.
func (e *Engine) scheduleMicroBreak() {
	e.state.NextMicroBreakIn = e.rng.MicroBreakInterval(
		e.settings.MicroBreakMinInterval.Minutes(),
		e.settings.MicroBreakMaxInterval.Minutes(),
		e.settings.MicroBreakLambda,
	)
}

// beginMicroBreak stashes the running focus countdown and flips into a
// randomly sized micro-break.
func (e *Engine) beginMicroBreak() {
	e.stashedLeft = e.state.TimeLeft
	e.stashedTotal = e.state.TotalTime
	e.state.LastMicroBreakAt = e.state.ContinuousFocus
	e.state.MicroBreakCount++

	dur := e.rng.MicroBreakDuration(
		int(e.settings.MicroBreakMinDuration.Seconds()),
		int(e.settings.MicroBreakMaxDuration.Seconds()),
	)
	e.state.Phase = MicroBreak
	e.state.TotalTime = dur
	e.state.TimeLeft = dur
	e.scheduleMicroBreak()

	e.fireTransition(Focus, MicroBreak)
}

// resumeFocus restores the focus countdown exactly where the micro-break
// interrupted it.
func (e *Engine) resumeFocus() {
	e.state.Phase = Focus
	e.state.TimeLeft = e.stashedLeft
	e.state.TotalTime = e.stashedTotal
	e.stashedLeft = 0
	e.stashedTotal = 0
	// A stash drained to zero falls through to the regular break on the
	// next tick rather than transitioning twice in one step.
	if e.state.TotalTime == 0 {
		e.armPhase(Focus)
	}
}

// addTodayFocus accumulates focus seconds, rolling the date forward if the
// session runs over midnight.
func (e *Engine) addTodayFocus(secs int) {
	today := e.now().Format(layoutISO)
	if e.state.TodayDate != today {
		e.state.TodayDate = today
		e.state.TodayFocus = 0
		e.state.MicroBreakCount = 0
	}
	e.state.TodayFocus += secs
}

func (e *Engine) fireTransition(from, to Phase) {
	if e.onTransition != nil && from != to {
		e.onTransition(from, to, e.state.clone())
	}
}
