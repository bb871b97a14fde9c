// Package app wires the timer engine to persistence, sound, notifications,
// and listeners. UIs and CLI runners share this service instead of touching
// the engine directly.
package app

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"tableflip.dev/pomo/pkg/history"
	"tableflip.dev/pomo/pkg/notify"
	"tableflip.dev/pomo/pkg/sound"
	"tableflip.dev/pomo/pkg/store"
	"tableflip.dev/pomo/pkg/timer"
	"tableflip.dev/pomo/pkg/timeutil"
)

// Listener receives a state copy after every mutation.
type Listener func(timer.State)

// Options configures a Service. Nil collaborators degrade to no-ops so the
// engine keeps running without storage, sound, or notifications.
type Options struct {
	Persistence store.Persistence
	History     *history.Store
	Sound       sound.Player
	Notifier    notify.Notifier
}

// TodayStats summarizes the current day for the UI and the stats command.
type TodayStats struct {
	FocusSeconds  int
	FocusSessions int
	MicroBreaks   int
	AverageScore  float64
}

type listener struct {
	id string
	fn Listener
}

type transition struct {
	from, to timer.Phase
	state    timer.State
	started  time.Time
	seconds  int
}

// Service owns the engine and serializes access to it. All mutation happens
// under one mutex; side effects and listener fan-out run after the lock is
// released so a slow listener cannot stall a tick in progress.
type Service struct {
	mu     sync.Mutex
	engine *timer.Engine

	persistence store.Persistence
	history     *history.Store
	sound       sound.Player
	notifier    notify.Notifier

	listeners []listener
	pending   []transition

	phaseStart   time.Time
	phaseSeconds int

	now func() time.Time
}

// New builds the service, loading settings and the persisted snapshot.
// Storage failures are logged and the defaults used; startup never fails on
// a bad or missing store.
func New(o Options) *Service {
	s := &Service{
		persistence: o.Persistence,
		history:     o.History,
		sound:       o.Sound,
		notifier:    o.Notifier,
		now:         time.Now,
	}
	if s.sound == nil {
		s.sound = sound.Nop{}
	}
	if s.notifier == nil {
		s.notifier = notify.Nop{}
	}

	settings := timer.DefaultSettings()
	if s.persistence != nil {
		if loaded, ok, err := s.persistence.Settings(); err != nil {
			fmt.Fprintf(os.Stderr, "app: load settings: %v\n", err)
		} else if ok {
			settings = loaded
		}
	}

	s.engine = timer.NewEngine(settings)
	s.engine.OnTransition(s.recordTransition)

	if s.persistence != nil {
		if snap, ok, err := s.persistence.Snapshot(); err != nil {
			fmt.Fprintf(os.Stderr, "app: load state: %v\n", err)
		} else if ok {
			s.engine.Restore(snap)
		}
	}

	s.phaseStart = s.now()
	return s
}

// Engine exposes the engine for test setup (clock and random injection).
func (s *Service) Engine() *timer.Engine {
	return s.engine
}

// State returns a copy of the engine state.
func (s *Service) State() timer.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.State()
}

// Settings returns the active settings.
func (s *Service) Settings() timer.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Settings()
}

// UpdateSettings merges the patch and persists the result.
func (s *Service) UpdateSettings(p timer.Patch) timer.Settings {
	var updated timer.Settings
	s.mutate(func() {
		updated = s.engine.UpdateSettings(p)
	})
	if s.persistence != nil {
		if err := s.persistence.SaveSettings(updated); err != nil {
			fmt.Fprintf(os.Stderr, "app: save settings: %v\n", err)
		}
	}
	return updated
}

// Start begins or resumes the countdown.
func (s *Service) Start() {
	s.mutate(func() {
		s.engine.Start()
	})
}

// Pause halts the countdown.
func (s *Service) Pause() {
	s.mutate(func() {
		s.engine.Pause()
	})
}

// Reset re-arms a fresh focus phase.
func (s *Service) Reset() {
	s.mutate(func() {
		s.engine.Reset()
		s.phaseSeconds = 0
		s.phaseStart = s.now()
	})
}

// SkipToNext ends the current phase now.
func (s *Service) SkipToNext() {
	s.mutate(func() {
		s.engine.SkipToNext()
	})
}

// Tick advances the engine by one second.
func (s *Service) Tick() {
	s.mutate(func() {
		if s.engine.State().Active {
			s.phaseSeconds++
		}
		s.engine.Tick()
	})
}

// PollMicroBreak runs the 5-second micro-break check.
func (s *Service) PollMicroBreak() {
	s.mutate(func() {
		s.engine.PollMicroBreak()
	})
}

// SubmitEfficiencyScore records a 1-5 self-assessment.
func (s *Service) SubmitEfficiencyScore(score int) error {
	var err error
	s.mutate(func() {
		err = s.engine.SubmitEfficiencyScore(score)
	})
	return err
}

// RolloverDay resets day counters at midnight and runs the adaptive pass.
func (s *Service) RolloverDay() {
	s.mutate(func() {
		s.engine.RolloverDay()
	})
}

// Today summarizes the current day from engine state plus recorded history.
func (s *Service) Today() TodayStats {
	st := s.State()

	stats := TodayStats{
		FocusSeconds: st.TodayFocus,
		MicroBreaks:  st.MicroBreakCount,
	}
	if len(st.Scores) > 0 {
		sum := 0
		for _, v := range st.Scores {
			sum += v
		}
		stats.AverageScore = float64(sum) / float64(len(st.Scores))
	}
	if s.history != nil {
		if day, err := s.history.Day(s.now()); err != nil {
			fmt.Fprintf(os.Stderr, "app: today history: %v\n", err)
		} else {
			stats.FocusSessions = day.FocusSessions
		}
	}
	return stats
}

// AddListener registers fn and returns a handle for removal.
func (s *Service) AddListener(fn Listener) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	s.mu.Unlock()
	return id
}

// RemoveListener drops the listener registered under id.
func (s *Service) RemoveListener(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.listeners {
		if l.id == id {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

// Run drives the engine until ctx is done: the 1 Hz tick, the 5 s
// micro-break poll, a midnight rollover, and the end-of-day summary.
func (s *Service) Run(ctx context.Context) error {
	tick := time.NewTicker(time.Second)
	defer tick.Stop()
	poll := time.NewTicker(5 * time.Second)
	defer poll.Stop()

	c := cron.New()
	if _, err := c.AddFunc("0 0 * * *", s.RolloverDay); err != nil {
		return fmt.Errorf("app: schedule rollover: %w", err)
	}
	if _, err := c.AddFunc("55 23 * * *", s.sendDailySummary); err != nil {
		return fmt.Errorf("app: schedule summary: %w", err)
	}
	c.Start()
	defer c.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Pause()
			return nil
		case <-tick.C:
			s.Tick()
		case <-poll.C:
			s.PollMicroBreak()
		}
	}
}

// mutate runs fn under the lock, then handles transition side effects,
// persistence, and listener fan-out with the lock released.
func (s *Service) mutate(fn func()) {
	s.mu.Lock()
	s.pending = nil
	fn()
	st := s.engine.State()
	trans := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, t := range trans {
		s.applyTransition(t)
	}
	s.persist(st)
	s.fanout(st)
}

// recordTransition is the engine hook; it runs while mutate holds the lock,
// so it only queues work.
func (s *Service) recordTransition(from, to timer.Phase, st timer.State) {
	s.pending = append(s.pending, transition{
		from:    from,
		to:      to,
		state:   st,
		started: s.phaseStart,
		seconds: s.phaseSeconds,
	})
	s.phaseSeconds = 0
	s.phaseStart = s.now()
}

func (s *Service) applyTransition(t transition) {
	if s.history != nil && t.seconds > 0 {
		err := s.history.Record(history.Session{
			Phase:     t.from.String(),
			StartedAt: t.started,
			EndedAt:   s.now(),
			Seconds:   t.seconds,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "app: record session: %v\n", err)
		}
	}

	event, title, body := transitionCue(t)
	if event != "" {
		s.sound.PlayMapped(event)
	}
	if title != "" {
		s.notifier.Send(title, body)
	}
}

// transitionCue maps a phase change to its sound event and notification.
func transitionCue(t transition) (event, title, body string) {
	switch t.to {
	case timer.Break:
		return sound.EventFocusComplete, "Focus complete",
			fmt.Sprintf("Take a %s break.", timeutil.FormatDuration(time.Duration(t.state.TotalTime)*time.Second))
	case timer.ForcedBreak:
		return sound.EventForcedBreakStart, "Forced break",
			fmt.Sprintf("Long stretch of focus. Step away for %s.", timeutil.FormatDuration(time.Duration(t.state.TotalTime)*time.Second))
	case timer.MicroBreak:
		return sound.EventMicroBreakStart, "Micro-break",
			fmt.Sprintf("Look away for %d seconds.", t.state.TotalTime)
	case timer.Focus:
		if t.from == timer.MicroBreak {
			return sound.EventMicroBreakComplete, "Focus resumed",
				fmt.Sprintf("Back to it, %s left.", timeutil.Clock(t.state.TimeLeft))
		}
		return sound.EventBreakComplete, "Break over",
			fmt.Sprintf("Next focus block: %s.", timeutil.Clock(t.state.TimeLeft))
	}
	return "", "", ""
}

func (s *Service) persist(st timer.State) {
	if s.persistence == nil {
		return
	}
	if err := s.persistence.SaveSnapshot(st.Snapshot()); err != nil {
		fmt.Fprintf(os.Stderr, "app: save state: %v\n", err)
	}
}

// fanout invokes listeners synchronously, each inside a recover so one
// panicking listener cannot block the others or the tick.
func (s *Service) fanout(st timer.State) {
	s.mu.Lock()
	ls := append([]listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, l := range ls {
		func() {
			defer func() {
				if r := recover(); r != nil {
					fmt.Fprintf(os.Stderr, "app: listener %s: %v\n", l.id, r)
				}
			}()
			l.fn(st)
		}()
	}
}

func (s *Service) sendDailySummary() {
	stats := s.Today()
	s.notifier.Send("Daily summary", fmt.Sprintf(
		"Focused %s across %d sessions, %d micro-breaks.",
		timeutil.FormatDuration(time.Duration(stats.FocusSeconds)*time.Second),
		stats.FocusSessions,
		stats.MicroBreaks,
	))
}
