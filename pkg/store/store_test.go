package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/pomo/pkg/timer"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string {
	return t.path
}

func (t testConfig) HistoryPath() string {
	return t.path + "/history.sqlite"
}

func TestSettingsRoundTrip(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	if _, ok, err := p.Settings(); err != nil {
		t.Fatalf("settings: %v", err)
	} else if ok {
		t.Fatal("expected no settings in an empty store")
	}

	want := timer.DefaultSettings()
	want.FocusDuration = 50 * time.Minute
	want.PeakHours = []int{8, 9}
	if err := p.SaveSettings(want); err != nil {
		t.Fatalf("save settings: %v", err)
	}

	got, ok, err := p.Settings()
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if !ok {
		t.Fatal("expected settings after save")
	}
	if got.FocusDuration != want.FocusDuration {
		t.Fatalf("expected focus duration %v, got %v", want.FocusDuration, got.FocusDuration)
	}
	if len(got.PeakHours) != 2 || got.PeakHours[0] != 8 || got.PeakHours[1] != 9 {
		t.Fatalf("expected peak hours [8 9], got %v", got.PeakHours)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	if _, ok, err := p.Snapshot(); err != nil {
		t.Fatalf("snapshot: %v", err)
	} else if ok {
		t.Fatal("expected no snapshot in an empty store")
	}

	want := timer.Snapshot{
		TodayDate:       "2026-03-02",
		TodayFocus:      3600,
		MicroBreakCount: 4,
		Scores:          []int{5, 4, 3},
		FocusMultiplier: 1.05,
		BreakMultiplier: 0.98,
		LastAdjustment:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := p.SaveSnapshot(want); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	got, ok, err := p.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if !ok {
		t.Fatal("expected snapshot after save")
	}
	if got.TodayDate != want.TodayDate || got.TodayFocus != want.TodayFocus {
		t.Fatalf("expected day fields %q/%d, got %q/%d", want.TodayDate, want.TodayFocus, got.TodayDate, got.TodayFocus)
	}
	if len(got.Scores) != 3 || got.Scores[0] != 5 {
		t.Fatalf("expected scores %v, got %v", want.Scores, got.Scores)
	}
	if got.FocusMultiplier != want.FocusMultiplier || got.BreakMultiplier != want.BreakMultiplier {
		t.Fatalf("expected multipliers %v/%v, got %v/%v",
			want.FocusMultiplier, want.BreakMultiplier, got.FocusMultiplier, got.BreakMultiplier)
	}
	if !got.LastAdjustment.Equal(want.LastAdjustment) {
		t.Fatalf("expected last adjustment %v, got %v", want.LastAdjustment, got.LastAdjustment)
	}
}

func TestWatchEmitsStateChanges(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow the watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	if err := p.SaveSnapshot(timer.Snapshot{TodayDate: "2026-03-02"}); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventStateChanged {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for state change event")
		}
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for the event channel to close")
		}
	}
}
