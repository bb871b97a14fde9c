package history

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.sqlite"))
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("close history: %v", err)
		}
	})
	return s
}

func TestDayAggregatesByPhase(t *testing.T) {
	s := openTestStore(t)

	day := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	sessions := []Session{
		{Phase: "focus", StartedAt: day, EndedAt: day.Add(90 * time.Minute), Seconds: 5400},
		{Phase: "focus", StartedAt: day.Add(2 * time.Hour), EndedAt: day.Add(3 * time.Hour), Seconds: 3600},
		{Phase: "break", StartedAt: day.Add(3 * time.Hour), EndedAt: day.Add(3*time.Hour + 20*time.Minute), Seconds: 1200},
		{Phase: "micro-break", StartedAt: day, EndedAt: day.Add(30 * time.Second), Seconds: 30},
		{Phase: "forced-break", StartedAt: day, EndedAt: day.Add(30 * time.Minute), Seconds: 1800},
	}
	for _, sess := range sessions {
		if err := s.Record(sess); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	stats, err := s.Day(day)
	if err != nil {
		t.Fatalf("day stats: %v", err)
	}
	if stats.Day != "2026-03-02" {
		t.Fatalf("expected day 2026-03-02, got %q", stats.Day)
	}
	if stats.FocusSessions != 2 || stats.FocusSeconds != 9000 {
		t.Fatalf("expected 2 focus sessions over 9000s, got %d over %ds", stats.FocusSessions, stats.FocusSeconds)
	}
	if stats.Breaks != 2 {
		t.Fatalf("expected 2 breaks (regular plus forced), got %d", stats.Breaks)
	}
	if stats.MicroBreaks != 1 {
		t.Fatalf("expected 1 micro-break, got %d", stats.MicroBreaks)
	}
}

func TestDayIgnoresOtherDays(t *testing.T) {
	s := openTestStore(t)

	day := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	if err := s.Record(Session{Phase: "focus", StartedAt: day, EndedAt: day.Add(time.Hour), Seconds: 3600}); err != nil {
		t.Fatalf("record: %v", err)
	}

	stats, err := s.Day(day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("day stats: %v", err)
	}
	if stats.FocusSessions != 0 || stats.FocusSeconds != 0 {
		t.Fatalf("expected an empty day, got %d sessions over %ds", stats.FocusSessions, stats.FocusSeconds)
	}
}

func TestRecentDaysMostRecentFirst(t *testing.T) {
	s := openTestStore(t)

	for i := 0; i < 3; i++ {
		day := time.Date(2026, 3, 2+i, 9, 0, 0, 0, time.UTC)
		if err := s.Record(Session{Phase: "focus", StartedAt: day, EndedAt: day.Add(time.Hour), Seconds: 3600}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	days, err := s.RecentDays(2)
	if err != nil {
		t.Fatalf("recent days: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if days[0].Day != "2026-03-04" || days[1].Day != "2026-03-03" {
		t.Fatalf("expected most recent first, got %q then %q", days[0].Day, days[1].Day)
	}
	if days[0].FocusSessions != 1 || days[0].FocusSeconds != 3600 {
		t.Fatalf("expected 1 session over 3600s, got %d over %ds", days[0].FocusSessions, days[0].FocusSeconds)
	}
}

func TestRecordClampsNegativeSeconds(t *testing.T) {
	s := openTestStore(t)

	day := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	if err := s.Record(Session{Phase: "focus", StartedAt: day, EndedAt: day, Seconds: -10}); err != nil {
		t.Fatalf("record: %v", err)
	}

	stats, err := s.Day(day)
	if err != nil {
		t.Fatalf("day stats: %v", err)
	}
	if stats.FocusSeconds != 0 {
		t.Fatalf("expected negative seconds clamped to 0, got %d", stats.FocusSeconds)
	}
}
