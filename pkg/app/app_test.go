package app

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"tableflip.dev/pomo/pkg/history"
	"tableflip.dev/pomo/pkg/store"
	"tableflip.dev/pomo/pkg/timer"
)

// memStore keeps settings and the snapshot in memory so service tests never
// touch disk.
type memStore struct {
	mu            sync.Mutex
	settings      *timer.Settings
	snap          *timer.Snapshot
	snapshotSaves int
}

func (m *memStore) Settings() (timer.Settings, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settings == nil {
		return timer.Settings{}, false, nil
	}
	return *m.settings, true, nil
}

func (m *memStore) SaveSettings(s timer.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = &s
	return nil
}

func (m *memStore) Snapshot() (timer.Snapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snap == nil {
		return timer.Snapshot{}, false, nil
	}
	return *m.snap, true, nil
}

func (m *memStore) SaveSnapshot(snap timer.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = &snap
	m.snapshotSaves++
	return nil
}

func (m *memStore) Watch(ctx context.Context) (<-chan store.Event, error) {
	ch := make(chan store.Event)
	close(ch)
	return ch, nil
}

func (m *memStore) lastSnapshot() (timer.Snapshot, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snap == nil {
		return timer.Snapshot{}, m.snapshotSaves
	}
	return *m.snap, m.snapshotSaves
}

// plainSettings keeps durations fixed so asserts do not depend on the hour
// the tests run at.
func plainSettings() *timer.Settings {
	s := timer.DefaultSettings()
	s.CircadianEnabled = false
	return &s
}

func TestNewLoadsPersistedSettings(t *testing.T) {
	seeded := plainSettings()
	seeded.FocusDuration = 50 * time.Minute
	ms := &memStore{settings: seeded}

	svc := New(Options{Persistence: ms})

	if got := svc.Settings().FocusDuration; got != 50*time.Minute {
		t.Fatalf("expected persisted focus duration loaded, got %v", got)
	}
	if got := svc.State().TotalTime; got != 50*60 {
		t.Fatalf("expected a %d second focus block armed, got %d", 50*60, got)
	}
}

func TestNewRestoresSnapshot(t *testing.T) {
	ms := &memStore{
		settings: plainSettings(),
		snap: &timer.Snapshot{
			TodayDate:       time.Now().Format("2006-01-02"),
			TodayFocus:      3600,
			MicroBreakCount: 2,
			FocusMultiplier: 1.1,
			BreakMultiplier: 0.96,
		},
	}

	svc := New(Options{Persistence: ms})

	st := svc.State()
	if st.TodayFocus != 3600 || st.MicroBreakCount != 2 {
		t.Fatalf("expected same-day counters restored, got focus=%d micro=%d", st.TodayFocus, st.MicroBreakCount)
	}
	if st.FocusMultiplier != 1.1 {
		t.Fatalf("expected focus multiplier restored, got %v", st.FocusMultiplier)
	}
	if st.Active {
		t.Fatal("expected the restored timer to start paused")
	}
}

func TestTickPersistsSnapshot(t *testing.T) {
	ms := &memStore{settings: plainSettings()}
	svc := New(Options{Persistence: ms})

	svc.Start()
	for i := 0; i < 3; i++ {
		svc.Tick()
	}

	snap, saves := ms.lastSnapshot()
	if saves == 0 {
		t.Fatal("expected snapshots saved on mutation")
	}
	if snap.TodayFocus != 3 {
		t.Fatalf("expected 3 focus seconds persisted, got %d", snap.TodayFocus)
	}
}

func TestUpdateSettingsPersists(t *testing.T) {
	ms := &memStore{settings: plainSettings()}
	svc := New(Options{Persistence: ms})

	d := 40 * time.Minute
	svc.UpdateSettings(timer.Patch{FocusDuration: &d})

	ms.mu.Lock()
	saved := *ms.settings
	ms.mu.Unlock()
	if saved.FocusDuration != d {
		t.Fatalf("expected updated settings persisted, got focus %v", saved.FocusDuration)
	}
}

func TestListenerPanicDoesNotBlockOthers(t *testing.T) {
	svc := New(Options{})

	var calls int
	svc.AddListener(func(timer.State) {
		panic("bad listener")
	})
	svc.AddListener(func(timer.State) {
		calls++
	})

	svc.Start()
	svc.Tick()

	if calls != 2 {
		t.Fatalf("expected 2 calls to the surviving listener, got %d", calls)
	}
}

func TestRemoveListenerStopsDelivery(t *testing.T) {
	svc := New(Options{})

	var calls int
	id := svc.AddListener(func(timer.State) {
		calls++
	})

	svc.Start()
	if calls != 1 {
		t.Fatalf("expected 1 call before removal, got %d", calls)
	}

	svc.RemoveListener(id)
	svc.Tick()
	if calls != 1 {
		t.Fatalf("expected no calls after removal, got %d", calls)
	}
}

func TestSkipRecordsHistorySession(t *testing.T) {
	h, err := history.Open(filepath.Join(t.TempDir(), "history.sqlite"))
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	defer h.Close()

	svc := New(Options{Persistence: &memStore{settings: plainSettings()}, History: h})

	svc.Start()
	for i := 0; i < 5; i++ {
		svc.Tick()
	}
	svc.SkipToNext()

	day, err := h.Day(time.Now())
	if err != nil {
		t.Fatalf("day stats: %v", err)
	}
	if day.FocusSessions != 1 {
		t.Fatalf("expected 1 focus session recorded, got %d", day.FocusSessions)
	}
	if day.FocusSeconds != 5 {
		t.Fatalf("expected 5 focus seconds recorded, got %d", day.FocusSeconds)
	}

	stats := svc.Today()
	if stats.FocusSessions != 1 {
		t.Fatalf("expected today stats to include the session, got %d", stats.FocusSessions)
	}
	if stats.FocusSeconds != 5 {
		t.Fatalf("expected 5 focus seconds today, got %d", stats.FocusSeconds)
	}
}

func TestScoreValidationSurfaces(t *testing.T) {
	svc := New(Options{})
	if err := svc.SubmitEfficiencyScore(7); err == nil {
		t.Fatal("expected error for an out-of-range score")
	}
	if err := svc.SubmitEfficiencyScore(4); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := svc.Today().AverageScore; got != 4 {
		t.Fatalf("expected average score 4, got %v", got)
	}
}
