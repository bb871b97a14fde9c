package timer

import (
	"testing"
	"time"
)

func TestPatchApplyMergesOnlySetFields(t *testing.T) {
	s := DefaultSettings()

	focus := 50 * time.Minute
	lambda := 2.0
	updated := s.Apply(Patch{
		FocusDuration:    &focus,
		MicroBreakLambda: &lambda,
		PeakHours:        []int{8, 9},
	})

	if updated.FocusDuration != focus {
		t.Fatalf("expected focus duration %v, got %v", focus, updated.FocusDuration)
	}
	if updated.MicroBreakLambda != lambda {
		t.Fatalf("expected lambda %v, got %v", lambda, updated.MicroBreakLambda)
	}
	if len(updated.PeakHours) != 2 || updated.PeakHours[0] != 8 {
		t.Fatalf("expected peak hours [8 9], got %v", updated.PeakHours)
	}
	if updated.BreakDuration != s.BreakDuration {
		t.Fatalf("expected untouched break duration %v, got %v", s.BreakDuration, updated.BreakDuration)
	}
}

func TestPatchEmpty(t *testing.T) {
	if !(Patch{}).Empty() {
		t.Fatal("expected zero patch to be empty")
	}
	d := time.Minute
	if (Patch{BreakDuration: &d}).Empty() {
		t.Fatal("expected patch with a field set to be non-empty")
	}
}

func TestNormalizedRepairsBadValues(t *testing.T) {
	bad := Settings{
		FocusDuration:         -time.Minute,
		BreakDuration:         time.Second,
		MicroBreakMinInterval: 5 * time.Minute,
		MicroBreakMaxInterval: time.Minute, // below min
		MicroBreakLambda:      -1,
		MicroBreakMinDuration: 10 * time.Second,
		MicroBreakMaxDuration: time.Second, // below min
	}

	s := bad.normalized()
	def := DefaultSettings()

	if s.FocusDuration != def.FocusDuration {
		t.Fatalf("expected focus duration repaired to %v, got %v", def.FocusDuration, s.FocusDuration)
	}
	if s.BreakDuration != def.BreakDuration {
		t.Fatalf("expected break duration repaired to %v, got %v", def.BreakDuration, s.BreakDuration)
	}
	if s.MicroBreakMaxInterval != s.MicroBreakMinInterval {
		t.Fatalf("expected max interval raised to min %v, got %v", s.MicroBreakMinInterval, s.MicroBreakMaxInterval)
	}
	if s.MicroBreakLambda != def.MicroBreakLambda {
		t.Fatalf("expected lambda repaired to %v, got %v", def.MicroBreakLambda, s.MicroBreakLambda)
	}
	if s.MicroBreakMaxDuration != s.MicroBreakMinDuration {
		t.Fatalf("expected max duration raised to min %v, got %v", s.MicroBreakMinDuration, s.MicroBreakMaxDuration)
	}
	if s.ForcedBreakThreshold != def.ForcedBreakThreshold || s.ForcedBreakDuration != def.ForcedBreakDuration {
		t.Fatal("expected forced break fields repaired to defaults")
	}
}
