package timeutil

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"90m", 90 * time.Minute},
		{"1h30m", 90 * time.Minute},
		{"45 min", 45 * time.Minute},
		{"2 hours 15 minutes", 2*time.Hour + 15*time.Minute},
		{"30s", 30 * time.Second},
		{"  1h  ", time.Hour},
	}
	for _, tc := range cases {
		got, err := ParseDuration(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q: expected %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestParseDurationRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "10x", "h30m", "-5m"} {
		if _, err := ParseDuration(in); err == nil {
			t.Fatalf("expected error parsing %q", in)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "0s"},
		{45 * time.Second, "45s"},
		{90 * time.Minute, "1h30m"},
		{time.Hour + time.Minute + time.Second, "1h1m1s"},
		{2 * time.Hour, "2h"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.in); got != tc.want {
			t.Fatalf("format %v: expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	d := 2*time.Hour + 5*time.Minute + 30*time.Second
	got, err := ParseDuration(FormatDuration(d))
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if got != d {
		t.Fatalf("round trip: expected %v, got %v", d, got)
	}
}

func TestClock(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{-5, "00:00"},
		{75, "01:15"},
		{3599, "59:59"},
		{3725, "62:05"},
		{90 * 60, "90:00"},
	}
	for _, tc := range cases {
		if got := Clock(tc.in); got != tc.want {
			t.Fatalf("clock %d: expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestProgress(t *testing.T) {
	if got := Progress(5400, 5400); got != 0 {
		t.Fatalf("expected 0%% at the start, got %v", got)
	}
	if got := Progress(0, 5400); got != 100 {
		t.Fatalf("expected 100%% at the end, got %v", got)
	}
	if got := Progress(2700, 5400); got != 50 {
		t.Fatalf("expected 50%% at the midpoint, got %v", got)
	}
	if got := Progress(10, 0); got != 0 {
		t.Fatalf("expected 0%% with no total, got %v", got)
	}
}

func TestUpdateEvery(t *testing.T) {
	cases := []struct {
		remaining int
		want      time.Duration
	}{
		{10, 100 * time.Millisecond},
		{60, 100 * time.Millisecond},
		{61, 500 * time.Millisecond},
		{300, 500 * time.Millisecond},
		{301, time.Second},
		{1800, time.Second},
		{1801, 2 * time.Second},
	}
	for _, tc := range cases {
		if got := UpdateEvery(tc.remaining); got != tc.want {
			t.Fatalf("remaining %d: expected %v, got %v", tc.remaining, tc.want, got)
		}
	}
}
