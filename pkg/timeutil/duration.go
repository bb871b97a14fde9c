package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	tokenPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitMap      = map[string]time.Duration{
		"s":       time.Second,
		"sec":     time.Second,
		"secs":    time.Second,
		"second":  time.Second,
		"seconds": time.Second,
		"m":       time.Minute,
		"min":     time.Minute,
		"mins":    time.Minute,
		"minute":  time.Minute,
		"minutes": time.Minute,
		"h":       time.Hour,
		"hr":      time.Hour,
		"hrs":     time.Hour,
		"hour":    time.Hour,
		"hours":   time.Hour,
	}
)

// ParseDuration parses a human-friendly duration string (for example "90m",
// "1h30m", or "45 min") into a duration.
func ParseDuration(input string) (time.Duration, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		return 0, fmt.Errorf("empty duration")
	}

	total := time.Duration(0)
	for len(remaining) > 0 {
		matches := tokenPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, fmt.Errorf("invalid duration segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.ParseInt(matches[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration value %q: %w", matches[1], err)
		}
		base, ok := unitMap[matches[2]]
		if !ok {
			return 0, fmt.Errorf("unsupported duration unit %q", matches[2])
		}
		total += time.Duration(value) * base
		remaining = strings.TrimSpace(remaining[len(matches[0]):])
	}

	if total <= 0 {
		return 0, fmt.Errorf("duration must be greater than zero")
	}
	return total, nil
}

// FormatDuration renders a duration using hour/minute/second tokens, the
// inverse of ParseDuration.
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}

	type unit struct {
		label string
		value time.Duration
	}
	units := []unit{
		{"h", time.Hour},
		{"m", time.Minute},
		{"s", time.Second},
	}

	var parts []string
	remaining := d
	for _, u := range units {
		if remaining < u.value {
			continue
		}
		count := remaining / u.value
		remaining -= count * u.value
		parts = append(parts, fmt.Sprintf("%d%s", count, u.label))
	}
	if len(parts) == 0 {
		return "0s"
	}
	return strings.Join(parts, "")
}

// Clock renders seconds as MM:SS. Minutes run past 59 rather than rolling
// into hours, so a 90 minute block reads 90:00.
func Clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Progress returns the elapsed percentage for a countdown with the given
// remaining and total seconds.
func Progress(remaining, total int) float64 {
	if total <= 0 {
		return 0
	}
	elapsed := total - remaining
	if elapsed < 0 {
		elapsed = 0
	}
	return float64(elapsed) / float64(total) * 100
}

// UpdateEvery suggests a display refresh cadence for the given remaining
// seconds: tight near the end of a countdown, relaxed when nothing visible
// changes for a while.
func UpdateEvery(remaining int) time.Duration {
	switch {
	case remaining <= 60:
		return 100 * time.Millisecond
	case remaining <= 300:
		return 500 * time.Millisecond
	case remaining <= 1800:
		return time.Second
	default:
		return 2 * time.Second
	}
}
