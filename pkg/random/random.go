// Package random draws micro-break intervals and durations from a
// cryptographic source so break timing never settles into a pattern the user
// can anticipate.
package random

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"math"
)

// Generator produces the random values the scheduling engine needs. The zero
// value is not usable; call New.
type Generator struct {
	source io.Reader
}

// New returns a Generator backed by crypto/rand.
func New() *Generator {
	return &Generator{source: rand.Reader}
}

// NewFromSource returns a Generator reading from the given source. Tests use
// this to make draws deterministic.
func NewFromSource(source io.Reader) *Generator {
	return &Generator{source: source}
}

// Int returns a uniform integer in [min, max] inclusive. Rejection sampling
// over the raw words keeps the result free of modulo bias. A failing source
// degrades to the midpoint rather than surfacing an error to the tick path.
func (g *Generator) Int(min, max int) int {
	if min > max {
		min, max = max, min
	}
	if min == max {
		return min
	}
	span := uint64(max-min) + 1
	limit := math.MaxUint64 - math.MaxUint64%span

	var buf [8]byte
	for {
		if _, err := io.ReadFull(g.source, buf[:]); err != nil {
			return min + int(span/2)
		}
		v := binary.BigEndian.Uint64(buf[:])
		if v < limit {
			return min + int(v%span)
		}
	}
}

// Float64 returns a value in [0, 1) built from a single random 32-bit word.
// A failing source degrades to 0.5.
func (g *Generator) Float64() float64 {
	var buf [4]byte
	if _, err := io.ReadFull(g.source, buf[:]); err != nil {
		return 0.5
	}
	word := binary.BigEndian.Uint32(buf[:])
	return float64(word) / (1 << 32)
}

// MicroBreakInterval draws the seconds until the next micro-break. The draw
// is an exponential inverse-CDF sample scaled into [min, max] minutes with a
// ±0.1 minute jitter, so short gaps are common but long ones still happen.
func (g *Generator) MicroBreakInterval(min, max float64, lambda float64) int {
	if max < min {
		min, max = max, min
	}
	if lambda <= 0 {
		lambda = 1
	}

	u := g.Float64()
	if u >= 1 {
		u = math.Nextafter(1, 0)
	}
	sample := -math.Log(1-u) / lambda
	// Normalize against the ~95th percentile (3/lambda) so the scaled value
	// covers the whole interval without the unbounded tail.
	frac := sample * lambda / 3
	if frac > 1 {
		frac = 1
	}

	minutes := min + frac*(max-min)
	minutes += (g.Float64() - 0.5) * 0.2 // ±0.1 minute jitter
	if minutes < min {
		minutes = min
	}
	if minutes > max {
		minutes = max
	}
	return int(minutes * 60)
}

// MicroBreakDuration draws the micro-break length in seconds from [min, max].
// Averaged uniform draws raised to a power approximate a Beta(2,5) shape,
// skewing hard toward the short end.
func (g *Generator) MicroBreakDuration(min, max int) int {
	if max < min {
		min, max = max, min
	}
	if min == max {
		return min
	}

	sum := g.Float64() + g.Float64() + g.Float64()
	skew := math.Pow(sum/3, 2.2)

	secs := min + int(skew*float64(max-min))
	if secs < min {
		secs = min
	}
	if secs > max {
		secs = max
	}
	return secs
}

// ShouldTriggerMicroBreak reports whether a micro-break is due. Once the
// elapsed focus time since the last break reaches the interval the answer is
// deterministically true. Past 80% of the interval a small probabilistic
// early trigger kicks in; the curve is kept exactly as the original shipped
// it.
func (g *Generator) ShouldTriggerMicroBreak(elapsed, lastBreak, interval int) bool {
	if interval <= 0 {
		return false
	}
	since := elapsed - lastBreak
	if since >= interval {
		return true
	}
	progress := float64(since) / float64(interval)
	if progress <= 0.8 {
		return false
	}
	p := math.Pow(progress-0.8, 2) * 0.1
	return g.Float64() < p
}
