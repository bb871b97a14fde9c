// Package sound plays the short cues mapped to timer transitions.
package sound

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// Event keys the engine maps transitions onto.
const (
	EventFocusComplete      = "focus_complete"
	EventBreakComplete      = "break_complete"
	EventMicroBreakStart    = "micro_break_start"
	EventMicroBreakComplete = "micro_break_complete"
	EventForcedBreakStart   = "forced_break_start"
)

// Player plays the cue for an event key. Implementations are fire and
// forget; a missing or failing cue never interrupts the timer.
type Player interface {
	PlayMapped(event string)
}

// Nop is the muted player.
type Nop struct{}

func (Nop) PlayMapped(string) {}

// BeepPlayer decodes wav cues once into buffers and replays them through the
// speaker.
type BeepPlayer struct {
	buffers map[string]*beep.Buffer
	volume  float64
}

// NewBeepPlayer loads the cue files under dir. Missing files are skipped so
// a partial asset set still plays what it has; only a speaker init failure
// is fatal.
func NewBeepPlayer(dir string) (*BeepPlayer, error) {
	files := map[string]string{
		EventFocusComplete:      "focus_complete.wav",
		EventBreakComplete:      "break_complete.wav",
		EventMicroBreakStart:    "micro_break_start.wav",
		EventMicroBreakComplete: "micro_break_complete.wav",
		EventForcedBreakStart:   "forced_break_start.wav",
	}

	p := &BeepPlayer{
		buffers: make(map[string]*beep.Buffer, len(files)),
		volume:  0,
	}

	var format beep.Format
	for event, name := range files {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			continue
		}

		streamer, fileFormat, err := wav.Decode(f)
		if err != nil {
			f.Close()
			fmt.Fprintf(os.Stderr, "sound: decode %s: %v\n", name, err)
			continue
		}

		if format.SampleRate == 0 {
			format = fileFormat
			if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
				streamer.Close()
				f.Close()
				return nil, fmt.Errorf("sound: init speaker: %w", err)
			}
		}

		buffer := beep.NewBuffer(fileFormat)
		buffer.Append(streamer)
		p.buffers[event] = buffer

		streamer.Close()
		f.Close()
	}

	return p, nil
}

// PlayMapped plays the buffered cue for event, if one loaded.
func (p *BeepPlayer) PlayMapped(event string) {
	buffer, ok := p.buffers[event]
	if !ok {
		return
	}
	streamer := buffer.Streamer(0, buffer.Len())
	speaker.Play(&effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   p.volume,
		Silent:   false,
	})
}

// SetVolume adjusts playback in beep's exponential volume units.
func (p *BeepPlayer) SetVolume(v float64) {
	p.volume = v
}
