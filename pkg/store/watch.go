package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventSettingsChanged indicates the settings document was rewritten.
	EventSettingsChanged EventType = iota

	// EventStateChanged indicates the state snapshot was rewritten.
	EventStateChanged
)

// Event is emitted by Persistence.Watch when underlying storage changes,
// letting a status view refresh while another process runs the timer.
type Event struct {
	Type EventType
}

// Watch streams change events until ctx is cancelled. Callers should drain
// the returned channel; events are dropped rather than blocking the watcher.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	if err := watcher.Add(p.basePath); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", p.basePath, err)
	}

	events := make(chan Event, 16)

	go func() {
		defer close(events)
		defer closeWatcher()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Drop if the consumer is not ready; the next poll of the
				// store picks up the change anyway.
			}
		}

		// Coalesce write bursts; diskv rewrites files rather than appending.
		var pending map[EventType]bool
		var timer *time.Timer
		var mu sync.Mutex
		flush := func() {
			mu.Lock()
			batch := pending
			pending = nil
			timer = nil
			mu.Unlock()
			for t := range batch {
				send(Event{Type: t})
			}
		}
		enqueue := func(t EventType) {
			mu.Lock()
			if pending == nil {
				pending = make(map[EventType]bool)
			}
			pending[t] = true
			if timer == nil {
				timer = time.AfterFunc(100*time.Millisecond, flush)
			}
			mu.Unlock()
		}

		for {
			select {
			case <-ctx.Done():
				mu.Lock()
				if timer != nil {
					timer.Stop()
				}
				mu.Unlock()
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Treat watcher trouble as both documents having changed so
				// clients resync.
				enqueue(EventSettingsChanged)
				enqueue(EventStateChanged)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				switch filepath.Base(evt.Name) {
				case settingsKey:
					enqueue(EventSettingsChanged)
				case stateKey:
					enqueue(EventStateChanged)
				}
			}
		}
	}()

	return events, nil
}
