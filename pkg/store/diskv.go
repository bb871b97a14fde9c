package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/pomo/pkg/timer"
)

// Fixed keys the timer persists under, carried over from the original
// application so existing data stays readable.
const (
	settingsKey = "smartTimer_settings"
	stateKey    = "smartTimer_state"
)

// Persistence is the storage contract for timer settings and the
// non-transient state snapshot. Load failures surface as (zero, false, err)
// so callers can degrade to defaults without special cases.
type Persistence interface {
	Settings() (timer.Settings, bool, error)
	SaveSettings(timer.Settings) error
	Snapshot() (timer.Snapshot, bool, error)
	SaveSnapshot(timer.Snapshot) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: flatTransform,
		InverseTransform:  flatInverse,
		CacheSizeMax:      64 * 1024,
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) Settings() (timer.Settings, bool, error) {
	var s timer.Settings
	ok, err := p.read(settingsKey, &s)
	return s, ok, err
}

func (p *persistence) SaveSettings(s timer.Settings) error {
	return p.write(settingsKey, s)
}

func (p *persistence) Snapshot() (timer.Snapshot, bool, error) {
	var snap timer.Snapshot
	ok, err := p.read(stateKey, &snap)
	return snap, ok, err
}

func (p *persistence) SaveSnapshot(snap timer.Snapshot) error {
	return p.write(stateKey, snap)
}

// read unmarshals the value under key into target. A missing key is not an
// error; it just reports not-found.
func (p *persistence) read(key string, target interface{}) (bool, error) {
	if !p.d.Has(key) {
		return false, nil
	}
	val, err := p.d.Read(key)
	if err != nil {
		return false, fmt.Errorf("store: read %s: %w", key, err)
	}
	if err := json.Unmarshal(val, target); err != nil {
		return false, fmt.Errorf("store: decode %s: %w", key, err)
	}
	return true, nil
}

func (p *persistence) write(key string, value interface{}) error {
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return fmt.Errorf("store: ensure base path: %w", err)
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

// flatTransform keeps every key as a single file at the base path; the store
// holds two small documents, not a tree.
func flatTransform(s string) *diskv.PathKey {
	return &diskv.PathKey{Path: []string{}, FileName: s}
}

func flatInverse(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
