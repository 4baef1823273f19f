// Package store persists the working state between sessions and keeps the
// insertion history. The snapshot is a single JSON blob in a diskv-backed
// data directory; the history is a sqlite log next to it.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"

	"typeset-cli/internal/engine"
)

const stateKey = "state"

type Store struct {
	Dir string

	d *diskv.Diskv
}

// DefaultDir is the per-user data directory.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "typeset"), nil
}

// Open prepares dir (DefaultDir when empty) and returns a Store over it.
func Open(dir string) (*Store, error) {
	if dir == "" {
		var err error
		dir, err = DefaultDir()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	d := diskv.New(diskv.Options{
		BasePath:     filepath.Join(dir, "data"),
		CacheSizeMax: 1024 * 1024, // 1MB
	})
	return &Store{Dir: dir, d: d}, nil
}

// SaveState writes the full working snapshot. Derived fields are excluded by
// their json tags, so a loaded snapshot re-derives lines on startup.
func (s *Store) SaveState(st engine.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.d.Write(stateKey, data)
}

// LoadState returns the saved snapshot with its derived state rebuilt.
// ok is false when no snapshot exists; a corrupt snapshot is treated the
// same way rather than blocking startup.
func (s *Store) LoadState() (engine.State, bool) {
	data, err := s.d.Read(stateKey)
	if err != nil {
		return engine.Init(engine.NewState()), false
	}
	st := engine.NewState()
	if err := json.Unmarshal(data, &st); err != nil {
		return engine.Init(engine.NewState()), false
	}
	return engine.Init(st), true
}
