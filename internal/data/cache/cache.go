// Package cache persists the last fetched user snapshot to a single file.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/colonyops/habit/internal/core/task"
)

// ErrCacheMiss is returned when no snapshot has been cached yet.
var ErrCacheMiss = errors.New("no cached snapshot")

// Store reads and writes the snapshot file. There is no expiry: whatever was
// saved last is returned.
type Store struct {
	path string
}

// New creates a Store backed by the file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Save overwrites the cached snapshot atomically.
func (s *Store) Save(snap task.UserSnapshot) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}

	return os.Rename(tmp, s.path)
}

// Load returns the cached snapshot, or ErrCacheMiss when there is none.
// The returned snapshot is not prepared and has Cached unset; callers decide
// how to mark it.
func (s *Store) Load() (task.UserSnapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return task.UserSnapshot{}, ErrCacheMiss
		}
		return task.UserSnapshot{}, fmt.Errorf("read cache: %w", err)
	}

	if len(data) == 0 {
		return task.UserSnapshot{}, ErrCacheMiss
	}

	var snap task.UserSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return task.UserSnapshot{}, fmt.Errorf("decode cache: %w", err)
	}
	return snap, nil
}
