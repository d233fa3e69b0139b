// Package localstore implements a small file-backed key-value store used
// as the fallback persistence layer for events and UI preferences. Each
// key maps to one JSON file under the configured directory; every write
// replaces the file's full contents. Writes are synchronous: when Put
// returns, the data is on disk.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/studybuddy/backend/internal/domain"
)

// Store persists JSON values under namespaced keys in a directory.
type Store struct {
	dir       string
	namespace string
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir, namespace string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("localstore: create dir %s: %w", dir, err)
	}
	return &Store{dir: dir, namespace: namespace}, nil
}

// Get unmarshals the value stored under key into dst.
// Returns domain.ErrNotFound if the key has never been written.
func (s *Store) Get(key string, dst any) error {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("localstore: key %q: %w", key, domain.ErrNotFound)
		}
		return fmt.Errorf("localstore: read %q: %w", key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("localstore: decode %q: %w", key, err)
	}

	return nil
}

// Put serializes v and replaces the key's file contents. The write goes
// through a temp file and rename so a crash mid-write never leaves a
// half-written value behind.
func (s *Store) Put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("localstore: encode %q: %w", key, err)
	}

	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("localstore: write %q: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("localstore: write %q: %w", key, err)
	}

	return nil
}

// Delete removes the key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("localstore: delete %q: %w", key, err)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, s.namespace+"."+key+".json")
}
