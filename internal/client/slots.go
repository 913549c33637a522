package client

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Well-known slot keys.
const (
	TokenSlot = "token"
	ThemeSlot = "theme"
)

// SlotStore is a small durable key-value store backed by a filesystem, one
// file per key. It holds the session token and UI preferences across
// process restarts, the way a browser client keeps them in local storage.
type SlotStore struct {
	fs  afero.Fs
	dir string
}

// NewSlotStore returns a store writing under dir on fs. Tests pass
// afero.NewMemMapFs(); production callers pass afero.NewOsFs() with a
// directory under the user's config path.
func NewSlotStore(fs afero.Fs, dir string) *SlotStore {
	return &SlotStore{fs: fs, dir: dir}
}

func (s *SlotStore) path(key string) string {
	return filepath.Join(s.dir, key)
}

// Get returns the stored value for key, or "" when the slot is empty.
func (s *SlotStore) Get(key string) (string, error) {
	data, err := afero.ReadFile(s.fs, s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read slot %q: %w", key, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Set stores value under key, replacing any previous value.
func (s *SlotStore) Set(key, value string) error {
	if err := s.fs.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create slot dir: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path(key), []byte(value), 0o600); err != nil {
		return fmt.Errorf("write slot %q: %w", key, err)
	}
	return nil
}

// Delete removes the slot for key. Deleting an absent slot is not an error.
func (s *SlotStore) Delete(key string) error {
	if err := s.fs.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete slot %q: %w", key, err)
	}
	return nil
}
