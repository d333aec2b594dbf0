// Package token persists the opaque session credential across runs.
package token

import (
	"os"
	"path/filepath"
	"strings"
)

// Store reads and writes the session token file. The token is a single
// opaque string; no expiry or refresh logic lives here. A stored token is
// trusted until the backend rejects it.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Set writes the token with mode 0600, creating the parent directory if
// needed.
func (s *Store) Set(tok string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(tok+"\n"), 0600)
}

// Get returns the stored token, or "" when none is stored.
func (s *Store) Get() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Has reports whether a non-empty token is stored.
func (s *Store) Has() bool {
	return s.Get() != ""
}

// Clear removes the token file. A missing file is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
