package token_test

import (
	"os"
	"path/filepath"
	"testing"

	"habitctl/internal/token"
)

func newStore(t *testing.T) *token.Store {
	t.Helper()
	return token.NewStore(filepath.Join(t.TempDir(), "token"))
}

func TestStore_SetGet(t *testing.T) {
	s := newStore(t)

	if err := s.Set("abc"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := s.Get(); got != "abc" {
		t.Errorf("expected \"abc\", got %q", got)
	}
	if !s.Has() {
		t.Error("expected Has() after Set")
	}
}

func TestStore_GetMissing(t *testing.T) {
	s := newStore(t)

	if got := s.Get(); got != "" {
		t.Errorf("expected empty token, got %q", got)
	}
	if s.Has() {
		t.Error("expected Has() false with no token")
	}
}

func TestStore_Clear(t *testing.T) {
	s := newStore(t)

	if err := s.Set("abc"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if s.Has() {
		t.Error("expected no token after Clear")
	}
}

func TestStore_ClearMissingIsNotAnError(t *testing.T) {
	s := newStore(t)

	if err := s.Clear(); err != nil {
		t.Errorf("Clear on missing file returned error: %v", err)
	}
}

func TestStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")

	if err := token.NewStore(path).Set("abc"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := token.NewStore(path).Get(); got != "abc" {
		t.Errorf("expected \"abc\" from fresh store, got %q", got)
	}
}

func TestStore_FileMode(t *testing.T) {
	s := newStore(t)
	if err := s.Set("abc"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	info, err := os.Stat(s.Path())
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected mode 0600, got %o", perm)
	}
}
