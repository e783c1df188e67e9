package keystore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keystore.json")
	s := NewFileStore(path)

	if _, err := s.Get("waterTracker_completedDays"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.Set("waterTracker_completedDays", "3"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	v, err := s.Get("waterTracker_completedDays")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != "3" {
		t.Errorf("expected 3, got %q", v)
	}

	// Reopen from disk: values survive the process.
	s2 := NewFileStore(path)
	v, err = s2.Get("waterTracker_completedDays")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if v != "3" {
		t.Errorf("expected 3 after reopen, got %q", v)
	}

	if err := s2.Delete("waterTracker_completedDays"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s2.Get("waterTracker_completedDays"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestFileStorePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keystore.json")
	s := NewFileStore(path)

	if err := s.Set("k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("expected 0600 permissions, got %o", perm)
	}
}

func TestFileStoreDeleteMissingIsNoop(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "keystore.json"))
	if err := s.Delete("missing"); err != nil {
		t.Fatalf("Delete of missing key: %v", err)
	}
}

func TestKeyringStoreRoundTrip(t *testing.T) {
	gokeyring.MockInit()
	s := NewKeyringStore()

	if _, err := s.Get("waterTracker_lastPromptDate"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.Set("waterTracker_lastPromptDate", "2026-08-28"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	v, err := s.Get("waterTracker_lastPromptDate")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != "2026-08-28" {
		t.Errorf("expected 2026-08-28, got %q", v)
	}

	if err := s.Delete("waterTracker_lastPromptDate"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete("waterTracker_lastPromptDate"); err != nil {
		t.Fatalf("second Delete should be a no-op: %v", err)
	}
}

func TestKeyringProbeWithMock(t *testing.T) {
	gokeyring.MockInit()
	s := NewKeyringStore()
	if err := s.probe(); err != nil {
		t.Fatalf("probe with mock keyring: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	if err := s.Set("k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, err := s.Get("k")
	if err != nil || v != "v" {
		t.Fatalf("Get = %q, %v", v, err)
	}

	s.FailWrites = true
	if err := s.Set("k", "v2"); err == nil {
		t.Fatal("expected write failure")
	}
	// Failed write leaves the old value.
	v, _ = s.Get("k")
	if v != "v" {
		t.Errorf("expected old value preserved, got %q", v)
	}
}
