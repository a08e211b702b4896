package store

import (
	"errors"
	"path/filepath"
	"testing"
)

func newSQLiteStoreTest(t *testing.T) (*SQLite, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sessions.db")
	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	return s, path
}

func TestSQLiteGetSetRemove(t *testing.T) {
	s, _ := newSQLiteStoreTest(t)
	ctx := t.Context()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNoRecord) {
		t.Fatalf("Get on empty store: err = %v, want ErrNoRecord", err)
	}

	if err := s.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil || got != "v1" {
		t.Fatalf("Get = %q, %v", got, err)
	}

	// Upsert path.
	if err := s.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("Set overwrite failed: %v", err)
	}
	got, _ = s.Get(ctx, "k")
	if got != "v2" {
		t.Fatalf("Get after overwrite = %q", got)
	}

	if err := s.Remove(ctx, "k"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrNoRecord) {
		t.Fatalf("Get after remove: err = %v, want ErrNoRecord", err)
	}
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	s, path := newSQLiteStoreTest(t)
	ctx := t.Context()

	if err := s.Set(ctx, "loginData", `{"username":"alice","loginTime":1700000000000}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, "loginData")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got != `{"username":"alice","loginTime":1700000000000}` {
		t.Fatalf("value lost across reopen: %q", got)
	}
}

func TestSQLiteKeyIsolation(t *testing.T) {
	s, _ := newSQLiteStoreTest(t)
	ctx := t.Context()

	if err := s.Set(ctx, "loginData", "user"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set(ctx, "adminLoginData", "admin"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := s.Remove(ctx, "loginData"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	got, err := s.Get(ctx, "adminLoginData")
	if err != nil || got != "admin" {
		t.Fatalf("sibling key affected by remove: %q, %v", got, err)
	}
}
