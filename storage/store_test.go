package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMemStoreGetSet(t *testing.T) {
	store := NewMemStore()

	if _, ok := store.Get("missing"); ok {
		t.Error("expected missing key to report not found")
	}

	if err := store.Set("settings", `{"board_size":9}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, ok := store.Get("settings")
	if !ok {
		t.Fatal("expected key to exist after Set")
	}
	if value != `{"board_size":9}` {
		t.Errorf("expected stored value back, got %q", value)
	}
}

func TestMemStoreOverwrite(t *testing.T) {
	store := NewMemStore()

	store.Set("leaderboard", "[]")
	store.Set("leaderboard", `[{"score":100}]`)

	value, _ := store.Get("leaderboard")
	if value != `[{"score":100}]` {
		t.Errorf("expected latest value, got %q", value)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()

	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if _, ok := store.Get("settings"); ok {
		t.Error("expected missing key to report not found")
	}

	if err := store.Set("settings", `{"min_line_length":5}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, ok := store.Get("settings")
	if !ok {
		t.Fatal("expected key to exist after Set")
	}
	if value != `{"min_line_length":5}` {
		t.Errorf("expected stored value back, got %q", value)
	}

	// Value must survive a fresh store over the same directory.
	reopened, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	value, ok = reopened.Get("settings")
	if !ok || value != `{"min_line_length":5}` {
		t.Errorf("expected persisted value after reopen, got %q (ok=%v)", value, ok)
	}
}

func TestFileStoreKeyCannotEscapeDir(t *testing.T) {
	dir := t.TempDir()

	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if err := store.Set("../escape", "x"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "..", "escape.json")); err == nil {
		t.Error("key escaped the data directory")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one file in data dir, got %d", len(entries))
	}
}
