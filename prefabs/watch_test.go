package prefabs

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsSpecChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(slog.New(slog.NewTextHandler(io.Discard, nil)), dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "character.yaml"), []byte("name: x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if filepath.Base(name) != "character.yaml" {
			t.Fatalf("event for %q", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no event for spec change")
	}
}

func TestWatcherDrainAndClose(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(nil, dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if got := w.Drain(); len(got) != 0 {
		t.Fatalf("drain on idle watcher = %v", got)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if got := w.Drain(); len(got) != 0 {
		t.Fatalf("drain after close = %v", got)
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	if _, err := NewWatcher(nil, filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
