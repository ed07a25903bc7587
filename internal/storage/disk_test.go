package storage

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestDiskStore_SaveAndOpen(t *testing.T) {
	t.Parallel()

	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore error: %v", err)
	}

	data := []byte("payload")
	if err := store.Save("1700000000000.png", data); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	file, err := store.Open("1700000000000.png")
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer file.Close()

	got, err := io.ReadAll(file)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if string(got) != string(data) {
		t.Fatalf("got %q want %q", got, data)
	}
}

func TestDiskStore_SaveLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	if err != nil {
		t.Fatalf("NewDiskStore error: %v", err)
	}

	if err := store.Save("a.jpg", []byte{0xff}); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir error: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "a.jpg" {
		t.Fatalf("expected only a.jpg in dir, got %v", entries)
	}
}

func TestDiskStore_List(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	if err != nil {
		t.Fatalf("NewDiskStore error: %v", err)
	}

	if err := store.Save("a.png", []byte{1}); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := store.Save("b.gif", []byte{2}); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("Mkdir error: %v", err)
	}

	names, err := store.List()
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 files, got %v", names)
	}
}

func TestNewDiskStore_CreatesDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "uploads")
	if _, err := NewDiskStore(dir); err != nil {
		t.Fatalf("NewDiskStore error: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory at %s, err=%v", dir, err)
	}
}
