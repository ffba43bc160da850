package resolver

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileResolverReadFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "greeting.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewFileResolver()
	got, ok := r.ReadFile(dir, "greeting.txt")
	if !ok {
		t.Fatal("expected ReadFile to succeed")
	}
	if got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestFileResolverReadFileMissing(t *testing.T) {
	r := NewFileResolver()
	if _, ok := r.ReadFile(t.TempDir(), "nope.txt"); ok {
		t.Fatal("expected ReadFile to report not found")
	}
}

func TestFileResolverReadMod(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "util.cx"), []byte("fn noop(){}"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewFileResolver()
	got, ok := r.ReadMod(dir, "util")
	if !ok {
		t.Fatal("expected ReadMod to succeed")
	}
	if got != "fn noop(){}" {
		t.Errorf("got %q", got)
	}
}

func TestFileResolverReadModMissing(t *testing.T) {
	r := NewFileResolver()
	if _, ok := r.ReadMod(t.TempDir(), "missing"); ok {
		t.Fatal("expected ReadMod to report not found")
	}
}
