package runtimepath

import (
	"path/filepath"
	"testing"
)

func TestDir_PrefersXDGRuntimeDir(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/tmp/xdg-test")

	dir, err := Dir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != "/tmp/xdg-test" {
		t.Fatalf("expected XDG dir, got %q", dir)
	}
}

func TestSocketPath_UnderRuntimeDir(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	path, err := SocketPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "paneldock.sock" {
		t.Fatalf("unexpected socket name %q", path)
	}
}
