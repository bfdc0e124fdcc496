package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/paneldock/internal/geometry"
)

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.json")
	s := NewFileStoreAt(path)

	rec := &Record{
		Docked:   geometry.SideNone,
		Position: Position{X: 120, Y: 80},
		Size:     Dimensions{Width: 600, Height: 600},
	}
	if err := s.Save(rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *got != *rec {
		t.Fatalf("round trip mismatch: %+v != %+v", got, rec)
	}
}

func TestFileStore_DockedSerializesAsNullWhenFloating(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.json")
	s := NewFileStoreAt(path)

	if err := s.Save(&Record{Size: Dimensions{Width: 600, Height: 600}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if want := `"docked": null`; !strings.Contains(string(data), want) {
		t.Fatalf("expected %s in %s", want, data)
	}
}

func TestFileStore_LoadMissingFileFails(t *testing.T) {
	s := NewFileStoreAt(filepath.Join(t.TempDir(), "absent.json"))
	if _, err := s.Load(); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestFileStore_LoadCorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewFileStoreAt(path).Load(); err == nil {
		t.Fatalf("expected error for corrupt file")
	}
}

func TestFileStore_ResetToleratesMissingFile(t *testing.T) {
	s := NewFileStoreAt(filepath.Join(t.TempDir(), "absent.json"))
	if err := s.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
}

func TestValidatePanelName(t *testing.T) {
	if err := validatePanelName("overlay"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, bad := range []string{"", ".", "..", "a/b", "../escape"} {
		if err := validatePanelName(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
