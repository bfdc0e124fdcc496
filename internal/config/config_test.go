package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/1broseidon/paneldock/internal/geometry"
)

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Panel.Name != DefaultPanelName {
		t.Fatalf("expected default panel name, got %q", cfg.Panel.Name)
	}
	if cfg.DefaultSide() != geometry.SideRight {
		t.Fatalf("expected default side right, got %q", cfg.DefaultSide())
	}
	header, footer := cfg.Margins()
	if header != DefaultHeaderMargin || footer != DefaultFooterMargin {
		t.Fatalf("unexpected margins %d/%d", header, footer)
	}
}

func TestLoadFromPath_PartialFileMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "panel:\n  default_dock_side: left\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DefaultSide() != geometry.SideLeft {
		t.Fatalf("expected left, got %q", cfg.DefaultSide())
	}
	if cfg.Panel.Name != DefaultPanelName {
		t.Fatalf("name default not merged, got %q", cfg.Panel.Name)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("logging default not merged, got %q", cfg.Logging.Level)
	}
}

func TestLoadFromPath_ParsesHotkeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "hotkeys:\n  toggle_minimize: Mod4-m\n  toggle_dock: Mod4-d\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Hotkeys.ToggleMinimize != "Mod4-m" || cfg.Hotkeys.ToggleDock != "Mod4-d" {
		t.Fatalf("hotkeys not parsed: %+v", cfg.Hotkeys)
	}
}

func TestLoadFromPath_ZeroMarginIsRespected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "panel:\n  header_margin: 0\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	header, footer := cfg.Margins()
	if header != 0 {
		t.Fatalf("explicit zero header margin overridden to %d", header)
	}
	if footer != DefaultFooterMargin {
		t.Fatalf("footer default not merged, got %d", footer)
	}
}

func TestLoadFromPath_RejectsInvalidValues(t *testing.T) {
	cases := []string{
		"panel:\n  default_dock_side: bottom\n",
		"panel:\n  header_margin: -5\n",
		"logging:\n  level: loud\n",
		"panel: [not a mapping\n",
	}
	for _, content := range cases {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := LoadFromPath(path); err == nil {
			t.Fatalf("expected error for config:\n%s", content)
		}
	}
}

func TestDumpRoundTrips(t *testing.T) {
	cfg := Default()
	cfg.Panel.DefaultDockSide = "top"

	out, err := cfg.Dump()
	if err != nil {
		t.Fatalf("dump: %v", err)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	back, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if back.DefaultSide() != geometry.SideTop {
		t.Fatalf("round trip lost dock side: %q", back.DefaultSide())
	}
}
