package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/paneldock/internal/geometry"
)

// PanelConfig tunes the managed panel.
type PanelConfig struct {
	// Name keys the persisted state file under the panels directory.
	Name string `yaml:"name"`

	// DefaultDockSide is used by the dock-toggle affordance and by
	// off-screen fallbacks. One of "left", "right", "top".
	DefaultDockSide string `yaml:"default_dock_side"`

	// HeaderMargin and FooterMargin shape the fallback reference bounds
	// (viewport minus header and footer) when the host supplies none.
	HeaderMargin *int `yaml:"header_margin,omitempty"`
	FooterMargin *int `yaml:"footer_margin,omitempty"`
}

// HotkeysConfig binds optional global shortcuts to panel actions.
// Sequences use X11 keybinding syntax, e.g. "Mod4-m". Empty disables
// the binding.
type HotkeysConfig struct {
	ToggleMinimize string `yaml:"toggle_minimize,omitempty"`
	ToggleDock     string `yaml:"toggle_dock,omitempty"`
}

// LoggingConfig controls daemon logging.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level,omitempty"`
}

// Config is the root paneldock configuration.
type Config struct {
	Panel   PanelConfig   `yaml:"panel"`
	Hotkeys HotkeysConfig `yaml:"hotkeys,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`

	// StateDir overrides the persisted-state location. Empty uses
	// ~/.config/paneldock/panels.
	StateDir string `yaml:"state_dir,omitempty"`
}

const (
	DefaultPanelName    = "overlay"
	DefaultHeaderMargin = 60
	DefaultFooterMargin = 40
)

// DefaultConfigPath returns the standard config file location.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "paneldock", "config.yaml"), nil
}

// Default returns the stock configuration.
func Default() *Config {
	header := DefaultHeaderMargin
	footer := DefaultFooterMargin
	return &Config{
		Panel: PanelConfig{
			Name:            DefaultPanelName,
			DefaultDockSide: string(geometry.SideRight),
			HeaderMargin:    &header,
			FooterMargin:    &footer,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the configuration from the standard location. A missing
// file yields the defaults.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads and validates a config file, merging defaults for
// absent fields.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Panel.Name == "" {
		cfg.Panel.Name = DefaultPanelName
	}
	if cfg.Panel.DefaultDockSide == "" {
		cfg.Panel.DefaultDockSide = string(geometry.SideRight)
	}
	if cfg.Panel.HeaderMargin == nil {
		header := DefaultHeaderMargin
		cfg.Panel.HeaderMargin = &header
	}
	if cfg.Panel.FooterMargin == nil {
		footer := DefaultFooterMargin
		cfg.Panel.FooterMargin = &footer
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// Validate checks a configuration for out-of-range values.
func Validate(cfg *Config) error {
	side, err := geometry.ParseSide(cfg.Panel.DefaultDockSide)
	if err != nil {
		return fmt.Errorf("panel.default_dock_side: %w", err)
	}
	if side == geometry.SideNone {
		return fmt.Errorf("panel.default_dock_side must not be empty")
	}
	if cfg.Panel.HeaderMargin != nil && *cfg.Panel.HeaderMargin < 0 {
		return fmt.Errorf("panel.header_margin must be >= 0, got %d", *cfg.Panel.HeaderMargin)
	}
	if cfg.Panel.FooterMargin != nil && *cfg.Panel.FooterMargin < 0 {
		return fmt.Errorf("panel.footer_margin must be >= 0, got %d", *cfg.Panel.FooterMargin)
	}
	switch cfg.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", cfg.Logging.Level)
	}
	return nil
}

// DefaultSide returns the parsed default dock side.
func (c *Config) DefaultSide() geometry.Side {
	side, err := geometry.ParseSide(c.Panel.DefaultDockSide)
	if err != nil || side == geometry.SideNone {
		return geometry.SideRight
	}
	return side
}

// Margins returns the effective header and footer margins.
func (c *Config) Margins() (header, footer int) {
	header = DefaultHeaderMargin
	footer = DefaultFooterMargin
	if c.Panel.HeaderMargin != nil {
		header = *c.Panel.HeaderMargin
	}
	if c.Panel.FooterMargin != nil {
		footer = *c.Panel.FooterMargin
	}
	return header, footer
}

// Dump renders the config as YAML.
func (c *Config) Dump() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return string(data), nil
}
