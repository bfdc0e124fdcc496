// Package daemon runs the long-lived panel process. It owns the panel
// manager, mirrors committed geometry onto the hosted window, serves
// IPC clients, and reacts to config edits and screen changes.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/1broseidon/paneldock/internal/config"
	"github.com/1broseidon/paneldock/internal/geometry"
	"github.com/1broseidon/paneldock/internal/hotkeys"
	"github.com/1broseidon/paneldock/internal/ipc"
	"github.com/1broseidon/paneldock/internal/panel"
	"github.com/1broseidon/paneldock/internal/platform"
	"github.com/1broseidon/paneldock/internal/store"
)

// Fallback viewport used when no window system is reachable. IPC and
// MCP clients can still drive the state machine headless.
const (
	headlessViewportW = 1920
	headlessViewportH = 1080
)

// Options control daemon startup.
type Options struct {
	// ConfigPath overrides the default config location.
	ConfigPath string
	// Headless skips the window-system backend entirely.
	Headless bool
	// ReconcileInterval overrides the drift-check period.
	ReconcileInterval time.Duration
}

// Runner wires the daemon's components together and drives them until
// its context is cancelled.
type Runner struct {
	opts    Options
	cfg     *config.Config
	logger  *slog.Logger
	backend platform.Backend
	adapter *store.FileStore
	manager *panel.Manager

	window    platform.WindowID
	hasWindow bool
}

// New loads configuration, connects the window-system backend, and
// restores the panel manager. A backend connection failure degrades to
// headless operation rather than aborting.
func New(opts Options) (*Runner, error) {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel(cfg.Logging.Level),
	}))

	adapter, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		opts:    opts,
		cfg:     cfg,
		logger:  logger,
		adapter: adapter,
	}

	viewportW, viewportH := headlessViewportW, headlessViewportH
	if !opts.Headless {
		backend, err := platform.NewBackend()
		if err != nil {
			logger.Warn("window system unavailable, running headless", "error", err)
		} else {
			r.backend = backend
			vp, err := backend.Viewport()
			if err != nil {
				logger.Warn("failed to query viewport, using fallback", "error", err)
			} else {
				viewportW, viewportH = vp.Width, vp.Height
			}
		}
	}

	header, footer := cfg.Margins()
	r.manager = panel.NewManager(panel.Config{
		Store:     adapter,
		Logger:    logger,
		Settings:  panel.Settings{DefaultSide: cfg.DefaultSide(), HeaderMargin: header, FooterMargin: footer},
		ViewportW: viewportW,
		ViewportH: viewportH,
		OnDockChange: func(side geometry.Side) {
			logger.Info("panel dock changed", "side", sideLabel(side))
		},
		OnCommit: r.applyToWindow,
	})

	r.attachWindow()
	return r, nil
}

// Run starts the IPC server, config watcher, reconciler, and backend
// event loop, then blocks until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	watchPath, err := resolveConfigPath(r.opts.ConfigPath)
	if err != nil {
		return err
	}

	watcher, err := config.NewWatcher(watchPath, r.logger)
	if err != nil {
		// The daemon still works without live reload; RELOAD over IPC
		// covers it.
		r.logger.Warn("config watching disabled", "error", err)
		watcher = nil
	}
	var sub <-chan *config.Config
	if watcher != nil {
		sub = watcher.Subscribe()
		go watcher.Run(ctx)
		defer watcher.Close()
	}

	reloadChan := make(chan struct{}, 1)
	ipcServer, err := ipc.NewServer(r.manager, r.adapter.Reset, reloadChan)
	if err != nil {
		return fmt.Errorf("failed to create IPC server: %w", err)
	}
	if err := ipcServer.Start(); err != nil {
		return fmt.Errorf("failed to start IPC server: %w", err)
	}
	defer ipcServer.Stop()

	var viewport ViewportFunc
	if r.backend != nil {
		if err := r.backend.WatchViewport(r.manager.HandleViewportResize); err != nil {
			r.logger.Warn("failed to watch viewport changes", "error", err)
		}
		r.registerHotkeys()
		go r.backend.Run()
		defer r.backend.Close()

		viewport = func() (int, int, error) {
			vp, err := r.backend.Viewport()
			if err != nil {
				return 0, 0, err
			}
			return vp.Width, vp.Height, nil
		}
	}

	reconciler := NewReconciler(ReconcilerConfig{
		Interval: r.opts.ReconcileInterval,
		Logger:   r.logger,
	}, r.manager, viewport)
	go reconciler.Run(ctx)

	// Place the hosted window where the restored state says it belongs.
	r.applyToWindow(r.manager.State())

	r.logger.Info("paneldock daemon started", "state_file", r.adapter.Path())

	for {
		select {
		case <-ctx.Done():
			r.manager.Close()
			return nil

		case cfg := <-sub:
			r.applyConfig(cfg)

		case <-reloadChan:
			cfg, err := loadConfig(r.opts.ConfigPath)
			if err != nil {
				r.logger.Warn("config reload failed", "error", err)
				continue
			}
			r.applyConfig(cfg)
		}
	}
}

// Manager exposes the panel manager for embedding callers.
func (r *Runner) Manager() *panel.Manager {
	return r.manager
}

func (r *Runner) applyConfig(cfg *config.Config) {
	r.cfg = cfg
	header, footer := cfg.Margins()
	r.manager.ApplySettings(panel.Settings{
		DefaultSide:  cfg.DefaultSide(),
		HeaderMargin: header,
		FooterMargin: footer,
	})
}

// registerHotkeys binds the configured global shortcuts. Registration
// failures are logged and skipped; the daemon keeps running.
func (r *Runner) registerHotkeys() {
	hk := r.cfg.Hotkeys
	if hk.ToggleMinimize == "" && hk.ToggleDock == "" {
		return
	}

	handler, err := hotkeys.NewHandler(r.backend)
	if err != nil {
		r.logger.Warn("global hotkeys unavailable", "error", err)
		return
	}

	if hk.ToggleMinimize != "" {
		if err := handler.RegisterFunc(hk.ToggleMinimize, r.manager.ToggleMinimize); err != nil {
			r.logger.Warn("failed to register hotkey", "sequence", hk.ToggleMinimize, "error", err)
		} else {
			r.logger.Info("hotkey registered", "sequence", hk.ToggleMinimize, "action", "toggle_minimize")
		}
	}

	if hk.ToggleDock != "" {
		err := handler.RegisterFunc(hk.ToggleDock, func() {
			if r.manager.State().Docked != geometry.SideNone {
				r.manager.Undock()
			} else {
				r.manager.DockDefault()
			}
		})
		if err != nil {
			r.logger.Warn("failed to register hotkey", "sequence", hk.ToggleDock, "error", err)
		} else {
			r.logger.Info("hotkey registered", "sequence", hk.ToggleDock, "action", "toggle_dock")
		}
	}
}

// attachWindow adopts the focused top-level window as the hosted panel
// surface. Starting the daemon with the panel window focused is the
// supported attach flow; without one the state machine still runs.
func (r *Runner) attachWindow() {
	if r.backend == nil {
		return
	}
	win, err := r.backend.ActiveWindow()
	if err != nil || win == 0 {
		r.logger.Warn("no active window to attach, geometry mirroring disabled", "error", err)
		return
	}
	r.window = win
	r.hasWindow = true
	r.logger.Info("attached panel window", "window_id", win)
}

// applyToWindow mirrors a committed state snapshot onto the hosted
// window.
func (r *Runner) applyToWindow(st panel.State) {
	if r.backend == nil || !r.hasWindow {
		return
	}

	if st.Minimized {
		if err := r.backend.Hide(r.window); err != nil {
			r.logger.Warn("failed to hide window", "window_id", r.window, "error", err)
		}
		return
	}

	if err := r.backend.Show(r.window); err != nil {
		r.logger.Warn("failed to show window", "window_id", r.window, "error", err)
	}
	rect := st.Rect()
	err := r.backend.MoveResize(r.window, platform.Rect{
		X: rect.X, Y: rect.Y, Width: rect.Width, Height: rect.Height,
	})
	if err != nil {
		r.logger.Warn("failed to place window", "window_id", r.window, "error", err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromPath(path)
}

func resolveConfigPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return config.DefaultConfigPath()
}

// openStore resolves the persistence file from the configured state
// directory, defaulting to the per-panel location under the user config
// dir.
func openStore(cfg *config.Config) (*store.FileStore, error) {
	if cfg.StateDir != "" {
		return store.NewFileStoreAt(filepath.Join(cfg.StateDir, cfg.Panel.Name+".json")), nil
	}
	return store.NewFileStore(cfg.Panel.Name)
}

func slogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func sideLabel(side geometry.Side) string {
	if side == geometry.SideNone {
		return "none"
	}
	return string(side)
}
