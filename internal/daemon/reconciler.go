package daemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/1broseidon/paneldock/internal/panel"
)

// ViewportFunc reports the current host viewport dimensions.
type ViewportFunc func() (width, height int, err error)

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Reconciler periodically checks for viewport drift and corrects it.
// Screen changes normally arrive through the backend's event stream;
// the reconciler catches notifications that were lost while the event
// loop was busy or the connection hiccupped.
type Reconciler struct {
	interval time.Duration
	manager  *panel.Manager
	viewport ViewportFunc
	logger   *slog.Logger
}

// NewReconciler creates a new reconciler with the given configuration.
// The viewport function should return the host's current usable area.
func NewReconciler(cfg ReconcilerConfig, manager *panel.Manager, viewport ViewportFunc) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Reconciler{
		interval: interval,
		manager:  manager,
		viewport: viewport,
		logger:   logger,
	}
}

// Run starts the reconciliation loop. Blocks until context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return
		case <-ticker.C:
			r.reconcile()
		}
	}
}

// reconcile performs a single reconciliation pass.
func (r *Reconciler) reconcile() {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciler panic recovered", "error", err)
		}
	}()

	if r.viewport == nil {
		return
	}

	// Mid-session geometry is transient; leave it alone.
	if r.manager.Dragging() || r.manager.Resizing() {
		return
	}

	w, h, err := r.viewport()
	if err != nil {
		r.logger.Error("reconciler: failed to query viewport", "error", err)
		return
	}
	if w <= 0 || h <= 0 {
		return
	}

	cw, ch := r.manager.Viewport()
	if w == cw && h == ch {
		return
	}

	r.logger.Info("reconciler: viewport drift detected",
		"tracked_width", cw,
		"tracked_height", ch,
		"actual_width", w,
		"actual_height", h)
	r.manager.HandleViewportResize(w, h)
}

// ReconcileNow triggers an immediate reconciliation pass.
func (r *Reconciler) ReconcileNow() {
	r.reconcile()
}
