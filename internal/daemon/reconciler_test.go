package daemon

import (
	"errors"
	"testing"

	"github.com/1broseidon/paneldock/internal/geometry"
	"github.com/1broseidon/paneldock/internal/panel"
	"github.com/1broseidon/paneldock/internal/store"
)

func newTestManager() *panel.Manager {
	return panel.NewManager(panel.Config{
		Store:     store.NewMemoryStore(),
		Settings:  panel.DefaultSettings(),
		ViewportW: 1920,
		ViewportH: 1080,
	})
}

func TestReconcilerCorrectsViewportDrift(t *testing.T) {
	m := newTestManager()
	r := NewReconciler(ReconcilerConfig{}, m, func() (int, int, error) {
		return 1280, 720, nil
	})

	r.ReconcileNow()

	w, h := m.Viewport()
	if w != 1280 || h != 720 {
		t.Fatalf("viewport not corrected, got %dx%d", w, h)
	}
	// Default position {1270, 100} is off-screen at 1280 wide, so the
	// panel must have auto-corrected by docking.
	st := m.State()
	if st.Docked == geometry.SideNone {
		t.Fatalf("expected panel docked after shrink, got floating at %+v", st.Position)
	}
}

func TestReconcilerNoopWhenViewportMatches(t *testing.T) {
	m := newTestManager()
	before := m.State()

	r := NewReconciler(ReconcilerConfig{}, m, func() (int, int, error) {
		return 1920, 1080, nil
	})
	r.ReconcileNow()

	if got := m.State(); got != before {
		t.Fatalf("state changed without drift: %+v -> %+v", before, got)
	}
}

func TestReconcilerSkipsDuringDrag(t *testing.T) {
	m := newTestManager()
	m.StartDrag(geometry.Point{X: 1300, Y: 120}, geometry.Point{X: 1270, Y: 100})

	r := NewReconciler(ReconcilerConfig{}, m, func() (int, int, error) {
		return 1280, 720, nil
	})
	r.ReconcileNow()

	if w, h := m.Viewport(); w != 1920 || h != 1080 {
		t.Fatalf("viewport corrected mid-drag, got %dx%d", w, h)
	}
}

func TestReconcilerToleratesQueryFailure(t *testing.T) {
	m := newTestManager()

	r := NewReconciler(ReconcilerConfig{}, m, func() (int, int, error) {
		return 0, 0, errors.New("connection lost")
	})
	r.ReconcileNow()

	if w, h := m.Viewport(); w != 1920 || h != 1080 {
		t.Fatalf("viewport changed on query failure, got %dx%d", w, h)
	}
}

func TestReconcilerWithoutViewportFunc(t *testing.T) {
	m := newTestManager()
	r := NewReconciler(ReconcilerConfig{}, m, nil)

	// Must not panic or touch state.
	r.ReconcileNow()

	if w, h := m.Viewport(); w != 1920 || h != 1080 {
		t.Fatalf("viewport changed, got %dx%d", w, h)
	}
}
