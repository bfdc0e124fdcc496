package panel

import (
	"testing"

	"github.com/1broseidon/paneldock/internal/geometry"
	"github.com/1broseidon/paneldock/internal/session"
	"github.com/1broseidon/paneldock/internal/store"
)

func testBounds() geometry.Bounds {
	return geometry.Bounds{Left: 300, Right: 1500, Top: 60, Bottom: 1000}
}

type managerFixture struct {
	m     *Manager
	mem   *store.MemoryStore
	docks []geometry.Side
}

func newFixture(t *testing.T, seed *store.Record) *managerFixture {
	t.Helper()

	f := &managerFixture{mem: store.NewMemoryStore()}
	if seed != nil {
		f.mem.Seed(*seed)
	}
	f.m = NewManager(Config{
		Store:     f.mem,
		Settings:  DefaultSettings(),
		ViewportW: 1920,
		ViewportH: 1080,
		Bounds: func() (geometry.Bounds, bool) {
			return testBounds(), true
		},
		OnDockChange: func(side geometry.Side) {
			f.docks = append(f.docks, side)
		},
	})
	return f
}

func TestNewManager_DefaultsWithoutPersistedState(t *testing.T) {
	f := newFixture(t, nil)

	st := f.m.State()
	if st.Docked != geometry.SideNone {
		t.Fatalf("expected floating default, got %q", st.Docked)
	}
	// {x: viewportW-650, y: 100} sized 600x600.
	if st.Position.X != 1270 || st.Position.Y != 100 {
		t.Fatalf("unexpected default position %+v", st.Position)
	}
	if st.Size.Width != 600 || st.Size.Height != 600 {
		t.Fatalf("unexpected default size %+v", st.Size)
	}
	if st.Minimized {
		t.Fatalf("expected expanded default")
	}
}

func TestNewManager_OffScreenPersistedStateDocksRight(t *testing.T) {
	f := newFixture(t, &store.Record{
		Docked:   geometry.SideNone,
		Position: store.Position{X: -9999, Y: 100},
		Size:     store.Dimensions{Width: 600, Height: 600},
	})

	st := f.m.State()
	if st.Docked != geometry.SideRight {
		t.Fatalf("expected off-screen restore to dock right, got %q", st.Docked)
	}
}

func TestNewManager_OutOfRangePersistedStateFallsBack(t *testing.T) {
	f := newFixture(t, &store.Record{
		Docked:   geometry.SideNone,
		Position: store.Position{X: 100, Y: 100},
		Size:     store.Dimensions{Width: 10, Height: 10},
	})

	st := f.m.State()
	if st.Size.Width != DefaultWidth || st.Size.Height != DefaultHeight {
		t.Fatalf("expected default size, got %+v", st.Size)
	}
}

func TestNewManager_DockedPersistedStateRestores(t *testing.T) {
	f := newFixture(t, &store.Record{
		Docked:   geometry.SideLeft,
		Position: store.Position{X: -300, Y: 60},
		Size:     store.Dimensions{Width: 600, Height: 600},
	})

	if st := f.m.State(); st.Docked != geometry.SideLeft {
		t.Fatalf("expected left dock restored, got %q", st.Docked)
	}
}

func TestNewManager_NeverRestoresMinimized(t *testing.T) {
	f := newFixture(t, nil)
	f.m.ToggleMinimize()
	if !f.m.State().Minimized {
		t.Fatalf("expected minimized")
	}

	rec, err := f.mem.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	second := newFixture(t, rec)
	if second.m.State().Minimized {
		t.Fatalf("minimized leaked into persisted state")
	}
}

func TestDragToEdgeDocks(t *testing.T) {
	f := newFixture(t, nil)
	origin := geometry.Point{X: 600, Y: 200}
	f.m.MoveTo(origin)

	f.m.StartDrag(geometry.Point{X: 650, Y: 210}, origin)
	// Candidate x=-320: panel right edge at 280, within 50 of ref.Left=300,
	// vertically overlapping the reference.
	f.m.DragTo(geometry.Point{X: -270, Y: 210})

	st := f.m.State()
	if st.Docked != geometry.SideLeft {
		t.Fatalf("expected left dock, got %q", st.Docked)
	}
	want := geometry.AnchoredPosition(geometry.SideLeft, st.Size, testBounds())
	if st.Position != want {
		t.Fatalf("expected anchored position %+v, got %+v", want, st.Position)
	}

	f.m.EndDrag()
	if f.m.Dragging() {
		t.Fatalf("drag session survived pointer-up")
	}
}

func TestDragFarFromReferenceStaysFloating(t *testing.T) {
	f := newFixture(t, nil)
	origin := geometry.Point{X: 600, Y: 200}
	f.m.MoveTo(origin)

	f.m.StartDrag(geometry.Point{X: 650, Y: 210}, origin)
	// Candidate x = ref.Right+200 = 1700: too far to snap, clamped to
	// maxX = 1920-600 = 1320.
	f.m.DragTo(geometry.Point{X: 1750, Y: 210})
	f.m.EndDrag()

	st := f.m.State()
	if st.Docked != geometry.SideNone {
		t.Fatalf("expected floating, got %q", st.Docked)
	}
	if st.Position.X != 1320 || st.Position.Y != 200 {
		t.Fatalf("unexpected position %+v", st.Position)
	}
}

func TestGrabbingDockedPanelUndocksBeforeDragMath(t *testing.T) {
	f := newFixture(t, nil)
	f.m.Dock(geometry.SideRight)
	f.docks = nil

	origin := geometry.Point{X: 1500, Y: 60}
	f.m.StartDrag(geometry.Point{X: 1550, Y: 70}, origin)

	st := f.m.State()
	if st.Docked != geometry.SideNone {
		t.Fatalf("expected undock on grab, got %q", st.Docked)
	}
	if st.Position != origin {
		t.Fatalf("expected position pinned to grab origin, got %+v", st.Position)
	}
	if len(f.docks) != 1 || f.docks[0] != geometry.SideNone {
		t.Fatalf("expected a single undock notification, got %v", f.docks)
	}
}

func TestDragBackOutOfSnapZoneUndocks(t *testing.T) {
	f := newFixture(t, nil)
	origin := geometry.Point{X: 600, Y: 200}
	f.m.MoveTo(origin)

	f.m.StartDrag(geometry.Point{X: 600, Y: 200}, origin)
	f.m.DragTo(geometry.Point{X: -320, Y: 200}) // snaps left
	if f.m.State().Docked != geometry.SideLeft {
		t.Fatalf("expected mid-drag dock")
	}
	f.m.DragTo(geometry.Point{X: 800, Y: 300}) // drag back into the open
	f.m.EndDrag()

	st := f.m.State()
	if st.Docked != geometry.SideNone {
		t.Fatalf("expected undock after dragging away, got %q", st.Docked)
	}
}

func TestMinimizedDragUsesFallbackWidth(t *testing.T) {
	f := newFixture(t, nil)
	f.m.ToggleMinimize()

	origin := f.m.State().Position
	f.m.StartDrag(origin, origin)
	// Clamp for a minimized panel relaxes to the fallback width:
	// maxX = 1920-250 = 1670 instead of 1920-600 = 1320.
	f.m.DragTo(geometry.Point{X: 1650, Y: origin.Y})
	f.m.EndDrag()

	if got := f.m.State().Position.X; got != 1650 {
		t.Fatalf("expected x=1650 under fallback clamp, got %d", got)
	}
}

func TestResizeCommitKeepsMinimums(t *testing.T) {
	f := newFixture(t, nil)
	f.m.MoveTo(geometry.Point{X: 400, Y: 200})

	start := f.m.State().Rect()
	f.m.StartResize(geometry.Point{X: start.X, Y: start.Y}, session.EdgeLeft|session.EdgeTop)
	f.m.ResizeTo(geometry.Point{X: start.X + 5000, Y: start.Y + 5000})

	st := f.m.State()
	if st.Size.Width < geometry.MinWidth || st.Size.Height < geometry.MinHeight {
		t.Fatalf("committed state violates minimums: %+v", st.Size)
	}
	f.m.EndResize()
	if f.m.Resizing() {
		t.Fatalf("resize session survived pointer-up")
	}
}

func TestResizeIgnoredWhileDockedOrMinimized(t *testing.T) {
	f := newFixture(t, nil)

	f.m.Dock(geometry.SideRight)
	f.m.StartResize(geometry.Point{X: 0, Y: 0}, session.EdgeRight)
	if f.m.Resizing() {
		t.Fatalf("resize started while docked")
	}

	f.m.Undock()
	f.m.ToggleMinimize()
	f.m.StartResize(geometry.Point{X: 0, Y: 0}, session.EdgeRight)
	if f.m.Resizing() {
		t.Fatalf("resize started while minimized")
	}
}

func TestDragAndResizeAreMutuallyExclusive(t *testing.T) {
	f := newFixture(t, nil)
	st := f.m.State()

	f.m.StartResize(geometry.Point{X: st.Position.X, Y: st.Position.Y}, session.EdgeLeft)
	f.m.StartDrag(geometry.Point{X: 0, Y: 0}, st.Position)
	if f.m.Dragging() {
		t.Fatalf("drag started during active resize")
	}

	f.m.EndResize()
	f.m.StartDrag(geometry.Point{X: 0, Y: 0}, st.Position)
	f.m.StartResize(geometry.Point{X: 0, Y: 0}, session.EdgeLeft)
	if f.m.Resizing() {
		t.Fatalf("resize started during active drag")
	}
}

func TestToggleMinimizeWhileDockedForcesFloating(t *testing.T) {
	f := newFixture(t, nil)
	f.m.Dock(geometry.SideTop)

	f.m.ToggleMinimize()

	st := f.m.State()
	if st.Docked != geometry.SideNone || !st.Minimized {
		t.Fatalf("expected floating+minimized, got docked=%q minimized=%v", st.Docked, st.Minimized)
	}
}

func TestViewportShrinkAutoDocksRight(t *testing.T) {
	f := newFixture(t, nil)
	f.m.MoveTo(geometry.Point{X: 1300, Y: 200})
	f.docks = nil

	// New viewport leaves the panel's right edge (1900) within 10px of
	// the new width.
	f.m.HandleViewportResize(1905, 1080)

	st := f.m.State()
	if st.Docked != geometry.SideRight {
		t.Fatalf("expected auto-dock right, got %q", st.Docked)
	}
	if len(f.docks) != 1 || f.docks[0] != geometry.SideRight {
		t.Fatalf("expected right dock notification, got %v", f.docks)
	}
}

func TestViewportResizeReclampsInPlace(t *testing.T) {
	f := newFixture(t, nil)
	f.m.MoveTo(geometry.Point{X: 100, Y: 720})

	// maxY becomes 800-100 = 700; no edge is within the 10px margin.
	f.m.HandleViewportResize(1920, 800)

	st := f.m.State()
	if st.Docked != geometry.SideNone {
		t.Fatalf("expected panel to stay floating, got %q", st.Docked)
	}
	if st.Position.X != 100 || st.Position.Y != 700 {
		t.Fatalf("expected re-clamp to (100,700), got %+v", st.Position)
	}
}

func TestViewportResizeIgnoresDockedPanel(t *testing.T) {
	f := newFixture(t, nil)
	f.m.Dock(geometry.SideLeft)

	f.m.HandleViewportResize(800, 600)

	if st := f.m.State(); st.Docked != geometry.SideLeft {
		t.Fatalf("docked panel disturbed by viewport resize: %q", st.Docked)
	}
}

func TestPersistFailureKeepsStateAuthoritative(t *testing.T) {
	f := newFixture(t, nil)
	f.mem.FailOps = true

	f.m.Dock(geometry.SideLeft)

	if st := f.m.State(); st.Docked != geometry.SideLeft {
		t.Fatalf("in-memory state corrupted by write failure: %q", st.Docked)
	}
	if f.mem.Saves() != 0 {
		t.Fatalf("unexpected successful save")
	}
}

func TestCommittedTransitionsPersist(t *testing.T) {
	f := newFixture(t, nil)

	f.m.Dock(geometry.SideRight)
	f.m.Undock()
	f.m.ToggleMinimize()

	if f.mem.Saves() < 3 {
		t.Fatalf("expected at least 3 saves, got %d", f.mem.Saves())
	}

	rec, err := f.mem.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec.Docked != geometry.SideNone {
		t.Fatalf("unexpected persisted dock %q", rec.Docked)
	}
}

func TestCloseFiresCallbackOnce(t *testing.T) {
	closes := 0
	m := NewManager(Config{
		Store:     store.NewMemoryStore(),
		Settings:  DefaultSettings(),
		ViewportW: 1920,
		ViewportH: 1080,
		OnClose:   func() { closes++ },
	})

	m.Close()
	m.Close()
	if closes != 1 {
		t.Fatalf("expected one close callback, got %d", closes)
	}
}

func TestFallbackReferenceBounds(t *testing.T) {
	mem := store.NewMemoryStore()
	m := NewManager(Config{
		Store:     mem,
		Settings:  DefaultSettings(),
		ViewportW: 1920,
		ViewportH: 1080,
	})

	// With no bounds provider, docking right anchors against the
	// viewport edge below the 60px header.
	m.Dock(geometry.SideRight)
	st := m.State()
	if st.Position.X != 1920 || st.Position.Y != 60 {
		t.Fatalf("unexpected fallback anchor %+v", st.Position)
	}
}
