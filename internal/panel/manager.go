// Package panel implements the overlay panel state machine: a single
// panel that floats, drags, resizes from any edge or corner, docks
// against a reference content region, minimizes, and persists its
// geometry across runs.
package panel

import (
	"log/slog"
	"sync"

	"github.com/1broseidon/paneldock/internal/geometry"
	"github.com/1broseidon/paneldock/internal/session"
	"github.com/1broseidon/paneldock/internal/store"
)

// BoundsFunc supplies the reference bounds the panel docks against.
// Returning ok=false selects the viewport-minus-margins fallback.
type BoundsFunc func() (geometry.Bounds, bool)

// Config wires a Manager to its collaborators.
type Config struct {
	Store     store.Adapter
	Logger    *slog.Logger
	Settings  Settings
	ViewportW int
	ViewportH int

	// Bounds supplies the host's reference bounds; nil uses the
	// fallback.
	Bounds BoundsFunc

	// OnDockChange is invoked after every committed dock-side change,
	// including undocking (SideNone).
	OnDockChange func(geometry.Side)

	// OnCommit is invoked with a snapshot after every committed state
	// change, including intermediate drag and resize steps. Hosts use
	// it to mirror geometry.
	OnCommit func(State)

	// OnClose is invoked once from Close.
	OnClose func()
}

// Manager owns the canonical panel state and applies all transitions.
// Geometry runs synchronously inside the calling goroutine; the mutex
// only guards against IPC and MCP handlers calling in concurrently.
type Manager struct {
	mu        sync.Mutex
	state     State
	settings  Settings
	viewportW int
	viewportH int

	drag   *session.Drag
	resize *session.Resize

	adapter      store.Adapter
	logger       *slog.Logger
	bounds       BoundsFunc
	onDockChange func(geometry.Side)
	onCommit     func(State)
	onClose      func()
	closed       bool
}

// NewManager restores the panel from persisted state, or from defaults
// when the record is missing, corrupt, or out of range. A persisted
// floating position that validates off-screen restores docked to the
// default side.
func NewManager(cfg Config) *Manager {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		settings:     cfg.Settings.normalized(),
		viewportW:    cfg.ViewportW,
		viewportH:    cfg.ViewportH,
		adapter:      cfg.Store,
		logger:       logger,
		bounds:       cfg.Bounds,
		onDockChange: cfg.OnDockChange,
		onCommit:     cfg.OnCommit,
		onClose:      cfg.OnClose,
	}
	m.state = m.restore()
	return m
}

// State returns a snapshot of the committed panel state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Viewport returns the host viewport dimensions the manager validates
// against.
func (m *Manager) Viewport() (w, h int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.viewportW, m.viewportH
}

// Dragging reports whether a drag session is active.
func (m *Manager) Dragging() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.drag != nil
}

// Resizing reports whether a resize session is active.
func (m *Manager) Resizing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resize != nil
}

// StartDrag begins a drag session from a pointer-down on the title bar.
// origin is the panel's rendered top-left at that moment. A docked
// panel detaches on grab, before any drag math runs.
func (m *Manager) StartDrag(pointer, origin geometry.Point) {
	m.mu.Lock()
	if m.resize != nil {
		// A resize handle intercepted the pointer first.
		m.mu.Unlock()
		return
	}
	m.drag = session.StartDrag(pointer, origin)

	var undocked bool
	if m.state.Docked != geometry.SideNone {
		m.state.Docked = geometry.SideNone
		m.state.Position = origin
		undocked = true
	}
	m.mu.Unlock()

	if undocked {
		m.notifyDock(geometry.SideNone)
		m.notifyCommit()
	}
}

// DragTo processes a pointer-move during a drag. The candidate position
// is checked for dock proximity first; otherwise it is clamped into the
// viewport. A candidate that validates off-screen docks to the default
// side.
func (m *Manager) DragTo(pointer geometry.Point) {
	m.mu.Lock()
	if m.drag == nil {
		m.mu.Unlock()
		return
	}

	cand := m.drag.Candidate(pointer)
	size := m.state.Size
	if m.state.Minimized {
		// Minimized width is intrinsic; clamp against the fallback.
		size.Width = MinimizedFallbackWidth
	}
	rect := geometry.Rect{X: cand.X, Y: cand.Y, Width: size.Width, Height: size.Height}

	if side := geometry.DetectDock(rect, m.referenceBounds()); side != geometry.SideNone {
		changed := m.dockLocked(side)
		m.mu.Unlock()
		if changed {
			m.notifyDock(side)
			m.persist()
		}
		return
	}

	pos, ok := geometry.Validate(cand, size, m.viewportW, m.viewportH)
	if !ok {
		side := m.settings.DefaultSide
		changed := m.dockLocked(side)
		m.mu.Unlock()
		if changed {
			m.notifyDock(side)
			m.persist()
		}
		return
	}

	var undocked bool
	if m.state.Docked != geometry.SideNone {
		// Dragged back out of the snap zone after docking mid-drag.
		m.state.Docked = geometry.SideNone
		undocked = true
	}
	m.state.Position = pos
	m.mu.Unlock()

	if undocked {
		m.notifyDock(geometry.SideNone)
		m.persist()
	} else {
		m.notifyCommit()
	}
}

// EndDrag destroys the drag session and persists the committed state.
func (m *Manager) EndDrag() {
	m.mu.Lock()
	active := m.drag != nil
	m.drag = nil
	m.mu.Unlock()

	if active {
		m.persist()
	}
}

// StartResize begins a resize session from a pointer-down on an edge or
// corner handle. Ignored while docked or minimized, and while a drag is
// active.
func (m *Manager) StartResize(pointer geometry.Point, edges session.EdgeSet) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.drag != nil || m.resize != nil {
		return
	}
	if m.state.Docked != geometry.SideNone || m.state.Minimized {
		return
	}
	if !edges.Valid() {
		m.logger.Warn("ignoring resize with invalid edge set", "edges", edges)
		return
	}
	m.resize = session.StartResize(pointer, m.state.Rect(), edges)
}

// ResizeTo processes a pointer-move during a resize, committing the
// anchor-preserving result. Minimum dimensions hold after every
// intermediate step.
func (m *Manager) ResizeTo(pointer geometry.Point) {
	m.mu.Lock()
	if m.resize == nil {
		m.mu.Unlock()
		return
	}
	rect := m.resize.Apply(pointer, m.viewportW, m.viewportH)
	m.state.Position = rect.Origin()
	m.state.Size = rect.Extent()
	m.mu.Unlock()

	m.notifyCommit()
}

// EndResize destroys the resize session and persists the committed
// state.
func (m *Manager) EndResize() {
	m.mu.Lock()
	active := m.resize != nil
	m.resize = nil
	m.mu.Unlock()

	if active {
		m.persist()
	}
}

// Dock docks the panel to the given side at its canonical anchored
// position.
func (m *Manager) Dock(side geometry.Side) {
	if !side.Valid() || side == geometry.SideNone {
		m.logger.Warn("ignoring dock to invalid side", "side", string(side))
		return
	}

	m.mu.Lock()
	changed := m.dockLocked(side)
	m.mu.Unlock()

	if changed {
		m.notifyDock(side)
	}
	m.persist()
}

// DockDefault docks to the configured default side. This backs the
// explicit dock-toggle affordance.
func (m *Manager) DockDefault() {
	m.mu.Lock()
	side := m.settings.DefaultSide
	m.mu.Unlock()
	m.Dock(side)
}

// Undock floats the panel at its last advisory position, re-validated
// against the viewport.
func (m *Manager) Undock() {
	m.mu.Lock()
	if m.state.Docked == geometry.SideNone {
		m.mu.Unlock()
		return
	}
	m.state.Docked = geometry.SideNone
	m.state.Position = m.floatingPosition(m.state.Position)
	m.mu.Unlock()

	m.notifyDock(geometry.SideNone)
	m.persist()
}

// ToggleMinimize flips the minimized flag. Minimizing a docked panel
// forces it to float first, freeing the docked space.
func (m *Manager) ToggleMinimize() {
	m.mu.Lock()
	m.state.Minimized = !m.state.Minimized

	var undocked bool
	if m.state.Minimized && m.state.Docked != geometry.SideNone {
		m.state.Docked = geometry.SideNone
		m.state.Position = m.floatingPosition(m.state.Position)
		undocked = true
	}
	m.mu.Unlock()

	if undocked {
		m.notifyDock(geometry.SideNone)
	}
	m.persist()
}

// MoveTo commits a validated absolute position. Off-screen targets dock
// to the default side.
func (m *Manager) MoveTo(pos geometry.Point) {
	m.mu.Lock()
	clamped, ok := geometry.Validate(pos, m.state.Size, m.viewportW, m.viewportH)
	if !ok {
		side := m.settings.DefaultSide
		changed := m.dockLocked(side)
		m.mu.Unlock()
		if changed {
			m.notifyDock(side)
		}
		m.persist()
		return
	}

	var undocked bool
	if m.state.Docked != geometry.SideNone {
		m.state.Docked = geometry.SideNone
		undocked = true
	}
	m.state.Position = clamped
	m.mu.Unlock()

	if undocked {
		m.notifyDock(geometry.SideNone)
	}
	m.persist()
}

// SetSize commits an absolute size, clamped into the allowed range,
// keeping the top-left corner fixed.
func (m *Manager) SetSize(size geometry.Size) {
	m.mu.Lock()
	if m.state.Docked != geometry.SideNone || m.state.Minimized {
		m.mu.Unlock()
		return
	}
	m.state.Size = m.clampSize(size)
	if pos, ok := geometry.Validate(m.state.Position, m.state.Size, m.viewportW, m.viewportH); ok {
		m.state.Position = pos
	}
	m.mu.Unlock()

	m.persist()
}

// HandleViewportResize re-validates the committed state against a new
// host viewport. A floating panel whose rectangle now sits within
// AutoDockMargin of the left, right, or top viewport edge auto-docks to
// that side; bottom proximity only re-clamps. Off-screen geometry docks
// to the default side.
func (m *Manager) HandleViewportResize(w, h int) {
	m.mu.Lock()
	m.viewportW = w
	m.viewportH = h

	if m.state.Docked != geometry.SideNone {
		// Host owns docked layout; nothing to correct.
		m.mu.Unlock()
		return
	}

	if !m.state.Minimized {
		if side := m.autoDockSide(); side != geometry.SideNone {
			changed := m.dockLocked(side)
			m.mu.Unlock()
			if changed {
				m.notifyDock(side)
			}
			m.persist()
			return
		}
	}

	size := m.state.Size
	if m.state.Minimized {
		size.Width = MinimizedFallbackWidth
	}
	pos, ok := geometry.Validate(m.state.Position, size, w, h)
	if !ok {
		side := m.settings.DefaultSide
		changed := m.dockLocked(side)
		m.mu.Unlock()
		if changed {
			m.notifyDock(side)
		}
		m.persist()
		return
	}

	moved := pos != m.state.Position
	m.state.Position = pos
	m.mu.Unlock()

	if moved {
		m.persist()
	}
}

// ApplySettings installs updated settings pushed by the config
// subscription.
func (m *Manager) ApplySettings(s Settings) {
	m.mu.Lock()
	m.settings = s.normalized()
	m.mu.Unlock()
	m.logger.Info("panel settings updated",
		"default_side", string(s.DefaultSide),
		"header_margin", s.HeaderMargin,
		"footer_margin", s.FooterMargin)
}

// Close ends any active session and fires the close callback once.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.drag = nil
	m.resize = nil
	onClose := m.onClose
	m.mu.Unlock()

	if onClose != nil {
		onClose()
	}
}

// dockLocked commits a dock transition and reports whether the side
// changed. Callers fire notifications and persistence after unlocking.
func (m *Manager) dockLocked(side geometry.Side) bool {
	prev := m.state.Docked
	m.state.Docked = side
	m.state.Position = geometry.AnchoredPosition(side, m.state.Size, m.referenceBounds())
	return prev != side
}

// autoDockSide maps viewport-edge proximity to a dock side using the
// tighter post-resize margin.
func (m *Manager) autoDockSide() geometry.Side {
	rect := m.state.Rect()
	switch {
	case rect.X <= geometry.AutoDockMargin:
		return geometry.SideLeft
	case m.viewportW-(rect.X+rect.Width) <= geometry.AutoDockMargin:
		return geometry.SideRight
	case rect.Y <= geometry.AutoDockMargin:
		return geometry.SideTop
	}
	return geometry.SideNone
}

// floatingPosition re-validates an advisory position for floating use,
// falling back to the floating default when unreachable.
func (m *Manager) floatingPosition(pos geometry.Point) geometry.Point {
	if clamped, ok := geometry.Validate(pos, m.state.Size, m.viewportW, m.viewportH); ok {
		return clamped
	}
	return m.defaultPosition()
}

func (m *Manager) defaultPosition() geometry.Point {
	return geometry.Point{X: m.viewportW - DefaultOffsetX, Y: DefaultY}
}

func (m *Manager) clampSize(size geometry.Size) geometry.Size {
	maxW := m.viewportW - geometry.MaxDimMargin
	maxH := m.viewportH - geometry.MaxDimMargin
	if size.Width < geometry.MinWidth {
		size.Width = geometry.MinWidth
	} else if maxW >= geometry.MinWidth && size.Width > maxW {
		size.Width = maxW
	}
	if size.Height < geometry.MinHeight {
		size.Height = geometry.MinHeight
	} else if maxH >= geometry.MinHeight && size.Height > maxH {
		size.Height = maxH
	}
	return size
}

// referenceBounds resolves the dock target region: the host's bounds
// when supplied, otherwise the viewport minus header/footer margins.
func (m *Manager) referenceBounds() geometry.Bounds {
	if m.bounds != nil {
		if b, ok := m.bounds(); ok {
			return b
		}
	}
	return geometry.Bounds{
		Left:   0,
		Right:  m.viewportW,
		Top:    m.settings.HeaderMargin,
		Bottom: m.viewportH - m.settings.FooterMargin,
	}
}

// restore builds the initial state from the persistence adapter.
func (m *Manager) restore() State {
	defaults := State{
		Docked:   geometry.SideNone,
		Position: m.defaultPosition(),
		Size:     geometry.Size{Width: DefaultWidth, Height: DefaultHeight},
	}

	if m.adapter == nil {
		return defaults
	}
	rec, err := m.adapter.Load()
	if err != nil {
		m.logger.Debug("no usable persisted state, using defaults", "error", err)
		return defaults
	}
	st, ok := stateFromRecord(rec)
	if !ok {
		m.logger.Warn("persisted state out of range, using defaults")
		return defaults
	}

	if st.Docked != geometry.SideNone {
		return st
	}

	pos, ok := geometry.Validate(st.Position, st.Size, m.viewportW, m.viewportH)
	if !ok {
		// Unreachable geometry auto-corrects by docking.
		st.Docked = geometry.SideRight
		st.Position = geometry.AnchoredPosition(geometry.SideRight, st.Size, m.referenceBounds())
		return st
	}
	st.Position = pos
	return st
}

// persist writes the committed state. Failures are logged and
// swallowed; in-memory state stays authoritative.
func (m *Manager) persist() {
	if m.adapter == nil {
		return
	}
	m.mu.Lock()
	rec := m.state.record()
	m.mu.Unlock()

	if err := m.adapter.Save(rec); err != nil {
		m.logger.Warn("failed to persist panel state", "error", err)
	}
	m.notifyCommit()
}

func (m *Manager) notifyDock(side geometry.Side) {
	if m.onDockChange != nil {
		m.onDockChange(side)
	}
}

func (m *Manager) notifyCommit() {
	if m.onCommit == nil {
		return
	}
	m.mu.Lock()
	st := m.state
	m.mu.Unlock()
	m.onCommit(st)
}
