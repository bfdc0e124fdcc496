package panel

import (
	"github.com/1broseidon/paneldock/internal/geometry"
	"github.com/1broseidon/paneldock/internal/store"
)

const (
	// DefaultWidth and DefaultHeight size a panel with no usable
	// persisted state.
	DefaultWidth  = 600
	DefaultHeight = 600

	// DefaultOffsetX places the floating default at viewportW-650.
	DefaultOffsetX = 650

	// DefaultY is the floating default top edge.
	DefaultY = 100

	// MinimizedFallbackWidth stands in for the panel's intrinsic width
	// while minimized, when the real width is unknown to the manager.
	MinimizedFallbackWidth = 250
)

// State is the canonical panel state. When Docked is set, Position and
// Size are advisory only: layout is delegated to the host. When
// floating, Size always satisfies the geometry minimums.
type State struct {
	Docked    geometry.Side
	Position  geometry.Point
	Size      geometry.Size
	Minimized bool
}

// Rect returns the panel rectangle implied by the state.
func (s State) Rect() geometry.Rect {
	return geometry.Rect{
		X:      s.Position.X,
		Y:      s.Position.Y,
		Width:  s.Size.Width,
		Height: s.Size.Height,
	}
}

// Settings are the host-tunable knobs the manager consumes. They arrive
// at construction and again through the settings subscription when the
// config file changes.
type Settings struct {
	// DefaultSide is the side used by DockDefault and by off-screen
	// fallbacks.
	DefaultSide geometry.Side

	// HeaderMargin and FooterMargin shape the fallback reference bounds
	// when the host supplies none: the viewport minus a fixed header
	// and footer.
	HeaderMargin int
	FooterMargin int
}

// DefaultSettings returns the stock settings.
func DefaultSettings() Settings {
	return Settings{
		DefaultSide:  geometry.SideRight,
		HeaderMargin: 60,
		FooterMargin: 40,
	}
}

func (s Settings) normalized() Settings {
	if !s.DefaultSide.Valid() || s.DefaultSide == geometry.SideNone {
		s.DefaultSide = geometry.SideRight
	}
	if s.HeaderMargin < 0 {
		s.HeaderMargin = 0
	}
	if s.FooterMargin < 0 {
		s.FooterMargin = 0
	}
	return s
}

// record converts the state to its persisted form. Minimized is never
// persisted; the panel always restores expanded.
func (s State) record() *store.Record {
	return &store.Record{
		Docked:   s.Docked,
		Position: store.Position{X: s.Position.X, Y: s.Position.Y},
		Size:     store.Dimensions{Width: s.Size.Width, Height: s.Size.Height},
	}
}

// stateFromRecord validates a persisted record. ok is false for
// out-of-range records, which fall back to construction defaults.
func stateFromRecord(rec *store.Record) (State, bool) {
	if rec == nil || !rec.Docked.Valid() {
		return State{}, false
	}
	if rec.Size.Width < geometry.MinWidth || rec.Size.Height < geometry.MinHeight {
		return State{}, false
	}
	return State{
		Docked:   rec.Docked,
		Position: geometry.Point{X: rec.Position.X, Y: rec.Position.Y},
		Size:     geometry.Size{Width: rec.Size.Width, Height: rec.Size.Height},
	}, true
}
