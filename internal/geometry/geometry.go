package geometry

// Point is a position in viewport coordinates.
type Point struct {
	X int
	Y int
}

// Size is a panel extent in pixels.
type Size struct {
	Width  int
	Height int
}

// Rect describes a panel rectangle in viewport coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Origin returns the rectangle's top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Extent returns the rectangle's size.
func (r Rect) Extent() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Bounds is the reference region the panel docks against, expressed as
// edge coordinates rather than origin+size.
type Bounds struct {
	Left   int
	Right  int
	Top    int
	Bottom int
}

const (
	// MinWidth and MinHeight are the smallest committed panel dimensions.
	MinWidth  = 300
	MinHeight = 200

	// DockThreshold is the drag-time snap distance between a panel edge
	// and a reference edge.
	DockThreshold = 50

	// OverlapTolerance extends the reference's orthogonal extent on each
	// side when testing whether the panel overlaps it.
	OverlapTolerance = 50

	// EdgeMargin classifies a rectangle as off-screen once less than this
	// many pixels of it could remain visible.
	EdgeMargin = 50

	// AutoDockMargin is the tighter edge distance that triggers docking
	// when the host viewport resizes under a floating panel.
	AutoDockMargin = 10

	// ReservedVertical keeps the panel's top edge above the bottom of the
	// viewport so the title bar stays reachable.
	ReservedVertical = 100

	// MaxDimMargin caps panel dimensions at viewport minus this value.
	MaxDimMargin = 100
)
