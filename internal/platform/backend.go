package platform

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Backend abstracts window-system operations for hosting the panel.
type Backend interface {
	// Viewport returns the usable screen area.
	Viewport() (Rect, error)
	// ActiveWindow returns the currently focused top-level window.
	ActiveWindow() (WindowID, error)
	// MoveResize places a window at the given geometry.
	MoveResize(windowID WindowID, bounds Rect) error
	// Hide removes a window from view; Show reverses it.
	Hide(windowID WindowID) error
	Show(windowID WindowID) error
	// Raise stacks a window above its siblings.
	Raise(windowID WindowID) error
	// WatchViewport registers a long-lived callback for screen geometry
	// changes. The registration lasts until Close.
	WatchViewport(onChange func(width, height int)) error
	// Run drives the backend event loop, blocking until Close.
	Run()
	// Close tears down the backend and stops Run.
	Close()
}
