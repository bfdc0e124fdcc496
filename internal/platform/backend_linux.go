//go:build linux

package platform

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"

	"github.com/1broseidon/paneldock/internal/x11"
)

// x11Backend implements Backend on top of the X11 connection.
type x11Backend struct {
	conn *x11.Connection
}

// NewBackend connects to the running window system.
func NewBackend() (Backend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &x11Backend{conn: conn}, nil
}

func (b *x11Backend) Viewport() (Rect, error) {
	x, y, w, h, err := b.conn.Workarea()
	if err != nil {
		return Rect{}, err
	}
	return Rect{X: x, Y: y, Width: w, Height: h}, nil
}

func (b *x11Backend) ActiveWindow() (WindowID, error) {
	win, err := b.conn.GetActiveWindow()
	if err != nil {
		return 0, err
	}
	return WindowID(win), nil
}

func (b *x11Backend) MoveResize(windowID WindowID, bounds Rect) error {
	return b.conn.MoveResizeWindow(
		xproto.Window(windowID),
		bounds.X, bounds.Y, bounds.Width, bounds.Height,
	)
}

func (b *x11Backend) Hide(windowID WindowID) error {
	return b.conn.HideWindow(xproto.Window(windowID))
}

func (b *x11Backend) Show(windowID WindowID) error {
	return b.conn.ShowWindow(xproto.Window(windowID))
}

func (b *x11Backend) Raise(windowID WindowID) error {
	return b.conn.RaiseWindow(xproto.Window(windowID))
}

func (b *x11Backend) WatchViewport(onChange func(width, height int)) error {
	return b.conn.WatchRootChanges(onChange)
}

func (b *x11Backend) Run() {
	b.conn.EventLoop()
}

func (b *x11Backend) Close() {
	b.conn.Quit()
	b.conn.Close()
}

// XUtil exposes the underlying X11 handle for components that need
// direct access, mirroring the optional-accessor pattern used by
// callers that know they run on X11.
func (b *x11Backend) XUtil() *xgbutil.XUtil {
	return b.conn.XUtil
}
