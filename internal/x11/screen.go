package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// RootGeometry returns the root window geometry.
func (c *Connection) RootGeometry() (x, y, width, height int, err error) {
	geom, err := xwindow.New(c.XUtil, c.Root).Geometry()
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to get root geometry: %w", err)
	}
	return geom.X(), geom.Y(), geom.Width(), geom.Height(), nil
}

// Workarea returns the usable desktop area, excluding WM panels and
// docks, falling back to the raw root geometry when the WM does not
// publish one.
func (c *Connection) Workarea() (x, y, width, height int, err error) {
	areas, err := ewmh.WorkareaGet(c.XUtil)
	if err == nil && len(areas) > 0 {
		wa := areas[0]
		return wa.X, wa.Y, int(wa.Width), int(wa.Height), nil
	}
	return c.RootGeometry()
}

// WatchRootChanges invokes onChange with the new root dimensions
// whenever the screen configuration changes. The listener stays
// registered for the connection's lifetime.
func (c *Connection) WatchRootChanges(onChange func(width, height int)) error {
	if err := xwindow.New(c.XUtil, c.Root).Listen(xproto.EventMaskStructureNotify); err != nil {
		return fmt.Errorf("failed to listen on root window: %w", err)
	}

	xevent.ConfigureNotifyFun(func(xu *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		onChange(int(ev.Width), int(ev.Height))
	}).Connect(c.XUtil, c.Root)

	return nil
}
