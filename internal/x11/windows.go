package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// GetActiveWindow returns the currently focused top-level window.
func (c *Connection) GetActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}

// ListWindows returns the window manager's client list.
func (c *Connection) ListWindows() ([]xproto.Window, error) {
	return ewmh.ClientListGet(c.XUtil)
}

// WindowExists checks whether a window is still a valid X resource.
func (c *Connection) WindowExists(win xproto.Window) bool {
	_, err := xproto.GetWindowAttributes(c.XUtil.Conn(), win).Reply()
	return err == nil
}
