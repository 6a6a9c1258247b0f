package x11

import (
	"log/slog"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// TransitionBridge receives the out-of-band transition notifications the
// window system produces when a fullscreen toggle actually happens.
type TransitionBridge interface {
	TransitionWillBegin()
	TransitionDidEnd(entered bool)
}

// WatchTransitions subscribes to _NET_WM_STATE property changes on a
// window and drives the bridge when its fullscreen state flips. X window
// managers apply the state without an animation phase, so the begin/end
// pair is delivered back to back from the event loop.
func WatchTransitions(conn *Connection, win xproto.Window, bridge TransitionBridge, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if err := xwindow.New(conn.XUtil, win).Listen(xproto.EventMaskPropertyChange); err != nil {
		return err
	}

	last := isFullscreen(conn, win)
	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		name, err := xprop.AtomName(xu, ev.Atom)
		if err != nil || name != "_NET_WM_STATE" {
			return
		}
		now := isFullscreen(conn, win)
		if now == last {
			return
		}
		last = now
		logger.Debug("fullscreen state changed", "window", win, "fullscreen", now)
		bridge.TransitionWillBegin()
		bridge.TransitionDidEnd(now)
	}).Connect(conn.XUtil, win)

	return nil
}

func isFullscreen(conn *Connection, win xproto.Window) bool {
	states, err := ewmh.WmStateGet(conn.XUtil, win)
	if err != nil {
		return false
	}
	for _, state := range states {
		if state == "_NET_WM_STATE_FULLSCREEN" {
			return true
		}
	}
	return false
}
