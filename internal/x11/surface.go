package x11

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
	"github.com/kestrelwm/modeshift/internal/platform"
)

// Motif WM hints layout: flags, functions, decorations, input mode,
// status. Only the decorations/functions words are used here.
const (
	motifHintFunctions   = 1 << 0
	motifHintDecorations = 1 << 1

	motifFuncResize   = 1 << 1
	motifFuncMove     = 1 << 2
	motifFuncMinimize = 1 << 3
	motifFuncMaximize = 1 << 4
	motifFuncClose    = 1 << 5

	motifDecorAll = 1 << 0
)

// Surface implements platform.Surface for one top-level X window. The
// chrome mask is authoritative here and pushed to the window manager as
// Motif hints, the way toolkits do; X itself has no style mask.
type Surface struct {
	conn    *Connection
	display *Display
	win     xproto.Window
	log     *slog.Logger

	mu      sync.Mutex
	mask    platform.StyleMask
	movable bool
}

// NewSurface wraps an existing top-level window. The initial style mask
// assumes full chrome, which matches a freshly mapped managed window.
func NewSurface(conn *Connection, display *Display, win xproto.Window, logger *slog.Logger) *Surface {
	if logger == nil {
		logger = slog.Default()
	}
	return &Surface{
		conn:    conn,
		display: display,
		win:     win,
		log:     logger,
		mask:    platform.StyleTitled | platform.StyleClosable | platform.StyleMiniaturizable | platform.StyleResizable,
		movable: true,
	}
}

// Window returns the underlying X window ID.
func (s *Surface) Window() xproto.Window { return s.win }

// Frame returns the window geometry in root coordinates.
func (s *Surface) Frame() platform.Rect {
	geom, err := xproto.GetGeometry(s.conn.XUtil.Conn(), xproto.Drawable(s.win)).Reply()
	if err != nil {
		return platform.Rect{}
	}
	translate, err := xproto.TranslateCoordinates(s.conn.XUtil.Conn(), s.win, s.conn.Root, 0, 0).Reply()
	if err != nil {
		return platform.Rect{}
	}
	return platform.Rect{
		X:      int(translate.DstX),
		Y:      int(translate.DstY),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}
}

// SetFrame moves and resizes the window.
func (s *Surface) SetFrame(r platform.Rect) {
	// Use EWMH MoveResize for better WM compatibility, falling back to
	// direct window manipulation.
	if err := ewmh.MoveresizeWindow(s.conn.XUtil, s.win, r.X, r.Y, r.Width, r.Height); err != nil {
		xwindow.New(s.conn.XUtil, s.win).MoveResize(r.X, r.Y, r.Width, r.Height)
	}
}

// SetFrameAsync is SetFrame: X requests are pipelined and confirmed by the
// server later, so every frame change is already asynchronous.
func (s *Surface) SetFrameAsync(r platform.Rect) {
	s.SetFrame(r)
}

// StyleMask returns the tracked chrome mask.
func (s *Surface) StyleMask() platform.StyleMask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mask
}

// SetStyleMask applies a chrome mask via Motif WM hints.
func (s *Surface) SetStyleMask(mask platform.StyleMask) {
	s.mu.Lock()
	s.mask = mask
	movable := s.movable
	s.mu.Unlock()

	if err := s.applyMotifHints(mask, movable); err != nil {
		s.log.Error("failed to apply motif hints", "window", s.win, "error", err)
	}
}

// SetStyleMaskAsync is SetStyleMask; see SetFrameAsync.
func (s *Surface) SetStyleMaskAsync(mask platform.StyleMask) {
	s.SetStyleMask(mask)
}

func (s *Surface) applyMotifHints(mask platform.StyleMask, movable bool) error {
	var decorations, functions uint
	if mask&platform.StyleTitled != 0 {
		decorations = motifDecorAll
	}
	if mask&platform.StyleResizable != 0 {
		functions |= motifFuncResize | motifFuncMaximize
	}
	if mask&platform.StyleMiniaturizable != 0 {
		functions |= motifFuncMinimize
	}
	if mask&platform.StyleClosable != 0 {
		functions |= motifFuncClose
	}
	if movable {
		functions |= motifFuncMove
	}
	return xprop.ChangeProp32(s.conn.XUtil, s.win, "_MOTIF_WM_HINTS", "_MOTIF_WM_HINTS",
		motifHintFunctions|motifHintDecorations, functions, decorations, 0, 0)
}

// Screen returns the monitor containing the window's center.
func (s *Surface) Screen() (platform.Monitor, error) {
	monitors, err := s.display.Monitors()
	if err != nil {
		return platform.Monitor{}, err
	}
	if len(monitors) == 0 {
		return platform.Monitor{}, fmt.Errorf("no monitors found")
	}

	frame := s.Frame()
	centerX := frame.X + frame.Width/2
	centerY := frame.Y + frame.Height/2
	for _, mon := range monitors {
		f := mon.Frame
		if centerX >= f.X && centerX < f.X+f.Width &&
			centerY >= f.Y && centerY < f.Y+f.Height {
			return mon, nil
		}
	}
	return monitors[0], nil
}

// ToggleFullscreenAsync toggles the EWMH fullscreen state. The window
// manager answers with a property change, observed by the watcher.
func (s *Surface) ToggleFullscreenAsync() {
	if err := ewmh.WmStateReq(s.conn.XUtil, s.win, ewmh.StateToggle, "_NET_WM_STATE_FULLSCREEN"); err != nil {
		s.log.Error("failed to toggle fullscreen state", "window", s.win, "error", err)
	}
}

// SetLevel raises the window above (or back below) the stacking layer a
// display capture shields with.
func (s *Surface) SetLevel(level platform.WindowLevel) {
	action := ewmh.StateRemove
	if level == platform.LevelAboveShield {
		action = ewmh.StateAdd
	}
	if err := ewmh.WmStateReq(s.conn.XUtil, s.win, action, "_NET_WM_STATE_ABOVE"); err != nil {
		s.log.Error("failed to change window level", "window", s.win, "error", err)
	}
}

// SetMovable tracks movability. EWMH has no direct movable flag; the move
// function bit of the Motif hints carries it to the window manager.
func (s *Surface) SetMovable(movable bool) {
	s.mu.Lock()
	s.movable = movable
	mask := s.mask
	s.mu.Unlock()
	if err := s.applyMotifHints(mask, movable); err != nil {
		s.log.Error("failed to apply motif hints", "window", s.win, "error", err)
	}
}

// Zoomed reports whether the window is maximized both ways.
func (s *Surface) Zoomed() bool {
	states, err := ewmh.WmStateGet(s.conn.XUtil, s.win)
	if err != nil {
		return false
	}
	hasMaxH, hasMaxV := false, false
	for _, state := range states {
		switch state {
		case "_NET_WM_STATE_MAXIMIZED_HORZ":
			hasMaxH = true
		case "_NET_WM_STATE_MAXIMIZED_VERT":
			hasMaxV = true
		}
	}
	return hasMaxH && hasMaxV
}

// SetZoomedAsync requests both maximized states added or removed.
func (s *Surface) SetZoomedAsync(zoomed bool) {
	action := ewmh.StateRemove
	if zoomed {
		action = ewmh.StateAdd
	}
	if err := ewmh.WmStateReq(s.conn.XUtil, s.win, action, "_NET_WM_STATE_MAXIMIZED_HORZ"); err != nil {
		s.log.Error("failed to change maximized state", "window", s.win, "error", err)
	}
	if err := ewmh.WmStateReq(s.conn.XUtil, s.win, action, "_NET_WM_STATE_MAXIMIZED_VERT"); err != nil {
		s.log.Error("failed to change maximized state", "window", s.win, "error", err)
	}
}

// Miniaturized reports whether the window is iconified.
func (s *Surface) Miniaturized() bool {
	states, err := ewmh.WmStateGet(s.conn.XUtil, s.win)
	if err != nil {
		return false
	}
	for _, state := range states {
		if state == "_NET_WM_STATE_HIDDEN" {
			return true
		}
	}
	return false
}

// SetMiniaturizedAsync iconifies via WM_CHANGE_STATE or restores by
// remapping the window.
func (s *Surface) SetMiniaturizedAsync(miniaturized bool) {
	if !miniaturized {
		xproto.MapWindow(s.conn.XUtil.Conn(), s.win)
		return
	}

	reply, err := xproto.InternAtom(s.conn.XUtil.Conn(), false, uint16(len("WM_CHANGE_STATE")), "WM_CHANGE_STATE").Reply()
	if err != nil {
		s.log.Error("failed to intern WM_CHANGE_STATE", "error", err)
		return
	}

	const iconicState = 3
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: s.win,
		Type:   reply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{iconicState, 0, 0, 0, 0}),
	}
	err = xproto.SendEvent(
		s.conn.XUtil.Conn(),
		false,
		s.conn.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
	if err != nil {
		s.log.Error("failed to iconify window", "window", s.win, "error", err)
	}
}
