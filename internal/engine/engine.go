// Package engine drives a single window's display-mode transitions:
// windowed, borderless fullscreen, and exclusive fullscreen, plus the
// chrome attributes (resizable, decorated, maximized) that interact with
// them.
//
// All mutating calls are expected to run on the UI-affine thread. The
// internal mutex protects concurrent queries; logical re-entrancy is
// prevented by the inTransition flag, an advisory software lock.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kestrelwm/modeshift/internal/platform"
)

// ErrUnsupported marks operations the current platform or configuration
// cannot perform. No state is changed when it is returned.
var ErrUnsupported = errors.New("operation not supported on this platform")

const (
	defaultFadeOut = 300 * time.Millisecond
	defaultFadeIn  = 600 * time.Millisecond
)

// Options configures a new Engine.
type Options struct {
	Resizable bool
	Decorated bool

	// FadeOut and FadeIn bound the display fades around exclusive mode
	// switches. Zero selects the defaults.
	FadeOut time.Duration
	FadeIn  time.Duration

	Logger *slog.Logger
}

// Engine owns the transition state for one window. Create one per window
// with New and release it with Close when the window goes away.
type Engine struct {
	surface platform.Surface
	display platform.Display
	log     *slog.Logger

	fadeOut time.Duration
	fadeIn  time.Duration

	decorated atomic.Bool

	mu sync.Mutex
	st shared
}

// New creates an engine for the given surface in windowed mode.
func New(surface platform.Surface, display platform.Display, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		surface: surface,
		display: display,
		log:     logger,
		fadeOut: opts.FadeOut,
		fadeIn:  opts.FadeIn,
	}
	if e.fadeOut <= 0 {
		e.fadeOut = defaultFadeOut
	}
	if e.fadeIn <= 0 {
		e.fadeIn = defaultFadeIn
	}
	e.st.resizable = opts.Resizable
	e.decorated.Store(opts.Decorated)
	return e
}

// RequestFullscreen moves the window to the requested display mode. A nil
// mode means windowed.
//
// If a native transition is already in flight the request is queued in the
// single deferred slot and applied after completion (last writer wins). A
// request matching the current mode is a no-op. Requests are ignored while
// simple fullscreen is active.
//
// Failure to capture a display or switch its video mode aborts the attempt
// and is returned as an error; the confirmed mode is left unchanged. A
// failed switch between exclusive modes re-captures the old display, and
// downgrades the confirmed mode to borderless when that capture is also
// lost.
func (e *Engine) RequestFullscreen(mode platform.FullscreenMode) error {
	e.mu.Lock()
	if e.st.simpleFullscreen {
		e.mu.Unlock()
		e.log.Debug("fullscreen request ignored: simple fullscreen active")
		return nil
	}
	if e.st.inTransition {
		// Can't toggle now; replayed by TransitionDidEnd. A newer
		// request overwrites an older deferred one.
		e.st.target = &mode
		e.mu.Unlock()
		e.log.Debug("fullscreen request deferred: transition in flight")
		return nil
	}
	old := e.st.fullscreen
	e.mu.Unlock()

	if platform.SameMode(mode, old) {
		return nil
	}

	// The native toggle always targets the window's current screen, so a
	// request for a different monitor must relocate the window first.
	if mode != nil {
		if err := e.relocateForMode(mode); err != nil {
			return err
		}
	}

	if ex, ok := mode.(platform.Exclusive); ok {
		oldEx, wasExclusive := old.(platform.Exclusive)
		if wasExclusive {
			// Switching between exclusive modes: give the old display
			// back before capturing again. The async restore is skipped
			// when the same monitor is about to be switched anyway.
			e.mu.Lock()
			handle := e.st.capture
			e.st.capture = nil
			e.mu.Unlock()
			if handle != nil {
				e.display.Release(handle)
			}
			if oldEx.Mode.Monitor != ex.Mode.Monitor {
				e.display.RestoreVideoModeAsync(oldEx.Mode.Monitor)
			}
		}
		if err := e.enterExclusive(ex, old); err != nil {
			if wasExclusive {
				// The old capture was already released for the switch;
				// the confirmed mode must not claim exclusive without
				// holding one.
				e.reacquireExclusive(oldEx)
			}
			return err
		}
	}

	e.mu.Lock()
	e.st.fullscreen = mode
	e.mu.Unlock()

	switch oldMode := old.(type) {
	case nil:
		// Windowed -> Borderless or Exclusive: one native toggle. For
		// Exclusive the display is already captured and switched.
		e.toggleNative()

	case platform.Borderless:
		switch mode.(type) {
		case nil:
			// Chrome and zoom state are restored by TransitionDidEnd.
			e.toggleNative()
		case platform.Exclusive:
			// Already fullscreen, so capturing placed the shielding
			// window over us. Raise above the shield and hide the
			// system UI so the captured display shows the window.
			// enterExclusive saved the presentation options we replace.
			e.display.SetPresentationOptions(
				platform.PresentationFullScreen |
					platform.PresentationHideDock |
					platform.PresentationHideMenuBar)
			e.surface.SetLevel(platform.LevelAboveShield)
		}

	case platform.Exclusive:
		switch mode.(type) {
		case nil:
			// The shield level and presentation options set on the
			// borderless path are left in place here; they are reverted
			// only when exiting through borderless, or at Close.
			e.releaseExclusive(oldMode)
			e.toggleNative()
		case platform.Borderless:
			e.mu.Lock()
			restore := platform.PresentationAutoHideDock | platform.PresentationAutoHideMenuBar | platform.PresentationFullScreen
			if e.st.savedPresentation != nil {
				restore = *e.st.savedPresentation
				e.st.savedPresentation = nil
			}
			e.mu.Unlock()
			e.display.SetPresentationOptions(restore)
			e.releaseExclusive(oldMode)
			// Undo the above-shield stacking used while exclusive.
			e.surface.SetLevel(platform.LevelNormal)
		}
	}

	e.log.Info("fullscreen transition issued", "from", modeString(old), "to", modeString(mode))
	return nil
}

// relocateForMode moves the window's origin onto the monitor the mode
// targets, when that differs from the current screen.
func (e *Engine) relocateForMode(mode platform.FullscreenMode) error {
	target, err := e.targetMonitor(mode)
	if err != nil {
		return err
	}
	current, err := e.surface.Screen()
	if err != nil {
		return fmt.Errorf("resolve current screen: %w", err)
	}
	if current.ID == target.ID {
		return nil
	}
	frame := e.surface.Frame()
	frame.X = target.Frame.X
	frame.Y = target.Frame.Y
	e.surface.SetFrameAsync(frame)
	e.log.Debug("relocated window for fullscreen", "monitor", target.ID)
	return nil
}

func (e *Engine) targetMonitor(mode platform.FullscreenMode) (platform.Monitor, error) {
	switch m := mode.(type) {
	case platform.Borderless:
		if m.Monitor != nil {
			return *m.Monitor, nil
		}
		return e.surface.Screen()
	case platform.Exclusive:
		return e.monitorByID(m.Mode.Monitor)
	}
	return platform.Monitor{}, fmt.Errorf("windowed mode has no target monitor")
}

func (e *Engine) monitorByID(id int) (platform.Monitor, error) {
	monitors, err := e.display.Monitors()
	if err != nil {
		return platform.Monitor{}, fmt.Errorf("enumerate monitors: %w", err)
	}
	for _, m := range monitors {
		if m.ID == id {
			return m, nil
		}
	}
	return platform.Monitor{}, fmt.Errorf("monitor %d not found", id)
}

// enterExclusive captures the target display and switches its video mode.
// The screen is faded to black around the switch when a fade reservation
// is available; fade failure is not an error. Capture or mode-set failure
// releases anything acquired and aborts the transition.
func (e *Engine) enterExclusive(ex platform.Exclusive, old platform.FullscreenMode) error {
	_, wasBorderless := old.(platform.Borderless)
	if wasBorderless {
		// Save what the user had so reverting to borderless later
		// restores it instead of the exclusive defaults.
		opts := e.display.PresentationOptions()
		e.mu.Lock()
		e.st.savedPresentation = &opts
		e.mu.Unlock()
	}
	// Only discard on failure what this attempt saved; a switch between
	// exclusive modes must keep the options saved when the old mode was
	// entered.
	unsave := func() {
		if wasBorderless {
			e.mu.Lock()
			e.st.savedPresentation = nil
			e.mu.Unlock()
		}
	}

	var savedFrame *platform.Rect
	var savedStyle *platform.StyleMask
	if old == nil {
		frame := e.surface.Frame()
		mask := e.surface.StyleMask()
		savedFrame = &frame
		savedStyle = &mask
	}

	// Hide the flicker from capturing the display and switching modes.
	faded := e.display.Fade(platform.FadeOut, e.fadeOut)
	if !faded {
		e.log.Debug("fade reservation unavailable, proceeding without fade")
	}
	fadeBack := func() {
		if faded {
			e.display.Fade(platform.FadeIn, e.fadeIn)
		}
	}

	handle, err := e.display.Capture(ex.Mode.Monitor)
	if err != nil {
		fadeBack()
		unsave()
		return fmt.Errorf("capture display %d: %w", ex.Mode.Monitor, err)
	}
	if err := e.display.SetVideoMode(handle, ex.Mode); err != nil {
		e.display.Release(handle)
		fadeBack()
		unsave()
		return fmt.Errorf("set video mode on display %d: %w", ex.Mode.Monitor, err)
	}
	fadeBack()

	e.mu.Lock()
	e.st.capture = handle
	if savedFrame != nil {
		e.st.savedFrame = savedFrame
	}
	if savedStyle != nil && e.st.savedStyle == nil {
		e.st.savedStyle = savedStyle
	}
	e.mu.Unlock()
	return nil
}

// reacquireExclusive re-establishes the previous exclusive mode after a
// failed switch released its capture. When the old display cannot be
// captured again the confirmed mode downgrades to borderless on that
// monitor, its video mode is restored and the exclusive chrome (shield
// level, presentation options) is reverted, so the record never claims
// an exclusive mode without holding its capture.
func (e *Engine) reacquireExclusive(old platform.Exclusive) {
	handle, err := e.display.Capture(old.Mode.Monitor)
	if err == nil {
		if err := e.display.SetVideoMode(handle, old.Mode); err != nil {
			e.log.Warn("video mode not re-applied after failed switch", "monitor", old.Mode.Monitor, "error", err)
		}
		e.mu.Lock()
		e.st.capture = handle
		e.mu.Unlock()
		return
	}
	e.log.Warn("old display lost after failed switch, downgrading to borderless",
		"monitor", old.Mode.Monitor, "error", err)
	e.display.RestoreVideoModeAsync(old.Mode.Monitor)

	fallback := platform.Borderless{}
	if mon, merr := e.monitorByID(old.Mode.Monitor); merr == nil {
		fallback.Monitor = &mon
	}

	e.mu.Lock()
	restore := platform.PresentationAutoHideDock | platform.PresentationAutoHideMenuBar | platform.PresentationFullScreen
	if e.st.savedPresentation != nil {
		restore = *e.st.savedPresentation
		e.st.savedPresentation = nil
	}
	e.st.fullscreen = fallback
	e.mu.Unlock()
	e.display.SetPresentationOptions(restore)
	e.surface.SetLevel(platform.LevelNormal)
}

// releaseExclusive gives the display back and reverts its video mode.
func (e *Engine) releaseExclusive(old platform.Exclusive) {
	e.mu.Lock()
	handle := e.st.capture
	e.st.capture = nil
	e.mu.Unlock()
	if handle != nil {
		e.display.Release(handle)
	}
	e.display.RestoreVideoModeAsync(old.Mode.Monitor)
}

// toggleNative issues the OS fullscreen toggle. The toggle refuses
// non-resizable windows, so the current mask is saved and resizable is
// forced for the duration; restoration reapplies the saved mask.
func (e *Engine) toggleNative() {
	mask := e.surface.StyleMask()
	if mask&platform.StyleResizable == 0 {
		saved := mask
		e.mu.Lock()
		if e.st.savedStyle == nil {
			e.st.savedStyle = &saved
		}
		e.mu.Unlock()
		e.surface.SetStyleMask(mask | platform.StyleResizable)
	}
	e.mu.Lock()
	e.st.inTransition = true
	e.mu.Unlock()
	e.surface.ToggleFullscreenAsync()
}

// Close releases every resource the engine may hold: the display capture,
// its video mode, and replaced presentation options. Safe to call on any
// exit path; a leaked capture leaves the monitor unusable by other
// processes.
func (e *Engine) Close() {
	e.mu.Lock()
	handle := e.st.capture
	e.st.capture = nil
	var monitor int
	if ex, ok := e.st.fullscreen.(platform.Exclusive); ok {
		monitor = ex.Mode.Monitor
	}
	opts := e.st.savedPresentation
	e.st.savedPresentation = nil
	e.st.fullscreen = nil
	e.st.target = nil
	e.mu.Unlock()

	if handle != nil {
		e.display.Release(handle)
		e.display.RestoreVideoModeAsync(monitor)
	}
	if opts != nil {
		e.display.SetPresentationOptions(*opts)
	}
}

func modeString(m platform.FullscreenMode) string {
	switch mm := m.(type) {
	case nil:
		return "windowed"
	case platform.Borderless:
		if mm.Monitor != nil {
			return fmt.Sprintf("borderless(%d)", mm.Monitor.ID)
		}
		return "borderless"
	case platform.Exclusive:
		return fmt.Sprintf("exclusive(%d %dx%d@%d)", mm.Mode.Monitor, mm.Mode.Width, mm.Mode.Height, mm.Mode.RefreshRate)
	}
	return "unknown"
}
