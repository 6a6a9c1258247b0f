package engine

import (
	"github.com/kestrelwm/modeshift/internal/platform"
)

// shared is the per-window transition record. Every field is guarded by
// Engine.mu. The lock is only ever held to read or update this record,
// never across a surface or display call that can block or re-enter.
type shared struct {
	// resizable is the user-requested resizability, independent of any
	// transient mask change a transition makes.
	resizable bool

	// fullscreen is the last confirmed mode; nil means windowed.
	fullscreen platform.FullscreenMode

	// inTransition is true between the transition-start and
	// transition-end notifications of a native toggle. While set, no new
	// toggle may be issued; requests land in target instead.
	inTransition bool

	// target holds a request deferred because a transition was in
	// flight. A later request overwrites an earlier one: last writer
	// wins, at most one deferred request survives.
	target *platform.FullscreenMode

	// maximized is the logical zoom state, tracked across fullscreen
	// toggles so it can be reapplied on exit.
	maximized bool

	// simpleFullscreen is the non-native fallback mode. Mutually
	// exclusive with the native transition machinery.
	simpleFullscreen bool

	// savedStyle holds the chrome mask captured before entering a mode
	// that overrides it; cleared when restored.
	savedStyle *platform.StyleMask

	// savedPresentation holds the system-UI options captured before
	// exclusive or simple fullscreen replaced them.
	savedPresentation *platform.PresentationOptions

	// savedFrame holds the window geometry captured before simple or
	// exclusive fullscreen, for restoration.
	savedFrame *platform.Rect

	// capture is the ownership token of the exclusively held display.
	// Non-nil exactly while fullscreen is Exclusive.
	capture platform.CaptureHandle
}

// Fullscreen returns the last confirmed fullscreen mode (nil = windowed).
func (e *Engine) Fullscreen() platform.FullscreenMode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st.fullscreen
}

// InTransition reports whether a native toggle is currently in flight.
func (e *Engine) InTransition() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st.inTransition
}

// Resizable returns the tracked resizability flag.
func (e *Engine) Resizable() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st.resizable
}

// SimpleFullscreen reports whether the non-native fallback mode is active.
func (e *Engine) SimpleFullscreen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st.simpleFullscreen
}
