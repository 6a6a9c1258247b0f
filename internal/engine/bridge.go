package engine

import "github.com/kestrelwm/modeshift/internal/platform"

// The transition bridge is invoked by the window system, not by callers of
// RequestFullscreen: once when a native toggle visually starts and once
// when it finishes. Between the two no other toggle is dispatched.

// TransitionWillBegin marks the start of a native fullscreen transition.
func (e *Engine) TransitionWillBegin() {
	e.mu.Lock()
	e.st.inTransition = true
	e.mu.Unlock()
}

// TransitionDidEnd finalizes a native transition. entered reports whether
// the window ended up fullscreen.
//
// On exit the chrome mask, maximized state and saved frame are restored
// from the shared record. In either direction, a request deferred during
// the transition is replayed exactly once; only the most recent deferred
// request survives.
func (e *Engine) TransitionDidEnd(entered bool) {
	currentMask := e.surface.StyleMask()

	e.mu.Lock()
	e.st.inTransition = false
	var mask platform.StyleMask
	var maximized bool
	var frame *platform.Rect
	if !entered {
		e.st.fullscreen = nil
		mask = e.restoredStyleLocked(currentMask)
		maximized = e.st.maximized
		frame = e.st.savedFrame
		e.st.savedFrame = nil
	}
	target := e.st.target
	e.st.target = nil
	e.mu.Unlock()

	if !entered {
		e.surface.SetStyleMaskAsync(mask)
		if frame != nil && !maximized {
			e.surface.SetFrameAsync(*frame)
		}
		e.applyZoom(maximized)
		e.log.Debug("fullscreen exited, chrome restored", "maximized", maximized)
	}

	if target != nil {
		e.log.Debug("replaying deferred fullscreen request", "to", modeString(*target))
		if err := e.RequestFullscreen(*target); err != nil {
			e.log.Error("deferred fullscreen request failed", "error", err)
		}
	}
}

// restoredStyleLocked consumes the saved chrome mask, falling back to the
// given current mask, with the resizable bit forced to the tracked value.
// Caller holds e.mu.
func (e *Engine) restoredStyleLocked(current platform.StyleMask) platform.StyleMask {
	base := current
	if e.st.savedStyle != nil {
		base = *e.st.savedStyle
		e.st.savedStyle = nil
	}
	if e.st.resizable {
		return base | platform.StyleResizable
	}
	return base &^ platform.StyleResizable
}
