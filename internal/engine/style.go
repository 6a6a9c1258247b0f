package engine

import "github.com/kestrelwm/modeshift/internal/platform"

// The style mediator maps the boolean chrome attributes onto the surface's
// style mask. While any fullscreen mode is active the attributes are only
// recorded; the mask is reapplied on restoration, because chrome bits are
// overridden while fullscreen.

// SetResizable updates the tracked resizability and, when windowed,
// applies it to the surface mask.
func (e *Engine) SetResizable(resizable bool) {
	e.mu.Lock()
	e.st.resizable = resizable
	fullscreen := e.st.fullscreen != nil || e.st.simpleFullscreen
	e.mu.Unlock()
	if fullscreen {
		// Applied when the mask is restored on fullscreen exit.
		return
	}
	mask := e.surface.StyleMask()
	if resizable {
		mask |= platform.StyleResizable
	} else {
		mask &^= platform.StyleResizable
	}
	e.surface.SetStyleMaskAsync(mask)
}

// Decorated reports the tracked decoration flag.
func (e *Engine) Decorated() bool {
	return e.decorated.Load()
}

// SetDecorated switches the window between decorated and borderless
// chrome. No-op when the flag already matches; deferred while fullscreen.
func (e *Engine) SetDecorated(decorated bool) {
	if decorated == e.decorated.Load() {
		return
	}
	e.decorated.Store(decorated)

	e.mu.Lock()
	fullscreen := e.st.fullscreen != nil || e.st.simpleFullscreen
	resizable := e.st.resizable
	e.mu.Unlock()
	if fullscreen {
		return
	}

	var mask platform.StyleMask
	if decorated {
		mask = platform.StyleTitled | platform.StyleClosable | platform.StyleMiniaturizable | platform.StyleResizable
	} else {
		mask = platform.StyleBorderless | platform.StyleResizable
	}
	if !resizable {
		mask &^= platform.StyleResizable
	}
	e.surface.SetStyleMaskAsync(mask)
}

// SetMaximized records the logical zoom state and, when windowed, toggles
// the surface if it is not already there.
func (e *Engine) SetMaximized(maximized bool) {
	e.mu.Lock()
	e.st.maximized = maximized
	fullscreen := e.st.fullscreen != nil || e.st.simpleFullscreen
	e.mu.Unlock()
	if fullscreen {
		// Reapplied on fullscreen exit.
		return
	}
	e.applyZoom(maximized)
}

// IsMaximized reports the surface's zoom state.
func (e *Engine) IsMaximized() bool {
	return e.isZoomed()
}

// SetMinimized miniaturizes or restores the window. No-op when already in
// the requested state.
func (e *Engine) SetMinimized(minimized bool) {
	if e.surface.Miniaturized() == minimized {
		return
	}
	e.surface.SetMiniaturizedAsync(minimized)
}

// applyZoom toggles the surface's zoom state toward want, skipping the
// redundant toggle.
func (e *Engine) applyZoom(want bool) {
	if e.isZoomed() == want {
		return
	}
	e.surface.SetZoomedAsync(want)
}

// isZoomed queries the zoom state. The query is unreliable while the
// window is borderless, so the mask is temporarily widened to
// titled|resizable around it and rolled back asynchronously.
func (e *Engine) isZoomed() bool {
	current := e.surface.StyleMask()
	required := platform.StyleTitled | platform.StyleResizable
	needsTempMask := current&required != required
	if needsTempMask {
		e.surface.SetStyleMask(current | required)
	}
	zoomed := e.surface.Zoomed()
	if needsTempMask {
		e.surface.SetStyleMaskAsync(current)
	}
	return zoomed
}
