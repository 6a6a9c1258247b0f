package engine

import "github.com/kestrelwm/modeshift/internal/platform"

// Simple fullscreen fills the current screen without the native animated
// toggle or a display capture: chrome is hidden by direct mask changes and
// the frame is set to the monitor frame. Used where native fullscreen is
// unavailable. Mutually exclusive with the transition engine.

// SetSimpleFullscreen enters or exits simple fullscreen and reports
// whether anything changed. It refuses to act while native fullscreen is
// active, or when the requested state already holds.
func (e *Engine) SetSimpleFullscreen(fullscreen bool) bool {
	e.mu.Lock()
	if e.st.fullscreen != nil || fullscreen == e.st.simpleFullscreen {
		e.mu.Unlock()
		return false
	}
	e.mu.Unlock()

	if fullscreen {
		return e.enterSimpleFullscreen()
	}
	return e.exitSimpleFullscreen()
}

func (e *Engine) enterSimpleFullscreen() bool {
	screen, err := e.surface.Screen()
	if err != nil {
		e.log.Error("simple fullscreen: resolve screen", "error", err)
		return false
	}
	frame := e.surface.Frame()
	mask := e.surface.StyleMask()
	opts := e.display.PresentationOptions()

	e.mu.Lock()
	e.st.savedFrame = &frame
	e.st.savedStyle = &mask
	e.st.savedPresentation = &opts
	e.st.simpleFullscreen = true
	e.mu.Unlock()

	e.display.SetPresentationOptions(
		platform.PresentationAutoHideDock | platform.PresentationAutoHideMenuBar)

	// Fullscreen windows can't be resized, minimized, or moved.
	e.surface.SetStyleMask(mask &^ (platform.StyleTitled | platform.StyleMiniaturizable | platform.StyleResizable))
	e.surface.SetFrame(screen.Frame)
	e.surface.SetMovable(false)
	e.log.Info("entered simple fullscreen", "monitor", screen.ID)
	return true
}

func (e *Engine) exitSimpleFullscreen() bool {
	currentMask := e.surface.StyleMask()

	e.mu.Lock()
	mask := e.restoredStyleLocked(currentMask)
	opts := e.st.savedPresentation
	e.st.savedPresentation = nil
	frame := e.st.savedFrame
	e.st.savedFrame = nil
	e.st.simpleFullscreen = false
	e.mu.Unlock()

	e.surface.SetStyleMaskAsync(mask)
	if opts != nil {
		e.display.SetPresentationOptions(*opts)
	}
	if frame != nil {
		e.surface.SetFrame(*frame)
	}
	e.surface.SetMovable(true)
	e.log.Info("exited simple fullscreen")
	return true
}
