package platform

import "time"

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// StyleMask is a bitset of window chrome flags. The zero value is a
// borderless window with no affordances.
type StyleMask uint32

const (
	StyleTitled StyleMask = 1 << iota
	StyleClosable
	StyleMiniaturizable
	StyleResizable
)

// StyleBorderless is the mask of a window with no chrome at all.
const StyleBorderless StyleMask = 0

// PresentationOptions is a bitset of system-UI visibility flags applied
// while a surface is fullscreen. The zero value leaves system UI alone.
type PresentationOptions uint32

const (
	PresentationAutoHideDock PresentationOptions = 1 << iota
	PresentationHideDock
	PresentationAutoHideMenuBar
	PresentationHideMenuBar
	PresentationFullScreen
)

// PresentationDefault leaves all system UI visible.
const PresentationDefault PresentationOptions = 0

// WindowLevel selects the stacking layer of a surface.
type WindowLevel int

const (
	// LevelNormal is the default application window layer.
	LevelNormal WindowLevel = iota
	// LevelAboveShield stacks the surface above the shielding layer the
	// window system inserts when a display is captured. Without this a
	// captured display shows the shield, not the window.
	LevelAboveShield
)

// FadeDirection selects which way a display fade runs.
type FadeDirection int

const (
	FadeOut FadeDirection = iota
	FadeIn
)

// Monitor describes a physical display.
type Monitor struct {
	ID    int
	Name  string
	Frame Rect
}

// VideoMode identifies a specific resolution/refresh descriptor on one
// monitor. Native is the window system's own identifier for the mode.
type VideoMode struct {
	Monitor     int
	Width       int
	Height      int
	RefreshRate int
	Native      uint32
}

// CaptureHandle is the ownership token for an exclusively captured
// display. At most one handle per monitor exists system-wide; holding it
// is required before changing the monitor's video mode.
type CaptureHandle interface {
	Monitor() int
}

// FullscreenMode selects a surface display mode. A nil FullscreenMode
// means windowed.
type FullscreenMode interface {
	fullscreenMode()
}

// Borderless fills a screen without capturing the display. A nil Monitor
// means the surface's current screen.
type Borderless struct {
	Monitor *Monitor
}

// Exclusive captures the display identified by Mode.Monitor and switches
// it to Mode.
type Exclusive struct {
	Mode VideoMode
}

func (Borderless) fullscreenMode() {}
func (Exclusive) fullscreenMode()  {}

// SameMode reports whether two fullscreen modes are structurally equal:
// same variant, same monitor, same video mode. Used to detect no-op
// requests.
func SameMode(a, b FullscreenMode) bool {
	switch am := a.(type) {
	case nil:
		return b == nil
	case Borderless:
		bm, ok := b.(Borderless)
		if !ok {
			return false
		}
		if am.Monitor == nil || bm.Monitor == nil {
			return am.Monitor == nil && bm.Monitor == nil
		}
		return am.Monitor.ID == bm.Monitor.ID
	case Exclusive:
		bm, ok := b.(Exclusive)
		if !ok {
			return false
		}
		return am.Mode == bm.Mode
	}
	return false
}

// ModeMonitor returns the monitor ID a fullscreen mode targets, or ok=false
// when the mode follows the surface's current screen (windowed, or
// borderless without an explicit monitor).
func ModeMonitor(m FullscreenMode) (int, bool) {
	switch mm := m.(type) {
	case Borderless:
		if mm.Monitor != nil {
			return mm.Monitor.ID, true
		}
	case Exclusive:
		return mm.Mode.Monitor, true
	}
	return 0, false
}

// Surface is an opaque native window resource. All mutating calls are
// expected to run on the UI-affine thread. "Async" operations are
// fire-and-forget commands; completion of the native fullscreen toggle is
// reported out-of-band through the engine's transition bridge.
type Surface interface {
	Frame() Rect
	SetFrame(Rect)
	SetFrameAsync(Rect)

	StyleMask() StyleMask
	SetStyleMask(StyleMask)
	SetStyleMaskAsync(StyleMask)

	// Screen returns the monitor currently containing the surface.
	Screen() (Monitor, error)

	// ToggleFullscreenAsync issues the native animated fullscreen toggle.
	// It always targets the surface's current screen.
	ToggleFullscreenAsync()

	SetLevel(WindowLevel)
	SetMovable(bool)

	Zoomed() bool
	SetZoomedAsync(bool)

	Miniaturized() bool
	SetMiniaturizedAsync(bool)
}

// Display provides monitor enumeration, exclusive display capture and
// video-mode switching.
type Display interface {
	Monitors() ([]Monitor, error)
	VideoModes(monitorID int) ([]VideoMode, error)

	// Capture acquires exclusive ownership of a monitor. It fails if any
	// process already holds the capture.
	Capture(monitorID int) (CaptureHandle, error)
	Release(CaptureHandle)

	// SetVideoMode switches the captured monitor to the given mode. The
	// mode must come from VideoModes for that monitor.
	SetVideoMode(CaptureHandle, VideoMode) error
	// RestoreVideoModeAsync reverts a monitor to the mode it had before
	// capture. Fire-and-forget.
	RestoreVideoModeAsync(monitorID int)

	// Fade runs a display fade and reports whether a fade reservation was
	// available. Best effort: callers proceed either way.
	Fade(FadeDirection, time.Duration) bool

	PresentationOptions() PresentationOptions
	SetPresentationOptions(PresentationOptions)
}
