package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/kestrelwm/modeshift/internal/platform"
)

type fakeCapture struct {
	monitor int
}

func (c *fakeCapture) Monitor() int { return c.monitor }

type fakeDisplay struct {
	monitors      []platform.Monitor
	opts          platform.PresentationOptions
	captured      map[int]bool
	fadeAvailable bool
	failCapture   bool
	failCaptureOn int
	failSetMode   bool

	ops      *[]string
	restored []int
	fades    []platform.FadeDirection
}

func (d *fakeDisplay) record(op string) { *d.ops = append(*d.ops, op) }

func (d *fakeDisplay) Monitors() ([]platform.Monitor, error) { return d.monitors, nil }

func (d *fakeDisplay) VideoModes(monitorID int) ([]platform.VideoMode, error) {
	return []platform.VideoMode{{Monitor: monitorID, Width: 1920, Height: 1080, RefreshRate: 60, Native: 7}}, nil
}

func (d *fakeDisplay) Capture(monitorID int) (platform.CaptureHandle, error) {
	d.record("Capture")
	if d.failCapture || (d.failCaptureOn != 0 && d.failCaptureOn == monitorID) {
		return nil, errors.New("display busy")
	}
	if d.captured[monitorID] {
		return nil, fmt.Errorf("display %d already captured", monitorID)
	}
	d.captured[monitorID] = true
	return &fakeCapture{monitor: monitorID}, nil
}

func (d *fakeDisplay) Release(h platform.CaptureHandle) {
	d.record("Release")
	delete(d.captured, h.Monitor())
}

func (d *fakeDisplay) SetVideoMode(h platform.CaptureHandle, mode platform.VideoMode) error {
	d.record("SetVideoMode")
	if d.failSetMode {
		return errors.New("mode not supported by hardware")
	}
	return nil
}

func (d *fakeDisplay) RestoreVideoModeAsync(monitorID int) {
	d.record("RestoreVideoMode")
	d.restored = append(d.restored, monitorID)
}

func (d *fakeDisplay) Fade(dir platform.FadeDirection, _ time.Duration) bool {
	d.fades = append(d.fades, dir)
	return d.fadeAvailable
}

func (d *fakeDisplay) PresentationOptions() platform.PresentationOptions { return d.opts }

func (d *fakeDisplay) SetPresentationOptions(opts platform.PresentationOptions) {
	d.record("SetPresentationOptions")
	d.opts = opts
}

type fakeSurface struct {
	frame    platform.Rect
	mask     platform.StyleMask
	zoomed   bool
	mini     bool
	movable  bool
	level    platform.WindowLevel
	monitors []platform.Monitor

	ops     *[]string
	toggles int
}

func (s *fakeSurface) record(op string) { *s.ops = append(*s.ops, op) }

func (s *fakeSurface) Frame() platform.Rect { return s.frame }

func (s *fakeSurface) SetFrame(r platform.Rect) {
	s.record("SetFrame")
	s.frame = r
}

func (s *fakeSurface) SetFrameAsync(r platform.Rect) {
	s.record("SetFrameAsync")
	s.frame = r
}

func (s *fakeSurface) StyleMask() platform.StyleMask { return s.mask }

func (s *fakeSurface) SetStyleMask(m platform.StyleMask) {
	s.record("SetStyleMask")
	s.mask = m
}

func (s *fakeSurface) SetStyleMaskAsync(m platform.StyleMask) {
	s.record("SetStyleMaskAsync")
	s.mask = m
}

func (s *fakeSurface) Screen() (platform.Monitor, error) {
	for _, m := range s.monitors {
		f := m.Frame
		if s.frame.X >= f.X && s.frame.X < f.X+f.Width &&
			s.frame.Y >= f.Y && s.frame.Y < f.Y+f.Height {
			return m, nil
		}
	}
	if len(s.monitors) == 0 {
		return platform.Monitor{}, errors.New("no monitors")
	}
	return s.monitors[0], nil
}

func (s *fakeSurface) ToggleFullscreenAsync() {
	s.record("ToggleFullscreen")
	s.toggles++
}

func (s *fakeSurface) SetLevel(l platform.WindowLevel) {
	s.record("SetLevel")
	s.level = l
}

func (s *fakeSurface) SetMovable(m bool) { s.movable = m }

func (s *fakeSurface) Zoomed() bool { return s.zoomed }

func (s *fakeSurface) SetZoomedAsync(z bool) {
	s.record("SetZoomed")
	s.zoomed = z
}

func (s *fakeSurface) Miniaturized() bool { return s.mini }

func (s *fakeSurface) SetMiniaturizedAsync(m bool) {
	s.record("SetMiniaturized")
	s.mini = m
}

var (
	monitor1 = platform.Monitor{ID: 1, Name: "DP-1", Frame: platform.Rect{X: 0, Y: 0, Width: 2560, Height: 1440}}
	monitor2 = platform.Monitor{ID: 2, Name: "HDMI-1", Frame: platform.Rect{X: 2560, Y: 0, Width: 1920, Height: 1080}}
)

const decoratedMask = platform.StyleTitled | platform.StyleClosable | platform.StyleMiniaturizable | platform.StyleResizable

func newTestEngine(t *testing.T) (*Engine, *fakeSurface, *fakeDisplay) {
	t.Helper()
	ops := &[]string{}
	monitors := []platform.Monitor{monitor1, monitor2}
	surface := &fakeSurface{
		frame:    platform.Rect{X: 100, Y: 100, Width: 800, Height: 600},
		mask:     decoratedMask,
		movable:  true,
		monitors: monitors,
		ops:      ops,
	}
	display := &fakeDisplay{
		monitors:      monitors,
		captured:      make(map[int]bool),
		fadeAvailable: true,
		ops:           ops,
	}
	eng := New(surface, display, Options{
		Resizable: true,
		Decorated: true,
		Logger:    slog.New(slog.DiscardHandler),
	})
	return eng, surface, display
}

func exclusiveMode(monitor int) platform.Exclusive {
	return platform.Exclusive{Mode: platform.VideoMode{
		Monitor: monitor, Width: 1920, Height: 1080, RefreshRate: 60, Native: 7,
	}}
}

func TestRequestCurrentModeIsNoop(t *testing.T) {
	eng, surface, _ := newTestEngine(t)

	if err := eng.RequestFullscreen(nil); err != nil {
		t.Fatalf("RequestFullscreen(nil): %v", err)
	}
	if surface.toggles != 0 {
		t.Fatalf("toggles=%d, want 0", surface.toggles)
	}
	if eng.InTransition() {
		t.Fatal("InTransition=true after no-op request")
	}

	// Same for a confirmed non-windowed mode.
	mode := platform.Borderless{Monitor: &monitor1}
	if err := eng.RequestFullscreen(mode); err != nil {
		t.Fatalf("RequestFullscreen(borderless): %v", err)
	}
	eng.TransitionDidEnd(true)
	before := surface.toggles
	if err := eng.RequestFullscreen(platform.Borderless{Monitor: &monitor1}); err != nil {
		t.Fatalf("redundant request: %v", err)
	}
	if surface.toggles != before {
		t.Fatalf("toggles=%d, want %d (redundant request must not toggle)", surface.toggles, before)
	}
}

func TestDeferredRequestCollapse(t *testing.T) {
	eng, surface, _ := newTestEngine(t)

	modeA := platform.Borderless{Monitor: &monitor1}
	modeB := platform.Borderless{Monitor: &monitor2}

	if err := eng.RequestFullscreen(modeA); err != nil {
		t.Fatalf("request A: %v", err)
	}
	if !eng.InTransition() {
		t.Fatal("InTransition=false after issuing toggle")
	}
	if surface.toggles != 1 {
		t.Fatalf("toggles=%d, want 1", surface.toggles)
	}

	// B then C arrive mid-transition; only C may ever be applied.
	if err := eng.RequestFullscreen(modeB); err != nil {
		t.Fatalf("request B: %v", err)
	}
	if err := eng.RequestFullscreen(nil); err != nil {
		t.Fatalf("request C: %v", err)
	}
	if surface.toggles != 1 {
		t.Fatalf("toggles=%d, want 1 (deferred requests must not toggle)", surface.toggles)
	}

	eng.TransitionDidEnd(true)
	// C (windowed) replays: exactly one more toggle, never B's relocation.
	if surface.toggles != 2 {
		t.Fatalf("toggles=%d, want 2", surface.toggles)
	}
	if surface.frame.X >= monitor2.Frame.X {
		t.Fatalf("window moved to monitor 2; request B must be superseded")
	}
	eng.TransitionDidEnd(false)

	if got := eng.Fullscreen(); got != nil {
		t.Fatalf("Fullscreen()=%v, want nil", got)
	}
	if eng.InTransition() {
		t.Fatal("InTransition=true after final completion")
	}
}

func TestCaptureModeDuality(t *testing.T) {
	eng, _, display := newTestEngine(t)

	assertDuality := func(step string) {
		t.Helper()
		_, exclusive := eng.Fullscreen().(platform.Exclusive)
		if display.captured[1] != exclusive {
			t.Fatalf("%s: captured=%v but exclusive=%v", step, display.captured[1], exclusive)
		}
	}

	assertDuality("initial")
	if err := eng.RequestFullscreen(exclusiveMode(1)); err != nil {
		t.Fatalf("enter exclusive: %v", err)
	}
	assertDuality("after enter")
	eng.TransitionDidEnd(true)
	assertDuality("after confirm")

	if err := eng.RequestFullscreen(nil); err != nil {
		t.Fatalf("exit exclusive: %v", err)
	}
	assertDuality("after exit request")
	eng.TransitionDidEnd(false)
	assertDuality("after exit confirm")

	if len(display.restored) != 1 || display.restored[0] != 1 {
		t.Fatalf("restored=%v, want [1]", display.restored)
	}
}

func TestRestorationFidelity(t *testing.T) {
	eng, surface, _ := newTestEngine(t)

	wantMask := surface.mask
	if err := eng.RequestFullscreen(platform.Borderless{Monitor: &monitor1}); err != nil {
		t.Fatalf("enter borderless: %v", err)
	}
	eng.TransitionDidEnd(true)

	if err := eng.RequestFullscreen(nil); err != nil {
		t.Fatalf("exit: %v", err)
	}
	eng.TransitionDidEnd(false)

	if surface.mask != wantMask {
		t.Fatalf("mask=%b, want %b", surface.mask, wantMask)
	}
	if !eng.Resizable() || !eng.Decorated() {
		t.Fatalf("resizable=%v decorated=%v, want true/true", eng.Resizable(), eng.Decorated())
	}
	if eng.IsMaximized() {
		t.Fatal("IsMaximized=true, want false")
	}
}

func TestCrossMonitorMoveBeforeToggle(t *testing.T) {
	eng, surface, _ := newTestEngine(t)

	// Window starts on monitor 1; borderless on monitor 2 must relocate
	// the origin first, because the toggle targets the current screen.
	if err := eng.RequestFullscreen(platform.Borderless{Monitor: &monitor2}); err != nil {
		t.Fatalf("request: %v", err)
	}
	if surface.frame.X != monitor2.Frame.X || surface.frame.Y != monitor2.Frame.Y {
		t.Fatalf("origin=(%d,%d), want (%d,%d)", surface.frame.X, surface.frame.Y, monitor2.Frame.X, monitor2.Frame.Y)
	}

	moveIdx, toggleIdx := -1, -1
	for i, op := range *surface.ops {
		switch op {
		case "SetFrameAsync":
			if moveIdx == -1 {
				moveIdx = i
			}
		case "ToggleFullscreen":
			toggleIdx = i
		}
	}
	if moveIdx == -1 || toggleIdx == -1 || moveIdx > toggleIdx {
		t.Fatalf("relocation must precede toggle; ops=%v", *surface.ops)
	}
}

func TestExclusiveBorderlessRoundTripRestoresPresentation(t *testing.T) {
	eng, _, display := newTestEngine(t)

	if err := eng.RequestFullscreen(platform.Borderless{Monitor: &monitor1}); err != nil {
		t.Fatalf("enter borderless: %v", err)
	}
	eng.TransitionDidEnd(true)

	userOpts := platform.PresentationAutoHideMenuBar
	display.opts = userOpts

	if err := eng.RequestFullscreen(exclusiveMode(1)); err != nil {
		t.Fatalf("borderless->exclusive: %v", err)
	}
	if display.opts == userOpts {
		t.Fatal("presentation options unchanged entering exclusive")
	}
	if !display.captured[1] {
		t.Fatal("display not captured in exclusive mode")
	}

	if err := eng.RequestFullscreen(platform.Borderless{Monitor: &monitor1}); err != nil {
		t.Fatalf("exclusive->borderless: %v", err)
	}
	if display.opts != userOpts {
		t.Fatalf("opts=%b, want %b (bit-for-bit restore)", display.opts, userOpts)
	}
	if display.captured[1] {
		t.Fatal("capture still held after leaving exclusive")
	}
}

func TestShieldingLevelAcrossBorderlessExclusive(t *testing.T) {
	eng, surface, _ := newTestEngine(t)

	if err := eng.RequestFullscreen(platform.Borderless{Monitor: &monitor1}); err != nil {
		t.Fatalf("enter borderless: %v", err)
	}
	eng.TransitionDidEnd(true)

	if err := eng.RequestFullscreen(exclusiveMode(1)); err != nil {
		t.Fatalf("borderless->exclusive: %v", err)
	}
	if surface.level != platform.LevelAboveShield {
		t.Fatalf("level=%v, want LevelAboveShield", surface.level)
	}
	// No native toggle for this pair: the window is already fullscreen.
	if eng.InTransition() {
		t.Fatal("InTransition=true for borderless->exclusive switch")
	}

	if err := eng.RequestFullscreen(platform.Borderless{Monitor: &monitor1}); err != nil {
		t.Fatalf("exclusive->borderless: %v", err)
	}
	if surface.level != platform.LevelNormal {
		t.Fatalf("level=%v, want LevelNormal", surface.level)
	}
}

// Full walk: enter borderless, change resizable while fullscreen, exit,
// observe the deferred mask application.
func TestResizableDeferredUntilFullscreenExit(t *testing.T) {
	eng, surface, _ := newTestEngine(t)

	if err := eng.RequestFullscreen(platform.Borderless{Monitor: &monitor1}); err != nil {
		t.Fatalf("enter: %v", err)
	}
	if !eng.InTransition() {
		t.Fatal("InTransition=false after request")
	}
	if surface.toggles != 1 {
		t.Fatalf("toggles=%d, want 1", surface.toggles)
	}
	eng.TransitionDidEnd(true)
	if got, want := eng.Fullscreen(), (platform.Borderless{Monitor: &monitor1}); !platform.SameMode(got, want) {
		t.Fatalf("Fullscreen()=%v, want %v", got, want)
	}

	maskBefore := surface.mask
	eng.SetResizable(false)
	if surface.mask != maskBefore {
		t.Fatal("mask changed while fullscreen; must be deferred")
	}

	if err := eng.RequestFullscreen(nil); err != nil {
		t.Fatalf("exit: %v", err)
	}
	if surface.toggles != 2 {
		t.Fatalf("toggles=%d, want 2", surface.toggles)
	}
	eng.TransitionDidEnd(false)

	if surface.mask&platform.StyleResizable != 0 {
		t.Fatalf("mask=%b still resizable after deferred SetResizable(false)", surface.mask)
	}
}

func TestCaptureFailureIsRecoverable(t *testing.T) {
	eng, _, display := newTestEngine(t)
	display.failCapture = true

	err := eng.RequestFullscreen(exclusiveMode(1))
	if err == nil {
		t.Fatal("expected error when capture fails")
	}
	if got := eng.Fullscreen(); got != nil {
		t.Fatalf("Fullscreen()=%v after failed capture, want nil", got)
	}
	if display.captured[1] {
		t.Fatal("capture held after failure")
	}
	// Fade out then back in around the failed attempt.
	if len(display.fades) != 2 || display.fades[0] != platform.FadeOut || display.fades[1] != platform.FadeIn {
		t.Fatalf("fades=%v, want [FadeOut FadeIn]", display.fades)
	}
}

func TestVideoModeFailureReleasesCapture(t *testing.T) {
	eng, _, display := newTestEngine(t)
	display.failSetMode = true

	if err := eng.RequestFullscreen(exclusiveMode(1)); err == nil {
		t.Fatal("expected error when mode set fails")
	}
	if display.captured[1] {
		t.Fatal("capture leaked after mode-set failure")
	}
	if got := eng.Fullscreen(); got != nil {
		t.Fatalf("Fullscreen()=%v, want nil", got)
	}
}

func TestExclusiveToExclusiveSwitchesWithoutToggle(t *testing.T) {
	eng, surface, display := newTestEngine(t)

	if err := eng.RequestFullscreen(exclusiveMode(1)); err != nil {
		t.Fatalf("enter exclusive: %v", err)
	}
	eng.TransitionDidEnd(true)
	togglesBefore := surface.toggles

	// Same monitor, different refresh rate: swap the video mode in place.
	next := exclusiveMode(1)
	next.Mode.RefreshRate = 144
	if err := eng.RequestFullscreen(next); err != nil {
		t.Fatalf("switch exclusive mode: %v", err)
	}
	if surface.toggles != togglesBefore {
		t.Fatalf("toggles=%d, want %d (window is already fullscreen)", surface.toggles, togglesBefore)
	}
	if !display.captured[1] {
		t.Fatal("capture dropped while switching modes")
	}
	for _, m := range display.restored {
		if m == 1 {
			t.Fatal("video mode restored mid-switch on the same monitor")
		}
	}

	// Different monitor: the old display is released and restored.
	if err := eng.RequestFullscreen(exclusiveMode(2)); err != nil {
		t.Fatalf("move exclusive to monitor 2: %v", err)
	}
	if display.captured[1] {
		t.Fatal("old capture still held")
	}
	if !display.captured[2] {
		t.Fatal("new display not captured")
	}
	if len(display.restored) == 0 || display.restored[0] != 1 {
		t.Fatalf("restored=%v, want leading 1", display.restored)
	}
}

func TestFailedExclusiveSwitchKeepsOldCapture(t *testing.T) {
	eng, _, display := newTestEngine(t)

	if err := eng.RequestFullscreen(exclusiveMode(1)); err != nil {
		t.Fatalf("enter exclusive: %v", err)
	}
	eng.TransitionDidEnd(true)

	display.failCaptureOn = 2
	if err := eng.RequestFullscreen(exclusiveMode(2)); err == nil {
		t.Fatal("expected error when the new display cannot be captured")
	}

	// The old mode stays confirmed and its capture is held again.
	if got, want := eng.Fullscreen(), platform.FullscreenMode(exclusiveMode(1)); !platform.SameMode(got, want) {
		t.Fatalf("Fullscreen()=%v, want %v", got, want)
	}
	if !display.captured[1] {
		t.Fatal("old capture not re-acquired after failed switch")
	}
	if display.captured[2] {
		t.Fatal("failed target left captured")
	}
}

func TestFailedExclusiveSwitchDowngradesWhenOldDisplayLost(t *testing.T) {
	eng, surface, display := newTestEngine(t)

	if err := eng.RequestFullscreen(platform.Borderless{Monitor: &monitor1}); err != nil {
		t.Fatalf("enter borderless: %v", err)
	}
	eng.TransitionDidEnd(true)

	userOpts := platform.PresentationAutoHideMenuBar
	display.opts = userOpts
	if err := eng.RequestFullscreen(exclusiveMode(1)); err != nil {
		t.Fatalf("borderless->exclusive: %v", err)
	}
	if surface.level != platform.LevelAboveShield {
		t.Fatalf("level=%v, want LevelAboveShield", surface.level)
	}

	// Every capture fails now, including re-acquiring monitor 1.
	display.failCapture = true
	if err := eng.RequestFullscreen(exclusiveMode(2)); err == nil {
		t.Fatal("expected error when the new display cannot be captured")
	}

	// No capture is held, so the confirmed mode must not be exclusive.
	if got, want := eng.Fullscreen(), platform.FullscreenMode(platform.Borderless{Monitor: &monitor1}); !platform.SameMode(got, want) {
		t.Fatalf("Fullscreen()=%v, want %v", got, want)
	}
	if len(display.captured) != 0 {
		t.Fatalf("captured=%v, want none", display.captured)
	}
	found := false
	for _, m := range display.restored {
		if m == 1 {
			found = true
		}
	}
	if !found {
		t.Fatalf("restored=%v, old monitor's video mode not restored", display.restored)
	}
	if surface.level != platform.LevelNormal {
		t.Fatalf("level=%v, want LevelNormal", surface.level)
	}
	if display.opts != userOpts {
		t.Fatalf("opts=%b, want %b (saved options restored on downgrade)", display.opts, userOpts)
	}
}

func TestFadeUnavailableIsNotFatal(t *testing.T) {
	eng, _, display := newTestEngine(t)
	display.fadeAvailable = false

	if err := eng.RequestFullscreen(exclusiveMode(1)); err != nil {
		t.Fatalf("transition failed without fade: %v", err)
	}
	if !display.captured[1] {
		t.Fatal("display not captured")
	}
}

func TestMaximizedTrackedAcrossFullscreen(t *testing.T) {
	eng, surface, _ := newTestEngine(t)

	if err := eng.RequestFullscreen(platform.Borderless{Monitor: &monitor1}); err != nil {
		t.Fatalf("enter: %v", err)
	}
	eng.TransitionDidEnd(true)

	eng.SetMaximized(true)
	if surface.zoomed {
		t.Fatal("zoom applied while fullscreen; must be deferred")
	}

	if err := eng.RequestFullscreen(nil); err != nil {
		t.Fatalf("exit: %v", err)
	}
	eng.TransitionDidEnd(false)

	if !surface.zoomed {
		t.Fatal("tracked maximize not reapplied on fullscreen exit")
	}
	if !eng.IsMaximized() {
		t.Fatal("IsMaximized=false, want true")
	}
}

func TestSetMaximizedNoopAtRequestedState(t *testing.T) {
	eng, surface, _ := newTestEngine(t)

	eng.SetMaximized(false)
	for _, op := range *surface.ops {
		if op == "SetZoomed" {
			t.Fatal("zoom toggled although already at requested state")
		}
	}

	eng.SetMaximized(true)
	if !surface.zoomed {
		t.Fatal("zoom not applied")
	}
}

func TestSimpleFullscreenRoundTrip(t *testing.T) {
	eng, surface, display := newTestEngine(t)

	wantFrame := surface.frame
	wantMask := surface.mask
	display.opts = platform.PresentationAutoHideMenuBar
	wantOpts := display.opts

	if !eng.SetSimpleFullscreen(true) {
		t.Fatal("SetSimpleFullscreen(true)=false")
	}
	if !eng.SimpleFullscreen() {
		t.Fatal("SimpleFullscreen()=false")
	}
	if surface.frame != monitor1.Frame {
		t.Fatalf("frame=%v, want monitor frame %v", surface.frame, monitor1.Frame)
	}
	if surface.mask&(platform.StyleTitled|platform.StyleResizable|platform.StyleMiniaturizable) != 0 {
		t.Fatalf("mask=%b, chrome not hidden", surface.mask)
	}
	if surface.movable {
		t.Fatal("window still movable in simple fullscreen")
	}
	if surface.toggles != 0 {
		t.Fatal("simple fullscreen must not use the native toggle")
	}

	// Engine requests are rejected while simple fullscreen is active.
	if err := eng.RequestFullscreen(platform.Borderless{Monitor: &monitor1}); err != nil {
		t.Fatalf("request during simple fullscreen: %v", err)
	}
	if surface.toggles != 0 {
		t.Fatal("native toggle issued during simple fullscreen")
	}
	if eng.SetSimpleFullscreen(true) {
		t.Fatal("re-entering simple fullscreen must be a no-op")
	}

	if !eng.SetSimpleFullscreen(false) {
		t.Fatal("SetSimpleFullscreen(false)=false")
	}
	if surface.frame != wantFrame {
		t.Fatalf("frame=%v, want %v", surface.frame, wantFrame)
	}
	if surface.mask != wantMask {
		t.Fatalf("mask=%b, want %b", surface.mask, wantMask)
	}
	if display.opts != wantOpts {
		t.Fatalf("opts=%b, want %b", display.opts, wantOpts)
	}
	if !surface.movable {
		t.Fatal("window not movable after exiting simple fullscreen")
	}
}

func TestSimpleFullscreenRejectedWhileNative(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	if err := eng.RequestFullscreen(platform.Borderless{Monitor: &monitor1}); err != nil {
		t.Fatalf("enter: %v", err)
	}
	eng.TransitionDidEnd(true)

	if eng.SetSimpleFullscreen(true) {
		t.Fatal("simple fullscreen entered while native fullscreen active")
	}
}

func TestCloseReleasesCapture(t *testing.T) {
	eng, _, display := newTestEngine(t)

	if err := eng.RequestFullscreen(exclusiveMode(2)); err != nil {
		t.Fatalf("enter exclusive: %v", err)
	}
	eng.TransitionDidEnd(true)
	if !display.captured[2] {
		t.Fatal("display not captured")
	}

	eng.Close()
	if display.captured[2] {
		t.Fatal("capture leaked on Close")
	}
	if len(display.restored) == 0 || display.restored[len(display.restored)-1] != 2 {
		t.Fatalf("restored=%v, want trailing 2", display.restored)
	}
}

func TestSetDecoratedComposesMask(t *testing.T) {
	eng, surface, _ := newTestEngine(t)

	eng.SetDecorated(false)
	if surface.mask != platform.StyleResizable {
		t.Fatalf("mask=%b, want bare resizable", surface.mask)
	}

	eng.SetResizable(false)
	eng.SetDecorated(true)
	want := decoratedMask &^ platform.StyleResizable
	if surface.mask != want {
		t.Fatalf("mask=%b, want %b", surface.mask, want)
	}
}

func TestSetMinimizedNoop(t *testing.T) {
	eng, surface, _ := newTestEngine(t)

	eng.SetMinimized(false)
	if surface.mini {
		t.Fatal("miniaturized unexpectedly")
	}
	eng.SetMinimized(true)
	if !surface.mini {
		t.Fatal("not miniaturized")
	}
	eng.SetMinimized(true)
	count := 0
	for _, op := range *surface.ops {
		if op == "SetMiniaturized" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("SetMiniaturized calls=%d, want 1", count)
	}
}
