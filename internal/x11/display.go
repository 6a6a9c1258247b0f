package x11

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/kestrelwm/modeshift/internal/platform"
)

// Display implements platform.Display over RandR. Capture exclusivity is
// process-local: X has no cross-process display ownership token, so the
// strongest available guarantee is holding the CRTC configuration and
// refusing double capture within this daemon.
type Display struct {
	conn *Connection
	log  *slog.Logger

	mu       sync.Mutex
	captures map[int]*capture
	// restore keeps the pre-capture CRTC config per monitor so the video
	// mode can still be reverted after the handle is released.
	restore map[int]*capture
	opts    platform.PresentationOptions
}

// capture records the CRTC and the configuration to restore on release.
type capture struct {
	monitor      int
	crtc         randr.Crtc
	origMode     randr.Mode
	origRotation uint16
	origX        int16
	origY        int16
	outputs      []randr.Output
	released     bool
}

func (c *capture) Monitor() int { return c.monitor }

// NewDisplay creates the RandR-backed display collaborator.
func NewDisplay(conn *Connection, logger *slog.Logger) *Display {
	if logger == nil {
		logger = slog.Default()
	}
	return &Display{
		conn:     conn,
		log:      logger,
		captures: make(map[int]*capture),
		restore:  make(map[int]*capture),
	}
}

// Monitors retrieves all active monitors from the RandR CRTC list. The
// monitor ID is the CRTC index, stable for a given configuration.
func (d *Display) Monitors() ([]platform.Monitor, error) {
	resources, err := randr.GetScreenResources(d.conn.XUtil.Conn(), d.conn.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []platform.Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(d.conn.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		outputName := fmt.Sprintf("Monitor%d", i)
		if outputInfo, err := randr.GetOutputInfo(d.conn.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			outputName = string(outputInfo.Name)
		}

		monitors = append(monitors, platform.Monitor{
			ID:   i,
			Name: outputName,
			Frame: platform.Rect{
				X:      int(crtcInfo.X),
				Y:      int(crtcInfo.Y),
				Width:  int(crtcInfo.Width),
				Height: int(crtcInfo.Height),
			},
		})
	}

	return monitors, nil
}

// crtcForMonitor resolves a monitor ID back to its CRTC.
func (d *Display) crtcForMonitor(monitorID int) (*randr.GetScreenResourcesReply, randr.Crtc, *randr.GetCrtcInfoReply, error) {
	resources, err := randr.GetScreenResources(d.conn.XUtil.Conn(), d.conn.Root).Reply()
	if err != nil {
		return nil, 0, nil, fmt.Errorf("failed to get screen resources: %w", err)
	}
	if monitorID < 0 || monitorID >= len(resources.Crtcs) {
		return nil, 0, nil, fmt.Errorf("monitor %d not found", monitorID)
	}
	crtc := resources.Crtcs[monitorID]
	crtcInfo, err := randr.GetCrtcInfo(d.conn.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
	if err != nil {
		return nil, 0, nil, fmt.Errorf("failed to get crtc info: %w", err)
	}
	if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
		return nil, 0, nil, fmt.Errorf("monitor %d is disabled", monitorID)
	}
	return resources, crtc, crtcInfo, nil
}

// VideoModes lists the modes the monitor's first output supports.
func (d *Display) VideoModes(monitorID int) ([]platform.VideoMode, error) {
	resources, _, crtcInfo, err := d.crtcForMonitor(monitorID)
	if err != nil {
		return nil, err
	}
	outputInfo, err := randr.GetOutputInfo(d.conn.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get output info: %w", err)
	}

	supported := make(map[randr.Mode]bool, len(outputInfo.Modes))
	for _, m := range outputInfo.Modes {
		supported[m] = true
	}

	var modes []platform.VideoMode
	for _, info := range resources.Modes {
		if !supported[randr.Mode(info.Id)] {
			continue
		}
		modes = append(modes, platform.VideoMode{
			Monitor:     monitorID,
			Width:       int(info.Width),
			Height:      int(info.Height),
			RefreshRate: refreshRate(info),
			Native:      info.Id,
		})
	}
	return modes, nil
}

// refreshRate derives Hz from the mode's pixel clock and raster totals.
func refreshRate(info randr.ModeInfo) int {
	total := uint64(info.Htotal) * uint64(info.Vtotal)
	if total == 0 {
		return 0
	}
	return int((uint64(info.DotClock) + total/2) / total)
}

// Capture acquires exclusive ownership of a monitor. Fails when the
// capture is already held.
func (d *Display) Capture(monitorID int) (platform.CaptureHandle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, held := d.captures[monitorID]; held {
		return nil, fmt.Errorf("display %d already captured", monitorID)
	}

	_, crtc, crtcInfo, err := d.crtcForMonitor(monitorID)
	if err != nil {
		return nil, err
	}

	c := &capture{
		monitor:      monitorID,
		crtc:         crtc,
		origMode:     crtcInfo.Mode,
		origRotation: crtcInfo.Rotation,
		origX:        crtcInfo.X,
		origY:        crtcInfo.Y,
		outputs:      crtcInfo.Outputs,
	}
	d.captures[monitorID] = c
	d.restore[monitorID] = c
	d.log.Debug("display captured", "monitor", monitorID)
	return c, nil
}

// Release gives a captured monitor back. Idempotent per handle.
func (d *Display) Release(h platform.CaptureHandle) {
	c, ok := h.(*capture)
	if !ok || c == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if c.released {
		return
	}
	c.released = true
	delete(d.captures, c.monitor)
	d.log.Debug("display released", "monitor", c.monitor)
}

// SetVideoMode switches the captured CRTC to the given mode.
func (d *Display) SetVideoMode(h platform.CaptureHandle, mode platform.VideoMode) error {
	c, ok := h.(*capture)
	if !ok {
		return fmt.Errorf("foreign capture handle")
	}
	return d.setCrtcMode(c, randr.Mode(mode.Native))
}

// RestoreVideoModeAsync reverts a monitor to its pre-capture mode.
// Fire-and-forget; failures are logged, completion is not reported.
func (d *Display) RestoreVideoModeAsync(monitorID int) {
	d.mu.Lock()
	c := d.restore[monitorID]
	d.mu.Unlock()
	if c == nil {
		return
	}
	go func() {
		if err := d.setCrtcMode(c, c.origMode); err != nil {
			d.log.Error("failed to restore video mode", "monitor", monitorID, "error", err)
		}
	}()
}

func (d *Display) setCrtcMode(c *capture, mode randr.Mode) error {
	resources, err := randr.GetScreenResources(d.conn.XUtil.Conn(), d.conn.Root).Reply()
	if err != nil {
		return fmt.Errorf("failed to get screen resources: %w", err)
	}
	reply, err := randr.SetCrtcConfig(
		d.conn.XUtil.Conn(),
		c.crtc,
		xproto.TimeCurrentTime,
		resources.ConfigTimestamp,
		c.origX,
		c.origY,
		mode,
		c.origRotation,
		c.outputs,
	).Reply()
	if err != nil {
		return fmt.Errorf("failed to set crtc config: %w", err)
	}
	if reply.Status != randr.SetConfigSuccess {
		return fmt.Errorf("crtc config rejected with status %d", reply.Status)
	}
	return nil
}

// Fade reports that no fade reservation is available: X11 has no display
// fade primitive, so transitions proceed without the visual fade.
func (d *Display) Fade(platform.FadeDirection, time.Duration) bool {
	return false
}

// PresentationOptions returns the currently applied system-UI options.
func (d *Display) PresentationOptions() platform.PresentationOptions {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.opts
}

// SetPresentationOptions records the system-UI options. EWMH has no
// global menu bar or dock to hide; panels already yield to fullscreen
// windows, so the bitset is tracked for exact save/restore round-trips.
func (d *Display) SetPresentationOptions(opts platform.PresentationOptions) {
	d.mu.Lock()
	d.opts = opts
	d.mu.Unlock()
}
