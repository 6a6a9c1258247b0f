package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/kestrelwm/modeshift/internal/ipc"
)

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: modeshift status [--window ID]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show a window's display-mode state via IPC. Without --window the")
		fmt.Fprintln(os.Stderr, "active window is used.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	windowID := fs.Uint("window", 0, "X window ID (0 = active window)")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.Status(uint32(*windowID))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("window:            %#x\n", status.WindowID)
	fmt.Printf("mode:              %s\n", status.Mode)
	fmt.Printf("monitor:           %d\n", status.Monitor)
	fmt.Printf("in_transition:     %v\n", status.InTransition)
	fmt.Printf("resizable:         %v\n", status.Resizable)
	fmt.Printf("decorated:         %v\n", status.Decorated)
	fmt.Printf("maximized:         %v\n", status.Maximized)
	fmt.Printf("simple_fullscreen: %v\n", status.SimpleFullscreen)
	fmt.Printf("uptime_seconds:    %d\n", status.UptimeSeconds)
	return 0
}

func runMonitors(args []string) int {
	fs := flag.NewFlagSet("monitors", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: modeshift monitors [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List active monitors.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	jsonOut := fs.Bool("json", false, "Output monitors as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "monitors takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	monitors, err := client.Monitors()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(monitors); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}
	for _, m := range monitors {
		fmt.Printf("%d: %s  %dx%d+%d+%d\n", m.ID, m.Name, m.Width, m.Height, m.X, m.Y)
	}
	return 0
}

func runModes(args []string) int {
	fs := flag.NewFlagSet("modes", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: modeshift modes [--monitor N] [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List the video modes a monitor supports. Mode IDs feed")
		fmt.Fprintln(os.Stderr, "'modeshift fullscreen exclusive --mode ID'.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	monitor := fs.Int("monitor", 0, "Monitor ID (see 'modeshift monitors')")
	jsonOut := fs.Bool("json", false, "Output modes as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "modes takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	modes, err := client.Modes(*monitor)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(modes); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}
	for _, m := range modes {
		fmt.Printf("%d: %dx%d @ %d Hz\n", m.ID, m.Width, m.Height, m.RefreshRate)
	}
	return 0
}

func runFullscreen(args []string) int {
	fs := flag.NewFlagSet("fullscreen", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: modeshift fullscreen <windowed|borderless|exclusive> [flags]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Set a window's fullscreen mode. Borderless takes an optional target")
		fmt.Fprintln(os.Stderr, "monitor; exclusive requires --monitor and --mode.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	windowID := fs.Uint("window", 0, "X window ID (0 = active window)")
	monitor := fs.Int("monitor", -1, "Target monitor ID")
	videoMode := fs.Uint("mode", 0, "Video mode ID for exclusive fullscreen")

	payload, code := parseFullscreenArgs(fs, args, windowID, monitor, videoMode)
	if payload == nil {
		return code
	}

	client := ipc.NewClient()
	if err := client.SetFullscreen(payload); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// parseFullscreenArgs validates the positional mode and flags into a
// request payload. A nil payload means stop with the returned exit code.
func parseFullscreenArgs(fs *flag.FlagSet, args []string, windowID *uint, monitor *int, videoMode *uint) (*ipc.SetFullscreenPayload, int) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, 0
		}
		return nil, 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "fullscreen takes exactly one mode argument")
		fs.Usage()
		return nil, 2
	}

	mode := fs.Arg(0)
	switch mode {
	case ipc.ModeWindowed, ipc.ModeBorderless, ipc.ModeExclusive:
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q (want windowed, borderless, or exclusive)\n", mode)
		return nil, 2
	}

	payload := &ipc.SetFullscreenPayload{
		WindowID: uint32(*windowID),
		Mode:     mode,
	}
	if *monitor >= 0 {
		m := *monitor
		payload.Monitor = &m
	}
	if *videoMode != 0 {
		v := uint32(*videoMode)
		payload.VideoMode = &v
	}

	if mode == ipc.ModeExclusive && (payload.Monitor == nil || payload.VideoMode == nil) {
		fmt.Fprintln(os.Stderr, "exclusive fullscreen requires --monitor and --mode (see 'modeshift modes')")
		return nil, 2
	}
	if mode == ipc.ModeWindowed && (payload.Monitor != nil || payload.VideoMode != nil) {
		fmt.Fprintln(os.Stderr, "windowed mode takes no --monitor or --mode")
		return nil, 2
	}
	return payload, 0
}

// runFlag handles the on/off attribute commands, which share a shape:
// one positional on|off argument plus an optional --window flag.
func runFlag(args []string, name string) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: modeshift %s <on|off> [--window ID]\n", name)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	windowID := fs.Uint("window", 0, "X window ID (0 = active window)")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "%s takes exactly one on|off argument\n", name)
		fs.Usage()
		return 2
	}
	value, err := parseOnOff(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	client := ipc.NewClient()
	win := uint32(*windowID)
	switch name {
	case "resizable":
		err = client.SetResizable(win, value)
	case "decorated":
		err = client.SetDecorated(win, value)
	case "maximize":
		err = client.SetMaximized(win, value)
	case "simple":
		err = client.SetSimpleFullscreen(win, value)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func parseOnOff(s string) (bool, error) {
	switch s {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}
