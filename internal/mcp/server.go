// Package mcp exposes the daemon's monitor and window-mode operations as
// MCP tools over stdio, so agent tooling can drive display modes through
// the same IPC surface the CLI uses.
package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kestrelwm/modeshift/internal/ipc"
)

const (
	ServerName    = "modeshift"
	ServerVersion = "0.1.0"
)

// Server is the MCP server bridging tools to the daemon IPC.
type Server struct {
	mcpServer *mcpsdk.Server
	client    *ipc.Client
}

// NewServer creates the MCP server. The daemon must be running for tool
// calls to succeed; errors are reported per call.
func NewServer() *Server {
	s := &Server{client: ipc.NewClient()}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List the active monitors with their geometry. Monitor IDs are the input for list_video_modes and set_window_mode.",
	}, s.handleListMonitors)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_video_modes",
		Description: "List the video modes (resolution and refresh rate) a monitor supports. Mode IDs are the input for exclusive fullscreen via set_window_mode.",
	}, s.handleListVideoModes)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_window_mode",
		Description: "Get a window's display mode and chrome state (fullscreen mode, transition in progress, resizable, decorated, maximized). Defaults to the active window.",
	}, s.handleGetWindowMode)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_window_mode",
		Description: "Switch a window between windowed, borderless fullscreen and exclusive fullscreen. Exclusive requires a monitor and a video mode ID. A request during an in-flight transition is applied after it completes.",
	}, s.handleSetWindowMode)
}

func (s *Server) handleListMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListMonitorsInput) (*mcpsdk.CallToolResult, ListMonitorsOutput, error) {
	monitors, err := s.client.Monitors()
	if err != nil {
		return nil, ListMonitorsOutput{}, err
	}
	out := ListMonitorsOutput{Monitors: make([]MonitorEntry, 0, len(monitors))}
	for _, m := range monitors {
		out.Monitors = append(out.Monitors, MonitorEntry{
			ID: m.ID, Name: m.Name, X: m.X, Y: m.Y, Width: m.Width, Height: m.Height,
		})
	}
	return nil, out, nil
}

func (s *Server) handleListVideoModes(_ context.Context, _ *mcpsdk.CallToolRequest, args ListVideoModesInput) (*mcpsdk.CallToolResult, ListVideoModesOutput, error) {
	modes, err := s.client.Modes(args.Monitor)
	if err != nil {
		return nil, ListVideoModesOutput{}, err
	}
	out := ListVideoModesOutput{Monitor: args.Monitor, Modes: make([]VideoModeEntry, 0, len(modes))}
	for _, m := range modes {
		out.Modes = append(out.Modes, VideoModeEntry{
			ID: m.ID, Width: m.Width, Height: m.Height, RefreshRate: m.RefreshRate,
		})
	}
	return nil, out, nil
}

func (s *Server) handleGetWindowMode(_ context.Context, _ *mcpsdk.CallToolRequest, args GetWindowModeInput) (*mcpsdk.CallToolResult, GetWindowModeOutput, error) {
	status, err := s.client.Status(args.WindowID)
	if err != nil {
		return nil, GetWindowModeOutput{}, err
	}
	return nil, GetWindowModeOutput{
		WindowID:         status.WindowID,
		Mode:             status.Mode,
		Monitor:          status.Monitor,
		InTransition:     status.InTransition,
		Resizable:        status.Resizable,
		Decorated:        status.Decorated,
		Maximized:        status.Maximized,
		SimpleFullscreen: status.SimpleFullscreen,
	}, nil
}

func (s *Server) handleSetWindowMode(_ context.Context, _ *mcpsdk.CallToolRequest, args SetWindowModeInput) (*mcpsdk.CallToolResult, SetWindowModeOutput, error) {
	if err := validateModeInput(&args); err != nil {
		return nil, SetWindowModeOutput{}, err
	}
	err := s.client.SetFullscreen(&ipc.SetFullscreenPayload{
		WindowID:  args.WindowID,
		Mode:      args.Mode,
		Monitor:   args.Monitor,
		VideoMode: args.VideoMode,
	})
	if err != nil {
		return nil, SetWindowModeOutput{}, err
	}
	return nil, SetWindowModeOutput{WindowID: args.WindowID, Mode: args.Mode}, nil
}

// validateModeInput rejects malformed requests before they hit the
// daemon, so the agent gets an actionable message.
func validateModeInput(args *SetWindowModeInput) error {
	switch args.Mode {
	case ipc.ModeWindowed, ipc.ModeBorderless:
		return nil
	case ipc.ModeExclusive:
		if args.Monitor == nil || args.VideoMode == nil {
			return fmt.Errorf("exclusive mode requires monitor and video_mode; use list_monitors and list_video_modes first")
		}
		return nil
	default:
		return fmt.Errorf("unknown mode %q; expected windowed, borderless or exclusive", args.Mode)
	}
}
