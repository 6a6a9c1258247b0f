package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetStatus           CommandType = "GET_STATUS"
	CommandGetMonitors         CommandType = "GET_MONITORS"
	CommandListModes           CommandType = "LIST_MODES"
	CommandSetFullscreen       CommandType = "SET_FULLSCREEN"
	CommandSetResizable        CommandType = "SET_RESIZABLE"
	CommandSetDecorated        CommandType = "SET_DECORATED"
	CommandSetMaximized        CommandType = "SET_MAXIMIZED"
	CommandSetSimpleFullscreen CommandType = "SET_SIMPLE_FULLSCREEN"
)

// Fullscreen mode names used on the wire.
const (
	ModeWindowed   = "windowed"
	ModeBorderless = "borderless"
	ModeExclusive  = "exclusive"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// WindowPayload addresses a window; zero means the active window.
type WindowPayload struct {
	WindowID uint32 `json:"window_id,omitempty"`
}

// SetFullscreenPayload requests a display-mode change.
type SetFullscreenPayload struct {
	WindowID uint32 `json:"window_id,omitempty"`
	Mode     string `json:"mode"` // windowed, borderless, exclusive
	Monitor  *int   `json:"monitor,omitempty"`
	// VideoMode is the native mode ID for exclusive fullscreen; required
	// with mode=exclusive alongside monitor.
	VideoMode *uint32 `json:"video_mode,omitempty"`
}

// FlagPayload carries a single boolean attribute change.
type FlagPayload struct {
	WindowID uint32 `json:"window_id,omitempty"`
	Value    bool   `json:"value"`
}

// StatusData describes one window's transition state.
type StatusData struct {
	WindowID         uint32 `json:"window_id"`
	Mode             string `json:"mode"`
	Monitor          int    `json:"monitor"`
	InTransition     bool   `json:"in_transition"`
	Resizable        bool   `json:"resizable"`
	Decorated        bool   `json:"decorated"`
	Maximized        bool   `json:"maximized"`
	SimpleFullscreen bool   `json:"simple_fullscreen"`
	DaemonRunning    bool   `json:"daemon_running"`
	UptimeSeconds    int64  `json:"uptime_seconds"`
}

// MonitorInfo represents information about a single monitor
type MonitorInfo struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// MonitorsData represents the data returned by GET_MONITORS
type MonitorsData struct {
	Monitors []MonitorInfo `json:"monitors"`
}

// ListModesPayload selects the monitor to enumerate.
type ListModesPayload struct {
	Monitor int `json:"monitor"`
}

// ModeInfo describes one video mode.
type ModeInfo struct {
	ID          uint32 `json:"id"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	RefreshRate int    `json:"refresh_rate"`
}

// ModesData represents the data returned by LIST_MODES
type ModesData struct {
	Monitor int        `json:"monitor"`
	Modes   []ModeInfo `json:"modes"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}
