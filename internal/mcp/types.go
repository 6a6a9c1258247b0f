package mcp

// ListMonitorsInput is the input for the list_monitors tool.
type ListMonitorsInput struct{}

// MonitorEntry describes one monitor.
type MonitorEntry struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ListMonitorsOutput is the output for the list_monitors tool.
type ListMonitorsOutput struct {
	Monitors []MonitorEntry `json:"monitors"`
}

// ListVideoModesInput is the input for the list_video_modes tool.
type ListVideoModesInput struct {
	Monitor int `json:"monitor" jsonschema:"required,Monitor ID from list_monitors"`
}

// VideoModeEntry describes one video mode.
type VideoModeEntry struct {
	ID          uint32 `json:"id"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	RefreshRate int    `json:"refresh_rate"`
}

// ListVideoModesOutput is the output for the list_video_modes tool.
type ListVideoModesOutput struct {
	Monitor int              `json:"monitor"`
	Modes   []VideoModeEntry `json:"modes"`
}

// GetWindowModeInput is the input for the get_window_mode tool.
type GetWindowModeInput struct {
	WindowID uint32 `json:"window_id,omitempty" jsonschema:"X window ID (default: the active window)"`
}

// GetWindowModeOutput is the output for the get_window_mode tool.
type GetWindowModeOutput struct {
	WindowID         uint32 `json:"window_id"`
	Mode             string `json:"mode"`
	Monitor          int    `json:"monitor"`
	InTransition     bool   `json:"in_transition"`
	Resizable        bool   `json:"resizable"`
	Decorated        bool   `json:"decorated"`
	Maximized        bool   `json:"maximized"`
	SimpleFullscreen bool   `json:"simple_fullscreen"`
}

// SetWindowModeInput is the input for the set_window_mode tool.
type SetWindowModeInput struct {
	WindowID  uint32  `json:"window_id,omitempty" jsonschema:"X window ID (default: the active window)"`
	Mode      string  `json:"mode" jsonschema:"required,Target mode: windowed, borderless or exclusive"`
	Monitor   *int    `json:"monitor,omitempty" jsonschema:"Target monitor ID. Optional for borderless (defaults to the window's screen), required for exclusive."`
	VideoMode *uint32 `json:"video_mode,omitempty" jsonschema:"Video mode ID from list_video_modes. Required for exclusive."`
}

// SetWindowModeOutput is the output for the set_window_mode tool.
type SetWindowModeOutput struct {
	WindowID uint32 `json:"window_id"`
	Mode     string `json:"mode"`
}
