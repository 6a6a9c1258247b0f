package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/kestrelwm/modeshift/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

func (c *Client) sendWithPayload(cmd CommandType, payload interface{}) (*Response, error) {
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		raw = data
	}
	return c.sendRequest(&Request{Command: cmd, Payload: raw})
}

// Status fetches the transition state of a window (0 = active window).
func (c *Client) Status(windowID uint32) (*StatusData, error) {
	resp, err := c.sendWithPayload(CommandGetStatus, &WindowPayload{WindowID: windowID})
	if err != nil {
		return nil, err
	}
	var data StatusData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse status: %w", err)
	}
	return &data, nil
}

// Monitors lists the active monitors.
func (c *Client) Monitors() ([]MonitorInfo, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetMonitors})
	if err != nil {
		return nil, err
	}
	var data MonitorsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse monitors: %w", err)
	}
	return data.Monitors, nil
}

// Modes lists the video modes of a monitor.
func (c *Client) Modes(monitor int) ([]ModeInfo, error) {
	resp, err := c.sendWithPayload(CommandListModes, &ListModesPayload{Monitor: monitor})
	if err != nil {
		return nil, err
	}
	var data ModesData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse modes: %w", err)
	}
	return data.Modes, nil
}

// SetFullscreen requests a display-mode change for a window.
func (c *Client) SetFullscreen(p *SetFullscreenPayload) error {
	_, err := c.sendWithPayload(CommandSetFullscreen, p)
	return err
}

// SetResizable updates a window's resizable attribute.
func (c *Client) SetResizable(windowID uint32, value bool) error {
	_, err := c.sendWithPayload(CommandSetResizable, &FlagPayload{WindowID: windowID, Value: value})
	return err
}

// SetDecorated updates a window's decorated attribute.
func (c *Client) SetDecorated(windowID uint32, value bool) error {
	_, err := c.sendWithPayload(CommandSetDecorated, &FlagPayload{WindowID: windowID, Value: value})
	return err
}

// SetMaximized updates a window's maximized attribute.
func (c *Client) SetMaximized(windowID uint32, value bool) error {
	_, err := c.sendWithPayload(CommandSetMaximized, &FlagPayload{WindowID: windowID, Value: value})
	return err
}

// SetSimpleFullscreen toggles the non-native fullscreen fallback.
func (c *Client) SetSimpleFullscreen(windowID uint32, value bool) error {
	_, err := c.sendWithPayload(CommandSetSimpleFullscreen, &FlagPayload{WindowID: windowID, Value: value})
	return err
}
