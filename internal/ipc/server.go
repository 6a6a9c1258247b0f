package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/kestrelwm/modeshift/internal/daemon"
	"github.com/kestrelwm/modeshift/internal/platform"
	"github.com/kestrelwm/modeshift/internal/runtimepath"
)

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	manager      *daemon.Manager
	display      platform.Display
	log          *slog.Logger
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server
func NewServer(manager *daemon.Manager, display platform.Display, logger *slog.Logger) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		manager:    manager,
		display:    display,
		log:        logger,
		startTime:  time.Now(),
	}, nil
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener
	s.log.Info("ipc server listening", "socket", s.socketPath)

	go s.acceptLoop()
	return nil
}

// Stop closes the listener and removes the socket.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()
	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			quitting := s.shuttingDown
			s.shutdownMu.Unlock()
			if quitting {
				return
			}
			s.log.Error("ipc accept failed", "error", err)
			continue
		}
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(10 * time.Second))

	reader := bufio.NewReader(conn)
	line, err := reader.ReadBytes('\n')
	if err != nil {
		if err != io.EOF {
			s.log.Error("ipc read failed", "error", err)
		}
		return
	}

	var req Request
	var resp *Response
	if err := json.Unmarshal(line, &req); err != nil {
		resp = NewErrorResponse(fmt.Sprintf("malformed request: %v", err))
	} else {
		resp = s.handleRequest(&req)
	}

	data, err := json.Marshal(resp)
	if err != nil {
		s.log.Error("ipc response marshal failed", "error", err)
		return
	}
	conn.Write(append(data, '\n'))
}

func (s *Server) handleRequest(req *Request) *Response {
	switch req.Command {
	case CommandGetStatus:
		return s.handleGetStatus(req.Payload)
	case CommandGetMonitors:
		return s.handleGetMonitors()
	case CommandListModes:
		return s.handleListModes(req.Payload)
	case CommandSetFullscreen:
		return s.handleSetFullscreen(req.Payload)
	case CommandSetResizable, CommandSetDecorated, CommandSetMaximized, CommandSetSimpleFullscreen:
		return s.handleFlag(req.Command, req.Payload)
	default:
		return NewErrorResponse(fmt.Sprintf("unknown command: %s", req.Command))
	}
}

func (s *Server) handleGetStatus(payload json.RawMessage) *Response {
	var p WindowPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &p); err != nil {
			return NewErrorResponse(fmt.Sprintf("invalid payload: %v", err))
		}
	}
	win, err := s.manager.Resolve(p.WindowID)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	w, err := s.manager.Window(win)
	if err != nil {
		return NewErrorResponse(err.Error())
	}

	fs := w.Engine.Fullscreen()
	mode := ModeWindowed
	switch fs.(type) {
	case platform.Borderless:
		mode = ModeBorderless
	case platform.Exclusive:
		mode = ModeExclusive
	}
	monitor := -1
	if id, ok := platform.ModeMonitor(fs); ok {
		monitor = id
	}

	resp, err := NewOKResponse(&StatusData{
		WindowID:         uint32(win),
		Mode:             mode,
		Monitor:          monitor,
		InTransition:     w.Engine.InTransition(),
		Resizable:        w.Engine.Resizable(),
		Decorated:        w.Engine.Decorated(),
		Maximized:        w.Engine.IsMaximized(),
		SimpleFullscreen: w.Engine.SimpleFullscreen(),
		DaemonRunning:    true,
		UptimeSeconds:    int64(time.Since(s.startTime).Seconds()),
	})
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleGetMonitors() *Response {
	monitors, err := s.display.Monitors()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("failed to enumerate monitors: %v", err))
	}
	data := MonitorsData{Monitors: make([]MonitorInfo, 0, len(monitors))}
	for _, m := range monitors {
		data.Monitors = append(data.Monitors, MonitorInfo{
			ID:     m.ID,
			Name:   m.Name,
			X:      m.Frame.X,
			Y:      m.Frame.Y,
			Width:  m.Frame.Width,
			Height: m.Frame.Height,
		})
	}
	resp, err := NewOKResponse(&data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleListModes(payload json.RawMessage) *Response {
	var p ListModesPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return NewErrorResponse(fmt.Sprintf("invalid payload: %v", err))
	}
	modes, err := s.display.VideoModes(p.Monitor)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("failed to list modes: %v", err))
	}
	data := ModesData{Monitor: p.Monitor, Modes: make([]ModeInfo, 0, len(modes))}
	for _, m := range modes {
		data.Modes = append(data.Modes, ModeInfo{
			ID:          m.Native,
			Width:       m.Width,
			Height:      m.Height,
			RefreshRate: m.RefreshRate,
		})
	}
	resp, err := NewOKResponse(&data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleSetFullscreen(payload json.RawMessage) *Response {
	var p SetFullscreenPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return NewErrorResponse(fmt.Sprintf("invalid payload: %v", err))
	}
	win, err := s.manager.Resolve(p.WindowID)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	w, err := s.manager.Window(win)
	if err != nil {
		return NewErrorResponse(err.Error())
	}

	mode, err := s.parseMode(&p)
	if err != nil {
		return NewErrorResponse(err.Error())
	}

	// With prefer_simple_fullscreen borderless maps onto the non-native
	// fallback; exclusive always needs the real engine.
	if s.manager.PreferSimple() {
		switch mode.(type) {
		case platform.Borderless:
			w.Engine.SetSimpleFullscreen(true)
			resp, err := NewOKResponse(nil)
			if err != nil {
				return NewErrorResponse(err.Error())
			}
			return resp
		case nil:
			if w.Engine.SimpleFullscreen() {
				w.Engine.SetSimpleFullscreen(false)
				resp, err := NewOKResponse(nil)
				if err != nil {
					return NewErrorResponse(err.Error())
				}
				return resp
			}
		}
	}

	if err := w.Engine.RequestFullscreen(mode); err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, err := NewOKResponse(nil)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) parseMode(p *SetFullscreenPayload) (platform.FullscreenMode, error) {
	switch p.Mode {
	case ModeWindowed:
		return nil, nil
	case ModeBorderless:
		if p.Monitor == nil {
			return platform.Borderless{}, nil
		}
		monitors, err := s.display.Monitors()
		if err != nil {
			return nil, fmt.Errorf("failed to enumerate monitors: %w", err)
		}
		for i := range monitors {
			if monitors[i].ID == *p.Monitor {
				return platform.Borderless{Monitor: &monitors[i]}, nil
			}
		}
		return nil, fmt.Errorf("monitor %d not found", *p.Monitor)
	case ModeExclusive:
		if p.Monitor == nil || p.VideoMode == nil {
			return nil, fmt.Errorf("exclusive mode requires monitor and video_mode")
		}
		modes, err := s.display.VideoModes(*p.Monitor)
		if err != nil {
			return nil, fmt.Errorf("failed to list modes: %w", err)
		}
		for _, m := range modes {
			if m.Native == *p.VideoMode {
				return platform.Exclusive{Mode: m}, nil
			}
		}
		return nil, fmt.Errorf("video mode %d not found on monitor %d", *p.VideoMode, *p.Monitor)
	default:
		return nil, fmt.Errorf("unknown mode %q", p.Mode)
	}
}

func (s *Server) handleFlag(cmd CommandType, payload json.RawMessage) *Response {
	var p FlagPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return NewErrorResponse(fmt.Sprintf("invalid payload: %v", err))
	}
	win, err := s.manager.Resolve(p.WindowID)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	w, err := s.manager.Window(win)
	if err != nil {
		return NewErrorResponse(err.Error())
	}

	switch cmd {
	case CommandSetResizable:
		w.Engine.SetResizable(p.Value)
	case CommandSetDecorated:
		w.Engine.SetDecorated(p.Value)
	case CommandSetMaximized:
		w.Engine.SetMaximized(p.Value)
	case CommandSetSimpleFullscreen:
		if !w.Engine.SetSimpleFullscreen(p.Value) {
			return NewErrorResponse("simple fullscreen state unchanged")
		}
	}
	resp, err := NewOKResponse(nil)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}
