package daemon

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/kestrelwm/modeshift/internal/config"
	"github.com/kestrelwm/modeshift/internal/engine"
	"github.com/kestrelwm/modeshift/internal/x11"
)

// Window pairs a surface with its transition engine.
type Window struct {
	Surface *x11.Surface
	Engine  *engine.Engine
}

// Manager tracks one transition engine per managed window. Engines are
// created lazily on first request and torn down (releasing any display
// capture) when the window disappears.
type Manager struct {
	conn    *x11.Connection
	display *x11.Display
	cfg     *config.Config
	log     *slog.Logger

	mu      sync.Mutex
	windows map[xproto.Window]*Window
}

// NewManager creates the per-window engine registry.
func NewManager(conn *x11.Connection, display *x11.Display, cfg *config.Config, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		conn:    conn,
		display: display,
		cfg:     cfg,
		log:     logger,
		windows: make(map[xproto.Window]*Window),
	}
}

// Resolve maps a wire window ID to an X window; zero means the active
// window.
func (m *Manager) Resolve(windowID uint32) (xproto.Window, error) {
	if windowID != 0 {
		win := xproto.Window(windowID)
		if !m.conn.WindowExists(win) {
			return 0, fmt.Errorf("window %#x does not exist", windowID)
		}
		return win, nil
	}
	win, err := m.conn.GetActiveWindow()
	if err != nil || win == 0 {
		return 0, fmt.Errorf("no active window: %w", err)
	}
	return win, nil
}

// Window returns the engine for a window, creating and watching it on
// first use.
func (m *Manager) Window(win xproto.Window) (*Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if w, ok := m.windows[win]; ok {
		return w, nil
	}

	surface := x11.NewSurface(m.conn, m.display, win, m.log)
	eng := engine.New(surface, m.display, engine.Options{
		Resizable: true,
		Decorated: true,
		FadeOut:   m.cfg.FadeOut(),
		FadeIn:    m.cfg.FadeIn(),
		Logger:    m.log,
	})
	if err := x11.WatchTransitions(m.conn, win, eng, m.log); err != nil {
		eng.Close()
		return nil, fmt.Errorf("failed to watch window %#x: %w", uint32(win), err)
	}

	w := &Window{Surface: surface, Engine: eng}
	m.windows[win] = w
	m.log.Info("tracking window", "window", fmt.Sprintf("%#x", uint32(win)))
	return w, nil
}

// PreferSimple reports whether borderless requests should use the
// non-native fallback instead of the animated toggle.
func (m *Manager) PreferSimple() bool {
	return m.cfg.PreferSimpleFullscreen
}

// Tracked returns the currently tracked window IDs.
func (m *Manager) Tracked() []xproto.Window {
	m.mu.Lock()
	defer m.mu.Unlock()
	wins := make([]xproto.Window, 0, len(m.windows))
	for win := range m.windows {
		wins = append(wins, win)
	}
	return wins
}

// Drop tears down the engine for a window that went away.
func (m *Manager) Drop(win xproto.Window) {
	m.mu.Lock()
	w, ok := m.windows[win]
	delete(m.windows, win)
	m.mu.Unlock()
	if ok {
		w.Engine.Close()
		m.log.Info("dropped window", "window", fmt.Sprintf("%#x", uint32(win)))
	}
}

// CloseAll releases every engine. Called on daemon shutdown so no display
// capture outlives the process.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	windows := m.windows
	m.windows = make(map[xproto.Window]*Window)
	m.mu.Unlock()
	for _, w := range windows {
		w.Engine.Close()
	}
}
