package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/kestrelwm/modeshift/internal/ipc"
)

func runPick(args []string) int {
	fs := flag.NewFlagSet("pick", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: modeshift pick [--window ID]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Interactively pick a monitor and display mode for a window. Choosing")
		fmt.Fprintln(os.Stderr, "an exclusive video mode asks for confirmation before the switch.")
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
		fmt.Fprintln(os.Stderr, "pick takes no arguments")
		fs.Usage()
		return 2
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "pick requires an interactive terminal (stdin/stdout must be TTYs)")
		return 1
	}

	client := ipc.NewClient()
	monitors, err := client.Monitors()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if len(monitors) == 0 {
		fmt.Fprintln(os.Stderr, "no active monitors")
		return 1
	}

	m := newPickModel(client, monitors)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	pm := final.(pickModel)
	if pm.err != nil {
		fmt.Fprintln(os.Stderr, pm.err)
		return 1
	}
	if !pm.done {
		return 0
	}

	payload := &ipc.SetFullscreenPayload{
		WindowID: uint32(*windowID),
		Mode:     pm.mode,
	}
	monitor := pm.monitor.ID
	payload.Monitor = &monitor

	if pm.mode == ipc.ModeExclusive {
		payload.VideoMode = &pm.videoMode.ID

		// Capturing a display is disruptive; make sure it is wanted.
		ok := false
		confirm := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Capture %s and switch to %dx%d @ %d Hz?",
					pm.monitor.Name, pm.videoMode.Width, pm.videoMode.Height, pm.videoMode.RefreshRate)).
				Description("Other windows on this monitor will be hidden until the window leaves exclusive fullscreen.").
				Value(&ok),
		))
		if err := confirm.Run(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if !ok {
			return 0
		}
	}

	if err := client.SetFullscreen(payload); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

type pickPhase int

const (
	phaseMonitor pickPhase = iota
	phaseMode
)

type monitorItem struct {
	ipc.MonitorInfo
}

func (i monitorItem) Title() string { return fmt.Sprintf("%d: %s", i.ID, i.Name) }
func (i monitorItem) Description() string {
	return fmt.Sprintf("%dx%d at %d,%d", i.Width, i.Height, i.X, i.Y)
}
func (i monitorItem) FilterValue() string { return i.Name }

// modeItem is either the borderless entry (mode == nil) or one exclusive
// video mode.
type modeItem struct {
	mode *ipc.ModeInfo
}

func (i modeItem) Title() string {
	if i.mode == nil {
		return "Borderless fullscreen"
	}
	return fmt.Sprintf("%dx%d @ %d Hz", i.mode.Width, i.mode.Height, i.mode.RefreshRate)
}

func (i modeItem) Description() string {
	if i.mode == nil {
		return "Keep the desktop video mode"
	}
	return fmt.Sprintf("Exclusive, mode id %d", i.mode.ID)
}

func (i modeItem) FilterValue() string { return i.Title() }

type pickModel struct {
	client *ipc.Client
	phase  pickPhase
	list   list.Model

	monitor   ipc.MonitorInfo
	mode      string
	videoMode ipc.ModeInfo

	done bool
	err  error

	width  int
	height int
}

func newPickModel(client *ipc.Client, monitors []ipc.MonitorInfo) pickModel {
	items := make([]list.Item, 0, len(monitors))
	for _, m := range monitors {
		items = append(items, monitorItem{m})
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("15")).
		BorderForeground(lipgloss.Color("62"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("250")).
		BorderForeground(lipgloss.Color("62"))

	l := list.New(items, delegate, 0, 0)
	l.Title = "Pick a monitor"
	l.Styles.Title = lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("62"))

	return pickModel{client: client, phase: phaseMonitor, list: l}
}

func (m pickModel) Init() tea.Cmd {
	return nil
}

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "enter":
			return m.choose()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickModel) choose() (tea.Model, tea.Cmd) {
	switch m.phase {
	case phaseMonitor:
		item, ok := m.list.SelectedItem().(monitorItem)
		if !ok {
			return m, nil
		}
		m.monitor = item.MonitorInfo

		modes, err := m.client.Modes(m.monitor.ID)
		if err != nil {
			m.err = err
			return m, tea.Quit
		}
		items := []list.Item{modeItem{}}
		for i := range modes {
			items = append(items, modeItem{mode: &modes[i]})
		}
		m.list.SetItems(items)
		m.list.ResetSelected()
		m.list.Title = fmt.Sprintf("Pick a mode for %s", m.monitor.Name)
		m.phase = phaseMode
		return m, nil

	case phaseMode:
		item, ok := m.list.SelectedItem().(modeItem)
		if !ok {
			return m, nil
		}
		if item.mode == nil {
			m.mode = ipc.ModeBorderless
		} else {
			m.mode = ipc.ModeExclusive
			m.videoMode = *item.mode
		}
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m pickModel) View() string {
	return m.list.View()
}
