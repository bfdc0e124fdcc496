package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/paneldock/internal/ipc"
)

const (
	refreshInterval = time.Second
	nudgeStep       = 25
	resizeStep      = 25
)

type stateMsg struct {
	data *ipc.StateData
	err  error
}

type tickMsg time.Time

type keyMap struct {
	DockLeft  key.Binding
	DockRight key.Binding
	DockTop   key.Binding
	Dock      key.Binding
	Undock    key.Binding
	Minimize  key.Binding
	Move      key.Binding
	Grow      key.Binding
	Shrink    key.Binding
	Reset     key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		DockLeft:  key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "dock left")),
		DockRight: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "dock right")),
		DockTop:   key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "dock top")),
		Dock:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dock default")),
		Undock:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undock")),
		Minimize:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "minimize")),
		Move: key.NewBinding(
			key.WithKeys("up", "down", "left", "right", "h", "j", "k", "l"),
			key.WithHelp("←↓↑→/hjkl", "nudge"),
		),
		Grow:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "grow")),
		Shrink: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "shrink")),
		Reset:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reset state")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Dock, k.Undock, k.Minimize, k.Move, k.Reset, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.DockLeft, k.DockRight, k.DockTop, k.Dock, k.Undock},
		{k.Minimize, k.Move, k.Grow, k.Shrink},
		{k.Reset, k.Quit},
	}
}

// model is the root bubbletea model for the dashboard.
type model struct {
	client *ipc.Client
	keys   keyMap
	help   help.Model

	state   *ipc.StateData
	connErr error

	reset ResetOverlay

	width  int
	height int
}

func newModel() model {
	return model{
		client: ipc.NewClient(),
		keys:   newKeyMap(),
		help:   help.New(),
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tea.Batch(m.fetchState(), tick())
}

func (m model) fetchState() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		data, err := client.GetState()
		return stateMsg{data: data, err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The reset confirmation captures all input while visible.
	if m.reset.Active() {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
		case tea.WindowSizeMsg:
			m.width = msg.Width
			m.height = msg.Height
		case stateMsg:
			m.applyState(msg)
			return m, nil
		case tickMsg:
			return m, tea.Batch(m.fetchState(), tick())
		}
		var cmd tea.Cmd
		m.reset, cmd = m.reset.Update(msg, m.client)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case stateMsg:
		m.applyState(msg)
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.fetchState(), tick())
	}

	return m, nil
}

func (m *model) applyState(msg stateMsg) {
	if msg.err != nil {
		m.connErr = msg.err
		return
	}
	m.connErr = nil
	m.state = msg.data
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.DockLeft):
		return m, m.command(func(c *ipc.Client) (*ipc.StateData, error) { return c.Dock("left") })
	case key.Matches(msg, m.keys.DockRight):
		return m, m.command(func(c *ipc.Client) (*ipc.StateData, error) { return c.Dock("right") })
	case key.Matches(msg, m.keys.DockTop):
		return m, m.command(func(c *ipc.Client) (*ipc.StateData, error) { return c.Dock("top") })
	case key.Matches(msg, m.keys.Dock):
		return m, m.command(func(c *ipc.Client) (*ipc.StateData, error) { return c.Dock("") })
	case key.Matches(msg, m.keys.Undock):
		return m, m.command((*ipc.Client).Undock)
	case key.Matches(msg, m.keys.Minimize):
		return m, m.command((*ipc.Client).ToggleMinimize)

	case key.Matches(msg, m.keys.Move):
		return m, m.nudge(msg.String())

	case key.Matches(msg, m.keys.Grow):
		return m, m.resizeBy(resizeStep)
	case key.Matches(msg, m.keys.Shrink):
		return m, m.resizeBy(-resizeStep)

	case key.Matches(msg, m.keys.Reset):
		m.reset.Show()
		return m, m.reset.Init()
	}

	return m, nil
}

func (m model) command(fn func(*ipc.Client) (*ipc.StateData, error)) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		data, err := fn(client)
		return stateMsg{data: data, err: err}
	}
}

func (m model) nudge(keyName string) tea.Cmd {
	if m.state == nil {
		return nil
	}
	x, y := m.state.X, m.state.Y
	switch keyName {
	case "up", "k":
		y -= nudgeStep
	case "down", "j":
		y += nudgeStep
	case "left", "h":
		x -= nudgeStep
	case "right", "l":
		x += nudgeStep
	}
	return m.command(func(c *ipc.Client) (*ipc.StateData, error) { return c.Move(x, y) })
}

func (m model) resizeBy(delta int) tea.Cmd {
	if m.state == nil {
		return nil
	}
	w := m.state.Width + delta
	h := m.state.Height + delta
	return m.command(func(c *ipc.Client) (*ipc.StateData, error) { return c.Resize(w, h) })
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := m.renderStatusBar()
	helpBar := m.help.View(m.keys)

	var content string
	if m.reset.Active() {
		content = m.reset.View(m.width)
	} else {
		content = lipgloss.JoinVertical(lipgloss.Left,
			m.renderStatePanel(),
			renderMiniMap(m.state),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		content,
		helpBar,
	)
}
