package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/paneldock/internal/ipc"
)

var (
	statusConnectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("28")).
				Padding(0, 1)

	statusDisconnectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("124")).
				Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Width(12)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	dockedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("81"))

	statePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1).
			MarginTop(1)

	miniMapStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			MarginTop(1)
)

func (m model) renderStatusBar() string {
	if m.connErr != nil {
		return statusDisconnectedStyle.Render("paneldock ○ daemon unreachable")
	}
	return statusConnectedStyle.Render("paneldock ● connected")
}

func (m model) renderStatePanel() string {
	if m.state == nil {
		return statePanelStyle.Render("waiting for daemon...")
	}

	st := m.state

	mode := "floating"
	if st.Docked != "" {
		mode = "docked " + st.Docked
	}
	modeView := valueStyle.Render(mode)
	if st.Docked != "" {
		modeView = dockedStyle.Render(mode)
	}

	minimized := "no"
	if st.Minimized {
		minimized = "yes"
	}

	rows := []string{
		labelStyle.Render("Mode") + modeView,
		labelStyle.Render("Position") + valueStyle.Render(fmt.Sprintf("%d, %d", st.X, st.Y)),
		labelStyle.Render("Size") + valueStyle.Render(fmt.Sprintf("%d x %d", st.Width, st.Height)),
		labelStyle.Render("Minimized") + valueStyle.Render(minimized),
		labelStyle.Render("Viewport") + valueStyle.Render(fmt.Sprintf("%d x %d", st.ViewportWidth, st.ViewportHeight)),
		labelStyle.Render("Uptime") + valueStyle.Render(fmt.Sprintf("%ds", st.UptimeSeconds)),
	}
	return statePanelStyle.Render(strings.Join(rows, "\n"))
}

// renderMiniMap draws the viewport as a character grid with the panel's
// rectangle filled in.
func renderMiniMap(st *ipc.StateData) string {
	const (
		mapW = 48
		mapH = 12
	)

	if st == nil || st.ViewportWidth <= 0 || st.ViewportHeight <= 0 {
		return ""
	}

	grid := make([][]rune, mapH)
	for i := range grid {
		grid[i] = make([]rune, mapW)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	scaleX := func(v int) int { return v * mapW / st.ViewportWidth }
	scaleY := func(v int) int { return v * mapH / st.ViewportHeight }

	x0 := scaleX(st.X)
	y0 := scaleY(st.Y)
	x1 := scaleX(st.X + st.Width)
	y1 := scaleY(st.Y + st.Height)

	// A panel thinner than one cell still shows up.
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	fill := '▒'
	if st.Minimized {
		fill = '░'
	} else if st.Docked != "" {
		fill = '▓'
	}

	for y := y0; y < y1 && y < mapH; y++ {
		if y < 0 {
			continue
		}
		for x := x0; x < x1 && x < mapW; x++ {
			if x < 0 {
				continue
			}
			grid[y][x] = fill
		}
	}

	lines := make([]string, mapH)
	for i, row := range grid {
		lines[i] = string(row)
	}
	return miniMapStyle.Render(strings.Join(lines, "\n"))
}
