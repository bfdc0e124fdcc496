package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/paneldock/internal/ipc"
)

type resetPhase int

const (
	resetHidden resetPhase = iota
	resetConfirm
	resetResult
)

type resetDoneMsg struct {
	err error
}

var resetResultStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("238")).
	Padding(0, 1).
	MarginTop(1)

// ResetOverlay manages the reset confirmation workflow.
type ResetOverlay struct {
	phase     resetPhase
	form      *huh.Form
	confirmed bool
	err       error
}

// Active reports whether the overlay is visible.
func (o ResetOverlay) Active() bool {
	return o.phase != resetHidden
}

// Show opens the confirmation prompt.
func (o *ResetOverlay) Show() {
	o.confirmed = false
	o.err = nil
	o.phase = resetConfirm
	o.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title("Reset panel state?").
				Description("Clears the persisted geometry; defaults apply on the next daemon start.").
				Affirmative("Reset").
				Negative("Cancel").
				Value(&o.confirmed),
		),
	)
}

// Init starts the embedded form.
func (o ResetOverlay) Init() tea.Cmd {
	if o.form == nil {
		return nil
	}
	return o.form.Init()
}

// Update advances the overlay, issuing the reset once confirmed.
func (o ResetOverlay) Update(msg tea.Msg, client *ipc.Client) (ResetOverlay, tea.Cmd) {
	if done, ok := msg.(resetDoneMsg); ok {
		o.err = done.err
		o.phase = resetResult
		return o, nil
	}

	if o.phase == resetResult {
		if _, ok := msg.(tea.KeyMsg); ok {
			o.phase = resetHidden
		}
		return o, nil
	}

	if o.form == nil {
		o.phase = resetHidden
		return o, nil
	}

	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		o.phase = resetHidden
		o.form = nil
		return o, nil
	}

	form, cmd := o.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		o.form = f
	}

	if o.form.State == huh.StateCompleted {
		o.form = nil
		if !o.confirmed {
			o.phase = resetHidden
			return o, nil
		}
		return o, func() tea.Msg {
			return resetDoneMsg{err: client.Reset()}
		}
	}

	return o, cmd
}

// View renders the overlay.
func (o ResetOverlay) View(width int) string {
	switch o.phase {
	case resetConfirm:
		if o.form == nil {
			return ""
		}
		return o.form.View()
	case resetResult:
		msg := "Panel state cleared. Press any key to continue."
		if o.err != nil {
			msg = fmt.Sprintf("Reset failed: %v\nPress any key to continue.", o.err)
		}
		return resetResultStyle.Width(width - 4).Render(msg)
	}
	return ""
}
