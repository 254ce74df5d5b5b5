// Package quitmodal provides a quit confirmation modal. Update returns a
// Result so callers decide their own exit behavior.
package quitmodal

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/quillkey/internal/keys"
	"github.com/zjrosen/quillkey/internal/ui/styles"
)

// Result indicates the outcome of modal interaction.
type Result int

const (
	ResultNone   Result = iota // No action needed (modal still visible or not visible)
	ResultQuit                 // User confirmed quit
	ResultCancel               // User cancelled/dismissed
)

// Config controls quit modal appearance.
type Config struct {
	Title   string // e.g., "Quit quillkey?"
	Message string // e.g., "The result has not been applied."
}

type button int

const (
	buttonConfirm button = iota
	buttonCancel
)

// Model represents the quit confirmation modal state.
type Model struct {
	config  Config
	focus   button
	visible bool
	width   int
	height  int
}

// New creates a new quit modal with the given configuration.
// The modal starts hidden; call Show() to display it.
func New(cfg Config) Model {
	return Model{config: cfg}
}

// Show makes the modal visible with Cancel focused.
func (m *Model) Show() {
	m.visible = true
	m.focus = buttonCancel
}

// Hide dismisses the modal.
func (m *Model) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is currently displayed.
func (m Model) IsVisible() bool {
	return m.visible
}

// SetSize updates viewport dimensions for overlay centering.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update processes messages and returns the result.
// Returns ResultNone when not visible or for messages that don't resolve the modal.
//
//	switch result {
//	case quitmodal.ResultQuit:
//	    return m, tea.Quit
//	case quitmodal.ResultCancel:
//	    return m, nil
//	}
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd, Result) {
	if !m.visible {
		return m, nil, ResultNone
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil, ResultNone
	}

	k := keys.Modal
	switch {
	case key.Matches(keyMsg, k.ForceQuit), key.Matches(keyMsg, k.Yes):
		m.visible = false
		return m, nil, ResultQuit
	case key.Matches(keyMsg, k.Cancel), key.Matches(keyMsg, k.No):
		m.visible = false
		return m, nil, ResultCancel
	case key.Matches(keyMsg, k.Toggle):
		if m.focus == buttonConfirm {
			m.focus = buttonCancel
		} else {
			m.focus = buttonConfirm
		}
	case key.Matches(keyMsg, k.Confirm):
		m.visible = false
		if m.focus == buttonConfirm {
			return m, nil, ResultQuit
		}
		return m, nil, ResultCancel
	}
	return m, nil, ResultNone
}

// View renders the modal box (without positioning).
func (m Model) View() string {
	confirm := buttonStyle(m.focus == buttonConfirm, styles.StatusErrorColor).Render("Quit")
	cancel := buttonStyle(m.focus == buttonCancel, styles.BorderHighlightFocusColor).Render("Cancel")

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render(m.config.Title),
		"",
		m.config.Message,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, confirm, "  ", cancel),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Padding(1, 2).
		Render(content)
}

// Overlay renders the modal centered in the viewport.
func (m Model) Overlay() string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.View())
}

// Init returns the initial command (nil, since quit modals have no inputs).
func (m Model) Init() tea.Cmd {
	return nil
}

func buttonStyle(focused bool, color lipgloss.TerminalColor) lipgloss.Style {
	s := lipgloss.NewStyle().Padding(0, 2)
	if focused {
		return s.Bold(true).Reverse(true).Foreground(color)
	}
	return s.Foreground(styles.TextMutedColor)
}
