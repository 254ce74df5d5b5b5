package quitmodal

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

func newModal() Model {
	return New(Config{
		Title:   "Quit quillkey?",
		Message: "The result has not been applied.",
	})
}

func TestNew_StartsHidden(t *testing.T) {
	m := newModal()
	require.False(t, m.IsVisible(), "expected modal to start hidden")

	view := m.View()
	require.Contains(t, view, "Quit quillkey?", "expected view to contain title")
	require.Contains(t, view, "The result has not been applied.", "expected view to contain message")
	require.Contains(t, view, "Cancel")
}

func TestShowHide(t *testing.T) {
	m := newModal()
	m.Show()
	require.True(t, m.IsVisible(), "expected modal to be visible after Show()")
	require.Equal(t, buttonCancel, m.focus, "cancel is focused on show")

	m.Hide()
	require.False(t, m.IsVisible(), "expected modal to be hidden after Hide()")
}

func TestUpdate_ReturnsResultNone_WhenNotVisible(t *testing.T) {
	m := newModal()
	m, cmd, result := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, cmd)
	require.Equal(t, ResultNone, result)
	require.False(t, m.IsVisible())
}

func TestUpdate_Results(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want Result
	}{
		{"ctrl+c force quits", tea.KeyMsg{Type: tea.KeyCtrlC}, ResultQuit},
		{"y confirms", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}}, ResultQuit},
		{"esc cancels", tea.KeyMsg{Type: tea.KeyEsc}, ResultCancel},
		{"n cancels", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}}, ResultCancel},
		{"enter on default focus cancels", tea.KeyMsg{Type: tea.KeyEnter}, ResultCancel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModal()
			m.Show()
			m, _, result := m.Update(tt.msg)
			require.Equal(t, tt.want, result)
			require.False(t, m.IsVisible(), "modal hides once resolved")
		})
	}
}

func TestUpdate_ToggleThenEnterQuits(t *testing.T) {
	m := newModal()
	m.Show()

	m, _, result := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, ResultNone, result)
	require.True(t, m.IsVisible())
	require.Equal(t, buttonConfirm, m.focus)

	m, _, result = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ResultQuit, result)
}

func TestUpdate_IgnoresOtherMessages(t *testing.T) {
	m := newModal()
	m.Show()
	m, _, result := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	require.Equal(t, ResultNone, result)
	require.True(t, m.IsVisible())
}

func TestOverlay_Centers(t *testing.T) {
	m := newModal()
	m.SetSize(80, 24)
	m.Show()
	out := m.Overlay()
	require.Contains(t, out, "Quit quillkey?")
	require.Equal(t, 80, lipgloss.Width(out))
}

func TestInit_ReturnsNil(t *testing.T) {
	require.Nil(t, newModal().Init())
}
