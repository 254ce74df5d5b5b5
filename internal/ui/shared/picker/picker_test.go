package picker

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/quillkey/internal/feature"
)

func testOptions() []Option {
	return []Option{
		{Label: "Option 1", Value: "1"},
		{Label: "Option 2", Value: "2"},
		{Label: "Option 3", Value: "3"},
	}
}

func TestPicker_New(t *testing.T) {
	m := New("Test Title", testOptions())

	require.Equal(t, "Test Title", m.config.Title, "expected title to be set")
	require.Len(t, m.config.Options, 3, "expected 3 options")
	require.Equal(t, 0, m.selected, "expected default selection at 0")
}

func TestPicker_SetSelected(t *testing.T) {
	m := New("Test", testOptions())

	m = m.SetSelected(2)
	require.Equal(t, 2, m.selected, "expected selection at index 2")

	// Out of range is ignored
	m = m.SetSelected(10)
	require.Equal(t, 2, m.selected)
	m = m.SetSelected(-1)
	require.Equal(t, 2, m.selected)
}

func TestPicker_Selected_Empty(t *testing.T) {
	m := New("Test", []Option{})
	require.Equal(t, Option{}, m.Selected(), "expected empty option for empty picker")
}

func TestPicker_Update_Navigate(t *testing.T) {
	m := New("Test", testOptions())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	require.Equal(t, 1, m.selected, "expected selection at 1 after 'j'")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 2, m.selected)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 2, m.selected, "expected selection to stay at 2 (boundary)")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	require.Equal(t, 1, m.selected)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, 0, m.selected, "expected selection to stay at 0 (boundary)")
}

func TestPicker_ScrollsLongLists(t *testing.T) {
	var options []Option
	for _, c := range feature.Languages {
		options = append(options, Option{Label: c.Label(), Value: c.Name})
	}
	m := NewWithConfig(Config{Title: "Language", Options: options, MaxVisible: 5})

	view := m.View()
	require.Contains(t, view, "Afrikaans")
	require.NotContains(t, view, "Zulu")
	require.Contains(t, view, "(1/25)")

	for i := 0; i < len(options)-1; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	view = m.View()
	require.Equal(t, "Zulu", m.Selected().Value)
	require.Contains(t, view, "Zulu")
	require.NotContains(t, view, "Afrikaans")
	require.Contains(t, view, "(25/25)")
}

func TestPicker_InitialSelectionScrolledIntoView(t *testing.T) {
	var options []Option
	for i := 0; i < 20; i++ {
		options = append(options, Option{Label: fmt.Sprintf("item-%02d", i), Value: fmt.Sprint(i)})
	}
	m := NewWithConfig(Config{Title: "Items", Options: options, Selected: 15, MaxVisible: 4})

	view := m.View()
	require.Contains(t, view, "item-15")
	require.NotContains(t, view, "item-00")
}

func TestPicker_SetSize(t *testing.T) {
	m := New("Test", testOptions()).SetSize(120, 40)
	require.Equal(t, 120, m.viewportWidth)
	require.Equal(t, 40, m.viewportHeight)

	// Value receiver keeps the original unchanged
	m2 := m.SetSize(80, 24)
	require.Equal(t, 80, m2.viewportWidth)
	require.Equal(t, 120, m.viewportWidth)
}

func TestPicker_FindIndexByValue(t *testing.T) {
	options := testOptions()
	require.Equal(t, 1, FindIndexByValue(options, "2"))
	require.Equal(t, 2, FindIndexByValue(options, "3"))
	require.Equal(t, 0, FindIndexByValue(options, "nonexistent"), "expected index 0 for non-existent value")
}

func TestPicker_View(t *testing.T) {
	m := New("Select Option", testOptions()).SetSize(80, 24)
	view := m.View()

	require.Contains(t, view, "Select Option")
	require.Contains(t, view, "Option 1")
	require.Contains(t, view, "Option 3")
	require.Contains(t, view, ">", "expected view to contain selection indicator")
	require.NotContains(t, view, "(1/3)", "short lists show no position")
	require.Equal(t, view, m.View(), "expected stable output from same model")
}

func TestPicker_Overlay(t *testing.T) {
	m := New("Select Option", testOptions()).SetSize(60, 20)
	out := m.Overlay()
	require.Contains(t, out, "Select Option")
}

func TestPicker_OnSelect_CustomCallback(t *testing.T) {
	type myMsg struct{ value string }

	m := NewWithConfig(Config{
		Title:   "Test",
		Options: []Option{{Label: "A", Value: "a"}},
		OnSelect: func(opt Option) tea.Msg {
			return myMsg{value: opt.Value}
		},
	})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd, "expected command to be returned")
	msg := cmd()
	require.IsType(t, myMsg{}, msg)
	require.Equal(t, "a", msg.(myMsg).value)
}

func TestPicker_DefaultMessages_WhenNoCallbacks(t *testing.T) {
	m := NewWithConfig(Config{
		Title:   "Test",
		Options: []Option{{Label: "A", Value: "a"}},
	})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, SelectMsg{}, msg)
	require.Equal(t, "a", msg.(SelectMsg).Option.Value)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	require.IsType(t, CancelMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	require.IsType(t, CancelMsg{}, cmd(), "expected CancelMsg from 'q' key")
}
