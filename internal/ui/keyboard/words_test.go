package keyboard

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/quillkey/internal/document"
)

func TestPrevWordStart(t *testing.T) {
	text := []rune("foo.bar  baz")
	tests := []struct {
		name string
		pos  int
		want int
	}{
		{"start of document", 0, 0},
		{"middle of word", 2, 0},
		{"after punctuation", 4, 0},
		{"end of word", 7, 4},
		{"skips spaces", 9, 4},
		{"end of document", 12, 9},
		{"clamped", 99, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, prevWordStart(text, tt.pos))
		})
	}
}

func TestNextWordEnd(t *testing.T) {
	text := []rune("foo.bar  baz")
	tests := []struct {
		name string
		pos  int
		want int
	}{
		{"start of word", 0, 3},
		{"on punctuation", 3, 7},
		{"on spaces", 7, 12},
		{"end of document", 12, 12},
		{"negative", -4, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, nextWordEnd(text, tt.pos))
		})
	}
}

func TestEditKey_WordMotion(t *testing.T) {
	buf := document.NewBuffer("hello big world")

	require.True(t, editKey(buf, tea.KeyMsg{Type: tea.KeyLeft, Alt: true}))
	require.Equal(t, 10, buf.Caret())
	require.True(t, editKey(buf, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}, Alt: true}))
	require.Equal(t, 6, buf.Caret())
	require.True(t, editKey(buf, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}, Alt: true}))
	require.Equal(t, 9, buf.Caret())

	require.True(t, editKey(buf, tea.KeyMsg{Type: tea.KeyCtrlW}))
	require.Equal(t, "hello  world", buf.String())
	require.Equal(t, 6, buf.Caret())

	buf.SetCaret(0)
	require.True(t, editKey(buf, tea.KeyMsg{Type: tea.KeyBackspace, Alt: true}))
	require.Equal(t, "hello  world", buf.String(), "nothing before the caret")
}

func TestEditKey_Unhandled(t *testing.T) {
	buf := document.NewBuffer("x")
	require.False(t, editKey(buf, tea.KeyMsg{Type: tea.KeyF5}))
	require.Equal(t, "x", buf.String())
}
