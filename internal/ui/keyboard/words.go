package keyboard

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
)

// Word motion follows readline semantics: letters, digits and underscore
// form words; punctuation and whitespace are delimiters, so "foo.bar" has
// two words.

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}

// prevWordStart returns the start of the word before pos, skipping any
// delimiters first.
func prevWordStart(text []rune, pos int) int {
	pos = min(max(pos, 0), len(text))
	for pos > 0 && !isWordChar(text[pos-1]) {
		pos--
	}
	for pos > 0 && isWordChar(text[pos-1]) {
		pos--
	}
	return pos
}

// nextWordEnd returns the position just after the word at or after pos.
func nextWordEnd(text []rune, pos int) int {
	pos = min(max(pos, 0), len(text))
	for pos < len(text) && !isWordChar(text[pos]) {
		pos++
	}
	for pos < len(text) && isWordChar(text[pos]) {
		pos++
	}
	return pos
}

// isWordLeft matches alt+left and alt+b (macOS "Option as Meta").
func isWordLeft(msg tea.KeyMsg) bool {
	if msg.Alt && msg.Type == tea.KeyLeft {
		return true
	}
	return !msg.Paste && msg.Alt && msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && msg.Runes[0] == 'b'
}

// isWordRight matches alt+right and alt+f.
func isWordRight(msg tea.KeyMsg) bool {
	if msg.Alt && msg.Type == tea.KeyRight {
		return true
	}
	return !msg.Paste && msg.Alt && msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && msg.Runes[0] == 'f'
}

// isWordBackspace matches ctrl+w and alt+backspace.
func isWordBackspace(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyCtrlW || (msg.Alt && msg.Type == tea.KeyBackspace)
}
