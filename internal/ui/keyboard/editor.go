package keyboard

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/quillkey/internal/document"
	"github.com/zjrosen/quillkey/internal/ui/styles"
)

// editKey applies a host-side editing key to buf. It reports whether the
// key was an editing key.
func editKey(buf *document.Buffer, msg tea.KeyMsg) bool {
	switch {
	case isWordLeft(msg):
		buf.SetCaret(prevWordStart([]rune(buf.String()), buf.Caret()))
		return true
	case isWordRight(msg):
		buf.SetCaret(nextWordEnd([]rune(buf.String()), buf.Caret()))
		return true
	case isWordBackspace(msg):
		caret := buf.Caret()
		if start := prevWordStart([]rune(buf.String()), caret); start < caret {
			buf.Select(start, caret)
			buf.DeleteBackward()
		}
		return true
	}

	switch msg.Type {
	case tea.KeyRunes:
		buf.Insert(string(msg.Runes))
	case tea.KeySpace:
		buf.Insert(" ")
	case tea.KeyEnter:
		buf.Insert("\n")
	case tea.KeyTab:
		buf.Insert("\t")
	case tea.KeyBackspace:
		buf.DeleteBackward()
	case tea.KeyLeft:
		buf.MoveCaret(-1)
	case tea.KeyRight:
		buf.MoveCaret(1)
	case tea.KeyHome:
		buf.SetCaret(0)
	case tea.KeyEnd:
		buf.SetCaret(buf.Len())
	case tea.KeyShiftLeft:
		buf.ExtendSelection(-1)
	case tea.KeyShiftRight:
		buf.ExtendSelection(1)
	default:
		return false
	}
	return true
}

type runeClass int

const (
	classPlain runeClass = iota
	classSelected
	classMarked
)

// renderDocument draws buf with its selection, marked span and caret.
func renderDocument(buf *document.Buffer) string {
	text := []rune(buf.String())
	caret := buf.Caret()
	selStart, selEnd, hasSel := buf.Selection()
	markStart, markEnd, hasMark := buf.MarkedRange()

	classOf := func(i int) runeClass {
		switch {
		case hasSel && i >= selStart && i < selEnd:
			return classSelected
		case hasMark && i >= markStart && i < markEnd:
			return classMarked
		default:
			return classPlain
		}
	}
	styleOf := func(c runeClass) lipgloss.Style {
		switch c {
		case classSelected:
			return styles.SelectedTextStyle
		case classMarked:
			return styles.MarkedTextStyle
		default:
			return lipgloss.NewStyle()
		}
	}

	var out strings.Builder
	var run strings.Builder
	runClass := classPlain
	flush := func() {
		if run.Len() > 0 {
			out.WriteString(styleOf(runClass).Render(run.String()))
			run.Reset()
		}
	}

	for i, r := range text {
		if i == caret {
			flush()
			if r == '\n' {
				out.WriteString(styles.CaretStyle.Render(" ") + "\n")
			} else {
				out.WriteString(styles.CaretStyle.Render(string(r)))
			}
			continue
		}
		c := classOf(i)
		if c != runClass || r == '\n' {
			flush()
			runClass = c
		}
		if r == '\n' {
			out.WriteString("\n")
			continue
		}
		run.WriteRune(r)
	}
	flush()
	if caret >= len(text) {
		out.WriteString(styles.CaretStyle.Render(" "))
	}
	return out.String()
}
