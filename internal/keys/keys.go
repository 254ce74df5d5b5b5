// Package keys defines the key bindings of the keyboard UI.
package keys

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/quillkey/internal/feature"
)

// KeyboardKeys holds the bindings active in the editor view.
type KeyboardKeys struct {
	GrammarCheck key.Binding
	ToneChange   key.Binding
	AskAI        key.Binding
	Translate    key.Binding
	Reply        key.Binding
	ContinueText key.Binding
	FindSynonyms key.Binding

	Apply      key.Binding
	Reload     key.Binding
	Close      key.Binding
	Params     key.Binding
	NextChoice key.Binding
	Undo       key.Binding
	Quit       key.Binding

	SelectLeft  key.Binding
	SelectRight key.Binding
	SelectAll   key.Binding
}

// Keyboard is the editor keymap.
var Keyboard = KeyboardKeys{
	GrammarCheck: key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "grammar")),
	ToneChange:   key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "tone")),
	AskAI:        key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "ask ai")),
	Translate:    key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "translate")),
	Reply:        key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reply")),
	ContinueText: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "continue")),
	FindSynonyms: key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "synonyms")),

	Apply:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "apply")),
	Reload:     key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "reload")),
	Close:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close panel")),
	Params:     key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "tone/language")),
	NextChoice: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next synonym")),
	Undo:       key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo apply")),
	Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),

	SelectLeft:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "select left")),
	SelectRight: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "select right")),
	SelectAll:   key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all")),
}

// PickerKeys holds the bindings of the option picker.
type PickerKeys struct {
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

// Picker is the picker keymap.
var Picker = PickerKeys{
	Up:      key.NewBinding(key.WithKeys("up", "k", "ctrl+p"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j", "ctrl+n"), key.WithHelp("↓/j", "down")),
	Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Cancel:  key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "cancel")),
}

// ModalKeys holds the bindings of confirmation modals.
type ModalKeys struct {
	Confirm   key.Binding
	Toggle    key.Binding
	Cancel    key.Binding
	Yes       key.Binding
	No        key.Binding
	ForceQuit key.Binding
}

// Modal is the confirmation modal keymap.
var Modal = ModalKeys{
	Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
	Toggle:    key.NewBinding(key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"), key.WithHelp("tab", "switch")),
	Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Yes:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
	No:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

// FeatureBinding returns the binding that opens k.
func (k KeyboardKeys) FeatureBinding(kind feature.Kind) key.Binding {
	switch kind {
	case feature.GrammarCheck:
		return k.GrammarCheck
	case feature.ToneChange:
		return k.ToneChange
	case feature.AskAI:
		return k.AskAI
	case feature.Translate:
		return k.Translate
	case feature.Reply:
		return k.Reply
	case feature.ContinueText:
		return k.ContinueText
	case feature.FindSynonyms:
		return k.FindSynonyms
	default:
		return key.Binding{}
	}
}

// Feature resolves msg to the feature it opens.
func (k KeyboardKeys) Feature(msg tea.KeyMsg) (feature.Kind, bool) {
	for _, kind := range feature.All() {
		if key.Matches(msg, k.FeatureBinding(kind)) {
			return kind, true
		}
	}
	return feature.None, false
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Apply, k.Reload, k.Close, k.Params, k.Quit}
}
