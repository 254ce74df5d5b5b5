package keyboard

import (
	"github.com/zjrosen/quillkey/internal/feature"
	"github.com/zjrosen/quillkey/internal/panel"
)

// outcomeMsg carries a finished AI request back to the event loop.
type outcomeMsg struct {
	Outcome panel.Outcome
}

// frameMsg redraws while a reveal is running.
type frameMsg struct{}

// paramChosenMsg is sent by the parameter picker.
type paramChosenMsg struct {
	Kind  feature.Kind
	Value string
}

// pickerClosedMsg is sent when the parameter picker is dismissed.
type pickerClosedMsg struct{}
