// Package document defines the caret-relative view of a host document that
// the keyboard is allowed to use, and an in-memory host implementing it.
//
// # Host model
//
// The keyboard never sees the whole document. It can read a bounded window
// of text immediately before and after the caret, move the caret by a
// relative offset, insert, delete backward, and mark a span as a pending
// edit. The host may change the document between any two calls (the user
// keeps typing), so callers must not assume a sequence of calls is atomic.
//
// All offsets and lengths are counted in runes.
package document

// Proxy is the capability a host hands to the keyboard.
//
// An empty string from TextBefore, TextAfter or SelectedText means "absent".
type Proxy interface {
	// TextBefore returns the bounded window of text ending at the caret.
	TextBefore() string
	// TextAfter returns the bounded window of text starting at the caret.
	TextAfter() string
	// SelectedText returns the selected text, or the marked span when
	// nothing is selected.
	SelectedText() string
	// MoveCaret moves the caret by n runes; negative moves left.
	MoveCaret(n int)
	// Insert writes text, replacing the marked span or selection if any.
	Insert(text string)
	// DeleteBackward removes the marked span, the selection, or the rune
	// before the caret, in that order of preference.
	DeleteBackward()
	// Mark writes text as a pending-edit span (replacing any existing
	// marked span or selection) and places the caret selStart runes into
	// it with selLen runes selected.
	Mark(text string, selStart, selLen int)
	// Unmark drops the pending-edit indicator, keeping the text.
	Unmark()
}
