package document

import (
	"unicode/utf8"

	"github.com/zjrosen/quillkey/internal/log"
)

// Op names one Proxy method.
type Op string

const (
	OpTextBefore     Op = "textBefore"
	OpTextAfter      Op = "textAfter"
	OpSelectedText   Op = "selectedText"
	OpMoveCaret      Op = "moveCaret"
	OpInsert         Op = "insert"
	OpDeleteBackward Op = "deleteBackward"
	OpMark           Op = "mark"
	OpUnmark         Op = "unmark"
)

// Recorder wraps a Proxy, counting every call and optionally running a hook
// after each one. Tests use the hook to simulate the user editing between
// calls; the keyboard uses it to trace host traffic at debug level.
type Recorder struct {
	inner Proxy
	calls map[Op]int
	moves []int

	// After, when set, runs after every forwarded call.
	After func(op Op)
	// Trace logs each call at debug level.
	Trace bool
}

// NewRecorder wraps p.
func NewRecorder(p Proxy) *Recorder {
	return &Recorder{inner: p, calls: make(map[Op]int)}
}

// Calls returns how many times op was invoked.
func (r *Recorder) Calls(op Op) int {
	return r.calls[op]
}

// Total returns the number of calls across all operations.
func (r *Recorder) Total() int {
	n := 0
	for _, c := range r.calls {
		n += c
	}
	return n
}

// Moves returns every MoveCaret offset in call order.
func (r *Recorder) Moves() []int {
	out := make([]int, len(r.moves))
	copy(out, r.moves)
	return out
}

// Reset clears the counters.
func (r *Recorder) Reset() {
	r.calls = make(map[Op]int)
	r.moves = nil
}

func (r *Recorder) record(op Op, args ...any) {
	r.calls[op]++
	if r.Trace {
		log.Debug(log.CatCapture, "Host call", append([]any{"op", string(op)}, args...)...)
	}
	if r.After != nil {
		r.After(op)
	}
}

// TextBefore implements Proxy.
func (r *Recorder) TextBefore() string {
	s := r.inner.TextBefore()
	r.record(OpTextBefore, "runes", utf8.RuneCountInString(s))
	return s
}

// TextAfter implements Proxy.
func (r *Recorder) TextAfter() string {
	s := r.inner.TextAfter()
	r.record(OpTextAfter, "runes", utf8.RuneCountInString(s))
	return s
}

// SelectedText implements Proxy.
func (r *Recorder) SelectedText() string {
	s := r.inner.SelectedText()
	r.record(OpSelectedText, "runes", utf8.RuneCountInString(s))
	return s
}

// MoveCaret implements Proxy.
func (r *Recorder) MoveCaret(n int) {
	r.inner.MoveCaret(n)
	r.moves = append(r.moves, n)
	r.record(OpMoveCaret, "by", n)
}

// Insert implements Proxy.
func (r *Recorder) Insert(text string) {
	r.inner.Insert(text)
	r.record(OpInsert, "runes", utf8.RuneCountInString(text))
}

// DeleteBackward implements Proxy.
func (r *Recorder) DeleteBackward() {
	r.inner.DeleteBackward()
	r.record(OpDeleteBackward)
}

// Mark implements Proxy.
func (r *Recorder) Mark(text string, selStart, selLen int) {
	r.inner.Mark(text, selStart, selLen)
	r.record(OpMark, "runes", utf8.RuneCountInString(text), "selStart", selStart, "selLen", selLen)
}

// Unmark implements Proxy.
func (r *Recorder) Unmark() {
	r.inner.Unmark()
	r.record(OpUnmark)
}
