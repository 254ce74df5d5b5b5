package document

// DefaultWindow is the number of runes the built-in host exposes on each
// side of the caret.
const DefaultWindow = 64

// span is a half-open rune range [start, end).
type span struct {
	start, end int
}

func (s span) len() int { return s.end - s.start }

// Buffer is an in-memory host document implementing Proxy.
//
// It is the editing surface of the terminal keyboard and the deterministic
// host used in tests. Buffer is not safe for concurrent use; the keyboard
// drives it from a single event loop.
type Buffer struct {
	text   []rune
	caret  int
	anchor int // selection anchor; -1 when nothing is selected
	marked span
	isMark bool
	window int
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithWindow sets the size of the before/after windows. Values < 1 are ignored.
func WithWindow(n int) Option {
	return func(b *Buffer) {
		if n > 0 {
			b.window = n
		}
	}
}

// NewBuffer creates a host document holding text with the caret at its end.
func NewBuffer(text string, opts ...Option) *Buffer {
	b := &Buffer{
		text:   []rune(text),
		anchor: -1,
		window: DefaultWindow,
	}
	b.caret = len(b.text)
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// String returns the full document. Only the host may call this; the
// keyboard core goes through Proxy.
func (b *Buffer) String() string {
	return string(b.text)
}

// Len returns the document length in runes.
func (b *Buffer) Len() int {
	return len(b.text)
}

// Caret returns the caret offset.
func (b *Buffer) Caret() int {
	return b.caret
}

// Window returns the configured window size.
func (b *Buffer) Window() int {
	return b.window
}

// Marked returns the marked span text and whether a marking is present.
func (b *Buffer) Marked() (string, bool) {
	if !b.isMark {
		return "", false
	}
	return string(b.text[b.marked.start:b.marked.end]), true
}

// MarkedRange returns the marked span offsets.
func (b *Buffer) MarkedRange() (start, end int, ok bool) {
	return b.marked.start, b.marked.end, b.isMark
}

// Selection returns the selected range, if any.
func (b *Buffer) Selection() (start, end int, ok bool) {
	sel, ok := b.selection()
	return sel.start, sel.end, ok
}

// SetCaret places the caret at offset i (clamped) and clears the selection.
func (b *Buffer) SetCaret(i int) {
	b.caret = b.clamp(i)
	b.anchor = -1
}

// Select selects [start, end) with the caret at end.
func (b *Buffer) Select(start, end int) {
	start, end = b.clamp(start), b.clamp(end)
	if start == end {
		b.SetCaret(start)
		return
	}
	b.anchor = start
	b.caret = end
}

// ExtendSelection moves the caret by n while keeping the selection anchor.
func (b *Buffer) ExtendSelection(n int) {
	if b.anchor < 0 {
		b.anchor = b.caret
	}
	b.caret = b.clamp(b.caret + n)
	if b.caret == b.anchor {
		b.anchor = -1
	}
}

// SelectAll selects the whole document.
func (b *Buffer) SelectAll() {
	b.Select(0, len(b.text))
}

// TextBefore implements Proxy.
func (b *Buffer) TextBefore() string {
	end := b.caret
	if sel, ok := b.selection(); ok {
		end = sel.start
	}
	start := end - b.window
	if start < 0 {
		start = 0
	}
	return string(b.text[start:end])
}

// TextAfter implements Proxy.
func (b *Buffer) TextAfter() string {
	start := b.caret
	if sel, ok := b.selection(); ok {
		start = sel.end
	}
	end := start + b.window
	if end > len(b.text) {
		end = len(b.text)
	}
	return string(b.text[start:end])
}

// SelectedText implements Proxy.
func (b *Buffer) SelectedText() string {
	if sel, ok := b.selection(); ok {
		return string(b.text[sel.start:sel.end])
	}
	if b.isMark {
		return string(b.text[b.marked.start:b.marked.end])
	}
	return ""
}

// MoveCaret implements Proxy. Any selection collapses first.
func (b *Buffer) MoveCaret(n int) {
	b.anchor = -1
	b.caret = b.clamp(b.caret + n)
}

// Insert implements Proxy.
func (b *Buffer) Insert(text string) {
	r := []rune(text)
	target := b.editTarget()
	b.isMark = false
	b.replace(target, r)
	b.caret = target.start + len(r)
	b.anchor = -1
}

// DeleteBackward implements Proxy.
func (b *Buffer) DeleteBackward() {
	target := b.editTarget()
	if target.len() == 0 {
		if b.caret == 0 {
			return
		}
		target = span{b.caret - 1, b.caret}
	}
	b.isMark = false
	b.replace(target, nil)
	b.caret = target.start
	b.anchor = -1
}

// Mark implements Proxy.
func (b *Buffer) Mark(text string, selStart, selLen int) {
	r := []rune(text)
	target := b.editTarget()
	b.replace(target, r)
	b.marked = span{target.start, target.start + len(r)}
	b.isMark = true

	if selStart < 0 {
		selStart = 0
	}
	if selStart > len(r) {
		selStart = len(r)
	}
	b.caret = b.marked.start + selStart
	b.anchor = -1
	if selLen > 0 {
		end := b.caret + selLen
		if end > b.marked.end {
			end = b.marked.end
		}
		b.anchor = b.caret
		b.caret = end
	}
}

// Unmark implements Proxy.
func (b *Buffer) Unmark() {
	b.isMark = false
	b.marked = span{}
}

// editTarget picks the range an edit acts on: marked span, then selection,
// then the empty range at the caret.
func (b *Buffer) editTarget() span {
	if b.isMark {
		return b.marked
	}
	if sel, ok := b.selection(); ok {
		return sel
	}
	return span{b.caret, b.caret}
}

func (b *Buffer) selection() (span, bool) {
	if b.anchor < 0 || b.anchor == b.caret {
		return span{}, false
	}
	if b.anchor < b.caret {
		return span{b.anchor, b.caret}, true
	}
	return span{b.caret, b.anchor}, true
}

func (b *Buffer) replace(s span, r []rune) {
	out := make([]rune, 0, len(b.text)-s.len()+len(r))
	out = append(out, b.text[:s.start]...)
	out = append(out, r...)
	out = append(out, b.text[s.end:]...)
	b.text = out
}

func (b *Buffer) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i > len(b.text) {
		return len(b.text)
	}
	return i
}
