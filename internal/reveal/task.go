// Package reveal shows result text a chunk at a time.
//
// A reveal is bounded by a wall-clock budget through chunk sizing: the
// text is cut into at most budget/interval chunks, so a long result
// arrives in bigger pieces instead of taking longer. A cancelled reveal
// stops before its next chunk and never reports completion; whatever it
// already wrote stays written.
package reveal

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Defaults pace a reveal at 60 frames per second for at most five seconds.
const (
	DefaultBudget   = 5 * time.Second
	DefaultInterval = time.Second / 60
)

// Surface receives revealed text.
type Surface interface {
	Reset()
	Append(s string)
}

// Text is a Surface safe for one writer and concurrent readers.
type Text struct {
	mu sync.RWMutex
	b  strings.Builder
}

// Reset implements Surface.
func (t *Text) Reset() {
	t.mu.Lock()
	t.b.Reset()
	t.mu.Unlock()
}

// Append implements Surface.
func (t *Text) Append(s string) {
	t.mu.Lock()
	t.b.WriteString(s)
	t.mu.Unlock()
}

// String returns what has been revealed so far.
func (t *Text) String() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.b.String()
}

// MaxSteps returns how many steps fit in budget at interval, at least 1.
func MaxSteps(budget, interval time.Duration) int {
	if budget <= 0 || interval <= 0 {
		return 1
	}
	n := int(budget / interval)
	if n < 1 {
		return 1
	}
	return n
}

// ChunkSize returns ceil(length/maxSteps), at least 1.
func ChunkSize(length, maxSteps int) int {
	if maxSteps < 1 {
		maxSteps = 1
	}
	if length <= 0 {
		return 1
	}
	return (length + maxSteps - 1) / maxSteps
}

// Task reveals one string into one surface.
type Task struct {
	surface Surface
	target  []rune
	chunk   int
	onDone  func()

	mu        sync.Mutex
	cursor    int
	done      bool
	cancelled atomic.Bool
	stop      chan struct{}
	stopOnce  sync.Once
}

// NewTask prepares a reveal of text split into at most maxSteps chunks.
// onDone may be nil.
func NewTask(surface Surface, text string, maxSteps int, onDone func()) *Task {
	target := []rune(text)
	return &Task{
		surface: surface,
		target:  target,
		chunk:   ChunkSize(len(target), maxSteps),
		onDone:  onDone,
		stop:    make(chan struct{}),
	}
}

// Step appends the next chunk. It reports whether the task wants another
// step; false means the task either finished or was cancelled.
func (t *Task) Step() bool {
	t.mu.Lock()
	if t.done || t.cancelled.Load() {
		t.mu.Unlock()
		return false
	}

	end := min(t.cursor+t.chunk, len(t.target))
	if end > t.cursor {
		t.surface.Append(string(t.target[t.cursor:end]))
	}
	t.cursor = end

	if t.cursor < len(t.target) {
		t.mu.Unlock()
		return true
	}

	t.done = true
	onDone := t.onDone
	t.mu.Unlock()

	if onDone != nil && !t.cancelled.Load() {
		onDone()
	}
	return false
}

// Cancel stops the task before its next step. A step already in progress
// finishes before Cancel returns, so nothing is appended afterwards.
func (t *Task) Cancel() {
	t.mu.Lock()
	t.cancelled.Store(true)
	t.mu.Unlock()
	t.stopOnce.Do(func() { close(t.stop) })
}

// Cancelled reports whether Cancel was called.
func (t *Task) Cancelled() bool {
	return t.cancelled.Load()
}

// Done reports whether the whole text was written.
func (t *Task) Done() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}

// Steps returns how many steps a full reveal takes.
func (t *Task) Steps() int {
	if len(t.target) == 0 {
		return 1
	}
	return (len(t.target) + t.chunk - 1) / t.chunk
}
