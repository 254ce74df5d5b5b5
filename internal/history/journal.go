// Package history keeps a bounded journal of applies. The document text of
// an entry stays in memory and backs undo of the last apply; only the
// metadata is persisted.
package history

import (
	"sync"
	"time"
)

const (
	// DefaultMaxEntries is used when no size is configured.
	DefaultMaxEntries = 50
	// MaxEntries is the absolute maximum number of entries kept.
	MaxEntries = 1000
)

// Entry records one apply.
type Entry struct {
	Kind        string    `json:"kind"`
	ResultRunes int       `json:"result_runes"`
	At          time.Time `json:"at"`

	// Document before and after the apply. Never written to disk.
	Before string `json:"-"`
	After  string `json:"-"`
}

// Undoable reports whether e still carries the document text needed to
// revert it. Entries read back from disk never do.
func (e Entry) Undoable() bool {
	return e.Before != e.After
}

// Journal is a bounded, oldest-first list of entries. Safe for concurrent use.
type Journal struct {
	entries []Entry
	maxSize int
	mu      sync.RWMutex
}

// NewJournal creates a journal holding at most maxSize entries. Zero or
// negative uses DefaultMaxEntries; larger than MaxEntries is clamped.
func NewJournal(maxSize int) *Journal {
	if maxSize <= 0 {
		maxSize = DefaultMaxEntries
	}
	if maxSize > MaxEntries {
		maxSize = MaxEntries
	}
	return &Journal{
		entries: make([]Entry, 0, maxSize),
		maxSize: maxSize,
	}
}

// Add appends e, dropping the oldest entry when full. Entries without a
// kind are ignored.
func (j *Journal) Add(e Entry) {
	if e.Kind == "" {
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if len(j.entries) >= j.maxSize {
		copy(j.entries, j.entries[1:])
		j.entries[len(j.entries)-1] = e
		return
	}
	j.entries = append(j.entries, e)
}

// Last returns the newest entry.
func (j *Journal) Last() (Entry, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if len(j.entries) == 0 {
		return Entry{}, false
	}
	return j.entries[len(j.entries)-1], true
}

// Pop removes and returns the newest entry.
func (j *Journal) Pop() (Entry, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.entries) == 0 {
		return Entry{}, false
	}
	e := j.entries[len(j.entries)-1]
	j.entries = j.entries[:len(j.entries)-1]
	return e, true
}

// Clear removes all entries.
func (j *Journal) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = make([]Entry, 0, j.maxSize)
}

// Len returns the number of entries.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.entries)
}

// Entries returns a copy of all entries, oldest to newest.
func (j *Journal) Entries() []Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()
	out := make([]Entry, len(j.entries))
	copy(out, j.entries)
	return out
}
