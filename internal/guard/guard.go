// Package guard protects the host document from stale AI corrections.
//
// The guard is an optimistic-concurrency check: the text sent to an AI
// operation is recorded as a baseline, and just before the result is
// written the guard re-reads the marked/selected span. Only an exact match
// is committed. A mismatch discards the correction and clears the marking;
// there is no retry and no merge.
package guard

import (
	"errors"
	"unicode/utf8"

	"github.com/zjrosen/quillkey/internal/document"
	"github.com/zjrosen/quillkey/internal/log"
)

// ErrNotTracking is returned by Apply when no baseline was recorded.
var ErrNotTracking = errors.New("no correction baseline is being tracked")

// ErrConflict describes a refused apply for callers that want an error value.
var ErrConflict = errors.New("document changed since capture")

// Outcome is the result of an apply attempt.
type Outcome int

const (
	// OutcomeNone means nothing was attempted.
	OutcomeNone Outcome = iota
	// OutcomeApplied means the baseline span was replaced.
	OutcomeApplied
	// OutcomeConflict means the span no longer matched and nothing was written.
	OutcomeConflict
)

// String returns a log-friendly name.
func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeConflict:
		return "conflict"
	default:
		return "none"
	}
}

// Err returns ErrConflict for OutcomeConflict and nil otherwise.
func (o Outcome) Err() error {
	if o == OutcomeConflict {
		return ErrConflict
	}
	return nil
}

// Guard tracks one baseline against one host document.
type Guard struct {
	doc      document.Proxy
	baseline string
	tracking bool
}

// New creates a guard writing through doc.
func New(doc document.Proxy) *Guard {
	return &Guard{doc: doc}
}

// Begin records text as the expected content of the pending-edit span.
func (g *Guard) Begin(text string) {
	g.baseline = text
	g.tracking = true
}

// Tracking reports whether a baseline is recorded.
func (g *Guard) Tracking() bool {
	return g.tracking
}

// Baseline returns the recorded baseline.
func (g *Guard) Baseline() string {
	return g.baseline
}

// Reset forgets the baseline without touching the document.
func (g *Guard) Reset() {
	g.baseline = ""
	g.tracking = false
}

// Apply writes newText over the baseline span if the span is unchanged.
//
// On conflict the document content is left as the user left it: the
// marking is removed first, then any remaining selection is reinserted
// over itself so the host drops its pending-edit indicator. Unmarking
// first keeps the reinsert from landing on the whole marked span when the
// selection sits inside it. Tracking is cleared in both cases.
func (g *Guard) Apply(newText string) (Outcome, error) {
	if !g.tracking {
		return OutcomeNone, ErrNotTracking
	}

	current := g.doc.SelectedText()
	if current != g.baseline || current == "" {
		g.doc.Unmark()
		if sel := g.doc.SelectedText(); sel != "" {
			g.doc.Insert(sel)
		}
		log.Info(log.CatApply, "Apply refused, span changed since capture",
			"baselineRunes", utf8.RuneCountInString(g.baseline),
			"currentRunes", utf8.RuneCountInString(current),
		)
		g.Reset()
		return OutcomeConflict, nil
	}

	g.doc.Insert(newText)
	log.Debug(log.CatApply, "Applied correction",
		"baselineRunes", utf8.RuneCountInString(g.baseline),
		"newRunes", utf8.RuneCountInString(newText),
	)
	g.Reset()
	return OutcomeApplied, nil
}

// Insert writes text at the caret without a baseline check. It is used when
// the operation's input came from outside the document, so there is no span
// to protect. Any tracked baseline is dropped.
func (g *Guard) Insert(text string) Outcome {
	g.doc.Unmark()
	g.doc.Insert(text)
	log.Debug(log.CatApply, "Inserted at caret", "newRunes", utf8.RuneCountInString(text))
	g.Reset()
	return OutcomeApplied
}
