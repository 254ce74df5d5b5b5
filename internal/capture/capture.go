// Package capture reconstructs the text surrounding the caret from a host
// that only exposes bounded, caret-relative windows.
//
// The session slides the caret across the document one window at a time:
// left until TextBefore comes back empty, back to where it started, then
// right until TextAfter comes back empty. An empty read is the termination
// signal because the host always reports the largest window it can.
//
// The scan is not atomic against live typing. A user editing mid-scan can
// produce a reconstruction that never existed as a whole; the apply guard
// catches that case at write time.
package capture

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/benbjohnson/clock"

	"github.com/zjrosen/quillkey/internal/document"
	"github.com/zjrosen/quillkey/internal/log"
)

// DefaultMaxSteps bounds the number of window reads per direction.
const DefaultMaxSteps = 4096

// ErrScanLimit is returned when a host is still reporting text after
// MaxSteps window reads in one direction.
var ErrScanLimit = errors.New("capture scan exceeded step limit")

// Context is the text a feature operates on. Immutable once produced.
type Context struct {
	Text          string
	FromSelection bool
}

// Empty reports whether there is no text to operate on.
func (c Context) Empty() bool {
	return c.Text == ""
}

// Options controls a single capture.
type Options struct {
	// Replace rewrites the captured span as marked text so the host
	// highlights it as a pending edit and a later insert replaces it.
	Replace bool
}

// Config tunes the scan loop.
type Config struct {
	// SettleDelay is the pause between window refreshes that lets the
	// host's text system catch up after a caret move. Zero disables it.
	SettleDelay time.Duration
	// MaxSteps bounds window reads per direction, counting the final empty
	// read. Zero uses DefaultMaxSteps.
	MaxSteps int
	// Clock drives SettleDelay. Nil uses the wall clock.
	Clock clock.Clock
}

// Session captures context from one host document.
type Session struct {
	doc         document.Proxy
	settleDelay time.Duration
	maxSteps    int
	clock       clock.Clock
}

// NewSession creates a capture session over doc.
func NewSession(doc document.Proxy, cfg Config) *Session {
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = DefaultMaxSteps
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	return &Session{
		doc:         doc,
		settleDelay: cfg.SettleDelay,
		maxSteps:    cfg.MaxSteps,
		clock:       cfg.Clock,
	}
}

// Capture returns the text the next feature request should run on.
//
// A non-empty selection is used as-is. Otherwise the full contiguous text
// around the caret is reconstructed and the caret is returned to its
// logical origin: by moving back (Replace false) or by marking the
// reconstructed text with the caret placed at the origin (Replace true).
//
// A Replace capture first clears any marking left by an earlier one, so
// repeated Replace captures of the same document agree. A non-Replace
// capture is read-only and reports an existing marked span as the
// selection.
//
// On error the caret is moved back to its origin on a best-effort basis
// and the document content is left untouched.
func (s *Session) Capture(ctx context.Context, opts Options) (Context, error) {
	if opts.Replace {
		s.doc.Unmark()
	}
	if sel := s.doc.SelectedText(); sel != "" {
		log.Debug(log.CatCapture, "Using selection", "runes", utf8.RuneCountInString(sel))
		return Context{Text: sel, FromSelection: true}, nil
	}

	left, leftLen, err := s.scanLeft(ctx)
	if err != nil {
		return Context{}, err
	}
	s.move(leftLen)

	right, rightLen, err := s.scanRight(ctx)
	if err != nil {
		return Context{}, err
	}

	full := left + right
	if full == "" {
		log.Debug(log.CatCapture, "Document empty")
		return Context{}, nil
	}

	if opts.Replace {
		// The right scan left the caret at the document end.
		for i := 0; i < leftLen+rightLen; i++ {
			s.doc.DeleteBackward()
		}
		s.doc.Mark(full, leftLen, 0)
	} else {
		s.move(-rightLen)
	}

	log.Debug(log.CatCapture, "Captured context",
		"leftRunes", leftLen,
		"rightRunes", rightLen,
		"replace", opts.Replace,
	)
	return Context{Text: full}, nil
}

// scanLeft collects text before the caret, finishing with the caret at the
// document start. On failure the caret is moved back to where it began.
func (s *Session) scanLeft(ctx context.Context) (string, int, error) {
	var chunks []string
	moved := 0

	for step := 0; ; step++ {
		if err := s.checkpoint(ctx, step); err != nil {
			s.move(moved)
			return "", 0, err
		}
		chunk := s.doc.TextBefore()
		if chunk == "" {
			break
		}
		n := utf8.RuneCountInString(chunk)
		chunks = append(chunks, chunk)
		s.doc.MoveCaret(-n)
		moved += n
	}

	var sb strings.Builder
	for i := len(chunks) - 1; i >= 0; i-- {
		sb.WriteString(chunks[i])
	}
	return sb.String(), moved, nil
}

// scanRight collects text after the caret, finishing with the caret at the
// document end. On failure the caret is moved back to where it began.
func (s *Session) scanRight(ctx context.Context) (string, int, error) {
	var sb strings.Builder
	moved := 0

	for step := 0; ; step++ {
		if err := s.checkpoint(ctx, step); err != nil {
			s.move(-moved)
			return "", 0, err
		}
		chunk := s.doc.TextAfter()
		if chunk == "" {
			break
		}
		n := utf8.RuneCountInString(chunk)
		sb.WriteString(chunk)
		s.doc.MoveCaret(n)
		moved += n
	}

	return sb.String(), moved, nil
}

// checkpoint runs at every step boundary: it enforces the step limit,
// honours cancellation and waits out the settle delay.
func (s *Session) checkpoint(ctx context.Context, step int) error {
	if step >= s.maxSteps {
		return ErrScanLimit
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if step == 0 || s.settleDelay <= 0 {
		return nil
	}

	timer := s.clock.Timer(s.settleDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Session) move(n int) {
	if n != 0 {
		s.doc.MoveCaret(n)
	}
}
