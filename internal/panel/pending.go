package panel

import (
	"maps"

	"github.com/zjrosen/quillkey/internal/feature"
)

// State is the lifecycle position of a pending operation.
type State int

const (
	// Idle means there is nothing to show beyond guidance.
	Idle State = iota
	// Loading means a request is outstanding.
	Loading
	// Result means a result is ready to apply.
	Result
	// Failed means the request failed and reload is offered.
	Failed
)

// String returns a log-friendly name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Result:
		return "result"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// PendingOperation is one capture-and-request cycle of a panel.
// Transitions produce a new value; a PendingOperation is never mutated
// after it is published.
type PendingOperation struct {
	ID            string
	Kind          feature.Kind
	RequestedText string
	Params        map[string]string
	FromSelection bool
	FromClipboard bool
	State         State
	Result        string
	Choices       []string
	Err           error
	Guidance      string
}

// with returns a copy of p with fn applied.
func (p PendingOperation) with(fn func(*PendingOperation)) *PendingOperation {
	next := p
	next.Params = maps.Clone(p.Params)
	next.Choices = append([]string(nil), p.Choices...)
	fn(&next)
	return &next
}

// Request is a remote call the caller must run through Execute.
type Request struct {
	ID     string
	Kind   feature.Kind
	Text   string
	Params map[string]string
}

// Outcome is what Execute hands back to Complete.
type Outcome struct {
	ID   string
	Kind feature.Kind
	Text string
	Err  error
}

// Snapshot is a read-only view of the controller for presentation.
type Snapshot struct {
	Active  feature.Kind
	Pending *PendingOperation
	Params  map[string]string
	Choice  int
}

// HasResult reports whether an applicable result is showing.
func (s Snapshot) HasResult() bool {
	return s.Pending != nil && s.Pending.State == Result
}
