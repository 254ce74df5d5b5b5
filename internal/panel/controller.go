// Package panel drives the feature panels: which one is open, what text it
// captured, the request it has in flight and whether its result may still
// be applied.
//
// The controller is a single actor. Every method except Execute must be
// called from the same goroutine (the UI event loop); Execute only touches
// the AI client and may run anywhere. Results are handed back through
// Complete, which drops anything that no longer belongs to the open panel.
package panel

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/zjrosen/quillkey/internal/ai"
	"github.com/zjrosen/quillkey/internal/capture"
	"github.com/zjrosen/quillkey/internal/document"
	"github.com/zjrosen/quillkey/internal/feature"
	"github.com/zjrosen/quillkey/internal/guard"
	"github.com/zjrosen/quillkey/internal/log"
)

var (
	ErrUnknownFeature = errors.New("unknown feature")
	ErrNoActivePanel  = errors.New("no panel is active")
	ErrNotReady       = errors.New("panel has no result to apply")
	ErrInvalidParam   = errors.New("invalid parameter")
	ErrNoChoice       = errors.New("choice out of range")
)

// NoSynonymsGuidance is shown when the synonym lookup comes back empty.
const NoSynonymsGuidance = "No synonyms found for this text."

// Config wires a controller.
type Config struct {
	Client  ai.Client
	Capture capture.Config
	// Clipboard supplies Reply's input when nothing is captured. Nil
	// disables the fallback.
	Clipboard func() (string, error)
	// Defaults seeds parameters per feature.
	Defaults map[feature.Kind]map[string]string
	// NewID generates request ids. Defaults to uuid.NewString.
	NewID func() string
}

// Controller is the feature panel state machine.
type Controller struct {
	doc       document.Proxy
	client    ai.Client
	session   *capture.Session
	guard     *guard.Guard
	registry  *Registry
	clipboard func() (string, error)
	newID     func() string

	pending *PendingOperation
	params  map[feature.Kind]map[string]string
	choice  int
	applied string
}

// New creates a controller operating on doc.
func New(doc document.Proxy, cfg Config) *Controller {
	newID := cfg.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	params := make(map[feature.Kind]map[string]string)
	for k, p := range cfg.Defaults {
		params[k] = maps.Clone(p)
	}
	return &Controller{
		doc:       doc,
		client:    cfg.Client,
		session:   capture.NewSession(doc, cfg.Capture),
		guard:     guard.New(doc),
		registry:  NewRegistry(),
		clipboard: cfg.Clipboard,
		newID:     newID,
		params:    params,
	}
}

// Registry exposes the panel registry for inspection.
func (c *Controller) Registry() *Registry {
	return c.registry
}

// Active returns the open feature or feature.None.
func (c *Controller) Active() feature.Kind {
	return c.registry.Active()
}

// Pending returns the open panel's current operation, or nil.
func (c *Controller) Pending() *PendingOperation {
	return c.pending
}

// Snapshot returns a read-only view for rendering.
func (c *Controller) Snapshot() Snapshot {
	active := c.registry.Active()
	return Snapshot{
		Active:  active,
		Pending: c.pending,
		Params:  c.Params(active),
		Choice:  c.choice,
	}
}

// Params returns a copy of k's parameters.
func (c *Controller) Params(k feature.Kind) map[string]string {
	return maps.Clone(c.params[k])
}

// Activate opens panel k and starts its capture. Re-activating the open
// panel does nothing. The returned Request, when non-nil, must be run
// through Execute and its outcome passed to Complete.
func (c *Controller) Activate(ctx context.Context, k feature.Kind) (*Request, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFeature, k)
	}

	active := c.registry.Active()
	if active == k {
		log.Debug(log.CatPanel, "Panel already active", "kind", k.String())
		return nil, nil
	}
	if active != feature.None {
		c.teardown(active)
	}

	c.registry.SetActive(k)
	log.Debug(log.CatPanel, "Panel activated", "kind", k.String(), "previous", active.String())
	return c.load(ctx, k)
}

// Reload re-captures for the open panel. Unchanged text keeps the current
// result and issues nothing.
func (c *Controller) Reload(ctx context.Context) (*Request, error) {
	active := c.registry.Active()
	if active == feature.None {
		return nil, nil
	}
	log.Debug(log.CatPanel, "Reload", "kind", active.String())
	return c.load(ctx, active)
}

// Close closes the open panel, clearing its marking, baseline and cache.
func (c *Controller) Close() {
	active := c.registry.Active()
	if active == feature.None {
		return
	}
	c.teardown(active)
	log.Debug(log.CatPanel, "Panel closed", "kind", active.String())
}

// Teardown closes any panel and resets the registry. Used when the
// keyboard goes away.
func (c *Controller) Teardown() {
	c.Close()
	c.registry.Reset()
}

// SetParam changes a parameter of k and invalidates k's de-dup cache so the
// next reload requests again.
func (c *Controller) SetParam(k feature.Kind, key, value string) error {
	if key == "" || key != k.RequiredParam() {
		return fmt.Errorf("%w: %s takes no %q", ErrInvalidParam, k, key)
	}
	choice, ok := feature.FindChoice(k.Choices(), value)
	if !ok {
		return fmt.Errorf("%w: %q is not a %s", ErrInvalidParam, value, key)
	}
	if c.params[k] == nil {
		c.params[k] = make(map[string]string)
	}
	c.params[k][key] = choice.Name
	c.registry.Forget(k)
	log.Debug(log.CatPanel, "Parameter changed", "kind", k.String(), "key", key, "value", choice.Name)
	return nil
}

// Choose picks the i-th synonym as the result to apply.
func (c *Controller) Choose(i int) error {
	if c.pending == nil || c.pending.State != Result {
		return ErrNotReady
	}
	if i < 0 || i >= len(c.pending.Choices) {
		return fmt.Errorf("%w: %d of %d", ErrNoChoice, i, len(c.pending.Choices))
	}
	c.choice = i
	c.pending = c.pending.with(func(p *PendingOperation) {
		p.Result = p.Choices[i]
	})
	return nil
}

// LastApplied returns the text written by the most recent successful Apply.
// For ContinueText this is the captured text joined with the continuation.
func (c *Controller) LastApplied() string {
	return c.applied
}

// Execute runs req against the AI client. Safe to call from any goroutine.
func (c *Controller) Execute(ctx context.Context, req Request) Outcome {
	text, err := c.client.Request(ctx, req.Kind, req.Text, req.Params)
	return Outcome{ID: req.ID, Kind: req.Kind, Text: text, Err: err}
}

// Complete publishes an outcome to its panel. It reports false and changes
// nothing when the outcome is stale: its panel was closed, switched away
// from or reloaded since the request was issued.
func (c *Controller) Complete(out Outcome) bool {
	if c.pending == nil || c.pending.ID != out.ID || c.registry.Active() != out.Kind || c.pending.State != Loading {
		log.Debug(log.CatPanel, "Discarded stale outcome", "kind", out.Kind.String(), "id", out.ID)
		return false
	}

	if out.Err != nil {
		guidance := ""
		if out.Kind == feature.FindSynonyms && errors.Is(out.Err, ai.ErrEmptyOutput) {
			guidance = NoSynonymsGuidance
		}
		c.pending = c.pending.with(func(p *PendingOperation) {
			p.State = Failed
			p.Err = out.Err
			p.Guidance = guidance
		})
		c.registry.Forget(out.Kind)
		log.Warn(log.CatPanel, "Request failed", "kind", out.Kind.String(), "error", out.Err)
		return true
	}

	var choices []string
	result := out.Text
	if out.Kind == feature.FindSynonyms {
		choices = splitChoices(out.Text)
		if len(choices) > 0 {
			result = choices[0]
		}
	}
	c.choice = 0
	c.pending = c.pending.with(func(p *PendingOperation) {
		p.State = Result
		p.Result = result
		p.Choices = choices
	})
	log.Debug(log.CatPanel, "Result ready", "kind", out.Kind.String(), "runes", utf8.RuneCountInString(result))
	return true
}

// Apply writes the open panel's result into the document. A refused apply
// returns guard.OutcomeConflict and leaves the panel open and idle; a
// successful one closes the panel.
func (c *Controller) Apply() (guard.Outcome, error) {
	active := c.registry.Active()
	if active == feature.None {
		return guard.OutcomeNone, ErrNoActivePanel
	}
	if c.pending == nil || c.pending.State != Result {
		return guard.OutcomeNone, ErrNotReady
	}

	text := c.pending.Result
	if active.ApplyMode() == feature.Append {
		text = joinContinuation(c.pending.RequestedText, text)
	}

	var outcome guard.Outcome
	if c.pending.FromClipboard {
		outcome = c.guard.Insert(text)
	} else {
		var err error
		outcome, err = c.guard.Apply(text)
		if err != nil {
			return outcome, err
		}
	}

	if outcome == guard.OutcomeConflict {
		c.pending = c.pending.with(func(p *PendingOperation) {
			p.State = Idle
			p.Result = ""
			p.Choices = nil
		})
		c.registry.Forget(active)
		log.Info(log.CatPanel, "Apply refused, panel back to idle", "kind", active.String())
		return outcome, nil
	}

	c.pending = nil
	c.choice = 0
	c.applied = text
	c.registry.Forget(active)
	c.registry.Deactivate(active)
	log.Info(log.CatPanel, "Applied", "kind", active.String())
	return outcome, nil
}

// load captures context for k and issues a request unless the text was
// already requested.
func (c *Controller) load(ctx context.Context, k feature.Kind) (*Request, error) {
	// A previous capture of this panel may still be marked.
	c.doc.Unmark()

	captured, err := c.session.Capture(ctx, capture.Options{Replace: true})
	if err != nil {
		c.guard.Reset()
		c.pending = &PendingOperation{Kind: k, State: Failed, Err: err}
		log.ErrorErr(log.CatPanel, "Capture failed", err, "kind", k.String())
		return nil, err
	}

	text := captured.Text
	fromClipboard := false
	if captured.Empty() && k == feature.Reply && c.clipboard != nil {
		clip, err := c.clipboard()
		if err != nil {
			log.Warn(log.CatPanel, "Clipboard read failed", "error", err)
		}
		if strings.TrimSpace(clip) != "" {
			text = clip
			fromClipboard = true
		}
	}

	if strings.TrimSpace(text) == "" {
		c.doc.Unmark()
		c.guard.Reset()
		c.registry.Forget(k)
		c.pending = &PendingOperation{Kind: k, State: Idle, Guidance: feature.Guidance(k)}
		log.Debug(log.CatPanel, "Nothing captured", "kind", k.String())
		return nil, nil
	}

	if fromClipboard {
		c.guard.Reset()
	} else {
		c.guard.Begin(text)
	}

	if c.registry.Processed(k, text) && c.pending != nil && c.pending.RequestedText == text {
		log.Debug(log.CatPanel, "Text unchanged, keeping result", "kind", k.String(), "state", c.pending.State.String())
		return nil, nil
	}

	params := maps.Clone(c.params[k])
	c.pending = &PendingOperation{
		ID:            c.newID(),
		Kind:          k,
		RequestedText: text,
		Params:        params,
		FromSelection: captured.FromSelection,
		FromClipboard: fromClipboard,
		State:         Loading,
	}
	c.choice = 0
	c.registry.Remember(k, text)

	log.Debug(log.CatPanel, "Request issued",
		"kind", k.String(),
		"id", c.pending.ID,
		"runes", utf8.RuneCountInString(text),
		"fromSelection", captured.FromSelection,
		"fromClipboard", fromClipboard,
	)
	return &Request{ID: c.pending.ID, Kind: k, Text: text, Params: maps.Clone(params)}, nil
}

// teardown releases panel k: marking, baseline, pending operation and cache.
func (c *Controller) teardown(k feature.Kind) {
	c.doc.Unmark()
	c.guard.Reset()
	c.pending = nil
	c.choice = 0
	c.registry.Forget(k)
	c.registry.Deactivate(k)
}

// joinContinuation appends a continuation to the text it continues,
// inserting a space when neither side has one at the seam.
func joinContinuation(base, continuation string) string {
	if base == "" || continuation == "" {
		return base + continuation
	}
	last, _ := utf8.DecodeLastRuneInString(base)
	first, _ := utf8.DecodeRuneInString(continuation)
	if unicode.IsSpace(last) || unicode.IsSpace(first) {
		return base + continuation
	}
	return base + " " + continuation
}

func splitChoices(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
