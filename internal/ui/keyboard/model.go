// Package keyboard is the terminal host of the AI keyboard: an editable
// document, a feature bar and the active feature panel.
//
// The bubbletea event loop is the single actor that owns the document and
// the panel controller. AI requests run as commands on their own goroutines
// and come back as outcomeMsg, which the loop hands to the controller.
package keyboard

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/quillkey/internal/ai"
	"github.com/zjrosen/quillkey/internal/document"
	"github.com/zjrosen/quillkey/internal/feature"
	"github.com/zjrosen/quillkey/internal/guard"
	"github.com/zjrosen/quillkey/internal/history"
	"github.com/zjrosen/quillkey/internal/keys"
	"github.com/zjrosen/quillkey/internal/log"
	"github.com/zjrosen/quillkey/internal/panel"
	"github.com/zjrosen/quillkey/internal/reveal"
	"github.com/zjrosen/quillkey/internal/ui/shared/picker"
	"github.com/zjrosen/quillkey/internal/ui/shared/quitmodal"
	"github.com/zjrosen/quillkey/internal/ui/styles"
)

// defaultFrameInterval is how often the view refreshes during a reveal.
const defaultFrameInterval = time.Second / 30

// Config wires the keyboard model.
type Config struct {
	Buffer     *document.Buffer
	Controller *panel.Controller
	Revealer   *reveal.Revealer
	// History records applies for undo. Nil keeps an in-memory journal.
	History *history.Journal
	// FrameInterval paces redraws while a reveal runs.
	FrameInterval time.Duration
}

// Model is the root bubbletea model.
type Model struct {
	buf      *document.Buffer
	ctl      *panel.Controller
	revealer *reveal.Revealer
	surface  *reveal.Text
	journal  *history.Journal

	ctx    context.Context
	cancel context.CancelFunc

	spinner  spinner.Model
	viewport viewport.Model

	picker     picker.Model
	pickerOpen bool
	quit       quitmodal.Model

	frameInterval time.Duration
	revealedID    string
	status        string
	statusIsError bool

	width  int
	height int
}

// New creates the keyboard model.
func New(cfg Config) Model {
	ctx, cancel := context.WithCancel(context.Background())

	frame := cfg.FrameInterval
	if frame <= 0 {
		frame = defaultFrameInterval
	}

	journal := cfg.History
	if journal == nil {
		journal = history.NewJournal(0)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	return Model{
		buf:           cfg.Buffer,
		ctl:           cfg.Controller,
		revealer:      cfg.Revealer,
		surface:       &reveal.Text{},
		journal:       journal,
		ctx:           ctx,
		cancel:        cancel,
		spinner:       sp,
		viewport:      viewport.New(0, 0),
		quit: quitmodal.New(quitmodal.Config{
			Title:   "Quit quillkey?",
			Message: "A result is pending and has not been applied.",
		}),
		frameInterval: frame,
	}
}

// Buffer returns the edited document.
func (m Model) Buffer() *document.Buffer {
	return m.buf
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = max(msg.Width-4, 10)
		m.viewport.Height = max(msg.Height/3, 3)
		m.picker = m.picker.SetSize(msg.Width, msg.Height)
		m.quit.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.quit.IsVisible() {
			var result quitmodal.Result
			m.quit, _, result = m.quit.Update(msg)
			if result == quitmodal.ResultQuit {
				m.shutdown()
				return m, tea.Quit
			}
			return m, nil
		}
		if m.pickerOpen {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)

	case paramChosenMsg:
		m.pickerOpen = false
		if err := m.ctl.SetParam(msg.Kind, msg.Kind.RequiredParam(), msg.Value); err != nil {
			m.setError(err.Error())
			return m, nil
		}
		m.setStatus(msg.Kind.Title() + ": " + msg.Value)
		if m.ctl.Active() == msg.Kind {
			req, err := m.ctl.Reload(m.ctx)
			return m, m.afterLoad(req, err)
		}
		return m, nil

	case pickerClosedMsg:
		m.pickerOpen = false
		return m, nil

	case outcomeMsg:
		if !m.ctl.Complete(msg.Outcome) {
			return m, nil
		}
		return m, m.showPending()

	case frameMsg:
		running := m.revealer.Running(m.surface)
		m.viewport.SetContent(m.surface.String())
		m.viewport.GotoBottom()
		if running {
			return m, m.frameTick()
		}
		return m, nil

	case spinner.TickMsg:
		if p := m.ctl.Pending(); p == nil || p.State != panel.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := keys.Keyboard

	if kind, ok := k.Feature(msg); ok {
		m.clearStatus()
		req, err := m.ctl.Activate(m.ctx, kind)
		return m, m.afterLoad(req, err)
	}

	switch {
	case key.Matches(msg, k.Quit):
		if p := m.ctl.Pending(); p != nil && (p.State == panel.Loading || p.State == panel.Result) {
			m.quit.Show()
			return m, nil
		}
		m.shutdown()
		return m, tea.Quit

	case key.Matches(msg, k.Reload):
		m.clearStatus()
		req, err := m.ctl.Reload(m.ctx)
		return m, m.afterLoad(req, err)

	case key.Matches(msg, k.Close):
		m.ctl.Close()
		m.resetSurface()
		m.clearStatus()
		return m, nil

	case key.Matches(msg, k.Apply):
		return m.apply()

	case key.Matches(msg, k.Params):
		return m.openParams()

	case key.Matches(msg, k.NextChoice):
		if snap := m.ctl.Snapshot(); snap.HasResult() && len(snap.Pending.Choices) > 1 {
			_ = m.ctl.Choose((snap.Choice + 1) % len(snap.Pending.Choices))
		}
		return m, nil

	case key.Matches(msg, k.Undo):
		m.undo()
		return m, nil

	case key.Matches(msg, k.SelectAll):
		m.buf.SelectAll()
		return m, nil
	}

	editKey(m.buf, msg)
	return m, nil
}

func (m Model) apply() (tea.Model, tea.Cmd) {
	kind := m.ctl.Active()
	before := m.buf.String()
	outcome, err := m.ctl.Apply()
	switch {
	case errors.Is(err, panel.ErrNoActivePanel), errors.Is(err, panel.ErrNotReady):
		m.setError("Nothing to apply yet.")
	case err != nil:
		m.setError(err.Error())
	case outcome == guard.OutcomeConflict:
		m.resetSurface()
		m.setError("Text changed since it was captured. Reload to try again.")
	case outcome == guard.OutcomeApplied:
		m.resetSurface()
		m.journal.Add(history.Entry{
			Kind:        kind.String(),
			ResultRunes: utf8.RuneCountInString(m.ctl.LastApplied()),
			Before:      before,
			After:       m.buf.String(),
			At:          time.Now(),
		})
		m.setStatus(kind.Title() + " applied.")
	}
	log.Debug(log.CatUI, "Apply", "kind", kind.String(), "outcome", outcome.String())
	return m, nil
}

// undo restores the document as it was before the last apply, provided it
// has not been edited since.
func (m *Model) undo() {
	last, ok := m.journal.Last()
	if !ok || !last.Undoable() {
		m.setError("Nothing to undo.")
		return
	}
	if m.ctl.Active() != feature.None {
		m.ctl.Close()
		m.resetSurface()
	}
	if m.buf.String() != last.After {
		m.setError("Text changed since the last apply.")
		return
	}
	m.journal.Pop()
	m.buf.SelectAll()
	m.buf.Insert(last.Before)
	log.Info(log.CatApply, "Undid apply", "kind", last.Kind, "runes", len([]rune(last.Before)))
	name := last.Kind
	if k, err := feature.ParseKind(last.Kind); err == nil {
		name = k.Title()
	}
	m.setStatus("Undid " + name + ".")
}

func (m Model) openParams() (tea.Model, tea.Cmd) {
	kind := m.ctl.Active()
	choices := kind.Choices()
	if len(choices) == 0 {
		m.setError("This feature has no options.")
		return m, nil
	}

	options := make([]picker.Option, len(choices))
	for i, c := range choices {
		options[i] = picker.Option{Label: c.Label(), Value: c.Name}
	}
	current := m.ctl.Params(kind)[kind.RequiredParam()]

	title := "Tone"
	if kind.RequiredParam() == feature.ParamLanguage {
		title = "Language"
	}
	m.picker = picker.NewWithConfig(picker.Config{
		Title:    title,
		Options:  options,
		Selected: picker.FindIndexByValue(options, current),
		OnSelect: func(o picker.Option) tea.Msg { return paramChosenMsg{Kind: kind, Value: o.Value} },
		OnCancel: func() tea.Msg { return pickerClosedMsg{} },
	}).SetSize(m.width, m.height)
	m.pickerOpen = true
	return m, nil
}

// afterLoad turns the result of Activate or Reload into commands.
func (m *Model) afterLoad(req *panel.Request, err error) tea.Cmd {
	if err != nil {
		m.resetSurface()
		m.setError(err.Error())
		return nil
	}
	if req == nil {
		// Unchanged text keeps the shown result; anything else clears it.
		if p := m.ctl.Pending(); p == nil || p.ID != m.revealedID {
			m.resetSurface()
		}
		return nil
	}
	m.resetSurface()
	return tea.Batch(m.spinner.Tick, m.execute(*req))
}

// execute runs req off the event loop.
func (m Model) execute(req panel.Request) tea.Cmd {
	ctl, ctx := m.ctl, m.ctx
	return func() tea.Msg {
		return outcomeMsg{Outcome: ctl.Execute(ctx, req)}
	}
}

// showPending starts revealing a fresh result.
func (m *Model) showPending() tea.Cmd {
	p := m.ctl.Pending()
	if p == nil || p.State != panel.Result {
		return nil
	}
	text := p.Result
	if len(p.Choices) > 0 {
		text = ""
	}
	m.revealedID = p.ID
	m.revealer.Start(m.surface, text, nil)
	return m.frameTick()
}

func (m Model) frameTick() tea.Cmd {
	return tea.Tick(m.frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

func (m *Model) resetSurface() {
	m.revealer.Cancel(m.surface)
	m.surface.Reset()
	m.viewport.SetContent("")
	m.revealedID = ""
}

func (m *Model) shutdown() {
	m.ctl.Teardown()
	m.revealer.Stop()
	m.cancel()
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusIsError = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusIsError = true
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusIsError = false
}

// errorText is the inline message for a failed request.
func errorText(err error) string {
	switch {
	case errors.Is(err, ai.ErrUnauthorized):
		return "The AI service rejected the request. Check your API key."
	case errors.Is(err, ai.ErrRateLimited):
		return "Too many requests. Wait a moment, then reload."
	case errors.Is(err, ai.ErrUnavailable):
		return "The AI service is unavailable right now."
	case errors.Is(err, ai.ErrEmptyOutput):
		return "The AI service returned nothing."
	case errors.Is(err, ai.ErrMissingParam):
		return "Pick an option first (ctrl+p)."
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Request cancelled."
	default:
		return "Something went wrong: " + err.Error()
	}
}
