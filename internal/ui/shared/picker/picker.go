// Package picker provides a generic option picker component.
package picker

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/quillkey/internal/keys"
	"github.com/zjrosen/quillkey/internal/ui/styles"
)

// defaultMaxVisible caps how many options are drawn at once.
const defaultMaxVisible = 8

// Option represents a picker option with label and value.
type Option struct {
	Label string
	Value string
	Color lipgloss.TerminalColor // Optional color for the label
}

// Config defines picker configuration with optional callbacks.
type Config struct {
	Title    string
	Options  []Option
	Selected int // Initially selected index

	// MaxVisible limits the rows drawn; the list scrolls to keep the
	// selection in view. Zero uses 8.
	MaxVisible int

	// OnSelect produces a custom message when an option is selected (Enter pressed).
	// If nil, picker produces SelectMsg{Option: selected}.
	OnSelect func(selected Option) tea.Msg

	// OnCancel produces a custom message when cancelled (Esc/q pressed).
	// If nil, picker produces CancelMsg{}.
	OnCancel func() tea.Msg
}

// SelectMsg is sent when an option is selected (if OnSelect is nil).
type SelectMsg struct {
	Option Option
}

// CancelMsg is sent when the picker is cancelled.
type CancelMsg struct{}

// Model holds the picker state.
type Model struct {
	config         Config
	selected       int
	offset         int
	boxWidth       int // Width of the picker box itself
	viewportWidth  int
	viewportHeight int
}

// NewWithConfig creates a new picker with the given configuration.
func NewWithConfig(cfg Config) Model {
	if cfg.MaxVisible <= 0 {
		cfg.MaxVisible = defaultMaxVisible
	}
	m := Model{config: cfg}
	return m.SetSelected(cfg.Selected)
}

// New creates a new picker with title and options.
func New(title string, options []Option) Model {
	return NewWithConfig(Config{
		Title:   title,
		Options: options,
	})
}

// SetSize sets the viewport dimensions used by Overlay.
func (m Model) SetSize(width, height int) Model {
	m.viewportWidth = width
	m.viewportHeight = height
	return m
}

// SetBoxWidth sets the width of the picker box itself.
func (m Model) SetBoxWidth(width int) Model {
	m.boxWidth = width
	return m
}

// SetSelected sets the selected index. Out-of-range values are ignored.
func (m Model) SetSelected(index int) Model {
	if index >= 0 && index < len(m.config.Options) {
		m.selected = index
		m.scrollToSelected()
	}
	return m
}

// Selected returns the currently selected option.
func (m Model) Selected() Option {
	if m.selected >= 0 && m.selected < len(m.config.Options) {
		return m.config.Options[m.selected]
	}
	return Option{}
}

// Update handles navigation, enter and esc.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Picker.Down):
			if m.selected < len(m.config.Options)-1 {
				m.selected++
				m.scrollToSelected()
			}
		case key.Matches(msg, keys.Picker.Up):
			if m.selected > 0 {
				m.selected--
				m.scrollToSelected()
			}
		case key.Matches(msg, keys.Picker.Confirm):
			return m, m.selectCmd()
		case key.Matches(msg, keys.Picker.Cancel):
			return m, m.cancelCmd()
		}
	}
	return m, nil
}

func (m *Model) scrollToSelected() {
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+m.config.MaxVisible {
		m.offset = m.selected - m.config.MaxVisible + 1
	}
}

// selectCmd returns the appropriate select command.
func (m Model) selectCmd() tea.Cmd {
	selected := m.Selected()
	if m.config.OnSelect != nil {
		return func() tea.Msg { return m.config.OnSelect(selected) }
	}
	return func() tea.Msg { return SelectMsg{Option: selected} }
}

// cancelCmd returns the appropriate cancel command.
func (m Model) cancelCmd() tea.Cmd {
	if m.config.OnCancel != nil {
		return func() tea.Msg { return m.config.OnCancel() }
	}
	return func() tea.Msg { return CancelMsg{} }
}

// View renders the picker box (without positioning).
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1)

	width := m.boxWidth
	if width == 0 {
		width = 28
	}

	end := min(m.offset+m.config.MaxVisible, len(m.config.Options))
	var options strings.Builder
	for i := m.offset; i < end; i++ {
		opt := m.config.Options[i]
		labelStyle := lipgloss.NewStyle()
		if opt.Color != nil {
			labelStyle = labelStyle.Foreground(opt.Color)
		}
		if i == m.selected {
			options.WriteString(styles.SelectionIndicatorStyle.Render(">") + labelStyle.Bold(true).Render(opt.Label))
		} else {
			options.WriteString(" " + labelStyle.Render(opt.Label))
		}
		if i < end-1 {
			options.WriteString("\n")
		}
	}

	title := m.config.Title
	if len(m.config.Options) > m.config.MaxVisible {
		title += styles.MutedStyle.Render(" (" + strconv.Itoa(m.selected+1) + "/" + strconv.Itoa(len(m.config.Options)) + ")")
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(width)

	dividerStyle := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor)
	divider := dividerStyle.Render(strings.Repeat("─", width))
	content := titleStyle.Render(title) + "\n" +
		divider + "\n" +
		options.String()

	return boxStyle.Render(content)
}

// Overlay renders the picker centered in the viewport.
func (m Model) Overlay() string {
	return lipgloss.Place(
		m.viewportWidth, m.viewportHeight,
		lipgloss.Center, lipgloss.Center,
		m.View(),
	)
}

// FindIndexByValue returns the index of the option with the given value.
func FindIndexByValue(options []Option, value string) int {
	for i, opt := range options {
		if opt.Value == value {
			return i
		}
	}
	return 0
}
