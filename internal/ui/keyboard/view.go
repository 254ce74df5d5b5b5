package keyboard

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/quillkey/internal/feature"
	"github.com/zjrosen/quillkey/internal/keys"
	"github.com/zjrosen/quillkey/internal/panel"
	"github.com/zjrosen/quillkey/internal/ui/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quit.IsVisible() {
		return m.quit.Overlay()
	}
	if m.pickerOpen {
		return m.picker.Overlay()
	}

	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("quillkey"))
	b.WriteString("\n")
	b.WriteString(m.renderFeatureBar())
	b.WriteString("\n")
	b.WriteString(m.editorStyle().Render(renderDocument(m.buf)))
	b.WriteString("\n")

	if body := m.renderPanel(); body != "" {
		b.WriteString(m.panelStyle().Render(body))
		b.WriteString("\n")
	}

	if m.status != "" {
		if m.statusIsError {
			b.WriteString(styles.ErrorStyle.Render(m.status))
		} else {
			b.WriteString(styles.SuccessStyle.Render(m.status))
		}
		b.WriteString("\n")
	}

	h := help.New()
	b.WriteString(styles.StatusBarStyle.Render(h.ShortHelpView(keys.Keyboard.ShortHelp())))

	return b.String()
}

func (m Model) renderFeatureBar() string {
	active := m.ctl.Active()
	items := make([]string, 0, len(feature.All()))
	for _, k := range feature.All() {
		label := k.Emoji() + " " + k.Title()
		if k == active {
			items = append(items, styles.FeatureActiveStyle.Render(label))
			continue
		}
		items = append(items, styles.FeatureStyle.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

// renderPanel draws the open panel's body, or "" when no panel is open.
func (m Model) renderPanel() string {
	snap := m.ctl.Snapshot()
	if snap.Active == feature.None {
		return ""
	}

	header := styles.TitleStyle.Render(snap.Active.Emoji() + " " + snap.Active.Title())
	if param := snap.Active.RequiredParam(); param != "" {
		header += styles.MutedStyle.Render("  " + snap.Params[param] + " (ctrl+p)")
	}

	p := snap.Pending
	if p == nil {
		return header
	}

	var body string
	switch p.State {
	case panel.Loading:
		body = m.spinner.View() + styles.MutedStyle.Render(" Working...")
	case panel.Result:
		if len(p.Choices) > 0 {
			body = renderChoices(p.Choices, snap.Choice)
		} else {
			body = m.surface.String()
			if m.viewport.Height > 0 {
				body = m.viewport.View()
			}
		}
		body += "\n" + styles.MutedStyle.Render("ctrl+s to apply")
	case panel.Failed:
		if p.Guidance != "" {
			body = styles.WarningStyle.Render(p.Guidance)
		} else {
			body = styles.ErrorStyle.Render(errorText(p.Err))
		}
		body += "\n" + styles.MutedStyle.Render("ctrl+e to reload")
	case panel.Idle:
		body = styles.MutedStyle.Render(p.Guidance)
	}
	return header + "\n" + body
}

func renderChoices(choices []string, selected int) string {
	lines := make([]string, len(choices))
	for i, c := range choices {
		if i == selected {
			lines[i] = styles.SelectionIndicatorStyle.Render(">") + " " + lipgloss.NewStyle().Bold(true).Render(c)
			continue
		}
		lines[i] = "  " + c
	}
	return strings.Join(lines, "\n")
}

func (m Model) editorStyle() lipgloss.Style {
	if m.width > 4 {
		return styles.EditorStyle.Width(m.width - 2)
	}
	return styles.EditorStyle
}

func (m Model) panelStyle() lipgloss.Style {
	if m.width > 4 {
		return styles.PanelStyle.Width(m.width - 2)
	}
	return styles.PanelStyle
}
