// Package styles holds the colors and lipgloss styles of the keyboard UI.
package styles

import "github.com/charmbracelet/lipgloss"

// Colors. ApplyTheme rewrites these and rebuilds the styles below.
var (
	TextPrimaryColor          = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#E6EDF3"}
	TextMutedColor            = lipgloss.AdaptiveColor{Light: "#6E7781", Dark: "#8B949E"}
	StatusErrorColor          = lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#FF7B72"}
	StatusSuccessColor        = lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#7EE787"}
	StatusWarningColor        = lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#E3B341"}
	BorderDefaultColor        = lipgloss.AdaptiveColor{Light: "#D0D7DE", Dark: "#30363D"}
	BorderHighlightFocusColor = lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#58A6FF"}
	OverlayTitleColor         = lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#79C0FF"}
	OverlayBorderColor        = lipgloss.AdaptiveColor{Light: "#8C959F", Dark: "#6E7681"}
	SelectionIndicatorColor   = lipgloss.AdaptiveColor{Light: "#8250DF", Dark: "#D2A8FF"}
	SelectionBackgroundColor  = lipgloss.AdaptiveColor{Light: "#DDF4FF", Dark: "#1F3A5F"}
	MarkedTextColor           = lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#F2CC60"}
	SpinnerColor              = lipgloss.AdaptiveColor{Light: "#8250DF", Dark: "#D2A8FF"}
)

// Styles built from the colors.
var (
	TitleStyle              lipgloss.Style
	MutedStyle              lipgloss.Style
	ErrorStyle              lipgloss.Style
	SuccessStyle            lipgloss.Style
	WarningStyle            lipgloss.Style
	SelectionIndicatorStyle lipgloss.Style
	SelectedTextStyle       lipgloss.Style
	MarkedTextStyle         lipgloss.Style
	CaretStyle              lipgloss.Style
	FeatureStyle            lipgloss.Style
	FeatureActiveStyle      lipgloss.Style
	PanelStyle              lipgloss.Style
	EditorStyle             lipgloss.Style
	StatusBarStyle          lipgloss.Style
	SpinnerStyle            lipgloss.Style
)

// base holds the built-in colors so a theme can start from them.
var base map[string]lipgloss.AdaptiveColor

func init() {
	base = make(map[string]lipgloss.AdaptiveColor)
	for k, v := range colorVars() {
		base[k] = *v
	}
	rebuild()
}

func rebuild() {
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(OverlayTitleColor)
	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	ErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor)
	SuccessStyle = lipgloss.NewStyle().Foreground(StatusSuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(StatusWarningColor)
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)
	SelectedTextStyle = lipgloss.NewStyle().Background(SelectionBackgroundColor).Foreground(TextPrimaryColor)
	MarkedTextStyle = lipgloss.NewStyle().Underline(true).Foreground(MarkedTextColor)
	CaretStyle = lipgloss.NewStyle().Reverse(true)
	FeatureStyle = lipgloss.NewStyle().Foreground(TextMutedColor).Padding(0, 1)
	FeatureActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor).
		Background(SelectionBackgroundColor).Padding(0, 1)
	PanelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderHighlightFocusColor).Padding(0, 1)
	EditorStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderDefaultColor).Padding(0, 1)
	StatusBarStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	SpinnerStyle = lipgloss.NewStyle().Foreground(SpinnerColor)
}
