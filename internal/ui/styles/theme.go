package styles

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ThemeConfig selects a preset and per-color overrides. Color keys use
// dot notation ("text.primary").
type ThemeConfig struct {
	Preset string
	Mode   string
	Colors map[string]string
}

// Preset is a named palette.
type Preset struct {
	Description string
	Colors      map[string]string
}

// Presets lists the built-in palettes.
var Presets = map[string]Preset{
	"default": {
		Description: "Adaptive GitHub-like palette (follows terminal background)",
	},
	"catppuccin-mocha": {
		Description: "Soothing pastel theme, dark",
		Colors: map[string]string{
			"text.primary":         "#CDD6F4",
			"text.muted":           "#6C7086",
			"status.error":         "#F38BA8",
			"status.success":       "#A6E3A1",
			"status.warning":       "#F9E2AF",
			"border.default":       "#45475A",
			"border.focus":         "#89B4FA",
			"overlay.title":        "#89DCEB",
			"overlay.border":       "#585B70",
			"selection.indicator":  "#CBA6F7",
			"selection.background": "#313244",
			"marked":               "#FAB387",
			"spinner":              "#CBA6F7",
		},
	},
	"dracula": {
		Description: "Dark theme with vibrant accents",
		Colors: map[string]string{
			"text.primary":         "#F8F8F2",
			"text.muted":           "#6272A4",
			"status.error":         "#FF5555",
			"status.success":       "#50FA7B",
			"status.warning":       "#F1FA8C",
			"border.default":       "#44475A",
			"border.focus":         "#BD93F9",
			"overlay.title":        "#8BE9FD",
			"overlay.border":       "#6272A4",
			"selection.indicator":  "#FF79C6",
			"selection.background": "#44475A",
			"marked":               "#FFB86C",
			"spinner":              "#BD93F9",
		},
	},
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// colorVars maps color keys onto the package variables they set.
func colorVars() map[string]*lipgloss.AdaptiveColor {
	return map[string]*lipgloss.AdaptiveColor{
		"text.primary":         &TextPrimaryColor,
		"text.muted":           &TextMutedColor,
		"status.error":         &StatusErrorColor,
		"status.success":       &StatusSuccessColor,
		"status.warning":       &StatusWarningColor,
		"border.default":       &BorderDefaultColor,
		"border.focus":         &BorderHighlightFocusColor,
		"overlay.title":        &OverlayTitleColor,
		"overlay.border":       &OverlayBorderColor,
		"selection.indicator":  &SelectionIndicatorColor,
		"selection.background": &SelectionBackgroundColor,
		"marked":               &MarkedTextColor,
		"spinner":              &SpinnerColor,
	}
}

// ColorKeys returns every overridable color key, sorted.
func ColorKeys() []string {
	vars := colorVars()
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ApplyTheme applies cfg's preset, then its overrides, then rebuilds the
// styles. Nothing changes when cfg is invalid.
func ApplyTheme(cfg ThemeConfig) error {
	var preset Preset
	if cfg.Preset != "" {
		p, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset %q", cfg.Preset)
		}
		preset = p
	}

	switch strings.ToLower(cfg.Mode) {
	case "", "auto":
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	default:
		return fmt.Errorf("unknown theme mode %q", cfg.Mode)
	}

	vars := colorVars()
	merged := make(map[string]string, len(preset.Colors)+len(cfg.Colors))
	for k, v := range preset.Colors {
		merged[k] = v
	}
	for k, v := range cfg.Colors {
		merged[k] = v
	}
	for k, v := range merged {
		if _, ok := vars[k]; !ok {
			return fmt.Errorf("unknown theme color %q", k)
		}
		if !hexColor.MatchString(v) {
			return fmt.Errorf("theme color %s: %q is not a hex color", k, v)
		}
	}

	for k, c := range base {
		*vars[k] = c
	}
	for k, v := range merged {
		*vars[k] = lipgloss.AdaptiveColor{Light: v, Dark: v}
	}
	rebuild()
	return nil
}
