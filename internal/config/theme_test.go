package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/quillkey/internal/ui/styles"
)

func TestThemeConfig_WithPreset(t *testing.T) {
	t.Cleanup(func() { _ = styles.ApplyTheme(styles.ThemeConfig{}) })
	cfg := loadConfigFromYAML(t, `
theme:
  preset: catppuccin-mocha
`)

	require.Equal(t, "catppuccin-mocha", cfg.Theme.Preset)
	require.NoError(t, styles.ApplyTheme(cfg.Theme.Styles()))
	require.Equal(t, "#CDD6F4", styles.TextPrimaryColor.Dark)
}

func TestThemeConfig_WithColorOverridesFromYAML(t *testing.T) {
	t.Cleanup(func() { _ = styles.ApplyTheme(styles.ThemeConfig{}) })
	// Viper treats "text.primary" as nested: text -> primary
	cfg := loadConfigFromYAML(t, `
theme:
  colors:
    text.primary: "#FF0000"
    status.error: "#00FF00"
    marked: "#0000FF"
`)

	flattened := cfg.Theme.FlattenedColors()
	require.Equal(t, "#FF0000", flattened["text.primary"])
	require.Equal(t, "#00FF00", flattened["status.error"])
	require.Equal(t, "#0000FF", flattened["marked"])

	require.NoError(t, styles.ApplyTheme(cfg.Theme.Styles()))
	require.Equal(t, "#FF0000", styles.TextPrimaryColor.Dark)
	require.Equal(t, "#0000FF", styles.MarkedTextColor.Dark)
}

func TestThemeConfig_InvalidPreset(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
theme:
  preset: nonexistent-theme
`)

	require.ErrorIs(t, cfg.Validate(), ErrInvalid)
	err := styles.ApplyTheme(cfg.Theme.Styles())
	require.ErrorContains(t, err, "unknown theme preset")
}
