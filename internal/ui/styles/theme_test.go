package styles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func resetTheme(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { require.NoError(t, ApplyTheme(ThemeConfig{})) })
}

func TestApplyTheme_Preset(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{Preset: "catppuccin-mocha"}))
	require.Equal(t, "#CDD6F4", TextPrimaryColor.Dark)
	require.Equal(t, "#FAB387", MarkedTextColor.Dark)
}

func TestApplyTheme_OverrideWinsOverPreset(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{
		Preset: "dracula",
		Colors: map[string]string{"text.primary": "#123456"},
	}))
	require.Equal(t, "#123456", TextPrimaryColor.Dark)
	require.Equal(t, "#FF5555", StatusErrorColor.Dark)
}

func TestApplyTheme_ResetsBetweenCalls(t *testing.T) {
	resetTheme(t)
	original := StatusErrorColor
	require.NoError(t, ApplyTheme(ThemeConfig{Preset: "dracula"}))
	require.NoError(t, ApplyTheme(ThemeConfig{Preset: "default"}))
	require.Equal(t, original, StatusErrorColor)
}

func TestApplyTheme_Errors(t *testing.T) {
	resetTheme(t)
	before := TextPrimaryColor

	err := ApplyTheme(ThemeConfig{Preset: "nonexistent-theme"})
	require.ErrorContains(t, err, "unknown theme preset")

	err = ApplyTheme(ThemeConfig{Colors: map[string]string{"text.nope": "#FFFFFF"}})
	require.ErrorContains(t, err, "unknown theme color")

	err = ApplyTheme(ThemeConfig{Colors: map[string]string{"text.primary": "red"}})
	require.ErrorContains(t, err, "not a hex color")

	err = ApplyTheme(ThemeConfig{Mode: "sepia"})
	require.ErrorContains(t, err, "unknown theme mode")

	require.Equal(t, before, TextPrimaryColor, "invalid themes change nothing")
}

func TestPresets_UseKnownKeys(t *testing.T) {
	known := make(map[string]bool)
	for _, k := range ColorKeys() {
		known[k] = true
	}
	for name, p := range Presets {
		require.NotEmpty(t, p.Description, name)
		for k := range p.Colors {
			require.True(t, known[k], "preset %s uses unknown key %s", name, k)
		}
	}
}
