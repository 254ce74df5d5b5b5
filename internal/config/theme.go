package config

import (
	"fmt"

	"github.com/zjrosen/quillkey/internal/ui/styles"
)

// ThemeConfig selects a color preset and per-color overrides.
type ThemeConfig struct {
	Preset string         `mapstructure:"preset" yaml:"preset"`
	Mode   string         `mapstructure:"mode" yaml:"mode,omitempty"`
	Colors map[string]any `mapstructure:"colors" yaml:"colors,omitempty"`
}

// FlattenedColors returns Colors with nested maps joined into dot keys.
// Viper splits "text.primary" into text -> primary, so both shapes occur.
func (t ThemeConfig) FlattenedColors() map[string]string {
	out := make(map[string]string)
	flatten("", t.Colors, out)
	return out
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// Styles converts t for styles.ApplyTheme.
func (t ThemeConfig) Styles() styles.ThemeConfig {
	return styles.ThemeConfig{
		Preset: t.Preset,
		Mode:   t.Mode,
		Colors: t.FlattenedColors(),
	}
}
