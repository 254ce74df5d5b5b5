package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/quillkey/internal/ai"
	"github.com/zjrosen/quillkey/internal/feature"
)

// loadConfigFromYAML decodes yaml the way Load does, defaults included.
func loadConfigFromYAML(t *testing.T, yaml string) Config {
	t.Helper()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configPath, []byte(yaml), 0644)
	require.NoError(t, err)

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(configPath)
	err = v.ReadInConfig()
	require.NoError(t, err)

	var cfg Config
	err = v.Unmarshal(&cfg)
	require.NoError(t, err)

	return cfg
}

func TestDefaults_Valid(t *testing.T) {
	require.NoError(t, Defaults().Validate())
}

func TestLoad_PartialFileInheritsDefaults(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
api:
  provider: gemini
  timeout: 15s
reveal:
  budget: 2s
defaults:
  tone: Witty
`)

	require.Equal(t, ai.ProviderGemini, cfg.API.Provider)
	require.Equal(t, 15*time.Second, cfg.API.Timeout)
	require.Equal(t, ai.DefaultBaseURL, cfg.API.BaseURL)
	require.Equal(t, 2*time.Second, cfg.Reveal.Budget)
	require.Equal(t, time.Second/60, cfg.Reveal.Interval)
	require.Equal(t, "Witty", cfg.Defaults.Tone)
	require.Equal(t, "English", cfg.Defaults.Language)
	require.NoError(t, cfg.Validate())
}

func TestLoad_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("capture:\n  window: 16\n"), 0644))

	cfg, used, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, path, used)
	require.Equal(t, 16, cfg.Capture.Window)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defaults:\n  language: Klingon\n"), 0644))

	_, _, err := Load(path)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown provider", func(c *Config) { c.API.Provider = "carrier-pigeon" }},
		{"negative timeout", func(c *Config) { c.API.Timeout = -time.Second }},
		{"zero window", func(c *Config) { c.Capture.Window = 0 }},
		{"zero max steps", func(c *Config) { c.Capture.MaxSteps = 0 }},
		{"negative settle", func(c *Config) { c.Capture.SettleDelay = -1 }},
		{"budget below interval", func(c *Config) { c.Reveal.Budget = time.Millisecond; c.Reveal.Interval = time.Second }},
		{"zero interval", func(c *Config) { c.Reveal.Interval = 0 }},
		{"unknown tone", func(c *Config) { c.Defaults.Tone = "Grumpy" }},
		{"unknown language", func(c *Config) { c.Defaults.Language = "Elvish" }},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }},
		{"negative history", func(c *Config) { c.History.Max = -1 }},
		{"oversized history", func(c *Config) { c.History.Max = 1 << 20 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestWriteDefaultConfig_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".quillkey", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "provider: http")
	require.Contains(t, string(data), "timeout: 1m0s")
	require.Contains(t, string(data), "tone: Professional")

	cfg, _, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Defaults(), cfg)
}

func TestAIOptions_ReadsKeyFromEnv(t *testing.T) {
	t.Setenv("QUILLKEY_TEST_GEMINI", "secret")
	cfg := Defaults()
	cfg.API.Provider = ai.ProviderGemini
	cfg.API.GeminiAPIKeyEnv = "QUILLKEY_TEST_GEMINI"

	opts := cfg.AIOptions()
	require.Equal(t, "secret", opts.GeminiAPIKey)
	require.Equal(t, ai.ProviderGemini, opts.Provider)
}

func TestPanelDefaults(t *testing.T) {
	cfg := Defaults()
	cfg.Defaults.Language = "Spanish"
	d := cfg.PanelDefaults()
	require.Equal(t, "Spanish", d[feature.Translate][feature.ParamLanguage])
	require.Equal(t, "Professional", d[feature.ToneChange][feature.ParamTone])
}

func TestLogPath(t *testing.T) {
	home, _ := os.UserHomeDir()
	fallback := filepath.Join(home, ".config", "quillkey", "quillkey.log")

	require.Equal(t, fallback, LogPath(""))
	require.Equal(t, filepath.Join("proj", ".quillkey", "quillkey.log"), LogPath(filepath.Join("proj", ".quillkey", "config.yaml")))
	require.Equal(t, fallback, LogPath("/etc/other.yaml"))
}
