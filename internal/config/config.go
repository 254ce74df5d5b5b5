// Package config loads and validates quillkey settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/quillkey/internal/ai"
	"github.com/zjrosen/quillkey/internal/capture"
	"github.com/zjrosen/quillkey/internal/document"
	"github.com/zjrosen/quillkey/internal/feature"
	"github.com/zjrosen/quillkey/internal/history"
	"github.com/zjrosen/quillkey/internal/log"
	"github.com/zjrosen/quillkey/internal/reveal"
	"github.com/zjrosen/quillkey/internal/ui/styles"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full settings tree.
type Config struct {
	API      APIConfig      `mapstructure:"api" yaml:"api"`
	Capture  CaptureConfig  `mapstructure:"capture" yaml:"capture"`
	Reveal   RevealConfig   `mapstructure:"reveal" yaml:"reveal"`
	Defaults DefaultsConfig `mapstructure:"defaults" yaml:"defaults"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	History  HistoryConfig  `mapstructure:"history" yaml:"history"`
	Theme    ThemeConfig    `mapstructure:"theme" yaml:"theme"`
}

// APIConfig selects the AI provider.
type APIConfig struct {
	Provider        string        `mapstructure:"provider" yaml:"provider"`
	BaseURL         string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout         time.Duration `mapstructure:"timeout" yaml:"timeout"`
	GeminiModel     string        `mapstructure:"gemini_model" yaml:"gemini_model"`
	GeminiAPIKeyEnv string        `mapstructure:"gemini_api_key_env" yaml:"gemini_api_key_env"`
}

// CaptureConfig tunes context capture.
type CaptureConfig struct {
	Window      int           `mapstructure:"window" yaml:"window"`
	SettleDelay time.Duration `mapstructure:"settle_delay" yaml:"settle_delay"`
	MaxSteps    int           `mapstructure:"max_steps" yaml:"max_steps"`
}

// RevealConfig paces result reveals.
type RevealConfig struct {
	Budget   time.Duration `mapstructure:"budget" yaml:"budget"`
	Interval time.Duration `mapstructure:"interval" yaml:"interval"`
}

// DefaultsConfig holds initial feature parameters.
type DefaultsConfig struct {
	Tone     string `mapstructure:"tone" yaml:"tone"`
	Language string `mapstructure:"language" yaml:"language"`
}

// LogConfig controls the debug log file. An empty path disables logging.
type LogConfig struct {
	Path  string `mapstructure:"path" yaml:"path"`
	Level string `mapstructure:"level" yaml:"level"`
}

// HistoryConfig controls the apply journal. An empty path keeps it in
// memory only.
type HistoryConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
	Max  int    `mapstructure:"max" yaml:"max"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		API: APIConfig{
			Provider:        ai.ProviderHTTP,
			BaseURL:         ai.DefaultBaseURL,
			Timeout:         ai.DefaultTimeout,
			GeminiModel:     ai.DefaultGeminiModel,
			GeminiAPIKeyEnv: "GEMINI_API_KEY",
		},
		Capture: CaptureConfig{
			Window:      document.DefaultWindow,
			SettleDelay: 0,
			MaxSteps:    capture.DefaultMaxSteps,
		},
		Reveal: RevealConfig{
			Budget:   reveal.DefaultBudget,
			Interval: reveal.DefaultInterval,
		},
		Defaults: DefaultsConfig{
			Tone:     "Professional",
			Language: "English",
		},
		Log: LogConfig{
			Level: "info",
		},
		History: HistoryConfig{
			Max: history.DefaultMaxEntries,
		},
		Theme: ThemeConfig{
			Preset: "default",
		},
	}
}

// SetDefaults registers Defaults on v so partial files inherit them.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("api.provider", d.API.Provider)
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("api.gemini_model", d.API.GeminiModel)
	v.SetDefault("api.gemini_api_key_env", d.API.GeminiAPIKeyEnv)
	v.SetDefault("capture.window", d.Capture.Window)
	v.SetDefault("capture.settle_delay", d.Capture.SettleDelay)
	v.SetDefault("capture.max_steps", d.Capture.MaxSteps)
	v.SetDefault("reveal.budget", d.Reveal.Budget)
	v.SetDefault("reveal.interval", d.Reveal.Interval)
	v.SetDefault("defaults.tone", d.Defaults.Tone)
	v.SetDefault("defaults.language", d.Defaults.Language)
	v.SetDefault("log.path", d.Log.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("history.path", d.History.Path)
	v.SetDefault("history.max", d.History.Max)
	v.SetDefault("theme.preset", d.Theme.Preset)
}

// Load reads the config file at path, or the first file found by
// Locate when path is empty. Missing files yield the defaults. The
// returned path is the file actually read, or "".
func Load(path string) (Config, string, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("QUILLKEY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = Locate()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, "", fmt.Errorf("reading config %s: %w", path, err)
		}
		log.Debug(log.CatConfig, "Loaded config", "path", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, "", err
	}
	return cfg, path, nil
}

// Validate rejects values the keyboard cannot run with.
func (c Config) Validate() error {
	switch strings.ToLower(c.API.Provider) {
	case ai.ProviderHTTP, ai.ProviderGemini:
	default:
		return fmt.Errorf("%w: api.provider %q (want %s or %s)", ErrInvalid, c.API.Provider, ai.ProviderHTTP, ai.ProviderGemini)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("%w: api.timeout must not be negative", ErrInvalid)
	}
	if c.Capture.Window < 1 {
		return fmt.Errorf("%w: capture.window must be at least 1", ErrInvalid)
	}
	if c.Capture.MaxSteps < 1 {
		return fmt.Errorf("%w: capture.max_steps must be at least 1", ErrInvalid)
	}
	if c.Capture.SettleDelay < 0 {
		return fmt.Errorf("%w: capture.settle_delay must not be negative", ErrInvalid)
	}
	if c.Reveal.Interval <= 0 || c.Reveal.Budget < c.Reveal.Interval {
		return fmt.Errorf("%w: reveal.budget must be at least reveal.interval (> 0)", ErrInvalid)
	}
	if _, ok := feature.FindChoice(feature.Tones, c.Defaults.Tone); !ok {
		return fmt.Errorf("%w: defaults.tone %q", ErrInvalid, c.Defaults.Tone)
	}
	if _, ok := feature.FindChoice(feature.Languages, c.Defaults.Language); !ok {
		return fmt.Errorf("%w: defaults.language %q", ErrInvalid, c.Defaults.Language)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	if c.History.Max < 0 || c.History.Max > history.MaxEntries {
		return fmt.Errorf("%w: history.max must be between 0 and %d", ErrInvalid, history.MaxEntries)
	}
	if _, ok := styles.Presets[c.Theme.Preset]; c.Theme.Preset != "" && !ok {
		return fmt.Errorf("%w: unknown theme preset %q", ErrInvalid, c.Theme.Preset)
	}
	return nil
}

// AIOptions maps the api section onto provider options.
func (c Config) AIOptions() ai.Options {
	key := ""
	if c.API.GeminiAPIKeyEnv != "" {
		key = os.Getenv(c.API.GeminiAPIKeyEnv)
	}
	return ai.Options{
		Provider:     c.API.Provider,
		BaseURL:      c.API.BaseURL,
		Timeout:      c.API.Timeout,
		GeminiAPIKey: key,
		GeminiModel:  c.API.GeminiModel,
	}
}

// CaptureSettings maps the capture section onto capture settings.
func (c Config) CaptureSettings() capture.Config {
	return capture.Config{
		SettleDelay: c.Capture.SettleDelay,
		MaxSteps:    c.Capture.MaxSteps,
	}
}

// RevealSettings maps the reveal section onto reveal settings.
func (c Config) RevealSettings() reveal.Config {
	return reveal.Config{
		Budget:   c.Reveal.Budget,
		Interval: c.Reveal.Interval,
	}
}

// PanelDefaults returns the initial parameters of each feature.
func (c Config) PanelDefaults() map[feature.Kind]map[string]string {
	return map[feature.Kind]map[string]string{
		feature.ToneChange: {feature.ParamTone: c.Defaults.Tone},
		feature.Translate:  {feature.ParamLanguage: c.Defaults.Language},
	}
}

// WriteDefaultConfig writes Defaults to path, creating parent directories.
func WriteDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := Encode(Defaults())
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	header := "# quillkey configuration\n# api.provider: http or gemini\n\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Encode renders c as YAML with durations in their string form.
func Encode(c Config) ([]byte, error) {
	type api struct {
		Provider        string `yaml:"provider"`
		BaseURL         string `yaml:"base_url"`
		Timeout         string `yaml:"timeout"`
		GeminiModel     string `yaml:"gemini_model"`
		GeminiAPIKeyEnv string `yaml:"gemini_api_key_env"`
	}
	type capt struct {
		Window      int    `yaml:"window"`
		SettleDelay string `yaml:"settle_delay"`
		MaxSteps    int    `yaml:"max_steps"`
	}
	type rev struct {
		Budget   string `yaml:"budget"`
		Interval string `yaml:"interval"`
	}
	doc := struct {
		API      api            `yaml:"api"`
		Capture  capt           `yaml:"capture"`
		Reveal   rev            `yaml:"reveal"`
		Defaults DefaultsConfig `yaml:"defaults"`
		Log      LogConfig      `yaml:"log"`
		History  HistoryConfig  `yaml:"history"`
		Theme    ThemeConfig    `yaml:"theme"`
	}{
		API: api{
			Provider:        c.API.Provider,
			BaseURL:         c.API.BaseURL,
			Timeout:         c.API.Timeout.String(),
			GeminiModel:     c.API.GeminiModel,
			GeminiAPIKeyEnv: c.API.GeminiAPIKeyEnv,
		},
		Capture: capt{
			Window:      c.Capture.Window,
			SettleDelay: c.Capture.SettleDelay.String(),
			MaxSteps:    c.Capture.MaxSteps,
		},
		Reveal: rev{
			Budget:   c.Reveal.Budget.String(),
			Interval: c.Reveal.Interval.String(),
		},
		Defaults: c.Defaults,
		Log:      c.Log,
		History:  c.History,
		Theme:    c.Theme,
	}
	return yaml.Marshal(doc)
}
