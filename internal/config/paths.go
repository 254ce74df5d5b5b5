package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ProjectConfigPath is the project-local config file, relative to the
// working directory.
var ProjectConfigPath = filepath.Join(".quillkey", "config.yaml")

// UserConfigPath returns ~/.config/quillkey/config.yaml.
func UserConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "quillkey", "config.yaml")
}

// Locate returns the project config if present, else the user config if
// present, else "".
func Locate() string {
	for _, p := range []string{ProjectConfigPath, UserConfigPath()} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LogPath returns the default debug log path based on the config location.
// If config is project-local (.quillkey/config.yaml), the log sits alongside
// it. Otherwise, uses ~/.config/quillkey/quillkey.log.
func LogPath(configPath string) string {
	home, _ := os.UserHomeDir()
	fallback := filepath.Join(home, ".config", "quillkey", "quillkey.log")
	if configPath == "" {
		return fallback
	}

	clean := filepath.Clean(configPath)
	if strings.HasSuffix(clean, ProjectConfigPath) {
		return filepath.Join(filepath.Dir(clean), "quillkey.log")
	}

	return fallback
}
