package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/quillkey/internal/config"
	"github.com/zjrosen/quillkey/internal/history"
)

func TestPrintCatalog(t *testing.T) {
	var buf bytes.Buffer
	printCatalog(&buf)
	out := buf.String()

	require.Contains(t, out, "ctrl+g")
	require.Contains(t, out, "Check Grammar")
	require.Contains(t, out, "find-synonyms")
	require.Contains(t, out, "Sarcastic")
	require.Contains(t, out, "Chinese (Traditional)")
}

func TestPrintThemes(t *testing.T) {
	var buf bytes.Buffer
	printThemes(&buf)
	out := buf.String()

	require.Contains(t, out, "catppuccin-mocha")
	require.Contains(t, out, "dracula")
	require.Less(t, bytes.Index(buf.Bytes(), []byte("catppuccin-mocha")), bytes.Index(buf.Bytes(), []byte("dracula")), "presets are sorted")
}

func TestInit_WritesProjectConfig(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	var out bytes.Buffer
	initCmd.SetOut(&out)
	require.NoError(t, runInit(initCmd, nil))
	require.Contains(t, out.String(), config.ProjectConfigPath)

	cfg, path, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, config.ProjectConfigPath, path)
	require.Equal(t, config.Defaults(), cfg)

	err = runInit(initCmd, nil)
	require.ErrorContains(t, err, "already exists")
	_, err = os.Stat(filepath.Join(dir, config.ProjectConfigPath))
	require.NoError(t, err)
}

func TestPrintHistory(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)
	entries := []history.Entry{
		{Kind: "grammar-check", ResultRunes: 11, At: at},
		{Kind: "translate", ResultRunes: 10, At: at.Add(time.Minute)},
	}

	var buf bytes.Buffer
	printHistory(&buf, entries, 1)
	out := buf.String()
	require.Contains(t, out, "2024-05-01 12:01")
	require.Contains(t, out, "translate")
	require.Contains(t, out, "10 runes")
	require.NotContains(t, out, "grammar-check", "limit keeps the newest")

	buf.Reset()
	printHistory(&buf, entries, 0)
	require.Contains(t, buf.String(), "grammar-check")

	buf.Reset()
	printHistory(&buf, nil, 0)
	require.Contains(t, buf.String(), "Nothing applied yet.")
}
