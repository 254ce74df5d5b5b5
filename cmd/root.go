// Package cmd implements the quillkey command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/zjrosen/quillkey/internal/ai"
	"github.com/zjrosen/quillkey/internal/config"
	"github.com/zjrosen/quillkey/internal/document"
	"github.com/zjrosen/quillkey/internal/history"
	"github.com/zjrosen/quillkey/internal/log"
	"github.com/zjrosen/quillkey/internal/panel"
	"github.com/zjrosen/quillkey/internal/reveal"
	"github.com/zjrosen/quillkey/internal/ui/keyboard"
	"github.com/zjrosen/quillkey/internal/ui/styles"
)

var (
	version = "dev"

	cfgFile     string
	initialText string
	printResult bool
	debug       bool
)

var rootCmd = &cobra.Command{
	Use:     "quillkey",
	Short:   "AI writing keyboard for the terminal",
	Long:    `quillkey is a text editor with an AI keyboard: check grammar, change tone, translate, reply, continue and find synonyms without leaving the document.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: .quillkey/config.yaml or ~/.config/quillkey/config.yaml)")
	rootCmd.Flags().StringVarP(&initialText, "text", "t", "", "initial document text")
	rootCmd.Flags().BoolVarP(&printResult, "print", "p", false, "print the document to stdout on exit")
	rootCmd.Flags().BoolVarP(&debug, "debug", "d", false, "log at debug level")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runApp(cmd *cobra.Command, args []string) error {
	cfg, path, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	logPath := cfg.Log.Path
	if logPath == "" {
		logPath = config.LogPath(path)
	}
	cleanup, err := log.Init(logPath)
	if err != nil {
		return err
	}
	defer cleanup()
	level := log.ParseLevel(cfg.Log.Level)
	if debug {
		level = log.LevelDebug
	}
	log.SetLevel(level)
	log.Info(log.CatConfig, "Starting quillkey", "version", version, "config", path, "provider", cfg.API.Provider)

	if err := styles.ApplyTheme(cfg.Theme.Styles()); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}

	client, err := ai.New(cmd.Context(), cfg.AIOptions())
	if err != nil {
		return fmt.Errorf("creating ai client: %w", err)
	}

	buf := document.NewBuffer(initialText, document.WithWindow(cfg.Capture.Window))
	ctl := panel.New(buf, panel.Config{
		Client:    client,
		Capture:   cfg.CaptureSettings(),
		Clipboard: clipboard.ReadAll,
		Defaults:  cfg.PanelDefaults(),
	})
	revealer := reveal.NewRevealer(cfg.RevealSettings())
	defer revealer.Stop()

	journal, err := history.Load(cfg.History.Path, cfg.History.Max)
	if err != nil {
		log.ErrorErr(log.CatConfig, "Failed to load history, starting empty", err, "path", cfg.History.Path)
		journal = history.NewJournal(cfg.History.Max)
	}

	model := keyboard.New(keyboard.Config{
		Buffer:     buf,
		Controller: ctl,
		Revealer:   revealer,
		History:    journal,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running keyboard: %w", err)
	}

	if cfg.History.Path != "" {
		if err := history.Save(cfg.History.Path, journal); err != nil {
			log.ErrorErr(log.CatConfig, "Failed to save history", err, "path", cfg.History.Path)
		}
	}

	if printResult {
		fmt.Fprintln(cmd.OutOrStdout(), buf.String())
	}
	return nil
}
