package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zjrosen/quillkey/internal/config"
	"github.com/zjrosen/quillkey/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent applies",
	Long:  `Display the apply journal kept at history.path in your config file, newest first. Only the feature, time and result length are recorded.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of entries to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, _, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if cfg.History.Path == "" {
		return errors.New("history.path is not set in the config file")
	}

	journal, err := history.Load(cfg.History.Path, cfg.History.Max)
	if err != nil {
		return err
	}
	printHistory(cmd.OutOrStdout(), journal.Entries(), historyLimit)
	return nil
}

func printHistory(w io.Writer, entries []history.Entry, limit int) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "Nothing applied yet.")
		return
	}

	shown := 0
	for i := len(entries) - 1; i >= 0; i-- {
		if limit > 0 && shown == limit {
			break
		}
		e := entries[i]
		fmt.Fprintf(w, "%s  %-14s %d runes\n", e.At.Local().Format("2006-01-02 15:04"), e.Kind, e.ResultRunes)
		shown++
	}
}
