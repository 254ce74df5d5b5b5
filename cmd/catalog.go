package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/zjrosen/quillkey/internal/feature"
	"github.com/zjrosen/quillkey/internal/keys"
	"github.com/zjrosen/quillkey/internal/ui/styles"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List features, tones and languages",
	Long:  `Display every keyboard feature with its key binding, plus the tones and languages that can be used as defaults in your config file.`,
	Run:   runCatalog,
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available theme presets",
	Long:  `Display all built-in theme presets that can be used in your config file.`,
	Run:   runThemes,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(themesCmd)
}

func runCatalog(cmd *cobra.Command, args []string) {
	printCatalog(cmd.OutOrStdout())
}

func printCatalog(w io.Writer) {
	fmt.Fprintln(w, "Features:")
	fmt.Fprintln(w)
	for _, k := range feature.All() {
		binding := keys.Keyboard.FeatureBinding(k).Help().Key
		fmt.Fprintf(w, "  %-8s %s %-14s %s\n", binding, k.Emoji(), k.Title(), k.String())
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tones:")
	fmt.Fprintln(w)
	for _, c := range feature.Tones {
		fmt.Fprintf(w, "  %s\n", c.Label())
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Languages:")
	fmt.Fprintln(w)
	for _, c := range feature.Languages {
		fmt.Fprintf(w, "  %s\n", c.Label())
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use in config.yaml:")
	fmt.Fprintln(w, "  defaults:")
	fmt.Fprintln(w, "    tone: Friendly")
	fmt.Fprintln(w, "    language: Spanish")
}

func runThemes(cmd *cobra.Command, args []string) {
	printThemes(cmd.OutOrStdout())
}

func printThemes(w io.Writer) {
	fmt.Fprintln(w, "Available theme presets:")
	fmt.Fprintln(w)

	names := make([]string, 0, len(styles.Presets))
	for name := range styles.Presets {
		names = append(names, name)
	}
	sort.Strings(names)

	maxLen := 0
	for _, name := range names {
		maxLen = max(maxLen, len(name))
	}
	for _, name := range names {
		fmt.Fprintf(w, "  %-*s  %s\n", maxLen, name, styles.Presets[name].Description)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Override specific colors:")
	fmt.Fprintln(w, "  theme:")
	fmt.Fprintln(w, "    preset: dracula")
	fmt.Fprintln(w, "    colors:")
	fmt.Fprintln(w, "      status.error: \"#FF0000\"")
}
