package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"htmlsearch/internal/adapter/analyzer"
	"htmlsearch/internal/adapter/fs"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <file>",
	Short: "Print the searchable text of one HTML document",
	Long: `Extract and normalize the text of a single HTML file using the configured
stop list, and print it the way the corpus stores it.

Examples:
  htmlsearch normalize static/files/report.html`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	stops, err := analyzer.LoadStopList(cfg.Corpus.StopList)
	if err != nil {
		return fmt.Errorf("failed to read stop list: %w", err)
	}

	normalizer, err := analyzer.NewNormalizer(stops)
	if err != nil {
		return fmt.Errorf("failed to compile stop list: %w", err)
	}

	src, err := fs.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	text, err := normalizer.Normalize(src)
	if err != nil {
		return fmt.Errorf("failed to normalize %s: %w", args[0], err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
