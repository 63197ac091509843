package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"htmlsearch/internal/domain"
)

var (
	queryText  string
	queryLimit int
	queryJSON  bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Search the document corpus",
	Long: `Search every document for the closest approximate occurrence of the query
and print the best matches with their surrounding text.

Examples:
  htmlsearch query -q "beta"
  htmlsearch query -q "42" --limit 3 --json`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&queryText, "query", "q", "", "search query (required)")
	queryCmd.Flags().IntVarP(&queryLimit, "limit", "n", 0, "number of results (default from config)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output as JSON")
	queryCmd.MarkFlagRequired("query")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	search, _, closeFn, err := newSearch(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	limit := cfg.Search.Limit
	if queryLimit > 0 {
		limit = queryLimit
	}

	results, err := search.SearchWithLimit(cmd.Context(), queryText, limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if queryJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	printResults(out, queryText, results)
	return nil
}

func printResults(w io.Writer, query string, results []domain.SearchResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "Found %d results for: %s\n\n", len(results), query)
	for i, r := range results {
		fmt.Fprintf(w, "--- [%d] %s (score: %s) ---\n", i+1, r.Filename, formatScore(r.Score))
		fmt.Fprintf(w, "...%s[%s]%s...\n\n", r.Match.Before(), r.Match.Span(), r.Match.After())
	}
}

// formatScore renders a similarity as a percentage with one decimal.
func formatScore(score float64) string {
	return strings.TrimSpace(fmt.Sprintf("%5.1f%%", score*100))
}
