package cli

import (
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"htmlsearch/internal/adapter/analyzer"
	"htmlsearch/internal/domain"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the corpus and report statistics",
	Long: `Read and normalize every document in the corpus directory, exactly as the
first query would, and print what was loaded. Nothing is written to disk.

Examples:
  htmlsearch index
  htmlsearch index -d /srv/site`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Scanning %s...\n", cfg.Corpus.Dir)

	var bar *progressbar.ProgressBar
	var barMu sync.Mutex
	var startTime time.Time
	var shown int

	progressCallback := func(processed, total int, filename string) {
		barMu.Lock()
		defer barMu.Unlock()

		if bar == nil {
			startTime = time.Now()
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Loading[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(cmd.ErrOrStderr())
				}),
			)
		}

		// Completion order is not submission order across workers.
		if processed > shown {
			shown = processed
			bar.Set(shown)
		}

		if processed > 0 {
			elapsed := time.Since(startTime)
			rate := float64(processed) / elapsed.Seconds()
			remaining := total - processed
			if rate > 0 {
				eta := time.Duration(float64(remaining)/rate) * time.Second
				bar.Describe(fmt.Sprintf("[cyan]Loading[reset] ETA: %s", formatDuration(eta)))
			}
		}
	}

	corpus, report, err := newLoader(cfg).Build(cmd.Context(), progressCallback)
	if err != nil {
		return fmt.Errorf("loading failed: %w", err)
	}

	docs := corpus.Documents()
	words := lo.Reduce(docs, func(n int, d domain.Document, _ int) int {
		return n + analyzer.CountWords(d.Text)
	}, 0)
	stats := corpus.Stats()

	fmt.Fprintf(out, "\nLoading complete:\n")
	fmt.Fprintf(out, "  Documents loaded:  %d\n", report.Loaded)
	fmt.Fprintf(out, "  Documents skipped: %d\n", len(report.Skipped))
	fmt.Fprintf(out, "  Words:             %d\n", words)
	fmt.Fprintf(out, "  Characters:        %d\n", stats.TotalRunes)
	fmt.Fprintf(out, "  Duration:          %s\n", formatDuration(report.Duration))

	if len(report.Skipped) > 0 {
		fmt.Fprintf(out, "\nWarnings:\n")
		for _, e := range report.Skipped {
			fmt.Fprintf(out, "  - %s\n", e)
		}
	}

	return nil
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
