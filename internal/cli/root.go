package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"htmlsearch/config"
	"htmlsearch/internal/adapter/fs"
	"htmlsearch/internal/adapter/matcher"
	"htmlsearch/internal/usecase"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
	verbose bool
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "htmlsearch",
	Short: "Fuzzy search over a directory of HTML documents",
	Long: `htmlsearch loads a directory of HTML documents into memory, normalizes
their text and answers approximate substring queries with a short snippet
around the best match in each document.

Example usage:
  htmlsearch query -q "beta"      # Search the corpus
  htmlsearch index                # Build the corpus and print statistics
  htmlsearch serve --addr :8000   # Serve search over HTTP`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		cfg.Resolve(rootDir)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		logger = newLogger(cfg.Logging, verbose)
		slog.SetDefault(logger)

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./htmlsearch.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}

// newLogger writes to stderr so that query output on stdout stays clean.
func newLogger(lc config.LoggingConfig, verbose bool) *slog.Logger {
	level := parseLevel(lc.Level)
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(lc.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func newLoader(cfg *config.Config) *usecase.CorpusLoader {
	return usecase.NewCorpusLoader(
		fs.NewLister(cfg.Corpus.Includes),
		fs.OSReader{},
		cfg.Corpus.Dir,
		cfg.Corpus.StopList,
		cfg.Corpus.Workers,
		logger,
	)
}

// newSearch wires the corpus cache, matcher and search use case. The
// returned close function releases the matcher pool.
func newSearch(cfg *config.Config) (*usecase.SearchUseCase, *usecase.CorpusCache, func(), error) {
	cache := usecase.NewCorpusCache(newLoader(cfg), logger)

	m, err := matcher.NewMatcher(
		matcher.WithPoolSize(cfg.Search.Workers),
		matcher.WithMinScore(cfg.Search.MinScore),
		matcher.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create matcher: %w", err)
	}

	search := usecase.NewSearchUseCase(cache, m, cfg.Search.Limit, cfg.Search.ContextWindow, logger)
	return search, cache, m.Close, nil
}
