package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the search tool.
type Config struct {
	Corpus  CorpusConfig  `yaml:"corpus"`
	Search  SearchConfig  `yaml:"search"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// CorpusConfig holds corpus loading configuration.
type CorpusConfig struct {
	Dir      string   `yaml:"dir"`      // Directory holding the HTML documents (not walked recursively)
	StopList string   `yaml:"stoplist"` // Newline-delimited stop-word file
	Includes []string `yaml:"includes"` // Glob patterns matched against file names
	Workers  int      `yaml:"workers"`  // Concurrent file reads during a build (0 = GOMAXPROCS)
}

// SearchConfig holds matching configuration.
type SearchConfig struct {
	Limit         int     `yaml:"limit"`
	MinScore      float64 `yaml:"min_score"`      // Candidates scoring below this are dropped (0 = keep every match)
	ContextWindow int     `yaml:"context_window"` // Runes of context on each side of a match
	Workers       int     `yaml:"workers"`        // Matcher pool size (0 = GOMAXPROCS)
}

// ServerConfig holds HTTP configuration for the serve command.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Dir:      filepath.Join("static", "files"),
			StopList: "stoplist.txt",
			Includes: []string{"*"},
		},
		Search: SearchConfig{
			Limit:         10,
			MinScore:      0.8,
			ContextWindow: 8,
		},
		Server: ServerConfig{
			Addr: ":8000",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for htmlsearch.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "htmlsearch.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".htmlsearch", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Corpus.Dir == "" {
		return fmt.Errorf("corpus.dir must be set")
	}
	if c.Corpus.StopList == "" {
		return fmt.Errorf("corpus.stoplist must be set")
	}
	if c.Corpus.Workers < 0 || c.Search.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	if c.Search.Limit < 1 {
		return fmt.Errorf("search.limit must be positive, got %d", c.Search.Limit)
	}
	if c.Search.MinScore < 0 || c.Search.MinScore > 1 {
		return fmt.Errorf("search.min_score must be within [0, 1], got %.2f", c.Search.MinScore)
	}
	if c.Search.ContextWindow < 0 {
		return fmt.Errorf("search.context_window must not be negative, got %d", c.Search.ContextWindow)
	}
	return nil
}

// Resolve makes the corpus paths absolute relative to root.
func (c *Config) Resolve(root string) {
	c.Corpus.Dir = resolvePath(root, c.Corpus.Dir)
	c.Corpus.StopList = resolvePath(root, c.Corpus.StopList)
}

func resolvePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
