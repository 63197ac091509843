package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Search.Limit != 10 {
		t.Errorf("expected Limit=10, got %d", cfg.Search.Limit)
	}
	if cfg.Search.ContextWindow != 8 {
		t.Errorf("expected ContextWindow=8, got %d", cfg.Search.ContextWindow)
	}
	if cfg.Search.MinScore != 0.8 {
		t.Errorf("expected MinScore=0.8, got %f", cfg.Search.MinScore)
	}
	if len(cfg.Corpus.Includes) != 1 || cfg.Corpus.Includes[0] != "*" {
		t.Errorf("expected Includes=[*], got %v", cfg.Corpus.Includes)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "htmlsearch.yaml")

	content := `
corpus:
  dir: docs
search:
  limit: 5
  min_score: 0.5
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Corpus.Dir != "docs" {
		t.Errorf("expected Dir=docs, got %s", cfg.Corpus.Dir)
	}
	if cfg.Search.Limit != 5 {
		t.Errorf("expected Limit=5, got %d", cfg.Search.Limit)
	}
	if cfg.Search.MinScore != 0.5 {
		t.Errorf("expected MinScore=0.5, got %f", cfg.Search.MinScore)
	}
	// Untouched keys keep their defaults.
	if cfg.Search.ContextWindow != 8 {
		t.Errorf("expected ContextWindow=8, got %d", cfg.Search.ContextWindow)
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, ".htmlsearch"), 0755); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(tmpDir, ".htmlsearch", "config.yaml")

	content := `
server:
  addr: ":9090"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("expected Addr=:9090, got %s", cfg.Server.Addr)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative limit", func(c *Config) { c.Search.Limit = -1 }},
		{"zero limit", func(c *Config) { c.Search.Limit = 0 }},
		{"min score above one", func(c *Config) { c.Search.MinScore = 1.5 }},
		{"negative window", func(c *Config) { c.Search.ContextWindow = -2 }},
		{"empty dir", func(c *Config) { c.Corpus.Dir = "" }},
		{"negative workers", func(c *Config) { c.Corpus.Workers = -1 }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestResolve(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Corpus.StopList = "/etc/stoplist.txt"
	cfg.Resolve("/srv/site")

	expected := filepath.Join("/srv/site", "static", "files")
	if cfg.Corpus.Dir != expected {
		t.Errorf("expected %s, got %s", expected, cfg.Corpus.Dir)
	}
	if cfg.Corpus.StopList != "/etc/stoplist.txt" {
		t.Errorf("absolute path should be kept, got %s", cfg.Corpus.StopList)
	}
}
