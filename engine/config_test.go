package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search.json")
	if err := os.WriteFile(path, []byte(`{"max_depth": 6, "use_history": false}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.MaxDepth != 6 || cfg.UseHistory {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	def := DefaultConfig()
	if cfg.AspirationWindow != def.AspirationWindow || cfg.TTEntries != def.TTEntries || !cfg.UseKillerMoves {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadConfig(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatalf("missing file should fail")
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte(`{"max_depth": `), 0o644)
	if _, err := LoadConfig(bad); err == nil {
		t.Fatalf("truncated JSON should fail")
	}

	deep := filepath.Join(dir, "deep.json")
	os.WriteFile(deep, []byte(`{"max_depth": 500}`), 0o644)
	if _, err := LoadConfig(deep); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("max_depth 500: got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if d := DefaultConfig().MaxDepth; d != DefaultMaxDepth || d >= MaxPly {
		t.Fatalf("default depth ceiling %d", d)
	}
	tests := map[string]func(*Config){
		"zero depth":       func(c *Config) { c.MaxDepth = 0 },
		"zero window":      func(c *Config) { c.AspirationWindow = 0 },
		"negative retries": func(c *Config) { c.AspirationMaxRetries = -1 },
		"empty table":      func(c *Config) { c.TTEntries = 0 },
		"poll mask":        func(c *Config) { c.NodePollMask = 1000 },
	}
	for name, tweak := range tests {
		cfg := DefaultConfig()
		tweak(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: got %v", name, err)
		}
		if _, err := NewSearcher(cfg); err == nil {
			t.Errorf("%s: NewSearcher accepted an invalid config", name)
		}
	}

	cfg := DefaultConfig()
	cfg.UseTranspositionTable, cfg.TTEntries = false, 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("table size is irrelevant without a table: %v", err)
	}
}
