package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hyperjump/nlsearch/internal/ranking"
	"github.com/hyperjump/nlsearch/internal/search"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 9000
  request_timeout: 5s
search:
  min_score: 0.5
  max_results: 20
  search_keys: false
  weights:
    whole_weight: 0.5
    token_weight: 0.5
    dice_weight: 0
nlp:
  stemmer: snowball
  similarity: levenshtein
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr() != "127.0.0.1:9000" {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Server.RequestTimeout != 5*time.Second {
		t.Errorf("request_timeout = %v", cfg.Server.RequestTimeout)
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}

	d := cfg.Search.Defaults()
	want := search.Config{MinScore: 0.5, MaxResults: 20, SearchKeys: false}
	if d != want {
		t.Errorf("Defaults() = %+v, want %+v", d, want)
	}
	if cfg.Search.Weights.TokenWeight != 0.5 || cfg.Search.Weights.DiceWeight != 0 || cfg.Search.Weights.PhraseExactWeight != 0.4 {
		t.Errorf("weights = %+v", cfg.Search.Weights)
	}

	kit, err := cfg.NLP.Toolkit()
	if err != nil {
		t.Fatal(err)
	}
	if kit.StemmerName() != "snowball" || kit.SimilarityName() != "levenshtein" {
		t.Errorf("toolkit = %s/%s", kit.StemmerName(), kit.SimilarityName())
	}
}

func TestLoad_debugTrue(t *testing.T) {
	cfg, err := Load(writeConfig(t, "debug: true\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("debug should be true when set in config")
	}
}

func TestLoad_expandPathDotSlashRelativeToConfigDir(t *testing.T) {
	path := writeConfig(t, `
datasets:
  people: "./data/people.json"
  abs: "/srv/data/catalog.yaml"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(filepath.Dir(path), "data", "people.json")
	if cfg.Datasets["people"] != want {
		t.Errorf("people = %s, want %s", cfg.Datasets["people"], want)
	}
	if cfg.Datasets["abs"] != "/srv/data/catalog.yaml" {
		t.Errorf("abs = %s", cfg.Datasets["abs"])
	}
}

func TestLoad_errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad yaml", "server: [", "failed to parse config"},
		{"bad stemmer", "nlp:\n  stemmer: lancaster\n", "unknown stemmer"},
		{"bad port", "server:\n  port: 70000\n", "out of range"},
		{"empty dataset path", "datasets:\n  x: \"\"\n", "empty path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.want)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Server.Host != "localhost" {
		t.Errorf("default host: got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port: got %d", cfg.Server.Port)
	}
	if cfg.Server.MaxBodyBytes != 10<<20 {
		t.Errorf("default max body: got %d", cfg.Server.MaxBodyBytes)
	}
	if got := cfg.Search.Defaults(); got != search.DefaultConfig() {
		t.Errorf("search defaults = %+v, want %+v", got, search.DefaultConfig())
	}
	if cfg.Search.MaxExtractDepth != ranking.DefaultMaxExtractDepth {
		t.Errorf("max_extract_depth = %d", cfg.Search.MaxExtractDepth)
	}
	if cfg.Search.MaxTraversalDepth != search.DefaultMaxTraversalDepth {
		t.Errorf("max_traversal_depth = %d", cfg.Search.MaxTraversalDepth)
	}
	if cfg.Search.Weights != *ranking.DefaultWeightConfig() {
		t.Errorf("weights = %+v", cfg.Search.Weights)
	}
	if cfg.NLP.Stemmer != "porter" || cfg.NLP.Similarity != "jaro-winkler" {
		t.Errorf("nlp = %+v", cfg.NLP)
	}
	if !cfg.Watch.EnabledOrDefault() {
		t.Error("watch should default to enabled")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"/abs/file.json", "/abs/file.json"},
		{"./rel.json", "/cfg/rel.json"},
		{"~/data.json", filepath.Join(home, "data.json")},
		{"data.json", filepath.Join(home, "data.json")},
	}
	for _, tt := range tests {
		if got := expandPath(tt.in, "/cfg"); got != tt.want {
			t.Errorf("expandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
