// Package config provides configuration loading and structs for the nlsearch server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hyperjump/nlsearch/internal/nlp"
	"github.com/hyperjump/nlsearch/internal/ranking"
	"github.com/hyperjump/nlsearch/internal/search"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug    bool              `yaml:"debug"`
	Server   ServerConfig      `yaml:"server"`
	Search   SearchConfig      `yaml:"search"`
	NLP      NLPConfig         `yaml:"nlp"`
	Datasets map[string]string `yaml:"datasets"`
	Watch    WatchConfig       `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SearchConfig holds the defaults applied to searches that leave options unset.
type SearchConfig struct {
	MinScore          *float64             `yaml:"min_score"`
	MaxResults        *int                 `yaml:"max_results"` // unset: unbounded
	SearchKeys        *bool                `yaml:"search_keys"`
	CaseSensitive     bool                 `yaml:"case_sensitive"`
	MaxExtractDepth   int                  `yaml:"max_extract_depth"`
	MaxTraversalDepth int                  `yaml:"max_traversal_depth"`
	Weights           ranking.WeightConfig `yaml:"weights"`
}

// Defaults converts the section into the engine's default search settings.
func (s SearchConfig) Defaults() search.Config {
	return (&search.Options{
		MinScore:      s.MinScore,
		MaxResults:    s.MaxResults,
		SearchKeys:    s.SearchKeys,
		CaseSensitive: &s.CaseSensitive,
	}).Resolve(search.DefaultConfig())
}

// NLPConfig selects the stemmer and string similarity.
type NLPConfig struct {
	Stemmer    string `yaml:"stemmer"`    // porter | snowball | none
	Similarity string `yaml:"similarity"` // jaro-winkler | levenshtein | damerau
}

// Toolkit builds the configured toolkit.
func (n NLPConfig) Toolkit() (*nlp.Kit, error) {
	return nlp.NewNamed(n.Stemmer, n.Similarity)
}

// WatchConfig controls dataset hot reload.
type WatchConfig struct {
	Enabled  *bool         `yaml:"enabled"`
	Debounce time.Duration `yaml:"debounce"`
}

// EnabledOrDefault returns whether to watch dataset files; defaults to true when unset.
func (w *WatchConfig) EnabledOrDefault() bool {
	if w.Enabled != nil {
		return *w.Enabled
	}
	return true
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read, parsed or validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	for name, p := range cfg.Datasets {
		cfg.Datasets[name] = expandPath(p, configDir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if _, err := c.NLP.Toolkit(); err != nil {
		errs = append(errs, fmt.Errorf("nlp: %w", err))
	}
	for name, p := range c.Datasets {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, errors.New("datasets: empty name"))
		}
		if p == "" {
			errs = append(errs, fmt.Errorf("datasets.%s: empty path", name))
		}
	}
	return errors.Join(errs...)
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if strings.HasPrefix(path, "~/") {
		path = path[2:]
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
