package config

import (
	"time"

	"github.com/hyperjump/nlsearch/internal/nlp"
	"github.com/hyperjump/nlsearch/internal/ranking"
	"github.com/hyperjump/nlsearch/internal/search"
)

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = 10 << 20
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}
	if cfg.Search.MinScore == nil {
		v := search.DefaultMinScore
		cfg.Search.MinScore = &v
	}
	// Search keys default to true when unset (nil).
	if cfg.Search.SearchKeys == nil {
		t := true
		cfg.Search.SearchKeys = &t
	}
	if cfg.Search.MaxExtractDepth == 0 {
		cfg.Search.MaxExtractDepth = ranking.DefaultMaxExtractDepth
	}
	if cfg.Search.MaxTraversalDepth == 0 {
		cfg.Search.MaxTraversalDepth = search.DefaultMaxTraversalDepth
	}
	cfg.Search.Weights.ApplyDefaults()
	if cfg.NLP.Stemmer == "" {
		cfg.NLP.Stemmer = nlp.StemmerPorter
	}
	if cfg.NLP.Similarity == "" {
		cfg.NLP.Similarity = nlp.SimilarityJaroWinkler
	}
	if cfg.Datasets == nil {
		cfg.Datasets = map[string]string{}
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 400 * time.Millisecond
	}
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
