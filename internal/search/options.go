package search

import "github.com/hyperjump/nlsearch/internal/ranking"

// DefaultMinScore is the score a node must reach to be reported.
const DefaultMinScore = 0.3

// Options are the caller-facing search settings. Nil fields take the engine's
// defaults. Values are used as given: a MinScore above 1 matches nothing and a
// negative MaxResults returns no results.
type Options struct {
	MinScore      *float64 `json:"min_score,omitempty" yaml:"min_score"`
	MaxResults    *int     `json:"max_results,omitempty" yaml:"max_results"`
	SearchKeys    *bool    `json:"search_keys,omitempty" yaml:"search_keys"`
	CaseSensitive *bool    `json:"case_sensitive,omitempty" yaml:"case_sensitive"`
	// Explain attaches a score breakdown to every result.
	Explain bool `json:"explain,omitempty" yaml:"explain"`
}

// Config is a fully resolved set of search settings, fixed for one call.
type Config struct {
	MinScore      float64
	MaxResults    int
	SearchKeys    bool
	CaseSensitive bool
	Explain       bool
}

// DefaultConfig returns min score 0.3, no result cap, key search on and
// case-insensitive matching.
func DefaultConfig() Config {
	return Config{
		MinScore:   DefaultMinScore,
		MaxResults: ranking.NoLimit,
		SearchKeys: true,
	}
}

// Resolve merges o over defaults. A nil receiver yields defaults unchanged.
func (o *Options) Resolve(defaults Config) Config {
	cfg := defaults
	if o == nil {
		return cfg
	}
	if o.MinScore != nil {
		cfg.MinScore = *o.MinScore
	}
	if o.MaxResults != nil {
		cfg.MaxResults = *o.MaxResults
	}
	if o.SearchKeys != nil {
		cfg.SearchKeys = *o.SearchKeys
	}
	if o.CaseSensitive != nil {
		cfg.CaseSensitive = *o.CaseSensitive
	}
	cfg.Explain = cfg.Explain || o.Explain
	return cfg
}

// Ptr returns a pointer to v, for filling optional fields.
func Ptr[T any](v T) *T {
	return &v
}
