// Package ranking provides relevance scoring and ordering for tree search results.
package ranking

import (
	"fmt"

	"github.com/hyperjump/nlsearch/pkg/tree"
)

// MatchType represents the strongest kind of match found between a query and a node.
type MatchType int

const (
	// MatchTypeNone indicates no query term was found.
	MatchTypeNone MatchType = iota
	// MatchTypePartial indicates some query terms were found.
	MatchTypePartial
	// MatchTypeAllWords indicates all query terms were found but not as a phrase.
	MatchTypeAllWords
	// MatchTypePhrase indicates the query appears verbatim inside the node's text.
	MatchTypePhrase
	// MatchTypeExact indicates the node's text equals the query.
	MatchTypeExact
)

// String returns a string representation of the match type.
func (m MatchType) String() string {
	switch m {
	case MatchTypeNone:
		return "none"
	case MatchTypePartial:
		return "partial"
	case MatchTypeAllWords:
		return "all_words"
	case MatchTypePhrase:
		return "phrase"
	case MatchTypeExact:
		return "exact"
	default:
		return "unknown"
	}
}

// MarshalText encodes the match type by name.
func (m MatchType) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a match type name.
func (m *MatchType) UnmarshalText(text []byte) error {
	for t := MatchTypeNone; t <= MatchTypeExact; t++ {
		if t.String() == string(text) {
			*m = t
			return nil
		}
	}
	return fmt.Errorf("unknown match type %q", text)
}

// AnalyzedQuery holds the per-search query state. It is computed once and not
// modified afterwards.
type AnalyzedQuery struct {
	// Original is the query as given by the caller.
	Original string
	// Normalized is Original lower-cased unless the search is case sensitive.
	Normalized string
	// Tokens are the tokenizer's output for Normalized.
	Tokens []string
	// Terms are Tokens stemmed, or Tokens unchanged for case-sensitive searches.
	Terms []string
	// CaseSensitive records the case policy the query was analyzed under.
	CaseSensitive bool
}

// ScoringOptions are the per-search switches that change how a node is scored.
type ScoringOptions struct {
	SearchKeys    bool
	CaseSensitive bool
}

// Signals are the individual similarity measurements behind a score.
type Signals struct {
	// HasExact is true when the normalized query occurs verbatim in the content.
	HasExact bool `json:"has_exact"`
	// Exact is 1 when HasExact, else 0.
	Exact float64 `json:"exact"`
	// Whole is the whole-string similarity of query and content.
	Whole float64 `json:"whole"`
	// TokenOverlap is the share of query terms present in the content.
	TokenOverlap float64 `json:"token_overlap"`
	// Dice is the Dice coefficient of the query and content term sets.
	Dice float64 `json:"dice"`
}

// ScoreBreakdown provides detailed scoring information for one node.
type ScoreBreakdown struct {
	Score     float64   `json:"score"`
	Signals   Signals   `json:"signals"`
	MatchType MatchType `json:"match_type"`
	// Content is the normalized text the node was scored against.
	Content string `json:"-"`
}

// Result is one qualifying node with its location in the tree.
// len(Path) == len(Parents) and Parents[i] owns Path[i].
type Result struct {
	Node      *tree.Node
	Path      tree.Path
	Parents   []*tree.Node
	Score     float64
	Breakdown *ScoreBreakdown
}

// Depth returns the number of hops from the root to the result's node.
func (r *Result) Depth() int {
	return len(r.Path)
}
