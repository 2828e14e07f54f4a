// Package nlsearch finds the parts of a JSON-like tree that are relevant to a
// natural-language query.
//
// Every non-null node of the tree is scored by flattening it to text and comparing
// that text to the query with exact-phrase, whole-string similarity, token overlap
// and Dice signals. Matches are returned best first, each with its path from the
// root and the chain of ancestors that owns it.
//
//	data, _ := tree.Parse(raw)
//	for _, r := range nlsearch.Search(data, "alice engineer", nil) {
//		fmt.Println(r.Path, r.Score)
//	}
package nlsearch

import (
	"fmt"

	"github.com/hyperjump/nlsearch/internal/nlp"
	"github.com/hyperjump/nlsearch/internal/ranking"
	"github.com/hyperjump/nlsearch/internal/search"
	"github.com/hyperjump/nlsearch/pkg/tree"
	"go.uber.org/zap"
)

type (
	// Options controls one search. Nil fields take their defaults: MinScore 0.3,
	// MaxResults unbounded, SearchKeys true, CaseSensitive false.
	Options = search.Options
	// Result is one matching node.
	Result = ranking.Result
	// Weights are the signal weights used to combine a score.
	Weights = ranking.WeightConfig
	// Toolkit supplies tokenization, stemming and string similarity.
	Toolkit = nlp.Toolkit
)

// DefaultMinScore is the score a node must reach by default.
const DefaultMinScore = search.DefaultMinScore

// Ptr returns a pointer to v, for filling Options.
func Ptr[T any](v T) *T {
	return &v
}

// Searcher runs searches with a fixed toolkit and weights. It holds no state
// between calls; a zero-configuration Searcher behaves exactly like Search.
type Searcher struct {
	engine *search.Engine
}

// Option configures a Searcher.
type Option func(*[]search.EngineOption)

// WithToolkit replaces the default tokenizer, Porter stemmer and Jaro-Winkler
// similarity.
func WithToolkit(kit Toolkit) Option {
	return func(o *[]search.EngineOption) { *o = append(*o, search.WithToolkit(kit)) }
}

// WithLogger enables debug logging of each search.
func WithLogger(l *zap.Logger) Option {
	return func(o *[]search.EngineOption) { *o = append(*o, search.WithLogger(l)) }
}

// WithWeights overrides the signal weights. A weight vector left entirely zero
// keeps its defaults; otherwise zeros switch signals off.
func WithWeights(w Weights) Option {
	return func(o *[]search.EngineOption) { *o = append(*o, search.WithWeights(&w)) }
}

// WithMaxTraversalDepth limits how deep the search descends into the tree.
func WithMaxTraversalDepth(depth int) Option {
	return func(o *[]search.EngineOption) { *o = append(*o, search.WithMaxTraversalDepth(depth)) }
}

// New creates a Searcher.
func New(opts ...Option) *Searcher {
	var engineOpts []search.EngineOption
	for _, opt := range opts {
		opt(&engineOpts)
	}
	return &Searcher{engine: search.NewEngine(engineOpts...)}
}

// Search returns the nodes of data relevant to query, best first.
func (s *Searcher) Search(data *tree.Node, query string, opts *Options) []*Result {
	return s.engine.Search(data, query, opts)
}

// SearchJSON parses raw JSON and searches it.
func (s *Searcher) SearchJSON(raw []byte, query string, opts *Options) ([]*Result, error) {
	data, err := tree.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse search data: %w", err)
	}
	return s.Search(data, query, opts), nil
}

var defaultSearcher = New()

// Search returns the nodes of data relevant to query using the default Searcher.
func Search(data *tree.Node, query string, opts *Options) []*Result {
	return defaultSearcher.Search(data, query, opts)
}

// SearchJSON parses raw JSON and searches it using the default Searcher.
func SearchJSON(raw []byte, query string, opts *Options) ([]*Result, error) {
	return defaultSearcher.SearchJSON(raw, query, opts)
}
