// Package search walks a tree, scores every node against a natural-language
// query and returns the ranked matches.
package search

import (
	"time"

	"github.com/hyperjump/nlsearch/internal/nlp"
	"github.com/hyperjump/nlsearch/internal/ranking"
	"github.com/hyperjump/nlsearch/pkg/tree"
	"go.uber.org/zap"
)

// Engine runs searches. It keeps no state between calls and is safe for
// concurrent use as long as searched trees are not mutated during a call.
type Engine struct {
	analyzer          *ranking.QueryAnalyzer
	scorer            *ranking.Scorer
	defaults          Config
	maxTraversalDepth int
	logger            *zap.Logger
}

type engineSettings struct {
	kit               nlp.Toolkit
	weights           *ranking.WeightConfig
	maxExtractDepth   int
	maxTraversalDepth int
	defaults          Config
	logger            *zap.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineSettings)

// WithToolkit sets the tokenizer, stemmer and similarity used for scoring.
func WithToolkit(kit nlp.Toolkit) EngineOption {
	return func(s *engineSettings) { s.kit = kit }
}

// WithWeights sets the signal weights.
func WithWeights(w *ranking.WeightConfig) EngineOption {
	return func(s *engineSettings) { s.weights = w }
}

// WithMaxExtractDepth sets the text extraction recursion ceiling.
func WithMaxExtractDepth(depth int) EngineOption {
	return func(s *engineSettings) { s.maxExtractDepth = depth }
}

// WithMaxTraversalDepth sets how deep the walker descends.
func WithMaxTraversalDepth(depth int) EngineOption {
	return func(s *engineSettings) { s.maxTraversalDepth = depth }
}

// WithDefaults sets the configuration applied where Options leave fields nil.
func WithDefaults(cfg Config) EngineOption {
	return func(s *engineSettings) { s.defaults = cfg }
}

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) EngineOption {
	return func(s *engineSettings) { s.logger = l }
}

// NewEngine creates an Engine.
func NewEngine(opts ...EngineOption) *Engine {
	s := &engineSettings{
		maxExtractDepth:   ranking.DefaultMaxExtractDepth,
		maxTraversalDepth: DefaultMaxTraversalDepth,
		defaults:          DefaultConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.maxTraversalDepth <= 0 {
		s.maxTraversalDepth = DefaultMaxTraversalDepth
	}
	analyzer := ranking.NewQueryAnalyzer(s.kit)
	return &Engine{
		analyzer:          analyzer,
		scorer:            ranking.NewScorer(analyzer, ranking.NewExtractor(s.maxExtractDepth), s.weights),
		defaults:          s.defaults,
		maxTraversalDepth: s.maxTraversalDepth,
		logger:            s.logger,
	}
}

// Defaults returns the configuration used for unset Options fields.
func (e *Engine) Defaults() Config {
	return e.defaults
}

// Outcome is the full result of one search call.
type Outcome struct {
	Results []*ranking.Result
	Query   *ranking.AnalyzedQuery
	Config  Config
	// Matched counts nodes that reached MinScore, before truncation to MaxResults.
	Matched int
	// Visited counts non-null nodes scored.
	Visited int
	// Truncated counts subtrees skipped because they lay below the traversal ceiling.
	Truncated int
	Took      time.Duration
}

// Search returns the nodes of data relevant to query, best first.
func (e *Engine) Search(data *tree.Node, query string, opts *Options) []*ranking.Result {
	return e.Execute(data, query, opts).Results
}

// Execute runs a search and reports traversal statistics with the results.
func (e *Engine) Execute(data *tree.Node, query string, opts *Options) *Outcome {
	start := time.Now()
	cfg := opts.Resolve(e.defaults)
	analyzed := e.analyzer.Analyze(query, cfg.CaseSensitive)

	w := newWalker(e.scorer, analyzed, cfg, e.maxTraversalDepth)
	w.walk(data)
	matched := len(w.results)
	results := ranking.Rank(w.results, cfg.MaxResults)

	out := &Outcome{
		Results:   results,
		Query:     analyzed,
		Config:    cfg,
		Matched:   matched,
		Visited:   w.visited,
		Truncated: w.truncated,
		Took:      time.Since(start),
	}
	if w.truncated > 0 {
		e.logger.Debug("traversal depth limit reached",
			zap.Int("max_depth", e.maxTraversalDepth),
			zap.Int("skipped_subtrees", w.truncated),
		)
	}
	e.logger.Debug("search completed",
		zap.String("query", query),
		zap.Strings("terms", analyzed.Terms),
		zap.Int("visited", out.Visited),
		zap.Int("matched", out.Matched),
		zap.Int("returned", len(results)),
		zap.Duration("took", out.Took),
	)
	return out
}

// Search runs a one-off search with a default Engine.
func Search(data *tree.Node, query string, opts *Options) []*ranking.Result {
	return NewEngine().Search(data, query, opts)
}
