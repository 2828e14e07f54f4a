package search

import (
	"slices"

	"github.com/hyperjump/nlsearch/internal/ranking"
	"github.com/hyperjump/nlsearch/pkg/tree"
)

// DefaultMaxTraversalDepth bounds how deep the walker descends. Nodes below it
// are neither scored nor visited.
const DefaultMaxTraversalDepth = 1000

// walker performs one pre-order traversal. path and parents are shared stacks
// mutated during recursion; results receive copies.
type walker struct {
	scorer   *ranking.Scorer
	query    *ranking.AnalyzedQuery
	cfg      Config
	scoring  ranking.ScoringOptions
	maxDepth int

	path    tree.Path
	parents []*tree.Node
	results []*ranking.Result

	visited   int
	truncated int
}

func newWalker(scorer *ranking.Scorer, query *ranking.AnalyzedQuery, cfg Config, maxDepth int) *walker {
	return &walker{
		scorer:   scorer,
		query:    query,
		cfg:      cfg,
		scoring:  ranking.ScoringOptions{SearchKeys: cfg.SearchKeys, CaseSensitive: cfg.CaseSensitive},
		maxDepth: maxDepth,
	}
}

func (w *walker) walk(node *tree.Node) {
	if node.IsNull() {
		return
	}
	if len(w.path) > w.maxDepth {
		w.truncated++
		return
	}
	w.visited++

	var (
		score     float64
		breakdown *ranking.ScoreBreakdown
	)
	if w.cfg.Explain {
		breakdown = w.scorer.ScoreWithBreakdown(node, w.query, w.scoring)
		score = breakdown.Score
	} else {
		score = w.scorer.Score(node, w.query, w.scoring)
	}
	if score >= w.cfg.MinScore {
		w.results = append(w.results, &ranking.Result{
			Node:      node,
			Path:      slices.Clone(w.path),
			Parents:   slices.Clone(w.parents),
			Score:     score,
			Breakdown: breakdown,
		})
	}

	switch node.Kind() {
	case tree.KindArray:
		for i, item := range node.Items() {
			w.descend(node, tree.IndexSegment(i), item)
		}
	case tree.KindObject:
		for _, m := range node.Members() {
			w.descend(node, tree.KeySegment(m.Key), m.Value)
		}
	}
}

func (w *walker) descend(parent *tree.Node, seg tree.Segment, child *tree.Node) {
	w.path = append(w.path, seg)
	w.parents = append(w.parents, parent)
	w.walk(child)
	w.path = w.path[:len(w.path)-1]
	w.parents = w.parents[:len(w.parents)-1]
}
