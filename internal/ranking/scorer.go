package ranking

import (
	"strings"

	"github.com/hyperjump/nlsearch/pkg/tree"
)

// Scorer computes the relevance of a node to an analyzed query by combining
// exact-phrase, whole-string, token-overlap and Dice signals.
type Scorer struct {
	analyzer  *QueryAnalyzer
	extractor *Extractor
	weights   *WeightConfig
}

// NewScorer creates a Scorer with a copy of weights. A nil weights selects
// DefaultWeightConfig.
func NewScorer(analyzer *QueryAnalyzer, extractor *Extractor, weights *WeightConfig) *Scorer {
	if analyzer == nil {
		analyzer = NewQueryAnalyzer(nil)
	}
	if extractor == nil {
		extractor = NewExtractor(DefaultMaxExtractDepth)
	}
	w := DefaultWeightConfig()
	if weights != nil {
		*w = *weights
		w.ApplyDefaults()
	}
	return &Scorer{analyzer: analyzer, extractor: extractor, weights: w}
}

// Name returns the scorer name.
func (s *Scorer) Name() string {
	return "relevance"
}

// Score returns the relevance of node to q in [0, 1].
func (s *Scorer) Score(node *tree.Node, q *AnalyzedQuery, opts ScoringOptions) float64 {
	return s.ScoreWithBreakdown(node, q, opts).Score
}

// ScoreWithBreakdown returns the score of node together with its signals.
func (s *Scorer) ScoreWithBreakdown(node *tree.Node, q *AnalyzedQuery, opts ScoringOptions) *ScoreBreakdown {
	breakdown := &ScoreBreakdown{}
	text := s.extractor.Extract(node, opts.SearchKeys)
	if text == "" {
		return breakdown
	}

	content := Normalize(text, opts.CaseSensitive)
	breakdown.Content = content

	// An empty query is contained in every non-empty content.
	signals := Signals{}
	if strings.Contains(content, q.Normalized) {
		signals.HasExact = true
		signals.Exact = 1
	}
	signals.Whole = s.analyzer.Toolkit().Similarity(q.Normalized, content)

	contentTerms := s.analyzer.Terms(content, opts.CaseSensitive)
	signals.TokenOverlap = TokenOverlap(q.Terms, contentTerms)
	signals.Dice = DiceCoefficient(q.Terms, contentTerms)

	breakdown.Signals = signals
	breakdown.Score = s.combine(signals)
	breakdown.MatchType = matchType(signals, content, q.Normalized)
	return breakdown
}

// combine applies the phrase weight vector when an exact hit is present and
// the three-signal vector otherwise.
func (s *Scorer) combine(sig Signals) float64 {
	w := s.weights
	if sig.HasExact {
		return w.PhraseExactWeight*sig.Exact +
			w.PhraseWholeWeight*sig.Whole +
			w.PhraseTokenWeight*sig.TokenOverlap +
			w.PhraseDiceWeight*sig.Dice
	}
	return w.WholeWeight*sig.Whole +
		w.TokenWeight*sig.TokenOverlap +
		w.DiceWeight*sig.Dice
}

func matchType(sig Signals, content, query string) MatchType {
	switch {
	case sig.HasExact && content == query:
		return MatchTypeExact
	case sig.HasExact:
		return MatchTypePhrase
	case sig.TokenOverlap >= 1:
		return MatchTypeAllWords
	case sig.TokenOverlap > 0:
		return MatchTypePartial
	default:
		return MatchTypeNone
	}
}

// TokenOverlap returns the share of query terms (duplicates counted) that occur
// anywhere in content terms. It is 0 when query is empty.
func TokenOverlap(query, content []string) float64 {
	if len(query) == 0 {
		return 0
	}
	present := make(map[string]struct{}, len(content))
	for _, c := range content {
		present[c] = struct{}{}
	}
	matched := 0
	for _, term := range query {
		if _, ok := present[term]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(query))
}

// DiceCoefficient returns 2|A∩B| / (|A|+|B|) over the distinct terms of a and b.
// It is 0 when either side is empty.
func DiceCoefficient(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA := toSet(a)
	setB := toSet(b)
	intersection := 0
	for term := range setA {
		if _, ok := setB[term]; ok {
			intersection++
		}
	}
	return 2 * float64(intersection) / float64(len(setA)+len(setB))
}

func toSet(terms []string) map[string]struct{} {
	set := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		set[t] = struct{}{}
	}
	return set
}
