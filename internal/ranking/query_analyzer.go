package ranking

import (
	"strings"

	"github.com/hyperjump/nlsearch/internal/nlp"
)

// QueryAnalyzer turns query and content text into comparable terms using a Toolkit.
type QueryAnalyzer struct {
	kit nlp.Toolkit
}

// NewQueryAnalyzer creates a QueryAnalyzer. A nil kit selects nlp.New().
func NewQueryAnalyzer(kit nlp.Toolkit) *QueryAnalyzer {
	if kit == nil {
		kit = nlp.New()
	}
	return &QueryAnalyzer{kit: kit}
}

// Toolkit returns the analyzer's capabilities.
func (qa *QueryAnalyzer) Toolkit() nlp.Toolkit {
	return qa.kit
}

// Analyze normalizes, tokenizes and (when case-insensitive) stems the query once.
func (qa *QueryAnalyzer) Analyze(query string, caseSensitive bool) *AnalyzedQuery {
	normalized := Normalize(query, caseSensitive)
	tokens := qa.kit.Tokenize(normalized)
	return &AnalyzedQuery{
		Original:      query,
		Normalized:    normalized,
		Tokens:        tokens,
		Terms:         qa.stemAll(tokens, caseSensitive),
		CaseSensitive: caseSensitive,
	}
}

// Terms tokenizes already-normalized text and stems the tokens under the same
// policy as Analyze, so content terms are comparable to query terms.
func (qa *QueryAnalyzer) Terms(normalized string, caseSensitive bool) []string {
	return qa.stemAll(qa.kit.Tokenize(normalized), caseSensitive)
}

// stemAll skips stemming for case-sensitive searches because stems are lower-cased.
func (qa *QueryAnalyzer) stemAll(tokens []string, caseSensitive bool) []string {
	if caseSensitive {
		return tokens
	}
	terms := make([]string, len(tokens))
	for i, tok := range tokens {
		terms[i] = qa.kit.Stem(tok)
	}
	return terms
}

// Normalize lower-cases text unless the search is case sensitive.
func Normalize(text string, caseSensitive bool) string {
	if caseSensitive {
		return text
	}
	return strings.ToLower(text)
}
