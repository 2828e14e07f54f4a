package nlp

import (
	"strings"

	porterstemmer "github.com/blevesearch/go-porterstemmer"
	"github.com/blevesearch/snowballstem"
	"github.com/blevesearch/snowballstem/english"
)

// PorterStemmer applies the classic Porter algorithm ("running" -> "run").
type PorterStemmer struct{}

// Stem lower-cases and stems token.
func (PorterStemmer) Stem(token string) string {
	return porterstemmer.StemString(token)
}

// SnowballStemmer applies the English Snowball (Porter2) algorithm.
type SnowballStemmer struct{}

// Stem lower-cases and stems token.
func (SnowballStemmer) Stem(token string) string {
	env := snowballstem.NewEnv(strings.ToLower(token))
	english.Stem(env)
	return env.Current()
}

// LowercaseStemmer only case-folds, for callers that want no morphology.
type LowercaseStemmer struct{}

// Stem returns token lower-cased.
func (LowercaseStemmer) Stem(token string) string {
	return strings.ToLower(token)
}
