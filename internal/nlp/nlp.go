// Package nlp provides the text capabilities the relevance scorer depends on:
// tokenization, stemming and a bounded whole-string similarity.
package nlp

import "fmt"

// Toolkit is the capability set consumed by the scorer. Implementations must be
// deterministic and free of side effects; Similarity must return a value in [0, 1].
type Toolkit interface {
	// Tokenize splits text into word-level tokens.
	Tokenize(text string) []string
	// Stem reduces a token to its canonical, lower-cased root form.
	Stem(token string) string
	// Similarity compares two whole strings.
	Similarity(a, b string) float64
}

// Tokenizer splits text into tokens.
type Tokenizer interface {
	Tokenize(text string) []string
}

// Stemmer reduces a token to its root form.
type Stemmer interface {
	Stem(token string) string
}

// Similarity scores how alike two strings are, in [0, 1].
type Similarity interface {
	Similarity(a, b string) float64
}

// Names of the built-in stemmers.
const (
	StemmerPorter   = "porter"
	StemmerSnowball = "snowball"
	StemmerNone     = "none"
)

// Names of the built-in similarity primitives.
const (
	SimilarityJaroWinkler = "jaro-winkler"
	SimilarityLevenshtein = "levenshtein"
	SimilarityDamerau     = "damerau"
)

// Kit composes a tokenizer, a stemmer and a similarity primitive into a Toolkit.
type Kit struct {
	tokenizer      Tokenizer
	stemmer        Stemmer
	similarity     Similarity
	stemmerName    string
	similarityName string
}

// Option configures a Kit.
type Option func(*Kit)

// WithTokenizer replaces the default Unicode word tokenizer.
func WithTokenizer(t Tokenizer) Option {
	return func(k *Kit) { k.tokenizer = t }
}

// WithStemmer replaces the default Porter stemmer.
func WithStemmer(name string, s Stemmer) Option {
	return func(k *Kit) {
		k.stemmer = s
		k.stemmerName = name
	}
}

// WithSimilarity replaces the default Jaro-Winkler similarity.
func WithSimilarity(name string, s Similarity) Option {
	return func(k *Kit) {
		k.similarity = s
		k.similarityName = name
	}
}

// New returns a Kit using Unicode word segmentation, the Porter stemmer and
// Jaro-Winkler similarity unless overridden by opts.
func New(opts ...Option) *Kit {
	k := &Kit{
		tokenizer:      NewUnicodeTokenizer(),
		stemmer:        PorterStemmer{},
		similarity:     NewJaroWinkler(),
		stemmerName:    StemmerPorter,
		similarityName: SimilarityJaroWinkler,
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// NewNamed builds a Kit from stemmer and similarity names as they appear in
// configuration. Empty names select the defaults.
func NewNamed(stemmer, similarity string) (*Kit, error) {
	var opts []Option
	switch stemmer {
	case "", StemmerPorter:
	case StemmerSnowball:
		opts = append(opts, WithStemmer(StemmerSnowball, SnowballStemmer{}))
	case StemmerNone:
		opts = append(opts, WithStemmer(StemmerNone, LowercaseStemmer{}))
	default:
		return nil, fmt.Errorf("unknown stemmer %q", stemmer)
	}
	switch similarity {
	case "", SimilarityJaroWinkler:
	case SimilarityLevenshtein:
		opts = append(opts, WithSimilarity(SimilarityLevenshtein, LevenshteinSimilarity{}))
	case SimilarityDamerau:
		opts = append(opts, WithSimilarity(SimilarityDamerau, LevenshteinSimilarity{Transpositions: true}))
	default:
		return nil, fmt.Errorf("unknown similarity %q", similarity)
	}
	return New(opts...), nil
}

// Tokenize implements Toolkit.
func (k *Kit) Tokenize(text string) []string {
	return k.tokenizer.Tokenize(text)
}

// Stem implements Toolkit.
func (k *Kit) Stem(token string) string {
	return k.stemmer.Stem(token)
}

// Similarity implements Toolkit.
func (k *Kit) Similarity(a, b string) float64 {
	return k.similarity.Similarity(a, b)
}

// StemmerName returns the configured stemmer's name.
func (k *Kit) StemmerName() string { return k.stemmerName }

// SimilarityName returns the configured similarity's name.
func (k *Kit) SimilarityName() string { return k.similarityName }

// Funcs adapts plain functions to a Toolkit. Nil fields fall back to the
// default Kit's behavior.
type Funcs struct {
	TokenizeFunc   func(text string) []string
	StemFunc       func(token string) string
	SimilarityFunc func(a, b string) float64
}

var defaultKit = New()

// Tokenize implements Toolkit.
func (f Funcs) Tokenize(text string) []string {
	if f.TokenizeFunc == nil {
		return defaultKit.Tokenize(text)
	}
	return f.TokenizeFunc(text)
}

// Stem implements Toolkit.
func (f Funcs) Stem(token string) string {
	if f.StemFunc == nil {
		return defaultKit.Stem(token)
	}
	return f.StemFunc(token)
}

// Similarity implements Toolkit.
func (f Funcs) Similarity(a, b string) float64 {
	if f.SimilarityFunc == nil {
		return defaultKit.Similarity(a, b)
	}
	return f.SimilarityFunc(a, b)
}
