package nlp

import (
	"unicode/utf8"

	"github.com/xrash/smetrics"
)

// JaroWinkler scores strings by Jaro similarity with a bonus for a shared prefix.
type JaroWinkler struct {
	// BoostThreshold is the Jaro score above which the prefix bonus applies.
	BoostThreshold float64
	// PrefixSize is the maximum prefix length rewarded.
	PrefixSize int
}

// NewJaroWinkler returns JaroWinkler with the conventional 0.7 threshold and 4-character prefix.
func NewJaroWinkler() JaroWinkler {
	return JaroWinkler{BoostThreshold: 0.7, PrefixSize: 4}
}

// Similarity returns the Jaro-Winkler similarity of a and b in [0, 1].
func (j JaroWinkler) Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	return clamp01(smetrics.JaroWinkler(a, b, j.BoostThreshold, j.PrefixSize))
}

// LevenshteinSimilarity normalizes edit distance to 1 - distance/max(len(a), len(b)).
type LevenshteinSimilarity struct {
	// Transpositions counts adjacent swaps as one edit (Damerau variant).
	Transpositions bool
}

// Similarity returns the normalized edit similarity of a and b in [0, 1].
func (l LevenshteinSimilarity) Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	var dist int
	if l.Transpositions {
		dist = DamerauLevenshteinDistance(a, b)
	} else {
		dist = LevenshteinDistance(a, b)
	}
	return clamp01(1 - float64(dist)/float64(longest))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
