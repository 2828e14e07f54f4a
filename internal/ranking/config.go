package ranking

// DefaultMaxExtractDepth is the recursion ceiling for text extraction. Subtrees
// below it contribute no text.
const DefaultMaxExtractDepth = 50

// WeightConfig holds the two weight vectors used to combine similarity signals.
// The Phrase* weights apply when the query occurs verbatim in the node's text;
// the others apply otherwise. Each vector should sum to 1 so scores stay in [0, 1].
type WeightConfig struct {
	PhraseExactWeight float64 `yaml:"phrase_exact_weight"` // default: 0.4
	PhraseWholeWeight float64 `yaml:"phrase_whole_weight"` // default: 0.2
	PhraseTokenWeight float64 `yaml:"phrase_token_weight"` // default: 0.3
	PhraseDiceWeight  float64 `yaml:"phrase_dice_weight"`  // default: 0.1

	WholeWeight float64 `yaml:"whole_weight"` // default: 0.3
	TokenWeight float64 `yaml:"token_weight"` // default: 0.4
	DiceWeight  float64 `yaml:"dice_weight"`  // default: 0.3
}

// DefaultWeightConfig returns the default weight vectors.
func DefaultWeightConfig() *WeightConfig {
	return &WeightConfig{
		PhraseExactWeight: 0.4,
		PhraseWholeWeight: 0.2,
		PhraseTokenWeight: 0.3,
		PhraseDiceWeight:  0.1,

		WholeWeight: 0.3,
		TokenWeight: 0.4,
		DiceWeight:  0.3,
	}
}

// ApplyDefaults fills a weight vector with its defaults when every weight in it
// is zero. A vector with any weight set is kept as given, so individual signals
// can be switched off with an explicit 0.
func (c *WeightConfig) ApplyDefaults() {
	defaults := DefaultWeightConfig()
	if c.PhraseSum() == 0 {
		c.PhraseExactWeight = defaults.PhraseExactWeight
		c.PhraseWholeWeight = defaults.PhraseWholeWeight
		c.PhraseTokenWeight = defaults.PhraseTokenWeight
		c.PhraseDiceWeight = defaults.PhraseDiceWeight
	}
	if c.Sum() == 0 {
		c.WholeWeight = defaults.WholeWeight
		c.TokenWeight = defaults.TokenWeight
		c.DiceWeight = defaults.DiceWeight
	}
}

// PhraseSum returns the total of the phrase weight vector.
func (c *WeightConfig) PhraseSum() float64 {
	return c.PhraseExactWeight + c.PhraseWholeWeight + c.PhraseTokenWeight + c.PhraseDiceWeight
}

// Sum returns the total of the no-phrase weight vector.
func (c *WeightConfig) Sum() float64 {
	return c.WholeWeight + c.TokenWeight + c.DiceWeight
}
