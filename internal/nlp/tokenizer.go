package nlp

import (
	bleveunicode "github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
)

// UnicodeTokenizer splits text on Unicode word boundaries (UAX #29) using
// Bleve's segment-based tokenizer. Punctuation and whitespace are dropped.
type UnicodeTokenizer struct {
	tokenizer *bleveunicode.UnicodeTokenizer
}

// NewUnicodeTokenizer creates a UnicodeTokenizer.
func NewUnicodeTokenizer() *UnicodeTokenizer {
	return &UnicodeTokenizer{tokenizer: bleveunicode.NewUnicodeTokenizer()}
}

// Tokenize returns the word tokens of text in order.
func (t *UnicodeTokenizer) Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	stream := t.tokenizer.Tokenize([]byte(text))
	tokens := make([]string, 0, len(stream))
	for _, tok := range stream {
		if len(tok.Term) == 0 {
			continue
		}
		tokens = append(tokens, string(tok.Term))
	}
	return tokens
}
