package ranking

import (
	"strings"

	"github.com/hyperjump/nlsearch/pkg/tree"
)

// Extractor flattens a node and its subtree into one searchable string.
type Extractor struct {
	maxDepth int
}

// NewExtractor creates an Extractor. maxDepth <= 0 selects DefaultMaxExtractDepth.
func NewExtractor(maxDepth int) *Extractor {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxExtractDepth
	}
	return &Extractor{maxDepth: maxDepth}
}

// MaxDepth returns the recursion ceiling.
func (e *Extractor) MaxDepth() int {
	return e.maxDepth
}

// Extract returns the text of node. When searchKeys is true, keys are included for
// node's own members and for objects reached from node through array elements
// only; everything below a member value is extracted without keys. Null values
// contribute nothing.
func (e *Extractor) Extract(node *tree.Node, searchKeys bool) string {
	var parts []string
	e.collect(node, searchKeys, 0, &parts)
	return strings.Join(parts, " ")
}

// collect appends the non-empty text parts of node. Past maxDepth the subtree is
// dropped silently.
func (e *Extractor) collect(node *tree.Node, searchKeys bool, depth int, parts *[]string) {
	if depth > e.maxDepth {
		return
	}
	switch node.Kind() {
	case tree.KindString, tree.KindNumber, tree.KindBool:
		if text := node.Text(); text != "" {
			*parts = append(*parts, text)
		}
	case tree.KindArray:
		for _, item := range node.Items() {
			e.collect(item, searchKeys, depth+1, parts)
		}
	case tree.KindObject:
		for _, m := range node.Members() {
			if searchKeys {
				*parts = append(*parts, m.Key)
			}
			e.collect(m.Value, false, depth+1, parts)
		}
	}
}
