// Package cli provides CLI output helpers for nlsearch.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hyperjump/nlsearch/internal/models"
	"github.com/hyperjump/nlsearch/pkg/tree"
	"github.com/hyperjump/nlsearch/pkg/utils"
)

// SearchOutputFormat is the format for search result output.
type SearchOutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText SearchOutputFormat = "text"
	// OutputCompact prints one tab-separated line per result.
	OutputCompact SearchOutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON SearchOutputFormat = "json"
)

// ParseOutputFormat validates a format name given on the command line.
func ParseOutputFormat(s string) (SearchOutputFormat, error) {
	switch f := SearchOutputFormat(s); f {
	case OutputText, OutputCompact, OutputJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text, compact, or json", s)
	}
}

const (
	textPreviewLen    = 200
	compactPreviewLen = 80
)

// WriteSearchResults writes search results to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format SearchOutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	case OutputCompact:
		writeSearchResultsCompact(w, response)
		return nil
	default:
		writeSearchResultsText(w, response)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	fmt.Fprintf(w, "\nFound %d results in %dms (%d nodes searched)\n\n",
		response.Total, response.QueryTime, response.Visited)
	for _, result := range response.Results {
		writeOneResult(w, result)
	}
}

func writeOneResult(w io.Writer, result *models.SearchResult) {
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "Rank: %d | Score: %.4f", result.Rank, result.Score)
	if b := result.Breakdown; b != nil {
		fmt.Fprintf(w, " | Match: %s", b.MatchType)
	}
	fmt.Fprintf(w, "\nPath: %s\n", result.Location)
	if b := result.Breakdown; b != nil {
		fmt.Fprintf(w, "Signals: exact=%.2f whole=%.2f tokens=%.2f dice=%.2f\n",
			b.Signals.Exact, b.Signals.Whole, b.Signals.TokenOverlap, b.Signals.Dice)
	}
	if len(result.Parents) > 0 {
		fmt.Fprintf(w, "Parent: %s\n", Preview(result.Parents[len(result.Parents)-1], textPreviewLen))
	}
	fmt.Fprintf(w, "\n%s\n\n", Preview(result.Node, textPreviewLen))
}

func writeSearchResultsCompact(w io.Writer, response *models.SearchResponse) {
	for _, result := range response.Results {
		fmt.Fprintf(w, "%d\t%.4f\t%s\t%s\n",
			result.Rank, result.Score, result.Location, Preview(result.Node, compactPreviewLen))
	}
}

// PrintSearchResults prints search results to stdout in text format.
func PrintSearchResults(response *models.SearchResponse) {
	_ = WriteSearchResults(os.Stdout, response, OutputText)
}

// Preview renders n on one line, cut to maxLen runes. Strings print without
// quotes; containers print as compact JSON.
func Preview(n *tree.Node, maxLen int) string {
	var s string
	switch n.Kind() {
	case tree.KindArray, tree.KindObject:
		data, err := n.MarshalJSON()
		if err != nil {
			s = n.Kind().String()
		} else {
			s = string(data)
		}
	case tree.KindNull:
		s = "null"
	default:
		s = n.Text()
	}
	return utils.Truncate(utils.SingleLine(s), maxLen)
}
