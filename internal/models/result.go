package models

import (
	"github.com/google/uuid"
	"github.com/hyperjump/nlsearch/internal/ranking"
	"github.com/hyperjump/nlsearch/internal/search"
	"github.com/hyperjump/nlsearch/pkg/tree"
)

// SearchResult is one ranked node as returned to API clients.
type SearchResult struct {
	Rank      int                     `json:"rank"`
	Score     float64                 `json:"score"`
	Path      tree.Path               `json:"path"`
	Location  string                  `json:"location"`
	Pointer   string                  `json:"pointer"`
	Node      *tree.Node              `json:"node"`
	Parents   []*tree.Node            `json:"parents,omitempty"`
	Breakdown *ranking.ScoreBreakdown `json:"breakdown,omitempty"`
}

// SearchResponse is the response for a search request.
type SearchResponse struct {
	ID      string          `json:"id"`
	Query   string          `json:"query"`
	Dataset string          `json:"dataset,omitempty"`
	Results []*SearchResult `json:"results"`
	// Total counts every node that reached the minimum score, before paging
	// and the max_results cap.
	Total     int      `json:"total"`
	Visited   int      `json:"visited"`
	Terms     []string `json:"terms"`
	QueryTime int64    `json:"query_time_ms"`
}

// NewSearchResults converts ranked results to their API form. offset is the
// position of results[0] in the full ranking.
func NewSearchResults(results []*ranking.Result, offset int, includeParents bool) []*SearchResult {
	out := make([]*SearchResult, len(results))
	for i, r := range results {
		sr := &SearchResult{
			Rank:      offset + i + 1,
			Score:     r.Score,
			Path:      r.Path,
			Location:  r.Path.String(),
			Pointer:   r.Path.Pointer(),
			Node:      r.Node,
			Breakdown: r.Breakdown,
		}
		if sr.Path == nil {
			sr.Path = tree.Path{}
		}
		if includeParents {
			sr.Parents = r.Parents
		}
		out[i] = sr
	}
	return out
}

// NewSearchResponse pages a search outcome according to req and converts it to
// its API form under a fresh response ID.
func NewSearchResponse(req *SearchRequest, out *search.Outcome) *SearchResponse {
	limit := req.Limit
	if limit == 0 {
		limit = ranking.NoLimit
	}
	page := ranking.Paginate(out.Results, req.Offset, limit)

	terms := out.Query.Terms
	if terms == nil {
		terms = []string{}
	}
	return &SearchResponse{
		ID:        uuid.NewString(),
		Query:     req.Query,
		Results:   NewSearchResults(page, req.Offset, req.IncludeParents),
		Total:     out.Matched,
		Visited:   out.Visited,
		Terms:     terms,
		QueryTime: out.Took.Milliseconds(),
	}
}
