package models

import (
	"errors"
	"strings"

	"github.com/hyperjump/nlsearch/internal/search"
	"github.com/hyperjump/nlsearch/pkg/tree"
)

var (
	// ErrEmptyQuery is returned when a request carries no query text.
	ErrEmptyQuery = errors.New("query cannot be empty")
	// ErrMissingData is returned when an inline search request has no data field.
	ErrMissingData = errors.New("data is required")
)

// SearchRequest searches a named dataset.
type SearchRequest struct {
	Query   string          `json:"query"`
	Options *search.Options `json:"options,omitempty"`
	// IncludeParents adds each result's ancestor nodes to the response.
	IncludeParents bool `json:"include_parents,omitempty"`
	// Offset and Limit page through the ranked results. A zero Limit returns
	// everything after Offset.
	Offset int `json:"offset,omitempty"`
	Limit  int `json:"limit,omitempty"`
}

// Validate ensures the request has a query and normalizes paging.
func (r *SearchRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return ErrEmptyQuery
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
	if r.Limit < 0 {
		r.Limit = 0
	}
	return nil
}

// InlineSearchRequest carries the tree to search in the request body.
type InlineSearchRequest struct {
	SearchRequest
	Data *tree.Node `json:"data"`
}

// Validate ensures the request has data and a query.
func (r *InlineSearchRequest) Validate() error {
	if r.Data == nil {
		return ErrMissingData
	}
	return r.SearchRequest.Validate()
}
