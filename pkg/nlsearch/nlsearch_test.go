package nlsearch_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/hyperjump/nlsearch/internal/nlp"
	"github.com/hyperjump/nlsearch/pkg/nlsearch"
	"github.com/hyperjump/nlsearch/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalog = `{
	"store": "Corner Books",
	"books": [
		{"title": "The Go Programming Language", "author": "Donovan", "price": 34.5, "tags": ["go", "programming"]},
		{"title": "Learning Go", "author": "Bodner", "price": 40, "tags": ["go"]},
		{"title": "Cooking for Engineers", "author": "Smith", "price": 22, "tags": ["food"]}
	],
	"open": true,
	"manager": null
}`

func TestSearch_PackageAndInstanceAgree(t *testing.T) {
	data, err := tree.Parse([]byte(catalog))
	require.NoError(t, err)

	opts := &nlsearch.Options{MinScore: nlsearch.Ptr(0.0)}
	fromFunc := nlsearch.Search(data, "go programming", opts)
	fromInstance := nlsearch.New().Search(data, "go programming", opts)

	require.Equal(t, len(fromFunc), len(fromInstance))
	for i := range fromFunc {
		assert.Equal(t, fromFunc[i].Path.String(), fromInstance[i].Path.String())
		assert.Equal(t, fromFunc[i].Score, fromInstance[i].Score)
	}
}

func TestSearch_Properties(t *testing.T) {
	data, err := tree.Parse([]byte(catalog))
	require.NoError(t, err)

	queries := []string{"go", "Go programming language", "cooking engineers", "smith", "", "zzz"}
	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			results := nlsearch.Search(data, q, &nlsearch.Options{MinScore: nlsearch.Ptr(0.0)})
			for i, r := range results {
				assert.GreaterOrEqual(t, r.Score, 0.0)
				assert.LessOrEqual(t, r.Score, 1.0+1e-9)
				assert.Len(t, r.Parents, len(r.Path))
				if i > 0 {
					assert.GreaterOrEqual(t, results[i-1].Score, r.Score)
				}
			}

			low := len(nlsearch.Search(data, q, &nlsearch.Options{MinScore: nlsearch.Ptr(0.2)}))
			high := len(nlsearch.Search(data, q, &nlsearch.Options{MinScore: nlsearch.Ptr(0.6)}))
			assert.GreaterOrEqual(t, low, high)

			for k := 0; k < 4; k++ {
				got := nlsearch.Search(data, q, &nlsearch.Options{MinScore: nlsearch.Ptr(0.0), MaxResults: nlsearch.Ptr(k)})
				assert.LessOrEqual(t, len(got), k)
			}
		})
	}
}

func TestSearch_TitleRanksFirst(t *testing.T) {
	data, err := tree.Parse([]byte(catalog))
	require.NoError(t, err)

	results := nlsearch.Search(data, "Learning Go", nil)
	require.NotEmpty(t, results)
	assert.Equal(t, "books[1].title", results[0].Path.String())
	assert.Equal(t, "/books/1/title", results[0].Path.Pointer())
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
}

func TestSearchJSON(t *testing.T) {
	results, err := nlsearch.SearchJSON([]byte(`["alice", "bob"]`), "alice", nil)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "alice", results[0].Node.StringValue())

	_, err = nlsearch.SearchJSON([]byte(`{"broken"`), "alice", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, tree.ErrInvalidJSON))
}

func TestNew_Options(t *testing.T) {
	kit := nlp.Funcs{
		TokenizeFunc:   strings.Fields,
		StemFunc:       strings.ToLower,
		SimilarityFunc: func(a, b string) float64 { return 1 },
	}
	s := nlsearch.New(
		nlsearch.WithToolkit(kit),
		nlsearch.WithWeights(nlsearch.Weights{WholeWeight: 1, TokenWeight: 0.0001, DiceWeight: 0.0001}),
		nlsearch.WithMaxTraversalDepth(1),
	)

	data := tree.Array(tree.String("x"), tree.Array(tree.String("deep")))
	results := s.Search(data, "unrelated", nil)

	paths := make([]string, 0, len(results))
	for _, r := range results {
		paths = append(paths, r.Path.String())
	}
	assert.ElementsMatch(t, []string{"$", "[0]", "[1]"}, paths)
}
