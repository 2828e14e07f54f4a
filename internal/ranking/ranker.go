package ranking

import (
	"math"
	"sort"
)

// NoLimit disables result truncation in Rank.
const NoLimit = math.MaxInt

// Rank orders results by score, highest first, and keeps at most limit of them.
// The sort is stable, so equal scores keep their discovery order. A limit of
// zero or less yields no results.
func Rank(results []*Result, limit int) []*Result {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return TopN(results, limit)
}

// TopN returns the first n results. n <= 0 yields an empty slice.
func TopN(results []*Result, n int) []*Result {
	if n <= 0 {
		return results[:0]
	}
	if n >= len(results) {
		return results
	}
	return results[:n]
}

// Paginate returns a page of ranked results.
func Paginate(results []*Result, offset, limit int) []*Result {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(results) || limit <= 0 {
		return nil
	}
	end := offset + limit
	if end > len(results) || end < offset {
		end = len(results)
	}
	return results[offset:end]
}
