package db

import "github.com/creatorlens/creatorlens/internal/domain/search/filter"

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	IndexName    string
	Filters      filter.Expression
	Vector       []float32
	K            int
	ReturnFields []string
}

// TextQuery is the input for BM25 text search.
type TextQuery struct {
	IndexName    string
	Query        string
	TextField    string
	Filters      filter.Expression
	TopK         int
	ReturnFields []string
}

// ListQuery is the input for filter-only paginated listing.
type ListQuery struct {
	IndexName    string
	Filters      filter.Expression
	Offset       int
	Limit        int
	ReturnFields []string
}

// CountQuery is the input for a total-count estimate over the same predicate
// a search would use.
type CountQuery struct {
	IndexName string
	Query     string
	TextField string
	Filters   filter.Expression
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
