package request

import (
	"fmt"

	"github.com/creatorlens/creatorlens/internal/domain/search/filters"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	DefaultLimit   = 10
	MaxLimit       = 100
	MaxOffset      = 10000
)

// Request is a validated hybrid search query: free text for lexical ranking,
// an optional embedding vector for similarity ranking, and a filter snapshot
// applied to both signals. Any subset may be present; an empty request lists
// the index.
type Request struct {
	query    string
	snapshot filters.Snapshot
	vector   []float32
	limit    int
	offset   int
}

// New validates and normalizes search parameters.
// Defaults: limit=10 (clamped to 100), offset=0.
func New(query string, snapshot filters.Snapshot, vector []float32, limit, offset int) (Request, error) {
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if err := snapshot.Validate(); err != nil {
		return Request{}, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		return Request{}, fmt.Errorf("offset must be non-negative")
	}
	if offset > MaxOffset {
		return Request{}, fmt.Errorf("offset too large (max %d)", MaxOffset)
	}

	snapshot = snapshot.Clone()
	snapshot.NormalizeCategories()

	return Request{
		query:    query,
		snapshot: snapshot,
		vector:   vector,
		limit:    limit,
		offset:   offset,
	}, nil
}

// Query returns the free-text query.
func (r *Request) Query() string { return r.query }

// Snapshot returns the filter snapshot.
func (r *Request) Snapshot() filters.Snapshot { return r.snapshot }

// Vector returns the embedding vector (nil when semantic ranking is off).
func (r *Request) Vector() []float32 { return r.vector }

// Limit returns the requested page size.
func (r *Request) Limit() int { return r.limit }

// Offset returns the pagination offset.
func (r *Request) Offset() int { return r.offset }
