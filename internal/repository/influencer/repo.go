// Package influencer adapts the search index into the profile repository
// used by the usecases: it translates filter snapshots into index predicates,
// issues the lexical and vector rankings with an identical pre-filter, and
// fuses them into one relevance order.
package influencer

import (
	"context"
	"fmt"

	"github.com/creatorlens/creatorlens/internal/db"
	"github.com/creatorlens/creatorlens/internal/domain"
	"github.com/creatorlens/creatorlens/internal/domain/influencer"
	"github.com/creatorlens/creatorlens/internal/domain/search/filter"
	"github.com/creatorlens/creatorlens/internal/domain/search/request"
)

// store is the consumer interface for index operations (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchBM25(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, q *db.CountQuery) (int, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
}

// Repo implements the usecase search repository over the influencer index.
type Repo struct {
	store store
}

// New creates an influencer repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Search runs hybrid retrieval for the request and returns one result page
// plus the total number of profiles matching the filter predicate.
//
// Ranking signals are chosen by what the request carries: an embedding
// vector enables KNN, non-empty query text enables BM25, both together are
// fused via RRF. A request with neither signal lists the index in stored
// order.
func (r *Repo) Search(ctx context.Context, req *request.Request) ([]influencer.WithScore, int, error) {
	expr, err := buildExpression(req.Snapshot())
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", domain.ErrInvalidFilter, err)
	}

	hasVector := len(req.Vector()) > 0
	hasQuery := req.Query() != ""

	if !hasVector && !hasQuery {
		sr, err := r.store.SearchList(ctx, &db.ListQuery{
			IndexName:    IndexName,
			Filters:      expr,
			Offset:       req.Offset(),
			Limit:        req.Limit(),
			ReturnFields: returnFields,
		})
		if err != nil {
			return nil, 0, fmt.Errorf("%w: list: %w", domain.ErrSearchUnavailable, err)
		}
		return entriesToProfiles(sr.Entries), sr.Total, nil
	}

	// Both rankings are fetched to the window's depth so the fused order is
	// exact for any offset within bounds.
	depth := req.Offset() + req.Limit()

	var knnEntries, bm25Entries []db.SearchEntry

	if hasVector {
		sr, err := r.store.SearchKNN(ctx, &db.KNNQuery{
			IndexName:    IndexName,
			Filters:      expr,
			Vector:       req.Vector(),
			K:            depth,
			ReturnFields: knnReturnFields,
		})
		if err != nil {
			return nil, 0, fmt.Errorf("%w: knn: %w", domain.ErrSearchUnavailable, err)
		}
		knnEntries = sr.Entries
	}

	if hasQuery {
		sr, err := r.store.SearchBM25(ctx, &db.TextQuery{
			IndexName:    IndexName,
			Filters:      expr,
			Query:        req.Query(),
			TextField:    fieldSearchText,
			TopK:         depth,
			ReturnFields: returnFields,
		})
		if err != nil {
			return nil, 0, fmt.Errorf("%w: bm25: %w", domain.ErrSearchUnavailable, err)
		}
		bm25Entries = sr.Entries
	}

	var ranked []db.SearchEntry
	switch {
	case hasVector && hasQuery:
		ranked = fuseRRF(knnEntries, bm25Entries)
	case hasVector:
		ranked = knnEntries
	default:
		ranked = bm25Entries
	}

	total, err := r.count(ctx, req.Query(), expr)
	if err != nil {
		return nil, 0, err
	}

	return entriesToProfiles(window(ranked, req.Offset(), req.Limit())), total, nil
}

// GetByID fetches a single profile by its document id.
func (r *Repo) GetByID(ctx context.Context, id string) (influencer.Influencer, error) {
	fields, err := r.store.HGetAll(ctx, KeyPrefix+id)
	if err != nil {
		return influencer.Influencer{}, fmt.Errorf("%w: get %s: %w", domain.ErrSearchUnavailable, id, err)
	}
	// HGETALL yields an empty map for a missing key.
	if len(fields) == 0 {
		return influencer.Influencer{}, domain.ErrInfluencerNotFound
	}
	return hashToProfile(id, fields), nil
}

// count returns the total number of profiles matching the predicate (and
// the text clause when present), independent of the requested page.
func (r *Repo) count(ctx context.Context, query string, expr filter.Expression) (int, error) {
	total, err := r.store.SearchCount(ctx, &db.CountQuery{
		IndexName: IndexName,
		Query:     query,
		TextField: fieldSearchText,
		Filters:   expr,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: count: %w", domain.ErrSearchUnavailable, err)
	}
	return total, nil
}

func entriesToProfiles(entries []db.SearchEntry) []influencer.WithScore {
	profiles := make([]influencer.WithScore, 0, len(entries))
	for _, e := range entries {
		profiles = append(profiles, entryToProfile(e))
	}
	return profiles
}

func window(entries []db.SearchEntry, offset, limit int) []db.SearchEntry {
	if offset >= len(entries) {
		return nil
	}
	end := offset + limit
	if end > len(entries) {
		end = len(entries)
	}
	return entries[offset:end]
}
