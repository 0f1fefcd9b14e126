// Package search runs hybrid influencer search: BM25 over profile text and
// KNN over profile embeddings, fused downstream in the index adapter.
package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/creatorlens/creatorlens/internal/domain"
	"github.com/creatorlens/creatorlens/internal/domain/influencer"
	"github.com/creatorlens/creatorlens/internal/domain/search/filters"
	"github.com/creatorlens/creatorlens/internal/domain/search/request"
	"github.com/creatorlens/creatorlens/internal/logger"
	"github.com/creatorlens/creatorlens/internal/usecase/analyze"
)

// Service executes hybrid searches over the influencer index.
type Service struct {
	repo     Repository
	embed    Embedder
	analyzer Analyzer
}

// New creates a search service.
func New(repo Repository, embed Embedder, analyzer Analyzer) *Service {
	return &Service{repo: repo, embed: embed, analyzer: analyzer}
}

// Response is one executed natural-language search.
type Response struct {
	Results      []influencer.WithScore
	Total        int
	Analysis     analyze.Analysis
	SearchTimeMs int64
}

// AnalyzeAndSearch extracts filters from the query, then runs a hybrid
// search with them. Analysis is best-effort: a failed analysis degrades to
// an unfiltered hybrid search over the raw query.
func (s *Service) AnalyzeAndSearch(
	ctx context.Context, query string, limit, offset int,
) (Response, error) {
	start := time.Now()

	analysis := s.analyzer.Analyze(ctx, query)

	results, total, err := s.Execute(ctx, query, query, analysis.Snapshot, limit, offset)
	if err != nil {
		return Response{}, err
	}

	return Response{
		Results:      results,
		Total:        total,
		Analysis:     analysis,
		SearchTimeMs: time.Since(start).Milliseconds(),
	}, nil
}

// Hybrid runs a keyword + semantic search with caller-supplied filters.
func (s *Service) Hybrid(
	ctx context.Context, query string, snap filters.Snapshot, limit, offset int,
) ([]influencer.WithScore, int, error) {
	return s.Execute(ctx, query, query, snap, limit, offset)
}

// Execute runs the search with separately controlled embedding text; the
// conversational flow embeds text spanning turns while ranking lexically on
// the current query only.
//
// Embedding failures fail closed: the vector signal is dropped and keyword
// search proceeds.
func (s *Service) Execute(
	ctx context.Context, query, embedText string, snap filters.Snapshot, limit, offset int,
) ([]influencer.WithScore, int, error) {
	if err := snap.Validate(); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", domain.ErrInvalidFilter, err)
	}

	vector := s.embedQuery(ctx, embedText)

	req, err := request.New(query, snap, vector, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}

	return s.repo.Search(ctx, &req)
}

// GetByID fetches a single profile.
func (s *Service) GetByID(ctx context.Context, id string) (influencer.Influencer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) embedQuery(ctx context.Context, text string) []float32 {
	if text == "" {
		return nil
	}
	res, err := s.embed.Embed(ctx, text)
	if err != nil {
		logger.FromContext(ctx).Warn("Embedding failed, falling back to keyword-only search",
			zap.Error(err))
		return nil
	}
	return res.Embedding
}
