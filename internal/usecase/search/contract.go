package search

import (
	"context"

	"github.com/creatorlens/creatorlens/internal/domain"
	"github.com/creatorlens/creatorlens/internal/domain/influencer"
	"github.com/creatorlens/creatorlens/internal/domain/search/request"
	"github.com/creatorlens/creatorlens/internal/usecase/analyze"
)

// Repository is the index-backed search contract.
type Repository interface {
	Search(ctx context.Context, req *request.Request) ([]influencer.WithScore, int, error)
	GetByID(ctx context.Context, id string) (influencer.Influencer, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Analyzer extracts structured filters from natural language.
type Analyzer interface {
	Analyze(ctx context.Context, query string) analyze.Analysis
}
