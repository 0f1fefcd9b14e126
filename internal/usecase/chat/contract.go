package chat

import (
	"context"

	"github.com/creatorlens/creatorlens/internal/domain/conversation"
	"github.com/creatorlens/creatorlens/internal/domain/influencer"
	"github.com/creatorlens/creatorlens/internal/domain/search/filters"
	"github.com/creatorlens/creatorlens/internal/usecase/analyze"
)

// Analyzer extracts structured filters from natural language.
type Analyzer interface {
	Analyze(ctx context.Context, query string) analyze.Analysis
}

// Searcher executes hybrid searches with separately controlled embedding text.
type Searcher interface {
	Execute(
		ctx context.Context, query, embedText string,
		snap filters.Snapshot, limit, offset int,
	) ([]influencer.WithScore, int, error)
}

// Store keeps per-conversation refinement state between turns.
type Store interface {
	Get(id string) (conversation.State, bool)
	Put(id string, st conversation.State)
}
