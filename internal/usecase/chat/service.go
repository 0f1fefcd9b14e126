// Package chat implements conversational search: each turn is analyzed,
// merged with the conversation's accumulated filters, and executed as a
// hybrid search. Refinements only ever narrow.
package chat

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/creatorlens/creatorlens/internal/domain/conversation"
	"github.com/creatorlens/creatorlens/internal/domain/influencer"
	"github.com/creatorlens/creatorlens/internal/domain/search/filters"
	"github.com/creatorlens/creatorlens/internal/domain/suggest"
	"github.com/creatorlens/creatorlens/internal/logger"
)

// Service handles conversational influencer search.
type Service struct {
	analyzer Analyzer
	searcher Searcher
	store    Store
}

// New creates a conversational search service.
func New(analyzer Analyzer, searcher Searcher, store Store) *Service {
	return &Service{analyzer: analyzer, searcher: searcher, store: store}
}

// Response is one conversational search turn.
type Response struct {
	Results           []influencer.WithScore
	Total             int
	ConversationID    string
	AppliedFilters    filters.Snapshot
	RefinementSummary string
	Suggestions       []string
	SearchTimeMs      int64
}

// Search runs one conversation turn. An empty conversationID starts a fresh
// conversation; an unknown one behaves the same under the given id. State is
// written only after the search succeeds, so a failed turn leaves the
// conversation where it was.
func (s *Service) Search(
	ctx context.Context, query, conversationID string, limit, offset int,
) (Response, error) {
	start := time.Now()

	var prev conversation.State
	hasPrev := false
	if conversationID == "" {
		conversationID = uuid.NewString()
	} else {
		prev, hasPrev = s.store.Get(conversationID)
	}

	analysis := s.analyzer.Analyze(ctx, query)

	merged := analysis.Snapshot
	summary := ""
	embedText := query
	if hasPrev {
		merged, summary = filters.Merge(prev.Filters, analysis.Snapshot)
		// Embed the conversation so far, not just the latest fragment:
		// "fitness influencers" + "under 50K" should stay about fitness.
		// The stored query is the accumulated text, so the window covers
		// every turn, not just the previous one.
		if prev.Query != "" && prev.Query != query {
			embedText = prev.Query + " " + query
		}
	}

	results, total, err := s.searcher.Execute(ctx, query, embedText, merged, limit, offset)
	if err != nil {
		return Response{}, err
	}

	s.store.Put(conversationID, conversation.State{
		Filters:     merged,
		Query:       embedText,
		ResultCount: total,
	})

	logger.FromContext(ctx).Debug("Conversation turn completed",
		zap.String("conversation_id", conversationID),
		zap.Bool("refinement", hasPrev),
		zap.Int("total", total))

	return Response{
		Results:           results,
		Total:             total,
		ConversationID:    conversationID,
		AppliedFilters:    merged,
		RefinementSummary: summary,
		Suggestions:       suggest.ForSearch(merged, total),
		SearchTimeMs:      time.Since(start).Milliseconds(),
	}, nil
}
