package search

import (
	"context"
	"errors"
	"testing"

	"github.com/creatorlens/creatorlens/internal/domain"
	"github.com/creatorlens/creatorlens/internal/domain/influencer"
	"github.com/creatorlens/creatorlens/internal/domain/search/filters"
	"github.com/creatorlens/creatorlens/internal/domain/search/request"
	"github.com/creatorlens/creatorlens/internal/usecase/analyze"
)

type mockRepo struct {
	searchFn  func(ctx context.Context, req *request.Request) ([]influencer.WithScore, int, error)
	getByIDFn func(ctx context.Context, id string) (influencer.Influencer, error)
}

func (m *mockRepo) Search(ctx context.Context, req *request.Request) ([]influencer.WithScore, int, error) {
	return m.searchFn(ctx, req)
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (influencer.Influencer, error) {
	return m.getByIDFn(ctx, id)
}

type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
	calls  int
	seen   string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.calls++
	m.seen = text
	return m.result, m.err
}

type mockAnalyzer struct {
	analysis analyze.Analysis
}

func (m *mockAnalyzer) Analyze(context.Context, string) analyze.Analysis { return m.analysis }

func sampleResults() []influencer.WithScore {
	return []influencer.WithScore{
		{Influencer: influencer.Influencer{ID: "inf_a", Username: "a"}, RelevanceScore: 0.9},
		{Influencer: influencer.Influencer{ID: "inf_b", Username: "b"}, RelevanceScore: 0.5},
	}
}

func TestHybrid_EmbedsQueryAndSearches(t *testing.T) {
	var seenReq *request.Request
	repo := &mockRepo{
		searchFn: func(_ context.Context, req *request.Request) ([]influencer.WithScore, int, error) {
			seenReq = req
			return sampleResults(), 42, nil
		},
	}
	embed := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}}
	svc := New(repo, embed, &mockAnalyzer{})

	city := "Mumbai"
	results, total, err := svc.Hybrid(context.Background(), "fitness",
		filters.Snapshot{City: &city}, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 2 || total != 42 {
		t.Errorf("unexpected results: %d total %d", len(results), total)
	}
	if embed.seen != "fitness" {
		t.Errorf("unexpected embed text: %q", embed.seen)
	}
	if seenReq.Query() != "fitness" {
		t.Errorf("unexpected query: %q", seenReq.Query())
	}
	if len(seenReq.Vector()) != 2 {
		t.Errorf("vector not forwarded: %v", seenReq.Vector())
	}
	if seenReq.Snapshot().City == nil || *seenReq.Snapshot().City != "Mumbai" {
		t.Errorf("snapshot not forwarded: %+v", seenReq.Snapshot())
	}
}

func TestHybrid_EmbeddingFailureFallsBackToKeyword(t *testing.T) {
	var seenReq *request.Request
	repo := &mockRepo{
		searchFn: func(_ context.Context, req *request.Request) ([]influencer.WithScore, int, error) {
			seenReq = req
			return sampleResults(), 2, nil
		},
	}
	embed := &mockEmbedder{err: errors.New("provider down")}
	svc := New(repo, embed, &mockAnalyzer{})

	_, _, err := svc.Hybrid(context.Background(), "fitness", filters.Snapshot{}, 10, 0)
	if err != nil {
		t.Fatalf("expected fallback, got error: %v", err)
	}
	if seenReq.Vector() != nil {
		t.Errorf("expected nil vector after embedding failure, got %v", seenReq.Vector())
	}
	if seenReq.Query() != "fitness" {
		t.Errorf("keyword signal lost: %q", seenReq.Query())
	}
}

func TestHybrid_EmptyQuerySkipsEmbedding(t *testing.T) {
	repo := &mockRepo{
		searchFn: func(_ context.Context, req *request.Request) ([]influencer.WithScore, int, error) {
			return nil, 0, nil
		},
	}
	embed := &mockEmbedder{}
	svc := New(repo, embed, &mockAnalyzer{})

	city := "Delhi"
	_, _, err := svc.Hybrid(context.Background(), "", filters.Snapshot{City: &city}, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if embed.calls != 0 {
		t.Errorf("expected no embedding calls, got %d", embed.calls)
	}
}

func TestHybrid_InvalidSnapshotRejected(t *testing.T) {
	repo := &mockRepo{
		searchFn: func(context.Context, *request.Request) ([]influencer.WithScore, int, error) {
			t.Fatal("search should not run")
			return nil, 0, nil
		},
	}
	svc := New(repo, &mockEmbedder{}, &mockAnalyzer{})

	minF, maxF := int64(100000), int64(1000)
	_, _, err := svc.Hybrid(context.Background(), "q",
		filters.Snapshot{MinFollowers: &minF, MaxFollowers: &maxF}, 10, 0)
	if !errors.Is(err, domain.ErrInvalidFilter) {
		t.Errorf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestHybrid_RepoErrorPropagates(t *testing.T) {
	repo := &mockRepo{
		searchFn: func(context.Context, *request.Request) ([]influencer.WithScore, int, error) {
			return nil, 0, domain.ErrSearchUnavailable
		},
	}
	svc := New(repo, &mockEmbedder{}, &mockAnalyzer{})

	_, _, err := svc.Hybrid(context.Background(), "q", filters.Snapshot{}, 10, 0)
	if !errors.Is(err, domain.ErrSearchUnavailable) {
		t.Errorf("expected ErrSearchUnavailable, got %v", err)
	}
}

func TestAnalyzeAndSearch_AppliesExtractedFilters(t *testing.T) {
	platform := "instagram"
	analysis := analyze.Analysis{
		Snapshot:   filters.Snapshot{Query: "fitness in Mumbai", Platform: &platform},
		Intent:     "fitness influencers",
		Confidence: 0.85,
	}

	var seenReq *request.Request
	repo := &mockRepo{
		searchFn: func(_ context.Context, req *request.Request) ([]influencer.WithScore, int, error) {
			seenReq = req
			return sampleResults(), 7, nil
		},
	}
	svc := New(repo, &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.3}}},
		&mockAnalyzer{analysis: analysis})

	resp, err := svc.AnalyzeAndSearch(context.Background(), "fitness in Mumbai", 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if seenReq.Snapshot().Platform == nil || *seenReq.Snapshot().Platform != "instagram" {
		t.Errorf("extracted filter not applied: %+v", seenReq.Snapshot())
	}
	if resp.Total != 7 || len(resp.Results) != 2 {
		t.Errorf("unexpected response: total %d, %d results", resp.Total, len(resp.Results))
	}
	if resp.Analysis.Confidence != 0.85 {
		t.Errorf("analysis not carried: %+v", resp.Analysis)
	}
	if resp.SearchTimeMs < 0 {
		t.Errorf("negative search time: %d", resp.SearchTimeMs)
	}
}

func TestExecute_SeparateEmbedText(t *testing.T) {
	repo := &mockRepo{
		searchFn: func(_ context.Context, req *request.Request) ([]influencer.WithScore, int, error) {
			if req.Query() != "under 50K" {
				t.Errorf("unexpected lexical query: %q", req.Query())
			}
			return nil, 0, nil
		},
	}
	embed := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1}}}
	svc := New(repo, embed, &mockAnalyzer{})

	_, _, err := svc.Execute(context.Background(), "under 50K",
		"fitness influencers under 50K", filters.Snapshot{}, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if embed.seen != "fitness influencers under 50K" {
		t.Errorf("unexpected embed text: %q", embed.seen)
	}
}

func TestGetByID_Delegates(t *testing.T) {
	repo := &mockRepo{
		getByIDFn: func(_ context.Context, id string) (influencer.Influencer, error) {
			if id != "inf_a" {
				t.Errorf("unexpected id: %q", id)
			}
			return influencer.Influencer{ID: "inf_a"}, nil
		},
	}
	svc := New(repo, &mockEmbedder{}, &mockAnalyzer{})

	got, err := svc.GetByID(context.Background(), "inf_a")
	if err != nil || got.ID != "inf_a" {
		t.Errorf("unexpected result: %+v, %v", got, err)
	}
}
