package influencer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/creatorlens/creatorlens/internal/db"
	"github.com/creatorlens/creatorlens/internal/domain"
)

// catalogMockStore implements catalogStore for tests.
type catalogMockStore struct {
	tagValuesFn   func(ctx context.Context, index, field string) ([]string, error)
	searchCountFn func(ctx context.Context, q *db.CountQuery) (int, error)

	tagValuesCalls int
}

func (m *catalogMockStore) TagValues(ctx context.Context, index, field string) ([]string, error) {
	m.tagValuesCalls++
	if m.tagValuesFn != nil {
		return m.tagValuesFn(ctx, index, field)
	}
	return nil, nil
}

func (m *catalogMockStore) SearchCount(ctx context.Context, q *db.CountQuery) (int, error) {
	if m.searchCountFn != nil {
		return m.searchCountFn(ctx, q)
	}
	return 0, nil
}

func vocabStore() *catalogMockStore {
	return &catalogMockStore{
		tagValuesFn: func(_ context.Context, _, field string) ([]string, error) {
			switch field {
			case fieldInterests:
				return []string{"Fitness", "Fashion", "Tech"}, nil
			case fieldPrimaryCategory:
				return []string{"Lifestyle", "Technology"}, nil
			case fieldCity:
				return []string{"Mumbai", "Delhi"}, nil
			case fieldCreatorTier:
				return []string{"micro", "macro"}, nil
			case fieldPlatform:
				return []string{"instagram", "youtube"}, nil
			case fieldLanguage:
				return []string{"Hindi", "English"}, nil
			}
			return nil, nil
		},
		searchCountFn: func(_ context.Context, q *db.CountQuery) (int, error) {
			if q.Filters.IsEmpty() {
				return 1200, nil // total
			}
			switch q.Filters.Must()[0].Match() {
			case "Fitness":
				return 300, nil
			case "Fashion":
				return 450, nil
			}
			return 10, nil
		},
	}
}

func TestCatalogGet_DiscoversVocabulary(t *testing.T) {
	repo := NewCatalog(vocabStore(), time.Minute)

	c, err := repo.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.TotalInfluencers != 1200 {
		t.Errorf("expected total 1200, got %d", c.TotalInfluencers)
	}
	if len(c.InterestCategories) != 3 {
		t.Fatalf("expected 3 interest categories, got %d", len(c.InterestCategories))
	}
	// ordered by count descending
	if c.InterestCategories[0].Name != "Fashion" || c.InterestCategories[0].Count != 450 {
		t.Errorf("unexpected top category: %+v", c.InterestCategories[0])
	}
	if c.InterestCategories[1].Name != "Fitness" {
		t.Errorf("unexpected second category: %+v", c.InterestCategories[1])
	}
	if len(c.Cities) != 2 || c.Cities[0] != "Delhi" {
		t.Errorf("cities should be sorted: %v", c.Cities)
	}
	if !c.HasPlatform("instagram") || !c.HasCreatorTier("micro") {
		t.Error("membership checks should see discovered values")
	}
}

func TestCatalogTrendingCategories_OrderedByCount(t *testing.T) {
	repo := NewCatalog(vocabStore(), time.Minute)

	names, err := repo.TrendingCategories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Fashion", "Fitness", "Tech"}
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %v", len(want), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], names[i])
		}
	}
}

func TestCatalogTrendingCategories_CapsAtTen(t *testing.T) {
	many := []string{"C01", "C02", "C03", "C04", "C05", "C06", "C07", "C08", "C09", "C10", "C11", "C12"}
	ms := vocabStore()
	base := ms.tagValuesFn
	ms.tagValuesFn = func(ctx context.Context, index, field string) ([]string, error) {
		if field == fieldInterests {
			return many, nil
		}
		return base(ctx, index, field)
	}
	repo := NewCatalog(ms, time.Minute)

	names, err := repo.TrendingCategories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 10 {
		t.Errorf("expected top 10, got %d: %v", len(names), names)
	}
}

func TestCatalogGet_CachesWithinTTL(t *testing.T) {
	ms := vocabStore()
	repo := NewCatalog(ms, time.Minute)

	if _, err := repo.Get(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	calls := ms.tagValuesCalls

	if _, err := repo.Get(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ms.tagValuesCalls != calls {
		t.Errorf("second Get should hit the cache, calls %d -> %d", calls, ms.tagValuesCalls)
	}
}

func TestCatalogRefresh_BypassesCache(t *testing.T) {
	ms := vocabStore()
	repo := NewCatalog(ms, time.Hour)

	if _, err := repo.Get(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	calls := ms.tagValuesCalls

	if _, err := repo.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ms.tagValuesCalls == calls {
		t.Error("Refresh should rediscover the vocabulary")
	}
}

func TestCatalogGet_ColdCacheErrorSurfaces(t *testing.T) {
	ms := &catalogMockStore{
		tagValuesFn: func(_ context.Context, _, _ string) ([]string, error) {
			return nil, db.ErrIndexNotFound
		},
	}
	repo := NewCatalog(ms, time.Minute)

	_, err := repo.Get(context.Background())
	if !errors.Is(err, domain.ErrSearchUnavailable) {
		t.Errorf("expected ErrSearchUnavailable, got %v", err)
	}
}

func TestCatalogGet_ServesStaleOnDiscoveryFailure(t *testing.T) {
	ms := vocabStore()
	repo := NewCatalog(ms, time.Nanosecond)

	first, err := repo.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ms.tagValuesFn = func(_ context.Context, _, _ string) ([]string, error) {
		return nil, db.ErrIndexNotFound
	}
	time.Sleep(time.Millisecond)

	second, err := repo.Get(context.Background())
	if err != nil {
		t.Fatalf("stale cache should be served, got error: %v", err)
	}
	if second.TotalInfluencers != first.TotalInfluencers {
		t.Errorf("expected stale catalog, got %+v", second)
	}
}
