package influencer

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/creatorlens/creatorlens/internal/db"
	"github.com/creatorlens/creatorlens/internal/domain"
	"github.com/creatorlens/creatorlens/internal/domain/catalog"
	"github.com/creatorlens/creatorlens/internal/domain/search/filter"
)

// catalogStore is the consumer interface for vocabulary discovery (ISP).
type catalogStore interface {
	TagValues(ctx context.Context, index, field string) ([]string, error)
	SearchCount(ctx context.Context, q *db.CountQuery) (int, error)
}

// DefaultCatalogTTL bounds how stale the cached vocabulary may get.
const DefaultCatalogTTL = 15 * time.Minute

// CatalogRepo discovers the filter vocabulary from the index tag fields and
// caches it for a TTL. Discovery issues one TAGVALS per tag field plus one
// count per category value, so callers go through the cache.
type CatalogRepo struct {
	store catalogStore
	ttl   time.Duration

	mu        sync.Mutex
	cached    catalog.Catalog
	fetchedAt time.Time
}

// NewCatalog creates a catalog repository. A non-positive ttl falls back to
// DefaultCatalogTTL.
func NewCatalog(s catalogStore, ttl time.Duration) *CatalogRepo {
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	return &CatalogRepo{store: s, ttl: ttl}
}

// Get returns the current vocabulary, discovering it when the cache is cold
// or expired.
func (r *CatalogRepo) Get(ctx context.Context) (catalog.Catalog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.fetchedAt.IsZero() && time.Since(r.fetchedAt) < r.ttl {
		return r.cached, nil
	}
	return r.refreshLocked(ctx)
}

// trendingCategoryLimit caps the trending list at the most common values.
const trendingCategoryLimit = 10

// TrendingCategories returns the names of the most common interest
// categories, ordered by profile count descending.
func (r *CatalogRepo) TrendingCategories(ctx context.Context) ([]string, error) {
	c, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}

	stats := c.InterestCategories
	if len(stats) > trendingCategoryLimit {
		stats = stats[:trendingCategoryLimit]
	}
	names := make([]string, len(stats))
	for i, s := range stats {
		names[i] = s.Name
	}
	return names, nil
}

// Refresh discards the cache and rediscovers the vocabulary.
func (r *CatalogRepo) Refresh(ctx context.Context) (catalog.Catalog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refreshLocked(ctx)
}

func (r *CatalogRepo) refreshLocked(ctx context.Context) (catalog.Catalog, error) {
	discovered, err := r.discover(ctx)
	if err != nil {
		// Serve a stale cache over failing the caller outright.
		if !r.fetchedAt.IsZero() {
			return r.cached, nil
		}
		return catalog.Catalog{}, err
	}

	r.cached = discovered
	r.fetchedAt = time.Now()
	return r.cached, nil
}

func (r *CatalogRepo) discover(ctx context.Context) (catalog.Catalog, error) {
	var c catalog.Catalog
	var err error

	if c.InterestCategories, err = r.categoryStats(ctx, fieldInterests); err != nil {
		return catalog.Catalog{}, err
	}
	if c.PrimaryCategories, err = r.categoryStats(ctx, fieldPrimaryCategory); err != nil {
		return catalog.Catalog{}, err
	}
	if c.Cities, err = r.tagValues(ctx, fieldCity); err != nil {
		return catalog.Catalog{}, err
	}
	if c.CreatorTiers, err = r.tagValues(ctx, fieldCreatorTier); err != nil {
		return catalog.Catalog{}, err
	}
	if c.Platforms, err = r.tagValues(ctx, fieldPlatform); err != nil {
		return catalog.Catalog{}, err
	}
	if c.Languages, err = r.tagValues(ctx, fieldLanguage); err != nil {
		return catalog.Catalog{}, err
	}

	c.TotalInfluencers, err = r.store.SearchCount(ctx, &db.CountQuery{IndexName: IndexName})
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("%w: total count: %w", domain.ErrSearchUnavailable, err)
	}

	return c, nil
}

// categoryStats returns each distinct value of a tag field with its profile
// count, ordered by count descending.
func (r *CatalogRepo) categoryStats(ctx context.Context, field string) ([]catalog.CategoryStat, error) {
	values, err := r.tagValues(ctx, field)
	if err != nil {
		return nil, err
	}

	stats := make([]catalog.CategoryStat, 0, len(values))
	for _, v := range values {
		cond, err := filter.NewMatch(field, v)
		if err != nil {
			continue
		}
		expr, err := filter.NewExpression([]filter.Condition{cond}, nil)
		if err != nil {
			continue
		}

		count, err := r.store.SearchCount(ctx, &db.CountQuery{IndexName: IndexName, Filters: expr})
		if err != nil {
			return nil, fmt.Errorf("%w: count %s=%s: %w", domain.ErrSearchUnavailable, field, v, err)
		}
		stats = append(stats, catalog.CategoryStat{Name: v, Count: count})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Name < stats[j].Name
	})
	return stats, nil
}

func (r *CatalogRepo) tagValues(ctx context.Context, field string) ([]string, error) {
	values, err := r.store.TagValues(ctx, IndexName, field)
	if err != nil {
		return nil, fmt.Errorf("%w: tagvals %s: %w", domain.ErrSearchUnavailable, field, err)
	}
	sort.Strings(values)
	return values, nil
}
