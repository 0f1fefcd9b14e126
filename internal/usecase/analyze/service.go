// Package analyze turns free-form user queries into structured filter
// snapshots via a chat model. The analyzer is a best-effort collaborator:
// whatever goes wrong, search continues with an empty snapshot.
package analyze

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/creatorlens/creatorlens/internal/domain/catalog"
	"github.com/creatorlens/creatorlens/internal/domain/search/filters"
	"github.com/creatorlens/creatorlens/internal/logger"
	"github.com/creatorlens/creatorlens/internal/metrics"
)

// Analysis is the structured reading of one user query.
type Analysis struct {
	Snapshot            filters.Snapshot
	Intent              string
	Confidence          float64
	SuggestedCategories []string
}

// Service analyzes natural language queries against the current vocabulary.
type Service struct {
	chat    ChatClient
	catalog CatalogReader
}

// New creates a query analysis service.
func New(chat ChatClient, cat CatalogReader) *Service {
	return &Service{chat: chat, catalog: cat}
}

// llmFilters mirrors the extracted_filters object of the model response.
// Everything is optional; absent and null are equivalent.
type llmFilters struct {
	Platform           *string  `json:"platform"`
	City               *string  `json:"city"`
	PrimaryCategory    *string  `json:"primary_category"`
	CreatorType        *string  `json:"creator_type"`
	Language           *string  `json:"language"`
	MinFollowers       *int64   `json:"min_followers"`
	MaxFollowers       *int64   `json:"max_followers"`
	MinAvgViews        *int64   `json:"min_avg_views"`
	MaxAvgViews        *int64   `json:"max_avg_views"`
	MinPPC             *int64   `json:"min_ppc"`
	MaxPPC             *int64   `json:"max_ppc"`
	MinEngagementRate  *float64 `json:"min_engagement_rate"`
	MaxEngagementRate  *float64 `json:"max_engagement_rate"`
	InterestCategories []string `json:"interest_categories"`
}

type llmResult struct {
	SearchIntent        string     `json:"search_intent"`
	ExtractedFilters    llmFilters `json:"extracted_filters"`
	SuggestedCategories []string   `json:"suggested_categories"`
	Confidence          float64    `json:"confidence"`
}

// Analyze extracts a filter snapshot from the query. It never returns an
// error: transport failures and malformed model output degrade to an empty
// snapshot with zero confidence.
func (s *Service) Analyze(ctx context.Context, query string) Analysis {
	log := logger.FromContext(ctx)

	cat, err := s.catalog.Get(ctx)
	if err != nil {
		// Vocabulary is a constraint, not a prerequisite.
		log.Warn("Catalog unavailable, analyzing without vocabulary", zap.Error(err))
		cat = catalog.Catalog{}
	}

	raw, err := s.chat.Complete(ctx, systemPrompt(cat), query)
	if err != nil {
		log.Warn("Query analysis transport failed", zap.Error(err))
		metrics.AnalyzerFallbacksTotal.WithLabelValues("transport").Inc()
		return fallback(query)
	}

	var parsed llmResult
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		log.Warn("Query analysis output unparseable",
			zap.Error(err), zap.String("content", truncate(raw, 256)))
		metrics.AnalyzerFallbacksTotal.WithLabelValues("parse").Inc()
		return fallback(query)
	}

	snap := toSnapshot(query, parsed.ExtractedFilters, cat)

	return Analysis{
		Snapshot:            snap,
		Intent:              parsed.SearchIntent,
		Confidence:          clamp01(parsed.Confidence),
		SuggestedCategories: parsed.SuggestedCategories,
	}
}

// fallback is the degraded analysis: the raw query with no filters.
func fallback(query string) Analysis {
	return Analysis{Snapshot: filters.Snapshot{Query: query}}
}

// toSnapshot sanitizes extracted filters: vocabulary-bound values outside
// the catalog are dropped, inverted numeric pairs are swapped, and negative
// bounds are nulled.
func toSnapshot(query string, f llmFilters, cat catalog.Catalog) filters.Snapshot {
	snap := filters.Snapshot{Query: query}

	snap.Platform = canonScalar(f.Platform, cat.Platforms)
	snap.City = canonScalar(f.City, cat.Cities)
	snap.CreatorTier = canonScalar(f.CreatorType, cat.CreatorTiers)
	snap.Language = canonScalar(f.Language, cat.Languages)
	snap.PrimaryCategory = canonCategory(f.PrimaryCategory, cat.PrimaryCategories)

	snap.MinFollowers, snap.MaxFollowers = orderedInts(f.MinFollowers, f.MaxFollowers)
	snap.MinAvgViews, snap.MaxAvgViews = orderedInts(f.MinAvgViews, f.MaxAvgViews)
	snap.MinPPC, snap.MaxPPC = orderedInts(f.MinPPC, f.MaxPPC)
	snap.MinEngagementRate, snap.MaxEngagementRate = orderedFloats(f.MinEngagementRate, f.MaxEngagementRate)

	snap.InterestCategories = canonCategories(f.InterestCategories, cat.InterestCategories)
	snap.NormalizeCategories()

	return snap
}

// canonScalar matches a value case-insensitively against the known
// vocabulary and returns its canonical form. An empty vocabulary accepts
// the value as-is; a non-empty one rejects unknown values.
func canonScalar(value *string, known []string) *string {
	if value == nil || *value == "" {
		return nil
	}
	if len(known) == 0 {
		v := *value
		return &v
	}
	for _, k := range known {
		if strings.EqualFold(k, *value) {
			canonical := k
			return &canonical
		}
	}
	return nil
}

func canonCategory(value *string, known []catalog.CategoryStat) *string {
	return canonScalar(value, statNames(known))
}

func canonCategories(values []string, known []catalog.CategoryStat) []string {
	if len(values) == 0 {
		return nil
	}
	names := statNames(known)
	out := make([]string, 0, len(values))
	for _, v := range values {
		if canonical := canonScalar(&v, names); canonical != nil {
			out = append(out, *canonical)
		}
	}
	return out
}

func statNames(stats []catalog.CategoryStat) []string {
	names := make([]string, 0, len(stats))
	for _, s := range stats {
		names = append(names, s.Name)
	}
	return names
}

// orderedInts drops negative bounds and swaps an inverted pair.
func orderedInts(minB, maxB *int64) (*int64, *int64) {
	if minB != nil && *minB < 0 {
		minB = nil
	}
	if maxB != nil && *maxB < 0 {
		maxB = nil
	}
	if minB != nil && maxB != nil && *minB > *maxB {
		minB, maxB = maxB, minB
	}
	return minB, maxB
}

func orderedFloats(minB, maxB *float64) (*float64, *float64) {
	if minB != nil && *minB < 0 {
		minB = nil
	}
	if maxB != nil && *maxB < 0 {
		maxB = nil
	}
	if minB != nil && maxB != nil && *minB > *maxB {
		minB, maxB = maxB, minB
	}
	return minB, maxB
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
