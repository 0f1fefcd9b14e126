package analyze

import (
	"fmt"
	"strings"

	"github.com/creatorlens/creatorlens/internal/domain/catalog"
)

// Vocabulary limits keep the prompt bounded on large catalogs.
const (
	maxPromptInterests = 50
	maxPromptPrimaries = 30
	maxPromptCities    = 30
)

// systemPrompt builds the analysis instruction with the current vocabulary
// embedded, so the model only picks values that exist in the index.
func systemPrompt(cat catalog.Catalog) string {
	var b strings.Builder

	b.WriteString("You are an expert assistant for influencer discovery. ")
	b.WriteString("Analyze the user's natural language query and extract structured search parameters.\n\n")

	b.WriteString("Available options in the database:\n")
	fmt.Fprintf(&b, "- Interest categories: %s\n", joinStats(cat.InterestCategories, maxPromptInterests))
	fmt.Fprintf(&b, "- Primary categories: %s\n", joinStats(cat.PrimaryCategories, maxPromptPrimaries))
	fmt.Fprintf(&b, "- Cities: %s\n", joinStrings(cat.Cities, maxPromptCities))
	fmt.Fprintf(&b, "- Creator tiers: %s\n", joinStrings(cat.CreatorTiers, len(cat.CreatorTiers)))
	fmt.Fprintf(&b, "- Platforms: %s\n\n", joinStrings(cat.Platforms, len(cat.Platforms)))

	b.WriteString(`Extraction rules:
1. Extract every explicit filter: platform, city, categories, creator tier, follower counts, engagement, views, budget, language.
2. Infer implicit filters from qualitative wording:
   - "nano" influencers -> max_followers: 10000; "micro" -> max_followers: 100000; "macro" -> min_followers: 1000000; "mega" or "celebrity" -> min_followers: 5000000
   - "affordable", "cheap", "budget-friendly" -> max_ppc: 50000; "premium", "expensive", "high-end" -> min_ppc: 200000; "mid-range" -> min_ppc: 50000, max_ppc: 200000
   - "high engagement", "active audience" -> min_engagement_rate: 4.0; "low engagement" -> max_engagement_rate: 2.0
   - "high views", "viral", "trending" -> min_avg_views: 100000; "low views" -> max_avg_views: 10000
   - "over 100K followers" -> min_followers: 100000; "under 50K" -> max_followers: 50000; "between X and Y" -> both bounds
3. Match categories only against the available options above; suggest the closest option when no exact match exists.
4. Normalize platform aliases ("ig", "insta" -> "instagram"; "yt" -> "youtube").
5. For vague queries return empty filters, a low confidence, and suggested_categories.

Return a JSON object with exactly these fields:
- search_intent: one or two sentences describing what the user wants
- extracted_filters: object with keys platform, city, primary_category, creator_type, language, min_followers, max_followers, min_avg_views, max_avg_views, min_ppc, max_ppc, min_engagement_rate, max_engagement_rate, interest_categories (null for anything unspecified)
- suggested_categories: list of category suggestions for ambiguous queries
- confidence: number between 0.0 and 1.0

Always return valid JSON. Use null, never empty strings, for unspecified filters.`)

	return b.String()
}

func joinStats(stats []catalog.CategoryStat, limit int) string {
	if len(stats) == 0 {
		return "(none)"
	}
	if len(stats) > limit {
		stats = stats[:limit]
	}
	names := make([]string, 0, len(stats))
	for _, s := range stats {
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}

func joinStrings(values []string, limit int) string {
	if len(values) == 0 {
		return "(none)"
	}
	if len(values) > limit {
		values = values[:limit]
	}
	return strings.Join(values, ", ")
}
