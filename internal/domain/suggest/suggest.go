// Package suggest proposes next refinement actions from a static rule table.
package suggest

import "github.com/creatorlens/creatorlens/internal/domain/search/filters"

// Result count thresholds for the rule table.
const (
	largeResultCount = 50
	minSuggestions   = 2
	maxSuggestions   = 3
)

// ForSearch returns 2-3 short refinement suggestions keyed on which filter
// fields are still unset and whether the result count calls for narrowing or
// loosening. Purely deterministic, no external calls.
func ForSearch(snap filters.Snapshot, total int) []string {
	var out []string

	if total == 0 {
		out = append(out, "Try removing some filters to broaden the search")
		if snap.MinFollowers != nil || snap.MaxFollowers != nil {
			out = append(out, "Relax the follower range")
		}
		if len(snap.InterestCategories) > 1 {
			out = append(out, "Drop one of the interest categories")
		}
	}

	if total > largeResultCount {
		if snap.City == nil {
			out = append(out, "Narrow down by city")
		}
		if snap.MinFollowers == nil {
			out = append(out, "Add a minimum followers requirement")
		}
	}

	if snap.City == nil {
		out = append(out, "Filter by a specific city")
	}
	if snap.MinEngagementRate == nil {
		out = append(out, "Show only high engagement influencers")
	}
	if snap.MaxPPC == nil {
		out = append(out, "Filter by budget or price range")
	}
	if snap.Platform == nil {
		out = append(out, "Limit to a single platform")
	}

	out = dedup(out)

	// Backfill so callers always get at least two actionable suggestions.
	if len(out) < minSuggestions {
		for _, fallback := range []string{
			"Refine the search with more specific keywords",
			"Try a different interest category",
		} {
			out = append(out, fallback)
			if len(out) >= minSuggestions {
				break
			}
		}
		out = dedup(out)
	}

	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

func dedup(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
