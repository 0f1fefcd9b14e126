package influencer

import (
	"strconv"
	"strings"

	"github.com/creatorlens/creatorlens/internal/db"
	"github.com/creatorlens/creatorlens/internal/domain/influencer"
)

// returnFields lists the hash fields fetched for a result row. The embedding
// blob is deliberately excluded.
var returnFields = []string{
	fieldUsername,
	fieldDisplayName,
	fieldPlatform,
	fieldFollowers,
	fieldBio,
	fieldPrimaryCategory,
	fieldInterests,
	fieldEngagementRate,
	fieldCity,
	fieldCreatorTier,
	fieldLanguage,
	fieldAvgViews,
	fieldPPC,
	fieldProfileImageURL,
	fieldProfileURL,
}

// knnReturnFields additionally requests the synthetic distance field.
var knnReturnFields = append(append([]string{}, returnFields...), scoreField)

// entryToProfile maps a search entry's hash fields into the domain shape.
func entryToProfile(entry db.SearchEntry) influencer.WithScore {
	f := entry.Fields
	return influencer.WithScore{
		Influencer: influencer.Influencer{
			ID:              strings.TrimPrefix(entry.Key, KeyPrefix),
			Username:        f[fieldUsername],
			DisplayName:     f[fieldDisplayName],
			Platform:        f[fieldPlatform],
			Followers:       parseInt(f[fieldFollowers]),
			Bio:             f[fieldBio],
			PrimaryCategory: f[fieldPrimaryCategory],
			InterestTags:    splitTags(f[fieldInterests]),
			EngagementRate:  parseFloat(f[fieldEngagementRate]),
			City:            f[fieldCity],
			CreatorTier:     f[fieldCreatorTier],
			Language:        f[fieldLanguage],
			AverageViews:    parseInt(f[fieldAvgViews]),
			PricePerCollab:  parseInt(f[fieldPPC]),
			ProfileImageURL: f[fieldProfileImageURL],
			ProfileURL:      f[fieldProfileURL],
		},
		RelevanceScore: entry.Score,
	}
}

// hashToProfile maps a raw HGETALL result into the domain shape.
func hashToProfile(id string, fields map[string]string) influencer.Influencer {
	p := entryToProfile(db.SearchEntry{Key: KeyPrefix + id, Fields: fields})
	return p.Influencer
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, interestSeparator)
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func parseInt(s string) int64 {
	if s == "" {
		return 0
	}
	// numeric hash fields may carry a float representation
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return 0
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
