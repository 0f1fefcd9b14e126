package chi

import (
	"github.com/creatorlens/creatorlens/internal/domain/catalog"
	"github.com/creatorlens/creatorlens/internal/domain/influencer"
	"github.com/creatorlens/creatorlens/internal/domain/search/filters"
)

// searchRequest is the natural-language search body.
type searchRequest struct {
	Query  string `json:"query"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// hybridRequest is the structured search body: free text plus explicit filters.
type hybridRequest struct {
	Query   string     `json:"query"`
	Filters *filterDTO `json:"filters"`
	Limit   int        `json:"limit"`
	Offset  int        `json:"offset"`
}

// chatRequest is one conversational search turn.
type chatRequest struct {
	Query          string `json:"query"`
	ConversationID string `json:"conversation_id"`
	Limit          int    `json:"limit"`
	Offset         int    `json:"offset"`
}

type filterDTO struct {
	Platform           *string  `json:"platform,omitempty"`
	City               *string  `json:"city,omitempty"`
	PrimaryCategory    *string  `json:"primary_category,omitempty"`
	CreatorTier        *string  `json:"creator_tier,omitempty"`
	Language           *string  `json:"language,omitempty"`
	MinFollowers       *int64   `json:"min_followers,omitempty"`
	MaxFollowers       *int64   `json:"max_followers,omitempty"`
	MinEngagementRate  *float64 `json:"min_engagement_rate,omitempty"`
	MaxEngagementRate  *float64 `json:"max_engagement_rate,omitempty"`
	MinAvgViews        *int64   `json:"min_avg_views,omitempty"`
	MaxAvgViews        *int64   `json:"max_avg_views,omitempty"`
	MinPPC             *int64   `json:"min_ppc,omitempty"`
	MaxPPC             *int64   `json:"max_ppc,omitempty"`
	InterestCategories []string `json:"interest_categories,omitempty"`
}

type influencerDTO struct {
	ID                 string   `json:"id"`
	Username           string   `json:"username"`
	DisplayName        string   `json:"display_name"`
	Platform           string   `json:"platform"`
	FollowersCount     int64    `json:"followers_count"`
	Bio                string   `json:"bio"`
	PrimaryCategory    string   `json:"primary_category"`
	InterestCategories []string `json:"interest_categories"`
	EngagementRate     float64  `json:"engagement_rate"`
	City               string   `json:"city"`
	CreatorTier        string   `json:"creator_tier"`
	Language           string   `json:"language"`
	AvgViews           int64    `json:"avg_views"`
	PricePerCollab     int64    `json:"price_per_collab"`
	ProfileImageURL    string   `json:"profile_image_url"`
	ProfileURL         string   `json:"profile_url"`
	RelevanceScore     float64  `json:"relevance_score"`
}

type searchResponse struct {
	Results             []influencerDTO `json:"results"`
	Total               int             `json:"total"`
	Limit               int             `json:"limit"`
	Offset              int             `json:"offset"`
	HasMore             bool            `json:"has_more"`
	Intent              string          `json:"intent,omitempty"`
	AppliedFilters      *filterDTO      `json:"applied_filters,omitempty"`
	SuggestedCategories []string        `json:"suggested_categories,omitempty"`
	Confidence          float64         `json:"confidence"`
	SearchTimeMs        int64           `json:"search_time_ms"`
}

type hybridResponse struct {
	Results []influencerDTO `json:"results"`
	Total   int             `json:"total"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
	HasMore bool            `json:"has_more"`
}

type chatResponse struct {
	Results           []influencerDTO `json:"results"`
	Total             int             `json:"total"`
	ConversationID    string          `json:"conversation_id"`
	HasMore           bool            `json:"has_more"`
	AppliedFilters    *filterDTO      `json:"applied_filters,omitempty"`
	RefinementSummary string          `json:"refinement_summary,omitempty"`
	Suggestions       []string        `json:"suggestions"`
	SearchTimeMs      int64           `json:"search_time_ms"`
}

type categoryStatDTO struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type categoriesResponse struct {
	InterestCategories []categoryStatDTO `json:"interest_categories"`
	PrimaryCategories  []categoryStatDTO `json:"primary_categories"`
	Cities             []string          `json:"cities"`
	CreatorTiers       []string          `json:"creator_tiers"`
	Platforms          []string          `json:"platforms"`
	Languages          []string          `json:"languages"`
	TotalInfluencers   int               `json:"total_influencers"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func snapshotFromDTO(query string, f *filterDTO) filters.Snapshot {
	snap := filters.Snapshot{Query: query}
	if f == nil {
		return snap
	}
	snap.Platform = f.Platform
	snap.City = f.City
	snap.PrimaryCategory = f.PrimaryCategory
	snap.CreatorTier = f.CreatorTier
	snap.Language = f.Language
	snap.MinFollowers = f.MinFollowers
	snap.MaxFollowers = f.MaxFollowers
	snap.MinEngagementRate = f.MinEngagementRate
	snap.MaxEngagementRate = f.MaxEngagementRate
	snap.MinAvgViews = f.MinAvgViews
	snap.MaxAvgViews = f.MaxAvgViews
	snap.MinPPC = f.MinPPC
	snap.MaxPPC = f.MaxPPC
	snap.InterestCategories = f.InterestCategories
	return snap
}

func snapshotToDTO(snap filters.Snapshot) *filterDTO {
	dto := &filterDTO{
		Platform:           snap.Platform,
		City:               snap.City,
		PrimaryCategory:    snap.PrimaryCategory,
		CreatorTier:        snap.CreatorTier,
		Language:           snap.Language,
		MinFollowers:       snap.MinFollowers,
		MaxFollowers:       snap.MaxFollowers,
		MinEngagementRate:  snap.MinEngagementRate,
		MaxEngagementRate:  snap.MaxEngagementRate,
		MinAvgViews:        snap.MinAvgViews,
		MaxAvgViews:        snap.MaxAvgViews,
		MinPPC:             snap.MinPPC,
		MaxPPC:             snap.MaxPPC,
		InterestCategories: snap.InterestCategories,
	}
	return dto
}

func influencerToDTO(inf influencer.Influencer, score float64) influencerDTO {
	return influencerDTO{
		ID:                 inf.ID,
		Username:           inf.Username,
		DisplayName:        inf.DisplayName,
		Platform:           inf.Platform,
		FollowersCount:     inf.Followers,
		Bio:                inf.Bio,
		PrimaryCategory:    inf.PrimaryCategory,
		InterestCategories: inf.InterestTags,
		EngagementRate:     inf.EngagementRate,
		City:               inf.City,
		CreatorTier:        inf.CreatorTier,
		Language:           inf.Language,
		AvgViews:           inf.AverageViews,
		PricePerCollab:     inf.PricePerCollab,
		ProfileImageURL:    inf.ProfileImageURL,
		ProfileURL:         inf.ProfileURL,
		RelevanceScore:     score,
	}
}

func resultsToDTO(results []influencer.WithScore) []influencerDTO {
	out := make([]influencerDTO, len(results))
	for i, r := range results {
		out[i] = influencerToDTO(r.Influencer, r.RelevanceScore)
	}
	return out
}

func catalogToDTO(cat catalog.Catalog) categoriesResponse {
	return categoriesResponse{
		InterestCategories: statsToDTO(cat.InterestCategories),
		PrimaryCategories:  statsToDTO(cat.PrimaryCategories),
		Cities:             emptySlice(cat.Cities),
		CreatorTiers:       emptySlice(cat.CreatorTiers),
		Platforms:          emptySlice(cat.Platforms),
		Languages:          emptySlice(cat.Languages),
		TotalInfluencers:   cat.TotalInfluencers,
	}
}

func statsToDTO(stats []catalog.CategoryStat) []categoryStatDTO {
	out := make([]categoryStatDTO, len(stats))
	for i, s := range stats {
		out[i] = categoryStatDTO{Name: s.Name, Count: s.Count}
	}
	return out
}

// emptySlice keeps JSON arrays as [] instead of null.
func emptySlice(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
