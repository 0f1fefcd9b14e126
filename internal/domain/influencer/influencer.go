// Package influencer holds the externally-owned profile representation
// returned by search. The service never mutates profile data; it only maps
// ranked result batches from the index into this shape.
package influencer

// Influencer is one profile as exposed by the API.
type Influencer struct {
	ID              string
	Username        string
	DisplayName     string
	Platform        string
	Followers       int64
	Bio             string
	PrimaryCategory string
	InterestTags    []string
	EngagementRate  float64
	City            string
	CreatorTier     string
	Language        string
	AverageViews    int64
	PricePerCollab  int64
	ProfileImageURL string
	ProfileURL      string
}

// WithScore pairs a profile with the relevance score assigned by the
// hybrid search executor.
type WithScore struct {
	Influencer
	RelevanceScore float64
}
