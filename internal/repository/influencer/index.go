package influencer

import (
	"github.com/creatorlens/creatorlens/internal/db"
	"github.com/creatorlens/creatorlens/internal/domain"
)

// Storage layout for influencer profiles.
const (
	// KeyPrefix is the hash key prefix for influencer documents.
	KeyPrefix = domain.KeyPrefix + "influencer:"

	// IndexName is the RediSearch index over influencer hashes.
	IndexName = domain.KeyPrefix + "influencer:idx"
)

// Index field names. Tag and numeric fields back filter predicates, the
// text field backs lexical ranking, and the vector field backs similarity
// ranking.
const (
	fieldUsername        = "username"
	fieldDisplayName     = "display_name"
	fieldPlatform        = "platform"
	fieldFollowers       = "followers_count"
	fieldBio             = "bio"
	fieldPrimaryCategory = "primary_category"
	fieldInterests       = "interest_categories"
	fieldEngagementRate  = "engagement_rate_value"
	fieldCity            = "city"
	fieldCreatorTier     = "creator_tier"
	fieldLanguage        = "language"
	fieldAvgViews        = "avg_views_count"
	fieldPPC             = "ppc"
	fieldProfileImageURL = "profile_image_url"
	fieldProfileURL      = "profile_url"
	fieldSearchText      = "search_text"
	fieldEmbedding       = "embedding"

	// scoreField is the synthetic field carrying KNN distance in results.
	scoreField = "__embedding_score"
)

// interestSeparator joins multi-valued interest tags in the stored hash.
const interestSeparator = ","

// IndexOptions tunes the vector side of the index definition.
type IndexOptions struct {
	VectorDim   int
	HNSWM       int
	HNSWEFBuild int
}

// Definition returns the index definition for the influencer catalog.
func Definition(opts IndexOptions) *db.IndexDefinition {
	return &db.IndexDefinition{
		Name:     IndexName,
		Prefixes: []string{KeyPrefix},
		Fields: []db.IndexField{
			{Name: fieldPlatform, Type: db.IndexFieldTag},
			{Name: fieldCity, Type: db.IndexFieldTag},
			{Name: fieldPrimaryCategory, Type: db.IndexFieldTag},
			{Name: fieldCreatorTier, Type: db.IndexFieldTag},
			{Name: fieldLanguage, Type: db.IndexFieldTag},
			{Name: fieldInterests, Type: db.IndexFieldTag, TagSeparator: interestSeparator},
			{Name: fieldFollowers, Type: db.IndexFieldNumeric},
			{Name: fieldEngagementRate, Type: db.IndexFieldNumeric},
			{Name: fieldAvgViews, Type: db.IndexFieldNumeric},
			{Name: fieldPPC, Type: db.IndexFieldNumeric},
			{Name: fieldSearchText, Type: db.IndexFieldText},
			{
				Name:              fieldEmbedding,
				Type:              db.IndexFieldVector,
				VectorAlgo:        db.VectorHNSW,
				VectorDim:         opts.VectorDim,
				VectorDistance:    db.DistanceCosine,
				VectorM:           opts.HNSWM,
				VectorEFConstruct: opts.HNSWEFBuild,
			},
		},
	}
}
