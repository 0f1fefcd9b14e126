// Package catalog holds the vocabulary of known filter values discovered
// from the index. The query analyzer embeds it into the prompt so the model
// cannot hallucinate categories outside the known set.
package catalog

// CategoryStat is one category label with its approximate profile count.
type CategoryStat struct {
	Name  string
	Count int
}

// Catalog is the current valid vocabulary with approximate statistics.
type Catalog struct {
	InterestCategories []CategoryStat
	PrimaryCategories  []CategoryStat
	Cities             []string
	CreatorTiers       []string
	Platforms          []string
	Languages          []string
	TotalInfluencers   int
}

// HasInterestCategory reports whether name is a known interest category.
func (c Catalog) HasInterestCategory(name string) bool {
	return containsStat(c.InterestCategories, name)
}

// HasPrimaryCategory reports whether name is a known primary category.
func (c Catalog) HasPrimaryCategory(name string) bool {
	return containsStat(c.PrimaryCategories, name)
}

// HasCity reports whether name is a known city.
func (c Catalog) HasCity(name string) bool { return contains(c.Cities, name) }

// HasCreatorTier reports whether name is a known creator tier.
func (c Catalog) HasCreatorTier(name string) bool { return contains(c.CreatorTiers, name) }

// HasPlatform reports whether name is a known platform.
func (c Catalog) HasPlatform(name string) bool { return contains(c.Platforms, name) }

// IsEmpty reports whether no vocabulary has been discovered yet.
func (c Catalog) IsEmpty() bool {
	return len(c.InterestCategories) == 0 && len(c.PrimaryCategories) == 0 &&
		len(c.Cities) == 0 && len(c.CreatorTiers) == 0 && len(c.Platforms) == 0
}

func containsStat(stats []CategoryStat, name string) bool {
	for _, s := range stats {
		if s.Name == name {
			return true
		}
	}
	return false
}

func contains(vals []string, name string) bool {
	for _, v := range vals {
		if v == name {
			return true
		}
	}
	return false
}
