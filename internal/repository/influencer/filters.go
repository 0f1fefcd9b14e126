package influencer

import (
	"fmt"

	"github.com/creatorlens/creatorlens/internal/domain/search/filter"
	"github.com/creatorlens/creatorlens/internal/domain/search/filters"
)

// buildExpression translates a filter snapshot into the index predicate
// language. Scalar fields become must conditions; interest categories become
// an any-of group (a profile matches when it carries at least one).
func buildExpression(snap filters.Snapshot) (filter.Expression, error) {
	var must []filter.Condition

	appendMatch := func(key string, value *string) error {
		if value == nil || *value == "" {
			return nil
		}
		cond, err := filter.NewMatch(key, *value)
		if err != nil {
			return err
		}
		must = append(must, cond)
		return nil
	}

	appendRange := func(key string, minB, maxB *float64) error {
		if minB == nil && maxB == nil {
			return nil
		}
		rng, err := filter.NewRangeBounds(minB, maxB)
		if err != nil {
			return err
		}
		cond, err := filter.NewRange(key, rng)
		if err != nil {
			return err
		}
		must = append(must, cond)
		return nil
	}

	if err := appendMatch(fieldPlatform, snap.Platform); err != nil {
		return filter.Expression{}, err
	}
	if err := appendMatch(fieldCity, snap.City); err != nil {
		return filter.Expression{}, err
	}
	if err := appendMatch(fieldPrimaryCategory, snap.PrimaryCategory); err != nil {
		return filter.Expression{}, err
	}
	if err := appendMatch(fieldCreatorTier, snap.CreatorTier); err != nil {
		return filter.Expression{}, err
	}
	if err := appendMatch(fieldLanguage, snap.Language); err != nil {
		return filter.Expression{}, err
	}

	if err := appendRange(fieldFollowers, intBound(snap.MinFollowers), intBound(snap.MaxFollowers)); err != nil {
		return filter.Expression{}, err
	}
	if err := appendRange(fieldAvgViews, intBound(snap.MinAvgViews), intBound(snap.MaxAvgViews)); err != nil {
		return filter.Expression{}, err
	}
	if err := appendRange(fieldPPC, intBound(snap.MinPPC), intBound(snap.MaxPPC)); err != nil {
		return filter.Expression{}, err
	}
	if err := appendRange(fieldEngagementRate, snap.MinEngagementRate, snap.MaxEngagementRate); err != nil {
		return filter.Expression{}, err
	}

	var anyOf []filter.Condition
	for _, category := range snap.InterestCategories {
		cond, err := filter.NewMatch(fieldInterests, category)
		if err != nil {
			return filter.Expression{}, fmt.Errorf("interest category: %w", err)
		}
		anyOf = append(anyOf, cond)
	}

	return filter.NewExpression(must, anyOf)
}

func intBound(v *int64) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}
