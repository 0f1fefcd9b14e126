// Package filters holds the structured search-intent snapshot and the
// deterministic merge rules used by conversational refinement.
package filters

import (
	"fmt"
	"sort"
)

// Snapshot is one full-or-partial structured search intent. All fields are
// optional; nil means "no constraint". Snapshots are immutable values: Merge
// and Clone always produce new ones.
type Snapshot struct {
	Query string

	Platform        *string
	City            *string
	PrimaryCategory *string
	CreatorTier     *string
	Language        *string

	MinFollowers *int64
	MaxFollowers *int64

	MinEngagementRate *float64
	MaxEngagementRate *float64

	MinAvgViews *int64
	MaxAvgViews *int64

	MinPPC *int64
	MaxPPC *int64

	InterestCategories []string
}

// IsEmpty reports whether the snapshot carries no constraints at all.
func (s Snapshot) IsEmpty() bool {
	return s.Query == "" &&
		s.Platform == nil && s.City == nil && s.PrimaryCategory == nil &&
		s.CreatorTier == nil && s.Language == nil &&
		s.MinFollowers == nil && s.MaxFollowers == nil &&
		s.MinEngagementRate == nil && s.MaxEngagementRate == nil &&
		s.MinAvgViews == nil && s.MaxAvgViews == nil &&
		s.MinPPC == nil && s.MaxPPC == nil &&
		len(s.InterestCategories) == 0
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Platform = clonePtr(s.Platform)
	out.City = clonePtr(s.City)
	out.PrimaryCategory = clonePtr(s.PrimaryCategory)
	out.CreatorTier = clonePtr(s.CreatorTier)
	out.Language = clonePtr(s.Language)
	out.MinFollowers = clonePtr(s.MinFollowers)
	out.MaxFollowers = clonePtr(s.MaxFollowers)
	out.MinEngagementRate = clonePtr(s.MinEngagementRate)
	out.MaxEngagementRate = clonePtr(s.MaxEngagementRate)
	out.MinAvgViews = clonePtr(s.MinAvgViews)
	out.MaxAvgViews = clonePtr(s.MaxAvgViews)
	out.MinPPC = clonePtr(s.MinPPC)
	out.MaxPPC = clonePtr(s.MaxPPC)
	if s.InterestCategories != nil {
		out.InterestCategories = append([]string(nil), s.InterestCategories...)
	}
	return out
}

// Validate checks caller-supplied snapshots at the boundary, before any merge:
// populated numeric pairs must satisfy min <= max and bounds must be non-negative.
func (s Snapshot) Validate() error {
	if err := checkInt64Pair("followers", s.MinFollowers, s.MaxFollowers); err != nil {
		return err
	}
	if err := checkFloatPair("engagement_rate", s.MinEngagementRate, s.MaxEngagementRate); err != nil {
		return err
	}
	if err := checkInt64Pair("avg_views", s.MinAvgViews, s.MaxAvgViews); err != nil {
		return err
	}
	if err := checkInt64Pair("ppc", s.MinPPC, s.MaxPPC); err != nil {
		return err
	}
	return nil
}

// NormalizeCategories deduplicates and sorts the interest category set.
// Insertion order is irrelevant by contract.
func (s *Snapshot) NormalizeCategories() {
	s.InterestCategories = dedupSorted(s.InterestCategories)
}

func checkInt64Pair(name string, minB, maxB *int64) error {
	if minB != nil && *minB < 0 {
		return fmt.Errorf("min_%s must be non-negative", name)
	}
	if maxB != nil && *maxB < 0 {
		return fmt.Errorf("max_%s must be non-negative", name)
	}
	if minB != nil && maxB != nil && *minB > *maxB {
		return fmt.Errorf("min_%s (%d) exceeds max_%s (%d)", name, *minB, name, *maxB)
	}
	return nil
}

func checkFloatPair(name string, minB, maxB *float64) error {
	if minB != nil && *minB < 0 {
		return fmt.Errorf("min_%s must be non-negative", name)
	}
	if maxB != nil && *maxB < 0 {
		return fmt.Errorf("max_%s must be non-negative", name)
	}
	if minB != nil && maxB != nil && *minB > *maxB {
		return fmt.Errorf("min_%s (%g) exceeds max_%s (%g)", name, *minB, name, *maxB)
	}
	return nil
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func dedupSorted(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}
