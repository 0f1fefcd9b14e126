package filters

import (
	"strconv"
	"strings"
)

// Merge combines a previous snapshot with a newly extracted one under the
// refinement rules and returns the merged snapshot plus a human-readable
// summary of what changed.
//
// Rules, field by field and order-independent:
//   - exact-match scalars: incoming replaces previous when set
//   - lower bounds: the greater (more restrictive) of the two
//   - upper bounds: the lesser (more restrictive) of the two
//   - interest categories: set union
//   - query text: incoming replaces previous only when non-empty
//
// Refinements only ever narrow: a later turn can never loosen a bound that
// was already set. Merge is a pure function over two immutable values.
func Merge(prev, incoming Snapshot) (Snapshot, string) {
	merged := prev.Clone()

	if incoming.Query != "" {
		merged.Query = incoming.Query
	}

	merged.Platform = pickScalar(prev.Platform, incoming.Platform)
	merged.City = pickScalar(prev.City, incoming.City)
	merged.PrimaryCategory = pickScalar(prev.PrimaryCategory, incoming.PrimaryCategory)
	merged.CreatorTier = pickScalar(prev.CreatorTier, incoming.CreatorTier)
	merged.Language = pickScalar(prev.Language, incoming.Language)

	merged.MinFollowers, merged.MaxFollowers = mergePair(
		prev.MinFollowers, prev.MaxFollowers, incoming.MinFollowers, incoming.MaxFollowers)
	merged.MinEngagementRate, merged.MaxEngagementRate = mergePair(
		prev.MinEngagementRate, prev.MaxEngagementRate, incoming.MinEngagementRate, incoming.MaxEngagementRate)
	merged.MinAvgViews, merged.MaxAvgViews = mergePair(
		prev.MinAvgViews, prev.MaxAvgViews, incoming.MinAvgViews, incoming.MaxAvgViews)
	merged.MinPPC, merged.MaxPPC = mergePair(
		prev.MinPPC, prev.MaxPPC, incoming.MinPPC, incoming.MaxPPC)

	merged.InterestCategories = dedupSorted(
		append(append([]string(nil), prev.InterestCategories...), incoming.InterestCategories...),
	)

	return merged, summarize(prev, merged)
}

// summarize describes every field whose value differs between the previous
// and merged snapshots. An incoming value that lost to a more restrictive
// previous one produces no clause: nothing visibly changed.
func summarize(prev, merged Snapshot) string {
	var clauses []string

	add := func(c string) { clauses = append(clauses, c) }

	if scalarChanged(prev.Platform, merged.Platform) {
		add("filtered by platform: " + *merged.Platform)
	}
	if scalarChanged(prev.City, merged.City) {
		add("filtered by city: " + *merged.City)
	}
	if scalarChanged(prev.PrimaryCategory, merged.PrimaryCategory) {
		add("filtered by category: " + *merged.PrimaryCategory)
	}
	if scalarChanged(prev.CreatorTier, merged.CreatorTier) {
		add("filtered by creator tier: " + *merged.CreatorTier)
	}
	if scalarChanged(prev.Language, merged.Language) {
		add("filtered by language: " + *merged.Language)
	}

	if c := boundClause(prev.MinFollowers, merged.MinFollowers, "minimum followers", true); c != "" {
		add(c)
	}
	if c := boundClause(prev.MaxFollowers, merged.MaxFollowers, "maximum followers", false); c != "" {
		add(c)
	}
	if c := rateClause(prev.MinEngagementRate, merged.MinEngagementRate, "minimum engagement rate", true); c != "" {
		add(c)
	}
	if c := rateClause(prev.MaxEngagementRate, merged.MaxEngagementRate, "maximum engagement rate", false); c != "" {
		add(c)
	}
	if c := boundClause(prev.MinAvgViews, merged.MinAvgViews, "minimum average views", true); c != "" {
		add(c)
	}
	if c := boundClause(prev.MaxAvgViews, merged.MaxAvgViews, "maximum average views", false); c != "" {
		add(c)
	}
	if c := boundClause(prev.MinPPC, merged.MinPPC, "minimum price", true); c != "" {
		add(c)
	}
	if c := boundClause(prev.MaxPPC, merged.MaxPPC, "maximum price", false); c != "" {
		add(c)
	}

	if added := diffCategories(prev.InterestCategories, merged.InterestCategories); len(added) > 0 {
		add("added categories: " + strings.Join(added, ", "))
	}

	if merged.Query != prev.Query && merged.Query != "" {
		if prev.Query == "" {
			add("searched for " + strconv.Quote(merged.Query))
		} else {
			add("updated search to " + strconv.Quote(merged.Query))
		}
	}

	return strings.Join(clauses, ", ")
}

// mergePair tightens a numeric bound pair. When tightening both sides
// produces a contradictory range (prev min above incoming max or vice
// versa), the incoming bounds win outright: the latest turn expresses the
// user's current intent. A merged pair is always valid.
func mergePair[T int64 | float64](prevMin, prevMax, incMin, incMax *T) (*T, *T) {
	mergedMin := tightenLower(prevMin, incMin)
	mergedMax := tightenUpper(prevMax, incMax)
	if mergedMin != nil && mergedMax != nil && *mergedMin > *mergedMax {
		return clonePtr(incMin), clonePtr(incMax)
	}
	return mergedMin, mergedMax
}

func pickScalar(prev, incoming *string) *string {
	if incoming != nil && *incoming != "" {
		return clonePtr(incoming)
	}
	return clonePtr(prev)
}

// tightenLower keeps the greater of the two lower bounds.
func tightenLower[T int64 | float64](prev, incoming *T) *T {
	switch {
	case incoming == nil:
		return clonePtr(prev)
	case prev == nil:
		return clonePtr(incoming)
	case *incoming > *prev:
		return clonePtr(incoming)
	default:
		return clonePtr(prev)
	}
}

// tightenUpper keeps the lesser of the two upper bounds.
func tightenUpper[T int64 | float64](prev, incoming *T) *T {
	switch {
	case incoming == nil:
		return clonePtr(prev)
	case prev == nil:
		return clonePtr(incoming)
	case *incoming < *prev:
		return clonePtr(incoming)
	default:
		return clonePtr(prev)
	}
}

func scalarChanged(prev, merged *string) bool {
	if merged == nil {
		return false
	}
	return prev == nil || *prev != *merged
}

func boundClause(prev, merged *int64, label string, lower bool) string {
	if merged == nil || (prev != nil && *prev == *merged) {
		return ""
	}
	verb := verbFor(prev == nil, lower)
	return verb + " " + label + " to " + groupDigits(*merged)
}

func rateClause(prev, merged *float64, label string, lower bool) string {
	if merged == nil || (prev != nil && *prev == *merged) {
		return ""
	}
	verb := verbFor(prev == nil, lower)
	return verb + " " + label + " to " + strconv.FormatFloat(*merged, 'f', -1, 64) + "%"
}

func verbFor(newlySet, lower bool) string {
	switch {
	case newlySet:
		return "set"
	case lower:
		return "increased"
	default:
		return "decreased"
	}
}

func diffCategories(prev, merged []string) []string {
	if len(merged) == 0 {
		return nil
	}
	had := make(map[string]struct{}, len(prev))
	for _, c := range prev {
		had[c] = struct{}{}
	}
	var added []string
	for _, c := range merged {
		if _, ok := had[c]; !ok {
			added = append(added, c)
		}
	}
	return added
}

// groupDigits formats n with thousands separators ("100,000").
func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
