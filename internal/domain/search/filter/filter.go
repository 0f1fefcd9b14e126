// Package filter is the predicate language understood by the search index:
// a conjunction of exact-match and range conditions, plus an "any of" group
// for multi-valued fields.
package filter

import "fmt"

// MaxConditions is the maximum number of conditions per group.
const MaxConditions = 32

// Expression is a structured pre-filter applied identically to the lexical
// and vector ranking signals before fusion.
type Expression struct {
	must []Condition
	any  []Condition
}

// NewExpression validates and creates a filter Expression. Every must
// condition is AND-ed; the any group matches when at least one of its
// conditions does.
func NewExpression(must, anyOf []Condition) (Expression, error) {
	if len(must) > MaxConditions {
		return Expression{}, fmt.Errorf("too many must conditions (max %d)", MaxConditions)
	}
	if len(anyOf) > MaxConditions {
		return Expression{}, fmt.Errorf("too many any-of conditions (max %d)", MaxConditions)
	}
	return Expression{must: must, any: anyOf}, nil
}

// Must returns the conjunction conditions.
func (e Expression) Must() []Condition { return e.must }

// Any returns the any-of group conditions.
func (e Expression) Any() []Condition { return e.any }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool {
	return len(e.must) == 0 && len(e.any) == 0
}

// Condition is a single filter clause: either a tag match or a numeric range.
type Condition struct {
	key       string
	match     string
	rangeExpr *Range
}

// NewMatch creates an exact tag match condition.
func NewMatch(key, match string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if match == "" {
		return Condition{}, fmt.Errorf("match value is required for key %q", key)
	}
	return Condition{key: key, match: match}, nil
}

// NewRange creates a numeric range condition.
func NewRange(key string, r Range) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	return Condition{key: key, rangeExpr: &r}, nil
}

// Key returns the field name.
func (c Condition) Key() string { return c.key }

// Match returns the exact match value.
func (c Condition) Match() string { return c.match }

// Range returns the numeric range expression.
func (c Condition) Range() *Range { return c.rangeExpr }

// IsMatch reports whether this is a match condition.
func (c Condition) IsMatch() bool { return c.match != "" }

// IsRange reports whether this is a range condition.
func (c Condition) IsRange() bool { return c.rangeExpr != nil }

// Range is an inclusive numeric range. A nil boundary is unbounded.
type Range struct {
	min *float64
	max *float64
}

// NewRangeBounds validates and creates a Range. At least one boundary is
// required and min must not exceed max when both are present.
func NewRangeBounds(minB, maxB *float64) (Range, error) {
	if minB == nil && maxB == nil {
		return Range{}, fmt.Errorf("at least one range boundary is required")
	}
	if minB != nil && maxB != nil && *minB > *maxB {
		return Range{}, fmt.Errorf("range min %g exceeds max %g", *minB, *maxB)
	}
	return Range{min: minB, max: maxB}, nil
}

// Min returns the inclusive lower bound.
func (r Range) Min() *float64 { return r.min }

// Max returns the inclusive upper bound.
func (r Range) Max() *float64 { return r.max }
