package filters

import (
	"reflect"
	"strings"
	"testing"
)

func i64(v int64) *int64     { return &v }
func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }

func TestMerge_CityReplacesNil(t *testing.T) {
	prev := Snapshot{}
	incoming := Snapshot{City: str("Mumbai")}

	merged, summary := Merge(prev, incoming)

	if merged.City == nil || *merged.City != "Mumbai" {
		t.Fatalf("expected city Mumbai, got %v", merged.City)
	}
	if merged.MinFollowers != nil {
		t.Errorf("min followers should stay nil")
	}
	if !strings.Contains(summary, "Mumbai") {
		t.Errorf("summary should mention Mumbai, got %q", summary)
	}
}

func TestMerge_ScalarIncomingWins(t *testing.T) {
	prev := Snapshot{Platform: str("instagram"), City: str("Delhi")}
	incoming := Snapshot{City: str("Mumbai")}

	merged, _ := Merge(prev, incoming)

	if *merged.Platform != "instagram" {
		t.Errorf("platform should be kept, got %q", *merged.Platform)
	}
	if *merged.City != "Mumbai" {
		t.Errorf("incoming city should replace previous, got %q", *merged.City)
	}
}

func TestMerge_LowerBoundNeverLoosens(t *testing.T) {
	prev := Snapshot{MinFollowers: i64(50000)}
	incoming := Snapshot{MinFollowers: i64(20000)}

	merged, summary := Merge(prev, incoming)

	if *merged.MinFollowers != 50000 {
		t.Fatalf("expected 50000 (more restrictive kept), got %d", *merged.MinFollowers)
	}
	if strings.Contains(summary, "followers") {
		t.Errorf("no visible change, summary must omit followers, got %q", summary)
	}
}

func TestMerge_LowerBoundTightens(t *testing.T) {
	prev := Snapshot{MinFollowers: i64(50000)}
	incoming := Snapshot{MinFollowers: i64(100000)}

	merged, summary := Merge(prev, incoming)

	if *merged.MinFollowers != 100000 {
		t.Fatalf("expected 100000, got %d", *merged.MinFollowers)
	}
	if !strings.Contains(summary, "increased minimum followers to 100,000") {
		t.Errorf("unexpected summary %q", summary)
	}
}

func TestMerge_UpperBoundTightens(t *testing.T) {
	prev := Snapshot{MaxPPC: i64(200000)}
	incoming := Snapshot{MaxPPC: i64(50000)}

	merged, summary := Merge(prev, incoming)

	if *merged.MaxPPC != 50000 {
		t.Fatalf("expected 50000, got %d", *merged.MaxPPC)
	}
	if !strings.Contains(summary, "decreased maximum price to 50,000") {
		t.Errorf("unexpected summary %q", summary)
	}
}

func TestMerge_UpperBoundNeverLoosens(t *testing.T) {
	prev := Snapshot{MaxFollowers: i64(100000)}
	incoming := Snapshot{MaxFollowers: i64(500000)}

	merged, _ := Merge(prev, incoming)

	if *merged.MaxFollowers != 100000 {
		t.Fatalf("expected 100000 kept, got %d", *merged.MaxFollowers)
	}
}

func TestMerge_ContradictoryBoundsIncomingWins(t *testing.T) {
	prev := Snapshot{MinFollowers: i64(1000000)}
	incoming := Snapshot{MaxFollowers: i64(50000)}

	merged, _ := Merge(prev, incoming)

	if merged.MinFollowers != nil {
		t.Errorf("conflicting previous min must be dropped, got %d", *merged.MinFollowers)
	}
	if merged.MaxFollowers == nil || *merged.MaxFollowers != 50000 {
		t.Fatalf("expected incoming max 50000, got %v", merged.MaxFollowers)
	}
	if err := merged.Validate(); err != nil {
		t.Errorf("merged snapshot must always be valid: %v", err)
	}
}

func TestMerge_ContradictoryBoundsBothIncomingKept(t *testing.T) {
	prev := Snapshot{MinPPC: i64(500000)}
	incoming := Snapshot{MinPPC: i64(10000), MaxPPC: i64(50000)}

	merged, _ := Merge(prev, incoming)

	if merged.MinPPC == nil || *merged.MinPPC != 10000 {
		t.Errorf("expected incoming min 10000, got %v", merged.MinPPC)
	}
	if merged.MaxPPC == nil || *merged.MaxPPC != 50000 {
		t.Errorf("expected incoming max 50000, got %v", merged.MaxPPC)
	}
}

func TestMerge_CategoriesUnion(t *testing.T) {
	prev := Snapshot{InterestCategories: []string{"Fitness"}}
	incoming := Snapshot{InterestCategories: []string{"Fashion"}}

	merged, summary := Merge(prev, incoming)

	want := []string{"Fashion", "Fitness"}
	if !reflect.DeepEqual(merged.InterestCategories, want) {
		t.Fatalf("expected %v, got %v", want, merged.InterestCategories)
	}
	if !strings.Contains(summary, "added categories: Fashion") {
		t.Errorf("unexpected summary %q", summary)
	}
}

func TestMerge_CategoriesCommutativeIdempotent(t *testing.T) {
	a := Snapshot{InterestCategories: []string{"Fitness", "Food"}}
	b := Snapshot{InterestCategories: []string{"Fashion", "Fitness"}}

	ab, _ := Merge(a, b)
	ba, _ := Merge(b, a)
	if !reflect.DeepEqual(ab.InterestCategories, ba.InterestCategories) {
		t.Errorf("union not commutative: %v vs %v", ab.InterestCategories, ba.InterestCategories)
	}

	again, _ := Merge(ab, b)
	if !reflect.DeepEqual(ab.InterestCategories, again.InterestCategories) {
		t.Errorf("union not idempotent: %v vs %v", ab.InterestCategories, again.InterestCategories)
	}
}

func TestMerge_EmptyIncomingIsIdentity(t *testing.T) {
	prev := Snapshot{
		Query:             "fitness creators",
		Platform:          str("instagram"),
		City:              str("Mumbai"),
		MinFollowers:      i64(10000),
		MaxEngagementRate: f64(8),
		InterestCategories: []string{"Fitness"},
	}

	merged, summary := Merge(prev, Snapshot{})

	if !reflect.DeepEqual(merged, prev) {
		t.Errorf("expected prev unchanged, got %+v", merged)
	}
	if summary != "" {
		t.Errorf("expected empty summary, got %q", summary)
	}
}

func TestMerge_IdempotentUnderRepetition(t *testing.T) {
	prev := Snapshot{
		Platform:          str("youtube"),
		MinFollowers:      i64(50000),
		MaxPPC:            i64(100000),
		InterestCategories: []string{"Tech"},
	}
	incoming := Snapshot{
		City:              str("Bangalore"),
		MinFollowers:      i64(80000),
		MinEngagementRate: f64(4),
		InterestCategories: []string{"Gaming", "Tech"},
	}

	once, _ := Merge(prev, incoming)
	twice, summary := Merge(once, incoming)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("merge not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
	if summary != "" {
		t.Errorf("repeat merge changed nothing, summary should be empty, got %q", summary)
	}
}

func TestMerge_MonotonicTighteningOverSequence(t *testing.T) {
	turns := []Snapshot{
		{MinFollowers: i64(10000), MaxAvgViews: i64(900000)},
		{MinFollowers: i64(5000), MaxAvgViews: i64(500000)},
		{MinFollowers: i64(200000)},
		{MaxAvgViews: i64(800000), MinFollowers: i64(100000)},
	}

	var state Snapshot
	var lastMin int64
	lastMax := int64(1 << 62)
	for i, turn := range turns {
		state, _ = Merge(state, turn)
		if state.MinFollowers != nil {
			if *state.MinFollowers < lastMin {
				t.Fatalf("turn %d loosened min_followers: %d < %d", i, *state.MinFollowers, lastMin)
			}
			lastMin = *state.MinFollowers
		}
		if state.MaxAvgViews != nil {
			if *state.MaxAvgViews > lastMax {
				t.Fatalf("turn %d loosened max_avg_views: %d > %d", i, *state.MaxAvgViews, lastMax)
			}
			lastMax = *state.MaxAvgViews
		}
	}

	if *state.MinFollowers != 200000 {
		t.Errorf("expected final min_followers 200000, got %d", *state.MinFollowers)
	}
	if *state.MaxAvgViews != 500000 {
		t.Errorf("expected final max_avg_views 500000, got %d", *state.MaxAvgViews)
	}
}

func TestMerge_QueryReplacedOnlyWhenNonEmpty(t *testing.T) {
	prev := Snapshot{Query: "fitness influencers"}

	merged, _ := Merge(prev, Snapshot{Query: ""})
	if merged.Query != "fitness influencers" {
		t.Errorf("empty incoming query must not clear previous, got %q", merged.Query)
	}

	merged, _ = Merge(prev, Snapshot{Query: "yoga instructors"})
	if merged.Query != "yoga instructors" {
		t.Errorf("non-empty incoming query must replace, got %q", merged.Query)
	}
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	prev := Snapshot{MinFollowers: i64(1000), InterestCategories: []string{"Food"}}
	incoming := Snapshot{MinFollowers: i64(5000), InterestCategories: []string{"Travel"}}

	merged, _ := Merge(prev, incoming)
	*merged.MinFollowers = 999999
	merged.InterestCategories[0] = "mutated"

	if *prev.MinFollowers != 1000 || *incoming.MinFollowers != 5000 {
		t.Error("merge shared bound pointers with inputs")
	}
	if prev.InterestCategories[0] != "Food" || incoming.InterestCategories[0] != "Travel" {
		t.Error("merge shared category slices with inputs")
	}
}

func TestGroupDigits(t *testing.T) {
	cases := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		100000:   "100,000",
		1234567:  "1,234,567",
	}
	for n, want := range cases {
		if got := groupDigits(n); got != want {
			t.Errorf("groupDigits(%d) = %q, want %q", n, got, want)
		}
	}
}
