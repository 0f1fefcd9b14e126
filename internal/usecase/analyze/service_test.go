package analyze

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/creatorlens/creatorlens/internal/domain/catalog"
)

type mockChat struct {
	completeFn func(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

func (m *mockChat) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return m.completeFn(ctx, systemPrompt, userPrompt)
}

type mockCatalog struct {
	cat catalog.Catalog
	err error
}

func (m *mockCatalog) Get(context.Context) (catalog.Catalog, error) { return m.cat, m.err }

func testCatalog() catalog.Catalog {
	return catalog.Catalog{
		InterestCategories: []catalog.CategoryStat{
			{Name: "Fitness", Count: 300}, {Name: "Fashion", Count: 200},
		},
		PrimaryCategories: []catalog.CategoryStat{{Name: "Lifestyle", Count: 500}},
		Cities:            []string{"Mumbai", "Delhi"},
		CreatorTiers:      []string{"micro", "macro"},
		Platforms:         []string{"instagram", "youtube"},
		TotalInfluencers:  1000,
	}
}

func chatReturning(content string) *mockChat {
	return &mockChat{completeFn: func(context.Context, string, string) (string, error) {
		return content, nil
	}}
}

func TestAnalyze_ExtractsFilters(t *testing.T) {
	svc := New(chatReturning(`{
		"search_intent": "fitness influencers in Mumbai",
		"extracted_filters": {
			"platform": "instagram",
			"city": "Mumbai",
			"min_followers": 50000,
			"interest_categories": ["Fitness"]
		},
		"confidence": 0.9
	}`), &mockCatalog{cat: testCatalog()})

	got := svc.Analyze(context.Background(), "fitness influencers in Mumbai over 50K")

	if got.Snapshot.Query != "fitness influencers in Mumbai over 50K" {
		t.Errorf("unexpected query: %q", got.Snapshot.Query)
	}
	if got.Snapshot.Platform == nil || *got.Snapshot.Platform != "instagram" {
		t.Errorf("unexpected platform: %v", got.Snapshot.Platform)
	}
	if got.Snapshot.City == nil || *got.Snapshot.City != "Mumbai" {
		t.Errorf("unexpected city: %v", got.Snapshot.City)
	}
	if got.Snapshot.MinFollowers == nil || *got.Snapshot.MinFollowers != 50000 {
		t.Errorf("unexpected min followers: %v", got.Snapshot.MinFollowers)
	}
	if len(got.Snapshot.InterestCategories) != 1 || got.Snapshot.InterestCategories[0] != "Fitness" {
		t.Errorf("unexpected categories: %v", got.Snapshot.InterestCategories)
	}
	if got.Intent != "fitness influencers in Mumbai" {
		t.Errorf("unexpected intent: %q", got.Intent)
	}
	if got.Confidence != 0.9 {
		t.Errorf("unexpected confidence: %g", got.Confidence)
	}
}

func TestAnalyze_CanonicalizesVocabularyCase(t *testing.T) {
	svc := New(chatReturning(`{
		"extracted_filters": {
			"city": "mumbai",
			"interest_categories": ["FITNESS", "fashion"]
		},
		"confidence": 0.8
	}`), &mockCatalog{cat: testCatalog()})

	got := svc.Analyze(context.Background(), "q")

	if got.Snapshot.City == nil || *got.Snapshot.City != "Mumbai" {
		t.Errorf("city not canonicalized: %v", got.Snapshot.City)
	}
	want := []string{"Fashion", "Fitness"}
	if len(got.Snapshot.InterestCategories) != 2 {
		t.Fatalf("unexpected categories: %v", got.Snapshot.InterestCategories)
	}
	for i, w := range want {
		if got.Snapshot.InterestCategories[i] != w {
			t.Errorf("category %d: expected %q, got %q", i, w, got.Snapshot.InterestCategories[i])
		}
	}
}

func TestAnalyze_DropsUnknownVocabularyValues(t *testing.T) {
	svc := New(chatReturning(`{
		"extracted_filters": {
			"city": "Atlantis",
			"platform": "myspace",
			"interest_categories": ["Fitness", "Underwater Basketweaving"]
		},
		"confidence": 0.7
	}`), &mockCatalog{cat: testCatalog()})

	got := svc.Analyze(context.Background(), "q")

	if got.Snapshot.City != nil {
		t.Errorf("expected unknown city dropped, got %q", *got.Snapshot.City)
	}
	if got.Snapshot.Platform != nil {
		t.Errorf("expected unknown platform dropped, got %q", *got.Snapshot.Platform)
	}
	if len(got.Snapshot.InterestCategories) != 1 || got.Snapshot.InterestCategories[0] != "Fitness" {
		t.Errorf("unexpected categories: %v", got.Snapshot.InterestCategories)
	}
}

func TestAnalyze_EmptyCatalogKeepsModelValues(t *testing.T) {
	svc := New(chatReturning(`{
		"extracted_filters": {"city": "Mumbai", "platform": "instagram"},
		"confidence": 0.6
	}`), &mockCatalog{err: errors.New("discovery down")})

	got := svc.Analyze(context.Background(), "q")

	if got.Snapshot.City == nil || *got.Snapshot.City != "Mumbai" {
		t.Errorf("expected city kept without vocabulary, got %v", got.Snapshot.City)
	}
	if got.Snapshot.Platform == nil || *got.Snapshot.Platform != "instagram" {
		t.Errorf("expected platform kept without vocabulary, got %v", got.Snapshot.Platform)
	}
}

func TestAnalyze_SwapsInvertedBounds(t *testing.T) {
	svc := New(chatReturning(`{
		"extracted_filters": {"min_followers": 500000, "max_followers": 10000},
		"confidence": 0.5
	}`), &mockCatalog{cat: testCatalog()})

	got := svc.Analyze(context.Background(), "q")

	if got.Snapshot.MinFollowers == nil || *got.Snapshot.MinFollowers != 10000 {
		t.Errorf("unexpected min: %v", got.Snapshot.MinFollowers)
	}
	if got.Snapshot.MaxFollowers == nil || *got.Snapshot.MaxFollowers != 500000 {
		t.Errorf("unexpected max: %v", got.Snapshot.MaxFollowers)
	}
}

func TestAnalyze_DropsNegativeBounds(t *testing.T) {
	svc := New(chatReturning(`{
		"extracted_filters": {"min_ppc": -100, "max_ppc": 50000},
		"confidence": 0.5
	}`), &mockCatalog{cat: testCatalog()})

	got := svc.Analyze(context.Background(), "q")

	if got.Snapshot.MinPPC != nil {
		t.Errorf("expected negative min dropped, got %v", *got.Snapshot.MinPPC)
	}
	if got.Snapshot.MaxPPC == nil || *got.Snapshot.MaxPPC != 50000 {
		t.Errorf("unexpected max: %v", got.Snapshot.MaxPPC)
	}
}

func TestAnalyze_ClampsConfidence(t *testing.T) {
	svc := New(chatReturning(`{"extracted_filters": {}, "confidence": 3.5}`),
		&mockCatalog{cat: testCatalog()})

	if got := svc.Analyze(context.Background(), "q"); got.Confidence != 1 {
		t.Errorf("expected confidence clamped to 1, got %g", got.Confidence)
	}
}

func TestAnalyze_TransportErrorFallsBack(t *testing.T) {
	svc := New(&mockChat{completeFn: func(context.Context, string, string) (string, error) {
		return "", errors.New("upstream 500")
	}}, &mockCatalog{cat: testCatalog()})

	got := svc.Analyze(context.Background(), "find creators")

	if got.Confidence != 0 {
		t.Errorf("expected zero confidence, got %g", got.Confidence)
	}
	if got.Snapshot.Query != "find creators" {
		t.Errorf("expected raw query preserved, got %q", got.Snapshot.Query)
	}
	if got.Snapshot.Platform != nil || len(got.Snapshot.InterestCategories) != 0 {
		t.Error("expected empty filter snapshot")
	}
}

func TestAnalyze_UnparseableOutputFallsBack(t *testing.T) {
	svc := New(chatReturning("I could not produce JSON, sorry."),
		&mockCatalog{cat: testCatalog()})

	got := svc.Analyze(context.Background(), "find creators")

	if got.Confidence != 0 {
		t.Errorf("expected zero confidence, got %g", got.Confidence)
	}
	if got.Snapshot.Query != "find creators" {
		t.Errorf("expected raw query preserved, got %q", got.Snapshot.Query)
	}
	if got.Snapshot.Platform != nil || len(got.Snapshot.InterestCategories) != 0 {
		t.Error("expected empty filter snapshot")
	}
}

func TestAnalyze_PromptCarriesVocabulary(t *testing.T) {
	var seenSystem string
	svc := New(&mockChat{completeFn: func(_ context.Context, system, user string) (string, error) {
		seenSystem = system
		if user != "fitness creators" {
			t.Errorf("unexpected user prompt: %q", user)
		}
		return `{"extracted_filters": {}, "confidence": 0.1}`, nil
	}}, &mockCatalog{cat: testCatalog()})

	svc.Analyze(context.Background(), "fitness creators")

	for _, want := range []string{"Fitness", "Fashion", "Mumbai", "instagram", "micro"} {
		if !strings.Contains(seenSystem, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}
