package alsobought

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/merchkit/alsobought/internal/domain"
)

func demoProducts() []Product {
	return []Product{
		{ID: "p1", Title: "Eco Water Bottle", Brand: "AquaCo", Category: "Outdoors"},
		{ID: "p2", Title: "Insulated Mug", Brand: "AquaCo", Category: "Kitchen"},
		{ID: "p3", Title: "Trail Backpack", Brand: "HikeMax", Category: "Outdoors"},
		{ID: "p4", Title: "Yoga Mat", Brand: "ZenFit", Category: "Fitness"},
		{ID: "p5", Title: "Running Shoes", Brand: "ZenFit", Category: "Fitness"},
		{ID: "p6", Title: "Camping Stove", Brand: "CampX", Category: "Outdoors"},
		{ID: "p7", Title: "Chef Knife", Brand: "CookPro", Category: "Kitchen"},
		{ID: "p8", Title: "Coffee Grinder", Brand: "CookPro", Category: "Kitchen"},
	}
}

func demoHistory() History {
	return History{
		"u1": {"p1", "p3", "p4"},
		"u2": {"p1", "p2", "p6"},
		"u3": {"p3", "p6"},
		"u4": {"p2", "p7", "p8"},
		"u5": {"p1", "p4", "p5"},
	}
}

func TestNewEngine_Defaults(t *testing.T) {
	e, err := NewEngine(demoProducts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.cfg.decay != DefaultDecay {
		t.Errorf("decay: got %v, want %v", e.cfg.decay, DefaultDecay)
	}
	if e.cfg.maxPerBrand != DefaultMaxPerBrand {
		t.Errorf("maxPerBrand: got %d, want %d", e.cfg.maxPerBrand, DefaultMaxPerBrand)
	}
	if e.cfg.minCategoryDiversity != DefaultMinCategoryDiversity {
		t.Errorf("minCategoryDiversity: got %d, want %d",
			e.cfg.minCategoryDiversity, DefaultMinCategoryDiversity)
	}
}

func TestNewEngine_InvalidProduct(t *testing.T) {
	_, err := NewEngine([]Product{{ID: "p1", Title: ""}})
	if !errors.Is(err, domain.ErrInvalidProduct) {
		t.Errorf("expected ErrInvalidProduct, got %v", err)
	}
}

func TestNewEngine_InvalidDecay(t *testing.T) {
	for _, decay := range []float64{0, -0.5, 1.5} {
		_, err := NewEngine(demoProducts(), WithDecay(decay))
		if !errors.Is(err, domain.ErrInvalidDecay) {
			t.Errorf("decay=%v: expected ErrInvalidDecay, got %v", decay, err)
		}
	}
}

func TestNewEngine_DecayOfOneValid(t *testing.T) {
	if _, err := NewEngine(demoProducts(), WithDecay(1.0)); err != nil {
		t.Errorf("decay=1.0 must be accepted, got %v", err)
	}
}

func TestNewEngine_InvalidFairness(t *testing.T) {
	if _, err := NewEngine(demoProducts(), WithMaxPerBrand(0)); !errors.Is(err, domain.ErrInvalidFairness) {
		t.Errorf("maxPerBrand=0: expected ErrInvalidFairness, got %v", err)
	}
	if _, err := NewEngine(demoProducts(), WithMinCategoryDiversity(-1)); !errors.Is(err, domain.ErrInvalidFairness) {
		t.Errorf("minCategoryDiversity=-1: expected ErrInvalidFairness, got %v", err)
	}
}

func TestEngine_Recommend(t *testing.T) {
	e, err := NewEngine(demoProducts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := e.Recommend("u1", demoHistory(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// u1 owns p1 (most recent), p3, p4. Co-purchase edges to unowned
	// products: p6 scores 1 + 0.85, p5 scores 1 + 0.85^2, p2 scores 1.
	want := []struct {
		id    string
		score float64
	}{
		{"p6", 1.85},
		{"p5", 1.7225},
		{"p2", 1.0},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d recommendations, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].ProductID != w.id {
			t.Errorf("position %d: got %s, want %s", i, got[i].ProductID, w.id)
		}
		if math.Abs(got[i].Score-w.score) > 1e-9 {
			t.Errorf("%s score: got %v, want %v", w.id, got[i].Score, w.score)
		}
	}

	if !strings.Contains(got[0].Explanation, "Camping Stove") {
		t.Errorf("explanation must name the recommended product: %q", got[0].Explanation)
	}
	if !strings.Contains(got[0].Explanation, "because you bought") {
		t.Errorf("expected contributor explanation, got %q", got[0].Explanation)
	}
}

func TestEngine_Recommend_TopKLimits(t *testing.T) {
	e, err := NewEngine(demoProducts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := e.Recommend("u1", demoHistory(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ProductID != "p6" {
		t.Errorf("topK=1: got %+v, want single p6", got)
	}
}

func TestEngine_Recommend_NeverRecommendsOwned(t *testing.T) {
	e, err := NewEngine(demoProducts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h := demoHistory()
	for user, owned := range h {
		got, err := e.Recommend(user, h, 10)
		if err != nil {
			t.Fatalf("user %s: unexpected error: %v", user, err)
		}
		ownedSet := make(map[string]struct{}, len(owned))
		for _, id := range owned {
			ownedSet[id] = struct{}{}
		}
		for _, r := range got {
			if _, ok := ownedSet[r.ProductID]; ok {
				t.Errorf("user %s: owned product %s recommended", user, r.ProductID)
			}
		}
	}
}

func TestEngine_Recommend_UnknownUser(t *testing.T) {
	e, err := NewEngine(demoProducts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := e.Recommend("stranger", demoHistory(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("unknown user: expected empty result, got %d items", len(got))
	}
}

func TestEngine_Recommend_InvalidTopK(t *testing.T) {
	e, err := NewEngine(demoProducts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, topK := range []int{0, -3} {
		if _, err := e.Recommend("u1", demoHistory(), topK); !errors.Is(err, domain.ErrInvalidTopK) {
			t.Errorf("topK=%d: expected ErrInvalidTopK, got %v", topK, err)
		}
	}
}

func TestEngine_Recommend_RepeatPurchasesCollapsed(t *testing.T) {
	e, err := NewEngine(demoProducts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h := demoHistory()
	h["u1"] = []string{"p1", "p1", "p3", "p4", "p1"}

	got, err := e.Recommend("u1", h, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"p6", "p5", "p2"}
	if len(got) != len(want) {
		t.Fatalf("expected %d recommendations, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ProductID != id {
			t.Errorf("position %d: got %s, want %s", i, got[i].ProductID, id)
		}
	}
}
