package recommend

import (
	"errors"
	"testing"

	"github.com/merchkit/alsobought/internal/domain"
	"github.com/merchkit/alsobought/internal/domain/product"
)

func demoCatalog() product.Catalog {
	return product.Catalog{
		"p1": product.Reconstruct("p1", "Eco Water Bottle", "AquaCo", "Outdoors"),
		"p2": product.Reconstruct("p2", "Insulated Mug", "AquaCo", "Kitchen"),
		"p3": product.Reconstruct("p3", "Trail Backpack", "HikeMax", "Outdoors"),
		"p4": product.Reconstruct("p4", "Yoga Mat", "ZenFit", "Fitness"),
		"p5": product.Reconstruct("p5", "Running Shoes", "ZenFit", "Fitness"),
		"p6": product.Reconstruct("p6", "Camping Stove", "CampX", "Outdoors"),
		"p7": product.Reconstruct("p7", "Chef Knife", "CookPro", "Kitchen"),
		"p8": product.Reconstruct("p8", "Coffee Grinder", "CookPro", "Kitchen"),
	}
}

func defaultFairness() FairnessConfig {
	return FairnessConfig{MaxPerBrand: 2, MinCategoryDiversity: 2}
}

func TestRerank_OrderedByScore(t *testing.T) {
	scores := map[string]float64{"p2": 1.0, "p5": 1.7225, "p6": 1.85}

	got, err := Rerank(scores, demoCatalog(), 10, defaultFairness())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"p6", "p5", "p2"}
	if len(got) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ProductID() != id {
			t.Errorf("position %d: got %s, want %s", i, got[i].ProductID(), id)
		}
	}
}

func TestRerank_TieBrokenByProductID(t *testing.T) {
	scores := map[string]float64{"p8": 1.0, "p2": 1.0, "p7": 1.0}

	got, err := Rerank(scores, demoCatalog(), 10, defaultFairness())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"p2", "p7", "p8"}
	for i, id := range want {
		if got[i].ProductID() != id {
			t.Errorf("position %d: got %s, want %s", i, got[i].ProductID(), id)
		}
	}
}

func TestRerank_BrandCap(t *testing.T) {
	// Three ZenFit items, cap 2: the third is demoted out of the first pass.
	catalog := product.Catalog{
		"a1": product.Reconstruct("a1", "A1", "ZenFit", "Fitness"),
		"a2": product.Reconstruct("a2", "A2", "ZenFit", "Fitness"),
		"a3": product.Reconstruct("a3", "A3", "ZenFit", "Fitness"),
		"b1": product.Reconstruct("b1", "B1", "CampX", "Outdoors"),
	}
	scores := map[string]float64{"a1": 4, "a2": 3, "a3": 2, "b1": 1}

	got, err := Rerank(scores, catalog, 3, FairnessConfig{MaxPerBrand: 2, MinCategoryDiversity: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"a1", "a2", "b1"}
	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got))
	}
	for i, id := range want {
		if got[i].ProductID() != id {
			t.Errorf("position %d: got %s, want %s", i, got[i].ProductID(), id)
		}
	}
}

func TestRerank_MaxPerBrandOne(t *testing.T) {
	// Both top candidates share a brand; cap 1 keeps only the stronger.
	scores := map[string]float64{"p1": 5, "p2": 4, "p3": 3}

	got, err := Rerank(scores, demoCatalog(), 2, FairnessConfig{MaxPerBrand: 1, MinCategoryDiversity: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	aquaCo := 0
	for _, r := range got {
		if demoCatalog()[r.ProductID()].Brand() == "AquaCo" {
			aquaCo++
		}
	}
	if aquaCo > 1 {
		t.Errorf("expected at most one AquaCo item, got %d", aquaCo)
	}
}

func TestRerank_CategoryDiversityReservesSlots(t *testing.T) {
	// Top three share a category; with topK=2 and diversity 2 the second
	// slot is reserved for a new category.
	catalog := product.Catalog{
		"k1": product.Reconstruct("k1", "K1", "B1", "Kitchen"),
		"k2": product.Reconstruct("k2", "K2", "B2", "Kitchen"),
		"k3": product.Reconstruct("k3", "K3", "B3", "Kitchen"),
		"f1": product.Reconstruct("f1", "F1", "B4", "Fitness"),
	}
	scores := map[string]float64{"k1": 4, "k2": 3, "k3": 2, "f1": 1}

	got, err := Rerank(scores, catalog, 2, FairnessConfig{MaxPerBrand: 2, MinCategoryDiversity: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"k1", "f1"}
	for i, id := range want {
		if got[i].ProductID() != id {
			t.Errorf("position %d: got %s, want %s", i, got[i].ProductID(), id)
		}
	}
}

func TestRerank_BackfillRelaxesConstraints(t *testing.T) {
	// Single brand, cap 1: first pass selects one item, backfill tops up
	// to topK ignoring the cap.
	catalog := product.Catalog{
		"a1": product.Reconstruct("a1", "A1", "ZenFit", "Fitness"),
		"a2": product.Reconstruct("a2", "A2", "ZenFit", "Fitness"),
		"a3": product.Reconstruct("a3", "A3", "ZenFit", "Fitness"),
	}
	scores := map[string]float64{"a1": 3, "a2": 2, "a3": 1}

	got, err := Rerank(scores, catalog, 3, FairnessConfig{MaxPerBrand: 1, MinCategoryDiversity: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"a1", "a2", "a3"}
	if len(got) != 3 {
		t.Fatalf("expected backfill to reach 3, got %d", len(got))
	}
	for i, id := range want {
		if got[i].ProductID() != id {
			t.Errorf("position %d: got %s, want %s", i, got[i].ProductID(), id)
		}
	}
}

func TestRerank_UnknownProductsDropped(t *testing.T) {
	scores := map[string]float64{"p1": 3, "ghost": 2, "p2": 1}

	got, err := Rerank(scores, demoCatalog(), 10, defaultFairness())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range got {
		if r.ProductID() == "ghost" {
			t.Error("catalog-missing candidate must be dropped")
		}
	}
	if len(got) != 2 {
		t.Errorf("expected 2 results, got %d", len(got))
	}
}

func TestRerank_BoundedByTopK(t *testing.T) {
	scores := map[string]float64{}
	for id := range demoCatalog() {
		scores[id] = 1
	}

	got, err := Rerank(scores, demoCatalog(), 3, defaultFairness())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) > 3 {
		t.Errorf("result length %d exceeds topK", len(got))
	}
}

func TestRerank_EmptyScores(t *testing.T) {
	got, err := Rerank(map[string]float64{}, demoCatalog(), 5, defaultFairness())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %d", len(got))
	}
}

func TestRerank_InvalidTopK(t *testing.T) {
	for _, topK := range []int{0, -1} {
		_, err := Rerank(map[string]float64{"p1": 1}, demoCatalog(), topK, defaultFairness())
		if !errors.Is(err, domain.ErrInvalidTopK) {
			t.Errorf("topK=%d: expected ErrInvalidTopK, got %v", topK, err)
		}
	}
}

func TestRerank_InvalidFairness(t *testing.T) {
	tests := []FairnessConfig{
		{MaxPerBrand: 0, MinCategoryDiversity: 2},
		{MaxPerBrand: 2, MinCategoryDiversity: 0},
	}
	for _, cfg := range tests {
		_, err := Rerank(map[string]float64{"p1": 1}, demoCatalog(), 5, cfg)
		if !errors.Is(err, domain.ErrInvalidFairness) {
			t.Errorf("cfg=%+v: expected ErrInvalidFairness, got %v", cfg, err)
		}
	}
}

func TestRerank_Deterministic(t *testing.T) {
	scores := map[string]float64{"p1": 2, "p2": 2, "p3": 2, "p4": 1, "p5": 1, "p6": 1}

	first, err := Rerank(scores, demoCatalog(), 4, defaultFairness())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Rerank(scores, demoCatalog(), 4, defaultFairness())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %d: length %d, want %d", i, len(again), len(first))
		}
		for j := range first {
			if again[j].ProductID() != first[j].ProductID() {
				t.Fatalf("run %d: position %d is %s, want %s",
					i, j, again[j].ProductID(), first[j].ProductID())
			}
		}
	}
}
