package recommend

import (
	"sort"

	"github.com/merchkit/alsobought/internal/domain"
	"github.com/merchkit/alsobought/internal/domain/product"
	"github.com/merchkit/alsobought/internal/domain/rec"
)

// FairnessConfig bounds per-brand concentration and category spread in
// the re-ranked top-k.
type FairnessConfig struct {
	MaxPerBrand          int
	MinCategoryDiversity int
}

// Rerank selects up to topK candidates by score while enforcing brand
// caps and category diversity. The policy is greedy and monotone: a
// lower-scoring item never ranks above a higher-scoring one except when
// the higher-scoring one was excluded by a constraint.
//
// First pass: candidates sorted by score descending (ties broken by
// product id ascending for reproducible output) are accepted unless
// their brand already hit MaxPerBrand, or the remaining slots are
// reserved for categories still needed to reach MinCategoryDiversity.
// Candidates missing from the catalog are silently dropped.
//
// Backfill pass: if the first pass filled fewer than topK slots, the
// sorted list is re-scanned and catalog-present candidates are appended
// without brand or category constraints until topK is reached or
// candidates run out. Size wins over fairness when both cannot be
// satisfied.
func Rerank(
	scores map[string]float64, catalog product.Catalog, topK int, cfg FairnessConfig,
) ([]rec.Recommendation, error) {
	if topK <= 0 {
		return nil, domain.ErrInvalidTopK
	}
	if cfg.MaxPerBrand <= 0 || cfg.MinCategoryDiversity <= 0 {
		return nil, domain.ErrInvalidFairness
	}

	sorted := sortCandidates(scores)

	chosen := make([]rec.Recommendation, 0, topK)
	chosenSet := make(map[string]struct{}, topK)
	brandCount := make(map[string]int)
	categories := make(map[string]struct{})

	for _, c := range sorted {
		if len(chosen) == topK {
			break
		}
		prod, ok := catalog.Get(c.id)
		if !ok {
			continue
		}
		if brandCount[prod.Brand()] >= cfg.MaxPerBrand {
			continue
		}

		// Reserve the tail slots for categories still needed.
		_, newCategory := categories[prod.Category()]
		newCategory = !newCategory
		needed := cfg.MinCategoryDiversity - len(categories)
		if needed > 0 && !newCategory && topK-len(chosen) <= needed {
			continue
		}

		chosen = append(chosen, rec.New(c.id, c.score, ""))
		chosenSet[c.id] = struct{}{}
		brandCount[prod.Brand()]++
		categories[prod.Category()] = struct{}{}
	}

	// Backfill ignores fairness constraints to hit the size target.
	if len(chosen) < topK {
		for _, c := range sorted {
			if len(chosen) == topK {
				break
			}
			if _, ok := chosenSet[c.id]; ok {
				continue
			}
			if _, ok := catalog.Get(c.id); !ok {
				continue
			}
			chosen = append(chosen, rec.New(c.id, c.score, ""))
			chosenSet[c.id] = struct{}{}
		}
	}

	return chosen, nil
}

type candidate struct {
	id    string
	score float64
}

func sortCandidates(scores map[string]float64) []candidate {
	sorted := make([]candidate, 0, len(scores))
	for id, score := range scores {
		sorted = append(sorted, candidate{id: id, score: score})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].score != sorted[j].score {
			return sorted[i].score > sorted[j].score
		}
		return sorted[i].id < sorted[j].id
	})
	return sorted
}
