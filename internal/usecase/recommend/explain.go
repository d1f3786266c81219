package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/merchkit/alsobought/internal/domain/graph"
	"github.com/merchkit/alsobought/internal/domain/history"
	"github.com/merchkit/alsobought/internal/domain/product"
)

// maxContributors caps how many owned items an explanation names.
const maxContributors = 3

// Explain renders a human-readable justification for a recommendation:
// the owned items with the strongest co-purchase counts against it,
// strongest first. When no owned item has a positive count (the
// recommendation arose through re-ranking backfill rather than direct
// co-purchase signal) a generic fallback is returned. Titles fall back
// to raw product ids for catalog-missing products.
func Explain(productID string, owned []string, g *graph.Graph, catalog product.Catalog) string {
	type contribution struct {
		id    string
		count int
	}

	var contributions []contribution
	for _, id := range history.Dedupe(owned) {
		if count := g.Count(id, productID); count > 0 {
			contributions = append(contributions, contribution{id: id, count: count})
		}
	}

	title := catalog.Title(productID)
	if len(contributions) == 0 {
		return fmt.Sprintf("Recommended '%s' based on similar users' purchases.", title)
	}

	// Stable: equal counts keep the owned-sequence order.
	sort.SliceStable(contributions, func(i, j int) bool {
		return contributions[i].count > contributions[j].count
	})
	if len(contributions) > maxContributors {
		contributions = contributions[:maxContributors]
	}

	parts := make([]string, len(contributions))
	for i, c := range contributions {
		parts[i] = fmt.Sprintf("%s (%d)", catalog.Title(c.id), c.count)
	}
	return fmt.Sprintf("Recommended '%s' because you bought: %s", title, strings.Join(parts, ", "))
}
