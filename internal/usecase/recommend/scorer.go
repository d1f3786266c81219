package recommend

import (
	"math"

	"github.com/merchkit/alsobought/internal/domain"
	"github.com/merchkit/alsobought/internal/domain/graph"
	"github.com/merchkit/alsobought/internal/domain/history"
)

// Score computes a relevance score per candidate product for a user.
//
// The owned sequence must be ordered most-recent-first: the item at
// index i contributes with weight decay^i, so later-supplied (older)
// items count exponentially less. Repeat entries are collapsed to the
// first occurrence before weighting. For every co-purchase edge from an
// owned item to a candidate the user does not own, the edge count times
// the positional weight is added to the candidate's score. Candidates
// with no qualifying edges are absent from the result rather than
// present with a zero score.
func Score(owned []string, g *graph.Graph, decay float64) (map[string]float64, error) {
	if decay <= 0 || decay > 1 {
		return nil, domain.ErrInvalidDecay
	}

	ownedSet := make(map[string]struct{}, len(owned))
	for _, id := range owned {
		ownedSet[id] = struct{}{}
	}

	scores := make(map[string]float64)
	for i, id := range history.Dedupe(owned) {
		weight := math.Pow(decay, float64(i))
		for candidate, count := range g.Neighbors(id) {
			if _, isOwned := ownedSet[candidate]; isOwned {
				continue
			}
			scores[candidate] += float64(count) * weight
		}
	}
	return scores, nil
}
