// Package graph builds and queries the co-purchase graph: a symmetric
// weighted graph counting how often two distinct products appear in the
// same user's purchase history.
package graph

import "github.com/merchkit/alsobought/internal/domain/history"

// Graph holds symmetric co-purchase counts. count(A,B) == count(B,A)
// for every pair that co-occurs; self-pairs never exist.
type Graph struct {
	adj map[string]map[string]int
}

// Build derives a Graph from purchase histories. Each user's sequence is
// deduplicated first-occurrence-wins, then every unordered pair of
// distinct products increments the count in both directions. Users with
// fewer than two distinct products contribute no edges; empty input
// yields an empty graph.
func Build(h history.History) *Graph {
	g := &Graph{adj: make(map[string]map[string]int)}
	for _, products := range h {
		unique := history.Dedupe(products)
		for i := 0; i < len(unique); i++ {
			for j := i + 1; j < len(unique); j++ {
				g.add(unique[i], unique[j])
				g.add(unique[j], unique[i])
			}
		}
	}
	return g
}

func (g *Graph) add(a, b string) {
	m, ok := g.adj[a]
	if !ok {
		m = make(map[string]int)
		g.adj[a] = m
	}
	m[b]++
}

// Count returns the co-purchase count for a pair, 0 if the pair never
// co-occurred.
func (g *Graph) Count(a, b string) int {
	return g.adj[a][b]
}

// Neighbors returns the co-purchase counts keyed by the other product of
// every edge touching id. The returned map must not be mutated.
func (g *Graph) Neighbors(id string) map[string]int {
	return g.adj[id]
}

// Products returns the number of products with at least one edge.
func (g *Graph) Products() int {
	return len(g.adj)
}

// Pairs returns the number of unordered co-purchase pairs.
func (g *Graph) Pairs() int {
	total := 0
	for _, m := range g.adj {
		total += len(m)
	}
	return total / 2
}
