// Package alsobought provides an embedded co-purchase recommendation
// engine. An Engine is constructed from a product catalog and answers
// recommendation queries entirely in memory; the HTTP service under
// cmd/alsobought wraps the same pipeline with persistent storage.
package alsobought

import (
	"fmt"

	"github.com/merchkit/alsobought/internal/domain"
	"github.com/merchkit/alsobought/internal/domain/graph"
	"github.com/merchkit/alsobought/internal/domain/history"
	"github.com/merchkit/alsobought/internal/domain/product"
	"github.com/merchkit/alsobought/internal/usecase/recommend"
)

// Defaults applied when no option overrides them.
const (
	DefaultDecay                = 0.85
	DefaultMaxPerBrand          = 2
	DefaultMinCategoryDiversity = 2
)

// Product is a catalog record supplied to NewEngine.
type Product struct {
	ID       string
	Title    string
	Brand    string
	Category string
}

// Recommendation is a single ranked, explained recommendation.
type Recommendation struct {
	ProductID   string
	Score       float64
	Explanation string
}

// History maps a user id to that user's purchase sequence, most recent
// purchase first. The item at index 0 carries the heaviest scoring
// weight.
type History map[string][]string

type engineConfig struct {
	decay                float64
	maxPerBrand          int
	minCategoryDiversity int
}

// Option configures an Engine.
type Option func(*engineConfig)

// WithDecay sets the positional decay factor, in (0, 1].
func WithDecay(decay float64) Option {
	return func(c *engineConfig) { c.decay = decay }
}

// WithMaxPerBrand caps how many items of one brand the top-k may hold.
func WithMaxPerBrand(n int) Option {
	return func(c *engineConfig) { c.maxPerBrand = n }
}

// WithMinCategoryDiversity sets how many distinct categories the top-k
// should span before it is considered complete.
func WithMinCategoryDiversity(n int) Option {
	return func(c *engineConfig) { c.minCategoryDiversity = n }
}

// Engine answers recommendation queries against a fixed catalog.
type Engine struct {
	catalog product.Catalog
	cfg     engineConfig
}

// NewEngine validates the catalog and creates an Engine.
func NewEngine(products []Product, opts ...Option) (*Engine, error) {
	cfg := engineConfig{
		decay:                DefaultDecay,
		maxPerBrand:          DefaultMaxPerBrand,
		minCategoryDiversity: DefaultMinCategoryDiversity,
	}
	for _, o := range opts {
		o(&cfg)
	}

	if cfg.decay <= 0 || cfg.decay > 1 {
		return nil, fmt.Errorf("alsobought: %w: got %v", domain.ErrInvalidDecay, cfg.decay)
	}
	if cfg.maxPerBrand <= 0 || cfg.minCategoryDiversity <= 0 {
		return nil, fmt.Errorf("alsobought: %w", domain.ErrInvalidFairness)
	}

	catalog := make(product.Catalog, len(products))
	for _, p := range products {
		prod, err := product.New(p.ID, p.Title, p.Brand, p.Category)
		if err != nil {
			return nil, fmt.Errorf("alsobought: %w: %v", domain.ErrInvalidProduct, err)
		}
		catalog[prod.ID()] = prod
	}

	return &Engine{catalog: catalog, cfg: cfg}, nil
}

// Recommend returns up to topK explained recommendations for userID
// given the full purchase history. The co-purchase graph is rebuilt
// from the supplied history on every call; callers holding a static
// history that want repeated queries should reuse the same History
// value so only the cheap scoring stages vary per user.
//
// Users absent from the history, or with fewer than one purchase,
// receive an empty result.
func (e *Engine) Recommend(userID string, h History, topK int) ([]Recommendation, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("alsobought: %w: got %d", domain.ErrInvalidTopK, topK)
	}

	owned := h[userID]
	if len(owned) == 0 {
		return []Recommendation{}, nil
	}

	g := graph.Build(history.History(h))

	scores, err := recommend.Score(owned, g, e.cfg.decay)
	if err != nil {
		return nil, fmt.Errorf("alsobought: %w", err)
	}

	ranked, err := recommend.Rerank(scores, e.catalog, topK, recommend.FairnessConfig{
		MaxPerBrand:          e.cfg.maxPerBrand,
		MinCategoryDiversity: e.cfg.minCategoryDiversity,
	})
	if err != nil {
		return nil, fmt.Errorf("alsobought: %w", err)
	}

	out := make([]Recommendation, len(ranked))
	for i, r := range ranked {
		out[i] = Recommendation{
			ProductID:   r.ProductID(),
			Score:       r.Score(),
			Explanation: recommend.Explain(r.ProductID(), owned, g, e.catalog),
		}
	}
	return out, nil
}
