package recommend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/merchkit/alsobought/internal/domain"
	"github.com/merchkit/alsobought/internal/domain/graph"
	"github.com/merchkit/alsobought/internal/domain/history"
	"github.com/merchkit/alsobought/internal/domain/rec"
)

// Config holds engine tuning parameters.
type Config struct {
	Decay                float64
	DefaultTopK          int
	MaxTopK              int
	MaxPerBrand          int
	MinCategoryDiversity int
}

// Service produces explained, fairness-constrained recommendations.
// The built graph is cached per history version and shared read-only
// across requests; it is swapped atomically whenever the underlying
// history changes.
type Service struct {
	hist HistoryReader
	cat  CatalogReader
	cfg  Config

	mu        sync.RWMutex
	cached    *graph.Graph
	cachedVer int64

	cacheTotal   *prometheus.CounterVec
	buildSeconds prometheus.Observer
}

// New creates a recommendation service.
func New(hist HistoryReader, cat CatalogReader, cfg Config) *Service {
	return &Service{hist: hist, cat: cat, cfg: cfg, cachedVer: -1}
}

// WithMetrics attaches graph cache and build duration collectors.
// Either may be nil.
func (s *Service) WithMetrics(cacheTotal *prometheus.CounterVec, buildSeconds prometheus.Observer) *Service {
	s.cacheTotal = cacheTotal
	s.buildSeconds = buildSeconds
	return s
}

// Recommend returns up to topK explained recommendations for a user.
// topK == 0 selects the configured default. Unknown users yield an
// empty result, not an error.
func (s *Service) Recommend(ctx context.Context, userID string, topK int) ([]rec.Recommendation, error) {
	if topK == 0 {
		topK = s.cfg.DefaultTopK
	}
	if topK < 0 || (s.cfg.MaxTopK > 0 && topK > s.cfg.MaxTopK) {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidTopK, topK)
	}

	owned, err := s.hist.Owned(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("read purchases for %s: %w", userID, err)
	}
	if len(owned) == 0 {
		return []rec.Recommendation{}, nil
	}

	g, err := s.graph(ctx)
	if err != nil {
		return nil, err
	}

	// Purchases are stored oldest-first; the scorer weights index 0
	// heaviest, so score against the reversed (most-recent-first) order.
	scores, err := Score(history.Reverse(owned), g, s.cfg.Decay)
	if err != nil {
		return nil, err
	}

	catalog, err := s.cat.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	ranked, err := Rerank(scores, catalog, topK, FairnessConfig{
		MaxPerBrand:          s.cfg.MaxPerBrand,
		MinCategoryDiversity: s.cfg.MinCategoryDiversity,
	})
	if err != nil {
		return nil, err
	}

	results := make([]rec.Recommendation, len(ranked))
	for i, r := range ranked {
		explanation := Explain(r.ProductID(), owned, g, catalog)
		results[i] = rec.New(r.ProductID(), r.Score(), explanation)
	}
	return results, nil
}

// graph returns the cached co-purchase graph, rebuilding it when the
// history version moved.
func (s *Service) graph(ctx context.Context) (*graph.Graph, error) {
	ver, err := s.hist.Version(ctx)
	if err != nil {
		return nil, fmt.Errorf("read history version: %w", err)
	}

	s.mu.RLock()
	if s.cached != nil && s.cachedVer == ver {
		g := s.cached
		s.mu.RUnlock()
		s.observeCache("hit")
		return g, nil
	}
	s.mu.RUnlock()
	s.observeCache("miss")

	all, err := s.hist.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("read purchase history: %w", err)
	}

	start := time.Now()
	g := graph.Build(all)
	if s.buildSeconds != nil {
		s.buildSeconds.Observe(time.Since(start).Seconds())
	}

	s.mu.Lock()
	s.cached = g
	s.cachedVer = ver
	s.mu.Unlock()

	return g, nil
}

func (s *Service) observeCache(result string) {
	if s.cacheTotal != nil {
		s.cacheTotal.WithLabelValues(result).Inc()
	}
}
