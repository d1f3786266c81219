package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recommendation engine Prometheus metrics.
var (
	GraphCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "alsobought",
			Name:      "graph_cache_total",
			Help:      "Co-purchase graph cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	GraphBuildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "alsobought",
			Name:      "graph_build_duration_seconds",
			Help:      "Co-purchase graph build duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	RecommendationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "alsobought",
			Name:      "recommendations_total",
			Help:      "Total number of recommendation requests served",
		},
	)

	FeedbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "alsobought",
			Name:      "feedback_total",
			Help:      "Total number of feedback events received",
		},
		[]string{"outcome"}, // "clicked" / "purchased" / "dismissed"
	)
)

var engineMetricsRegistered bool

// RegisterEngineMetrics registers Prometheus engine metrics. Must be called once from main.
func RegisterEngineMetrics() {
	if engineMetricsRegistered {
		return
	}
	prometheus.MustRegister(GraphCacheTotal)
	prometheus.MustRegister(GraphBuildDuration)
	prometheus.MustRegister(RecommendationsTotal)
	prometheus.MustRegister(FeedbackTotal)
	engineMetricsRegistered = true
}
