package rec

// Recommendation is a single ranked recommendation.
type Recommendation struct {
	productID   string
	score       float64
	explanation string
}

// New creates a recommendation.
func New(productID string, score float64, explanation string) Recommendation {
	return Recommendation{productID: productID, score: score, explanation: explanation}
}

// ProductID returns the recommended product identifier.
func (r Recommendation) ProductID() string { return r.productID }

// Score returns the relevance score.
func (r Recommendation) Score() float64 { return r.score }

// Explanation returns the human-readable justification.
func (r Recommendation) Explanation() string { return r.explanation }
