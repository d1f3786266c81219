package sdk

// ProductFields holds the mutable attributes of a catalog product.
type ProductFields struct {
	Title    string `json:"title"`
	Brand    string `json:"brand,omitempty"`
	Category string `json:"category,omitempty"`
}

// Product is a catalog record as returned by the API.
type Product struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Brand    string `json:"brand,omitempty"`
	Category string `json:"category,omitempty"`
}

// ProductList is a catalog listing.
type ProductList struct {
	Items []Product `json:"items"`
	Total int       `json:"total"`
}

// Purchases is a user's purchase sequence, oldest first.
type Purchases struct {
	UserID     string   `json:"user_id"`
	ProductIDs []string `json:"product_ids"`
}

// Recommendation is a single ranked, explained recommendation.
type Recommendation struct {
	ProductID   string  `json:"product_id"`
	Title       string  `json:"title"`
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

// Feedback outcomes accepted by SendFeedback.
const (
	OutcomeClicked   = "clicked"
	OutcomePurchased = "purchased"
	OutcomeDismissed = "dismissed"
)

// Feedback is a signal about a served recommendation.
type Feedback struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	Outcome   string `json:"outcome"`
}

// Health is the service health report.
type Health struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type recordPurchasesRequest struct {
	ProductIDs []string `json:"product_ids"`
}

type recommendationsResponse struct {
	UserID string           `json:"user_id"`
	Items  []Recommendation `json:"items"`
}

type feedbackResponse struct {
	EventID string `json:"event_id"`
	Status  string `json:"status"`
}
