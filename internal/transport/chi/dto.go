package chi

import "github.com/merchkit/alsobought/internal/domain/product"

// Error codes returned in error responses.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeProductNotFound  = "product_not_found"
	codeInternalError    = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type upsertProductRequest struct {
	Title    string `json:"title" validate:"required,max=256"`
	Brand    string `json:"brand" validate:"max=128"`
	Category string `json:"category" validate:"max=128"`
}

type productResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Brand    string `json:"brand,omitempty"`
	Category string `json:"category,omitempty"`
}

type productListResponse struct {
	Items []productResponse `json:"items"`
	Total int               `json:"total"`
}

type recordPurchasesRequest struct {
	ProductIDs []string `json:"product_ids" validate:"required,min=1,max=100,dive,required,max=128"`
}

type purchasesResponse struct {
	UserID     string   `json:"user_id"`
	ProductIDs []string `json:"product_ids"`
}

type recommendationItem struct {
	ProductID   string  `json:"product_id"`
	Title       string  `json:"title"`
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

type recommendationsResponse struct {
	UserID string               `json:"user_id"`
	Items  []recommendationItem `json:"items"`
}

type feedbackRequest struct {
	UserID    string `json:"user_id" validate:"required,max=128"`
	ProductID string `json:"product_id" validate:"required,max=128"`
	Outcome   string `json:"outcome" validate:"required,oneof=clicked purchased dismissed"`
}

type feedbackResponse struct {
	EventID string `json:"event_id"`
	Status  string `json:"status"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func productToResponse(p product.Product) productResponse {
	return productResponse{
		ID:       p.ID(),
		Title:    p.Title(),
		Brand:    p.Brand(),
		Category: p.Category(),
	}
}
