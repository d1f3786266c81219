package domain

import "errors"

var (
	// ErrProductNotFound signals a missing catalog product.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidProduct signals a malformed product record.
	ErrInvalidProduct = errors.New("invalid product")
	// ErrInvalidHistory signals a malformed purchase payload.
	ErrInvalidHistory = errors.New("invalid purchase history")
	// ErrInvalidDecay signals a decay factor outside (0, 1].
	ErrInvalidDecay = errors.New("decay must be in (0, 1]")
	// ErrInvalidTopK signals a non-positive or out-of-range top-k.
	ErrInvalidTopK = errors.New("top_k must be positive")
	// ErrInvalidFairness signals invalid fairness re-ranking parameters.
	ErrInvalidFairness = errors.New("invalid fairness parameters")
)
