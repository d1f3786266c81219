package catalog

import (
	"context"

	"github.com/merchkit/alsobought/internal/domain/product"
)

// Repository defines the storage contract for catalog products.
type Repository interface {
	Upsert(ctx context.Context, p product.Product) error
	Get(ctx context.Context, id string) (product.Product, error)
	All(ctx context.Context) (product.Catalog, error)
	Delete(ctx context.Context, id string) error
}
