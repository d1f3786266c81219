package catalog

import (
	"context"
	"fmt"

	"github.com/merchkit/alsobought/internal/domain"
	"github.com/merchkit/alsobought/internal/domain/product"
)

// store is the consumer interface for product storage (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/catalog.Repository and the engine's catalog reads.
type Repo struct {
	store store
}

// New creates a catalog repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Upsert stores a product as a hash. Existing products are overwritten.
func (r *Repo) Upsert(ctx context.Context, p product.Product) error {
	if err := r.store.HSet(ctx, productKey(p.ID()), productToHash(p)); err != nil {
		return fmt.Errorf("hset product %s: %w", p.ID(), err)
	}
	return nil
}

// Get retrieves a product by id.
func (r *Repo) Get(ctx context.Context, id string) (product.Product, error) {
	m, err := r.store.HGetAll(ctx, productKey(id))
	if err != nil {
		return product.Product{}, fmt.Errorf("hgetall product %s: %w", id, err)
	}
	if len(m) == 0 {
		return product.Product{}, domain.ErrProductNotFound
	}
	return productFromHash(m), nil
}

// All returns the full catalog keyed by product id.
func (r *Repo) All(ctx context.Context) (product.Catalog, error) {
	keys, err := r.store.Scan(ctx, productKey("*"))
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}
	if len(keys) == 0 {
		return product.Catalog{}, nil
	}

	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi products: %w", err)
	}

	catalog := make(product.Catalog, len(results))
	for _, m := range results {
		// Keys can vanish between SCAN and HGETALL.
		if len(m) == 0 {
			continue
		}
		p := productFromHash(m)
		catalog[p.ID()] = p
	}
	return catalog, nil
}

// Delete removes a product.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := productKey(id)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if !exists {
		return domain.ErrProductNotFound
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del product %s: %w", id, err)
	}
	return nil
}

// Redis key pattern: alsobought:product:{id}

func productKey(id string) string {
	return fmt.Sprintf("%sproduct:%s", domain.KeyPrefix, id)
}
