package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/merchkit/alsobought/internal/domain"
	"github.com/merchkit/alsobought/internal/domain/product"
)

// Service manages the long-lived, shared read-mostly product catalog.
type Service struct {
	repo Repository
}

// New creates a catalog service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Upsert validates and stores a product.
func (s *Service) Upsert(ctx context.Context, id, title, brand, category string) (product.Product, error) {
	p, err := product.New(id, title, brand, category)
	if err != nil {
		return product.Product{}, fmt.Errorf("%w: %w", domain.ErrInvalidProduct, err)
	}
	if err := s.repo.Upsert(ctx, p); err != nil {
		return product.Product{}, fmt.Errorf("upsert product %s: %w", id, err)
	}
	return p, nil
}

// Get retrieves a product by id.
func (s *Service) Get(ctx context.Context, id string) (product.Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return product.Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	return p, nil
}

// List returns all products sorted by id.
func (s *Service) List(ctx context.Context) ([]product.Product, error) {
	catalog, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]product.Product, 0, len(catalog))
	for _, p := range catalog {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].ID() < products[j].ID()
	})
	return products, nil
}

// Delete removes a product from the catalog. Purchase histories that
// reference it keep working; the engine skips dangling references.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	return nil
}
