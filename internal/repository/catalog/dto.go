package catalog

import "github.com/merchkit/alsobought/internal/domain/product"

// productToHash converts a domain Product to a map for HSET.
func productToHash(p product.Product) map[string]string {
	return map[string]string{
		"id":       p.ID(),
		"title":    p.Title(),
		"brand":    p.Brand(),
		"category": p.Category(),
	}
}

// productFromHash hydrates a domain Product from an HGETALL result map.
func productFromHash(m map[string]string) product.Product {
	return product.Reconstruct(m["id"], m["title"], m["brand"], m["category"])
}
