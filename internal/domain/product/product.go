package product

import "fmt"

const (
	maxIDLen    = 128
	maxTitleLen = 256
	maxAttrLen  = 128
)

// Product is an immutable catalog record.
type Product struct {
	id       string
	title    string
	brand    string
	category string
}

// New validates and creates a Product.
// ID and title are required; brand and category may be empty.
func New(id, title, brand, category string) (Product, error) {
	if id == "" {
		return Product{}, fmt.Errorf("product id is required")
	}
	if len(id) > maxIDLen {
		return Product{}, fmt.Errorf("product id too long (max %d)", maxIDLen)
	}
	if title == "" {
		return Product{}, fmt.Errorf("product title is required")
	}
	if len(title) > maxTitleLen {
		return Product{}, fmt.Errorf("product title too long (max %d)", maxTitleLen)
	}
	if len(brand) > maxAttrLen {
		return Product{}, fmt.Errorf("product brand too long (max %d)", maxAttrLen)
	}
	if len(category) > maxAttrLen {
		return Product{}, fmt.Errorf("product category too long (max %d)", maxAttrLen)
	}
	return Product{id: id, title: title, brand: brand, category: category}, nil
}

// Reconstruct creates a Product without validation (storage hydration).
func Reconstruct(id, title, brand, category string) Product {
	return Product{id: id, title: title, brand: brand, category: category}
}

// ID returns the product identifier.
func (p Product) ID() string { return p.id }

// Title returns the display title.
func (p Product) Title() string { return p.title }

// Brand returns the brand attribute.
func (p Product) Brand() string { return p.brand }

// Category returns the category attribute.
func (p Product) Category() string { return p.category }

// Catalog is a read-only product lookup keyed by product id.
type Catalog map[string]Product

// Get looks up a product by id.
func (c Catalog) Get(id string) (Product, bool) {
	p, ok := c[id]
	return p, ok
}

// Title returns the product title, falling back to the raw id for
// products missing from the catalog.
func (c Catalog) Title(id string) string {
	if p, ok := c[id]; ok {
		return p.Title()
	}
	return id
}
