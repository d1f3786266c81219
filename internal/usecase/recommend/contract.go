package recommend

import (
	"context"

	"github.com/merchkit/alsobought/internal/domain/history"
	"github.com/merchkit/alsobought/internal/domain/product"
)

// HistoryReader supplies purchase sequences. The engine treats it as an
// already-validated, read-only source.
type HistoryReader interface {
	// Owned returns a user's purchase sequence in chronological order
	// (oldest first). Unknown users yield an empty sequence, not an error.
	Owned(ctx context.Context, userID string) ([]string, error)
	// All returns every user's purchase sequence.
	All(ctx context.Context) (history.History, error)
	// Version returns a counter that increases on every history write.
	Version(ctx context.Context) (int64, error)
}

// CatalogReader supplies product records. Referential integrity with the
// purchase history is not required; dangling references are skipped.
type CatalogReader interface {
	All(ctx context.Context) (product.Catalog, error)
}
