package purchases

import (
	"context"
	"fmt"

	"github.com/merchkit/alsobought/internal/domain"
)

const (
	maxBatch = 100
	maxIDLen = 128
)

// Service records and reads purchase events. Product ids are not
// checked against the catalog: the engine tolerates dangling references
// by design, so partial or stale catalogs never block ingestion.
type Service struct {
	repo Repository
}

// New creates a purchases service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record appends purchase events for a user.
func (s *Service) Record(ctx context.Context, userID string, productIDs []string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidHistory)
	}
	if len(productIDs) == 0 || len(productIDs) > maxBatch {
		return fmt.Errorf("%w: product count must be between 1 and %d", domain.ErrInvalidHistory, maxBatch)
	}
	for _, id := range productIDs {
		if id == "" || len(id) > maxIDLen {
			return fmt.Errorf("%w: bad product id %q", domain.ErrInvalidHistory, id)
		}
	}

	if err := s.repo.Append(ctx, userID, productIDs); err != nil {
		return fmt.Errorf("append purchases for %s: %w", userID, err)
	}
	return nil
}

// Owned returns a user's purchase sequence in chronological order.
func (s *Service) Owned(ctx context.Context, userID string) ([]string, error) {
	owned, err := s.repo.Owned(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("read purchases for %s: %w", userID, err)
	}
	return owned, nil
}
