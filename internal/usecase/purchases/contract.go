package purchases

import "context"

// Repository defines the storage contract for purchase histories.
type Repository interface {
	// Append adds purchase events to the end of a user's sequence and
	// bumps the history version.
	Append(ctx context.Context, userID string, productIDs []string) error
	// Owned returns a user's purchase sequence in chronological order.
	// Unknown users yield an empty sequence.
	Owned(ctx context.Context, userID string) ([]string, error)
}
