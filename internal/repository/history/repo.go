package history

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/merchkit/alsobought/internal/db"
	"github.com/merchkit/alsobought/internal/domain"
	domhist "github.com/merchkit/alsobought/internal/domain/history"
)

// store is the consumer interface for purchase storage (ISP).
type store interface {
	RPush(ctx context.Context, key string, values []string) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	IncrBy(ctx context.Context, key string, val int64) error
}

// Repo implements usecase/purchases.Repository and the engine's
// history reads. Each user's purchases live in a Redis list in
// chronological order; a shared counter tracks every write so the
// engine knows when its cached graph is stale.
type Repo struct {
	store store
}

// New creates a history repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Append adds purchases to the end of a user's list and bumps the
// history version. The two writes are not atomic; a version bump
// without the push only causes a spurious graph rebuild, the reverse
// would serve stale recommendations, so the push goes first.
func (r *Repo) Append(ctx context.Context, userID string, productIDs []string) error {
	if err := r.store.RPush(ctx, historyKey(userID), productIDs); err != nil {
		return fmt.Errorf("rpush history %s: %w", userID, err)
	}
	if err := r.store.IncrBy(ctx, versionKey(), 1); err != nil {
		return fmt.Errorf("bump history version: %w", err)
	}
	return nil
}

// Owned returns a user's purchases in chronological order. Unknown
// users yield an empty slice.
func (r *Repo) Owned(ctx context.Context, userID string) ([]string, error) {
	values, err := r.store.LRange(ctx, historyKey(userID), 0, -1)
	if err != nil {
		return nil, fmt.Errorf("lrange history %s: %w", userID, err)
	}
	return values, nil
}

// All returns every user's purchase sequence.
func (r *Repo) All(ctx context.Context) (domhist.History, error) {
	keys, err := r.store.Scan(ctx, historyKey("*"))
	if err != nil {
		return nil, fmt.Errorf("scan histories: %w", err)
	}

	h := make(domhist.History, len(keys))
	for _, key := range keys {
		values, err := r.store.LRange(ctx, key, 0, -1)
		if err != nil {
			return nil, fmt.Errorf("lrange %s: %w", key, err)
		}
		// Lists can vanish between SCAN and LRANGE.
		if len(values) == 0 {
			continue
		}
		h[userFromKey(key)] = values
	}
	return h, nil
}

// Version returns the history write counter. A store that has never
// seen a purchase reports version 0.
func (r *Repo) Version(ctx context.Context) (int64, error) {
	data, err := r.store.Get(ctx, versionKey())
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("get history version: %w", err)
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse history version %q: %w", data, err)
	}
	return v, nil
}

// Redis key patterns: alsobought:history:{user}, alsobought:history_version

func historyKey(userID string) string {
	return fmt.Sprintf("%shistory:%s", domain.KeyPrefix, userID)
}

func versionKey() string {
	return domain.KeyPrefix + "history_version"
}

func userFromKey(key string) string {
	return strings.TrimPrefix(key, historyKey(""))
}
