// Package history holds purchase-history types shared by the engine and
// its storage sources.
package history

// History maps a user id to that user's purchase sequence in
// chronological order (oldest purchase first).
type History map[string][]string

// Owned returns the purchase sequence for a user. Unknown users yield
// nil, which downstream stages treat as an empty sequence.
func (h History) Owned(userID string) []string {
	return h[userID]
}

// Dedupe collapses repeat purchases to one occurrence per product,
// first occurrence wins, order preserved.
func Dedupe(products []string) []string {
	if len(products) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0, len(products))
	for _, id := range products {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Reverse returns a reversed copy of the sequence. The service stores
// purchases oldest-first but the scorer weights index 0 heaviest, so
// sequences are reversed to most-recent-first before scoring.
func Reverse(products []string) []string {
	if len(products) == 0 {
		return nil
	}
	out := make([]string, len(products))
	for i, id := range products {
		out[len(products)-1-i] = id
	}
	return out
}
