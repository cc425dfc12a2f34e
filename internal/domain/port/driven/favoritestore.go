package driven

import "context"

// FavoriteStore defines the driven port for the per-user favorites relation.
// The store holds at most one edge per (user, tool) pair and performs no
// existence check against the tool registry; dangling edges are filtered by
// readers. Serialization of concurrent toggles for the same pair is the
// application layer's responsibility, not the store's.
type FavoriteStore interface {
	IsFavorite(ctx context.Context, userID string, toolID int64) (bool, error)
	Add(ctx context.Context, userID string, toolID int64) error
	Remove(ctx context.Context, userID string, toolID int64) error
	// ListByUser returns the favorited tool ids in insertion order.
	ListByUser(ctx context.Context, userID string) ([]int64, error)
}
