package application

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/port/driven"
)

// favoriteLockStripes is the size of the keyed mutex pool. Collisions only
// cost extra serialization, never correctness.
const favoriteLockStripes = 64

// FavoriteService implements the toggle semantics of the favorites relation.
// Toggles for the same (user, tool) pair are serialized through a striped
// mutex pool so that concurrent double-invocation cannot produce an
// inconsistent edge; toggles for distinct pairs proceed in parallel.
type FavoriteService struct {
	favorites driven.FavoriteStore
	locks     [favoriteLockStripes]sync.Mutex
}

// NewFavoriteService creates a FavoriteService over the given store.
func NewFavoriteService(favorites driven.FavoriteStore) *FavoriteService {
	return &FavoriteService{favorites: favorites}
}

// Toggle flips the favorite edge for (userID, toolID) and returns the new
// state. Two sequential toggles restore the original state. No check is made
// that the tool exists; favorites may reference tools that later leave the
// registry, and read paths reconcile.
func (s *FavoriteService) Toggle(ctx context.Context, userID string, toolID int64) (bool, error) {
	lock := s.lockFor(userID, toolID)
	lock.Lock()
	defer lock.Unlock()

	current, err := s.favorites.IsFavorite(ctx, userID, toolID)
	if err != nil {
		return false, fmt.Errorf("read favorite state: %w", err)
	}

	if current {
		if err := s.favorites.Remove(ctx, userID, toolID); err != nil {
			return false, fmt.Errorf("remove favorite: %w", err)
		}
		return false, nil
	}

	if err := s.favorites.Add(ctx, userID, toolID); err != nil {
		return false, fmt.Errorf("add favorite: %w", err)
	}
	return true, nil
}

// IsFavorite reports the current favorite state for (userID, toolID).
func (s *FavoriteService) IsFavorite(ctx context.Context, userID string, toolID int64) (bool, error) {
	return s.favorites.IsFavorite(ctx, userID, toolID)
}

func (s *FavoriteService) lockFor(userID string, toolID int64) *sync.Mutex {
	h := fnv.New32a()
	_, _ = fmt.Fprintf(h, "%s/%d", userID, toolID)
	return &s.locks[h.Sum32()%favoriteLockStripes]
}
