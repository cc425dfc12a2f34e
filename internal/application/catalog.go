package application

import (
	"context"
	"sort"
	"strings"

	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/model"
	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/port/driven"
)

// CatalogTool pairs a tool with the caller's favorite state for list output.
type CatalogTool struct {
	Tool       model.Tool
	IsFavorite bool
}

// CatalogService answers catalog queries over the tool registry and
// cross-references the caller's favorites. It holds no state of its own;
// every query reads the registry fresh.
type CatalogService struct {
	tools     driven.ToolStore
	favorites driven.FavoriteStore
}

// NewCatalogService creates a CatalogService over the given stores.
func NewCatalogService(tools driven.ToolStore, favorites driven.FavoriteStore) *CatalogService {
	return &CatalogService{tools: tools, favorites: favorites}
}

// FilterTools applies the two-stage catalog filter: category first, then
// free-text search. Both stages are total and order-preserving, except the
// synthetic "new" category, which selects the NewToolsLimit highest-ID tools
// sorted descending by id. An empty categoryID applies no category
// restriction; an unrecognized one is ErrUnknownCategory. A blank or
// whitespace-only search is a no-op.
//
// The function is deterministic and never mutates its input slice.
func FilterTools(tools []model.Tool, categoryID, search string) ([]model.Tool, error) {
	result := tools

	if categoryID != "" {
		cat, ok := model.CategoryByID(categoryID)
		if !ok {
			return nil, ErrUnknownCategory
		}

		if cat.Synthetic {
			result = newestTools(tools)
		} else {
			filtered := make([]model.Tool, 0, len(result))
			for _, t := range result {
				if cat.Matches(t) {
					filtered = append(filtered, t)
				}
			}
			result = filtered
		}
	}

	query := strings.ToLower(strings.TrimSpace(search))
	if query != "" {
		filtered := make([]model.Tool, 0, len(result))
		for _, t := range result {
			if strings.Contains(strings.ToLower(t.Title), query) ||
				strings.Contains(strings.ToLower(t.Category), query) {
				filtered = append(filtered, t)
			}
		}
		result = filtered
	}

	return result, nil
}

// newestTools returns the NewToolsLimit tools with the highest ids, sorted
// descending. IDs are unique, so no tie-break is needed.
func newestTools(tools []model.Tool) []model.Tool {
	sorted := make([]model.Tool, len(tools))
	copy(sorted, tools)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID > sorted[j].ID })

	if len(sorted) > model.NewToolsLimit {
		sorted = sorted[:model.NewToolsLimit]
	}
	return sorted
}

// Query runs the catalog filter against the registry and marks each result
// with the caller's favorite state.
//
// Caller contract: at the UI level a category change resets the search text
// and vice versa; the engine itself is stateless and does not enforce this.
func (s *CatalogService) Query(ctx context.Context, userID, categoryID, search string) ([]CatalogTool, error) {
	tools, err := s.tools.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered, err := FilterTools(tools, categoryID, search)
	if err != nil {
		return nil, err
	}

	return s.markFavorites(ctx, userID, filtered)
}

// Get returns a single tool with the caller's favorite state.
// Returns driven.ErrToolNotFound for unknown ids.
func (s *CatalogService) Get(ctx context.Context, userID string, toolID int64) (*CatalogTool, error) {
	tool, err := s.tools.Get(ctx, toolID)
	if err != nil {
		return nil, err
	}

	fav, err := s.favorites.IsFavorite(ctx, userID, toolID)
	if err != nil {
		return nil, err
	}

	return &CatalogTool{Tool: *tool, IsFavorite: fav}, nil
}

// Favorites returns the caller's favorited tools in insertion order.
// Favorite ids with no matching registry entry are an expected inconsistency
// (favorites may outlive tools) and are silently dropped, not an error.
func (s *CatalogService) Favorites(ctx context.Context, userID string) ([]CatalogTool, error) {
	ids, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	tools, err := s.tools.List(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]model.Tool, len(tools))
	for _, t := range tools {
		byID[t.ID] = t
	}

	result := make([]CatalogTool, 0, len(ids))
	for _, id := range ids {
		tool, ok := byID[id]
		if !ok {
			continue // Dangling favorite; tool left the registry.
		}
		result = append(result, CatalogTool{Tool: tool, IsFavorite: true})
	}
	return result, nil
}

func (s *CatalogService) markFavorites(ctx context.Context, userID string, tools []model.Tool) ([]CatalogTool, error) {
	favIDs, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	favSet := make(map[int64]struct{}, len(favIDs))
	for _, id := range favIDs {
		favSet[id] = struct{}{}
	}

	result := make([]CatalogTool, 0, len(tools))
	for _, t := range tools {
		_, fav := favSet[t.ID]
		result = append(result, CatalogTool{Tool: t, IsFavorite: fav})
	}
	return result, nil
}
