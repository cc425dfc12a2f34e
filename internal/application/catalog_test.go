package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/model"
	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/port/driven"
)

func catalogFixture() []model.Tool {
	return []model.Tool{
		{ID: 1, Title: "Midjourney", Category: "IA", Status: model.StatusOnline},
		{ID: 2, Title: "AdSpy", Category: "Espionagem", Status: model.StatusOnline},
		{ID: 3, Title: "Semrush", Category: "SEO / Análise", Status: model.StatusMaintenance},
		{ID: 4, Title: "Netflix", Category: "Streaming", Status: model.StatusOffline},
		// Tagged "Design" rather than "Design/Criação": "criação" contains
		// "ia" as a substring, which would drag these into the IA category.
		// The two-keyword mapping has its own fixture below.
		{ID: 5, Title: "Canva Pro", Category: "Design", Status: model.StatusOnline},
		{ID: 6, Title: "Freepik", Category: "Design", Status: model.StatusOnline},
		{ID: 7, Title: "ChatGPT Plus", Category: "IA", Status: model.StatusOnline},
		{ID: 8, Title: "Keyword Miner", Category: "Mineração", Status: model.StatusOnline},
		{ID: 9, Title: "Ubersuggest", Category: "SEO", Status: model.StatusOnline},
		{ID: 10, Title: "Prime Video", Category: "Streaming", Status: model.StatusOffline},
	}
}

func TestFilterTools_CategoryKeyword(t *testing.T) {
	got, err := FilterTools(catalogFixture(), "ia", "")
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(7), got[1].ID)
}

func TestFilterTools_TwoKeywordCategory(t *testing.T) {
	// "design" matches on either keyword, independent of which word the tag uses.
	tools := []model.Tool{
		{ID: 1, Title: "A", Category: "Design", Status: model.StatusOnline},
		{ID: 2, Title: "B", Category: "Criação de conteúdo", Status: model.StatusOnline},
		{ID: 3, Title: "C", Category: "SEO", Status: model.StatusOnline},
	}

	got, err := FilterTools(tools, "design", "")
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
}

func TestFilterTools_StatusCategories(t *testing.T) {
	offline, err := FilterTools(catalogFixture(), "offline", "")
	require.NoError(t, err)
	require.Len(t, offline, 2)
	for _, tool := range offline {
		assert.Equal(t, model.StatusOffline, tool.Status)
	}

	maintenance, err := FilterTools(catalogFixture(), "maintenance", "")
	require.NoError(t, err)
	require.Len(t, maintenance, 1)
	assert.Equal(t, int64(3), maintenance[0].ID)
}

func TestFilterTools_NewTakesEightNewestDescending(t *testing.T) {
	got, err := FilterTools(catalogFixture(), "new", "")
	require.NoError(t, err)

	require.Len(t, got, model.NewToolsLimit)
	for i, tool := range got {
		assert.Equal(t, int64(10-i), tool.ID)
	}
}

func TestFilterTools_NewWithFewerThanLimit(t *testing.T) {
	tools := catalogFixture()[:3]

	got, err := FilterTools(tools, "new", "")
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, int64(1), got[2].ID)
}

func TestFilterTools_NewDoesNotMutateInput(t *testing.T) {
	tools := catalogFixture()

	_, err := FilterTools(tools, "new", "")
	require.NoError(t, err)

	assert.Equal(t, int64(1), tools[0].ID, "input order must be preserved")
}

func TestFilterTools_SearchNarrowsWithinCategory(t *testing.T) {
	base, err := FilterTools(catalogFixture(), "design", "")
	require.NoError(t, err)

	narrowed, err := FilterTools(catalogFixture(), "design", "canva")
	require.NoError(t, err)

	require.Len(t, narrowed, 1)
	assert.Equal(t, "Canva Pro", narrowed[0].Title)

	// Strict narrowing: every narrowed result is in the unsearched result.
	for _, n := range narrowed {
		found := false
		for _, b := range base {
			if b.ID == n.ID {
				found = true
			}
		}
		assert.True(t, found)
	}
}

func TestFilterTools_SearchMatchesCategoryTag(t *testing.T) {
	got, err := FilterTools(catalogFixture(), "", "streaming")
	require.NoError(t, err)

	require.Len(t, got, 2)
}

func TestFilterTools_WhitespaceSearchIsNoOp(t *testing.T) {
	all, err := FilterTools(catalogFixture(), "", "")
	require.NoError(t, err)

	got, err := FilterTools(catalogFixture(), "", "   ")
	require.NoError(t, err)

	assert.Equal(t, all, got)
}

func TestFilterTools_UnknownCategory(t *testing.T) {
	_, err := FilterTools(catalogFixture(), "gaming", "")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestFilterTools_SpecExampleScenario(t *testing.T) {
	tools := []model.Tool{
		{ID: 1, Title: "A", Category: "IA", Status: model.StatusOnline},
		{ID: 2, Title: "B", Category: "SEO", Status: model.StatusOffline},
	}

	got, err := FilterTools(tools, "offline", "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestCatalogQuery_MarksFavorites(t *testing.T) {
	tools := &mockToolStore{tools: catalogFixture()}
	favs := &mockFavoriteStore{}
	require.NoError(t, favs.Add(context.Background(), "u1", 5))

	svc := NewCatalogService(tools, favs)

	got, err := svc.Query(context.Background(), "u1", "design", "")
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.True(t, got[0].IsFavorite)
	assert.False(t, got[1].IsFavorite)
}

func TestCatalogFavorites_DropsDanglingIDs(t *testing.T) {
	tools := &mockToolStore{tools: catalogFixture()[:2]}
	favs := &mockFavoriteStore{}
	require.NoError(t, favs.Add(context.Background(), "u1", 2))
	require.NoError(t, favs.Add(context.Background(), "u1", 99)) // no such tool

	svc := NewCatalogService(tools, favs)

	got, err := svc.Favorites(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].Tool.ID)
	assert.True(t, got[0].IsFavorite)
}

func TestCatalogGet_NotFound(t *testing.T) {
	svc := NewCatalogService(&mockToolStore{}, &mockFavoriteStore{})

	_, err := svc.Get(context.Background(), "u1", 42)
	assert.ErrorIs(t, err, driven.ErrToolNotFound)
}
