package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/model"
	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/port/driven"
)

func TestToolRepo_AddAndGet(t *testing.T) {
	repo := NewToolRepo(setupTestDB(t))
	ctx := context.Background()

	tool := model.Tool{
		ID:        1,
		Title:     "Midjourney",
		Category:  "IA",
		Status:    model.StatusOnline,
		LogoURL:   "https://cdn.example.com/mj.png",
		BgColor:   "#1E1E1E",
		TextColor: "white",
	}
	id, err := repo.Add(ctx, tool)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, getErr := repo.Get(ctx, 1)
	require.NoError(t, getErr)
	assert.Equal(t, "Midjourney", got.Title)
	assert.Equal(t, model.StatusOnline, got.Status)
	assert.Equal(t, "#1E1E1E", got.BgColor)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestToolRepo_GetMissing(t *testing.T) {
	repo := NewToolRepo(setupTestDB(t))

	_, err := repo.Get(context.Background(), 42)
	assert.ErrorIs(t, err, driven.ErrToolNotFound)
}

func TestToolRepo_AddDuplicateID(t *testing.T) {
	repo := NewToolRepo(setupTestDB(t))
	ctx := context.Background()

	_, err := repo.Add(ctx, model.Tool{ID: 1, Title: "A", Category: "IA", Status: model.StatusOnline})
	require.NoError(t, err)

	_, err = repo.Add(ctx, model.Tool{ID: 1, Title: "B", Category: "SEO", Status: model.StatusOnline})
	assert.ErrorIs(t, err, driven.ErrToolAlreadyExists)
}

func TestToolRepo_ZeroIDAssignsNext(t *testing.T) {
	repo := NewToolRepo(setupTestDB(t))
	ctx := context.Background()

	_, err := repo.Add(ctx, model.Tool{ID: 5, Title: "A", Category: "IA", Status: model.StatusOnline})
	require.NoError(t, err)

	assigned, err := repo.Add(ctx, model.Tool{Title: "B", Category: "SEO", Status: model.StatusOnline})
	require.NoError(t, err)
	assert.Equal(t, int64(6), assigned, "auto-assigned id continues past the highest")

	tools, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tools, 2)
	assert.Equal(t, int64(6), tools[1].ID)
}

func TestToolRepo_ListRegistrationOrder(t *testing.T) {
	repo := NewToolRepo(setupTestDB(t))
	ctx := context.Background()

	for _, tool := range []model.Tool{
		{ID: 3, Title: "C", Category: "SEO", Status: model.StatusOnline},
		{ID: 1, Title: "A", Category: "IA", Status: model.StatusOnline},
		{ID: 2, Title: "B", Category: "Streaming", Status: model.StatusOffline},
	} {
		_, err := repo.Add(ctx, tool)
		require.NoError(t, err)
	}

	tools, err := repo.List(ctx)
	require.NoError(t, err)

	require.Len(t, tools, 3)
	assert.Equal(t, int64(1), tools[0].ID)
	assert.Equal(t, int64(2), tools[1].ID)
	assert.Equal(t, int64(3), tools[2].ID)
}

func TestToolRepo_SetStatus(t *testing.T) {
	repo := NewToolRepo(setupTestDB(t))
	ctx := context.Background()

	_, err := repo.Add(ctx, model.Tool{ID: 1, Title: "A", Category: "IA", Status: model.StatusOnline})
	require.NoError(t, err)

	require.NoError(t, repo.SetStatus(ctx, 1, model.StatusMaintenance))

	got, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.StatusMaintenance, got.Status)
}

func TestToolRepo_SetStatusMissing(t *testing.T) {
	repo := NewToolRepo(setupTestDB(t))

	err := repo.SetStatus(context.Background(), 42, model.StatusOffline)
	assert.ErrorIs(t, err, driven.ErrToolNotFound)
}
