package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/model"
	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/port/driven"
)

func TestSecretRepo_PutAndGetBundle(t *testing.T) {
	repo := NewSecretRepo(setupTestDB(t), testEncryptionKey())
	ctx := context.Background()

	bundle := model.CredentialBundle{
		ToolID:   1,
		Email:    "usuario@cyrus.com.br",
		Password: "senha_segura_123",
		Cookie:   "session_token=abc123xyz456",
	}
	require.NoError(t, repo.PutBundle(ctx, bundle))

	got, err := repo.GetBundle(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, bundle, *got)
}

func TestSecretRepo_ValuesAreEncryptedAtRest(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSecretRepo(db, testEncryptionKey())
	ctx := context.Background()

	require.NoError(t, repo.PutBundle(ctx, model.CredentialBundle{
		ToolID: 1, Email: "usuario@cyrus.com.br", Password: "pw", Cookie: "c",
	}))

	var stored string
	err := db.Reader.QueryRowContext(ctx, `SELECT email FROM credential_bundles WHERE tool_id = 1`).Scan(&stored)
	require.NoError(t, err)
	assert.NotEqual(t, "usuario@cyrus.com.br", stored)
	assert.NotContains(t, stored, "@")
}

func TestSecretRepo_PutReplaces(t *testing.T) {
	repo := NewSecretRepo(setupTestDB(t), testEncryptionKey())
	ctx := context.Background()

	require.NoError(t, repo.PutBundle(ctx, model.CredentialBundle{ToolID: 1, Email: "old@x", Password: "a", Cookie: "b"}))
	require.NoError(t, repo.PutBundle(ctx, model.CredentialBundle{ToolID: 1, Email: "new@x", Password: "a", Cookie: "b"}))

	got, err := repo.GetBundle(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "new@x", got.Email)
}

func TestSecretRepo_GetMissing(t *testing.T) {
	repo := NewSecretRepo(setupTestDB(t), testEncryptionKey())

	_, err := repo.GetBundle(context.Background(), 42)
	assert.ErrorIs(t, err, driven.ErrBundleNotFound)
}

func TestSecretRepo_NoKeyConfigured(t *testing.T) {
	repo := NewSecretRepo(setupTestDB(t), nil)
	ctx := context.Background()

	_, err := repo.GetBundle(ctx, 1)
	assert.ErrorIs(t, err, driven.ErrEncryptionKeyNotSet)

	err = repo.PutBundle(ctx, model.CredentialBundle{ToolID: 1})
	assert.ErrorIs(t, err, driven.ErrEncryptionKeyNotSet)
}
