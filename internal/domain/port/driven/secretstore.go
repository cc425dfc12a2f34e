package driven

import (
	"context"
	"errors"

	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/model"
)

// Sentinel errors returned by SecretStore implementations.
var (
	// ErrEncryptionKeyNotSet is returned when CYRUS_SECRET_KEY has not been
	// configured and the adapter cannot encrypt or decrypt bundle fields.
	ErrEncryptionKeyNotSet = errors.New("encryption key not configured: set CYRUS_SECRET_KEY")

	// ErrBundleNotFound indicates no credential bundle is stored for the tool.
	ErrBundleNotFound = errors.New("credential bundle not found")
)

// SecretStore defines the driven port for at-rest credential bundle storage.
// The adapter owns encryption/decryption; this interface operates on
// plaintext values at the domain boundary. The vault in front of it owns
// policy (status gating and audit), never storage.
type SecretStore interface {
	// GetBundle retrieves the decrypted bundle for the tool.
	// Returns ErrBundleNotFound if none is stored.
	GetBundle(ctx context.Context, toolID int64) (*model.CredentialBundle, error)

	// PutBundle stores or replaces the bundle for bundle.ToolID.
	PutBundle(ctx context.Context, bundle model.CredentialBundle) error
}
