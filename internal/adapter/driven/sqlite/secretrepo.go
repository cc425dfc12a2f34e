package sqlite

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/model"
	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SecretStore = (*SecretRepo)(nil)

// SecretRepo is the SQLite implementation of the SecretStore port interface.
// Each bundle field is encrypted independently with AES-256-GCM before write
// and decrypted after read; plaintext never touches the table.
type SecretRepo struct {
	db  *DB
	key []byte // 32-byte AES-256 key; nil when encryption is disabled.
}

// NewSecretRepo creates a new SecretRepo. key must be 32 bytes for
// AES-256-GCM, or nil to disable the secret store (all operations will
// return driven.ErrEncryptionKeyNotSet).
func NewSecretRepo(db *DB, key []byte) *SecretRepo {
	return &SecretRepo{db: db, key: key}
}

// GetBundle retrieves and decrypts the credential bundle for the tool.
// Returns driven.ErrBundleNotFound if none is stored.
func (r *SecretRepo) GetBundle(ctx context.Context, toolID int64) (*model.CredentialBundle, error) {
	if r.key == nil {
		return nil, driven.ErrEncryptionKeyNotSet
	}

	const query = `SELECT email, password, cookie FROM credential_bundles WHERE tool_id = ?`

	var email, password, cookie string
	err := r.db.Reader.QueryRowContext(ctx, query, toolID).Scan(&email, &password, &cookie)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get bundle for tool %d: %w", toolID, driven.ErrBundleNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get bundle for tool %d: %w", toolID, err)
	}

	bundle := model.CredentialBundle{ToolID: toolID}
	if bundle.Email, err = r.decrypt(email); err != nil {
		return nil, fmt.Errorf("decrypt email for tool %d: %w", toolID, err)
	}
	if bundle.Password, err = r.decrypt(password); err != nil {
		return nil, fmt.Errorf("decrypt password for tool %d: %w", toolID, err)
	}
	if bundle.Cookie, err = r.decrypt(cookie); err != nil {
		return nil, fmt.Errorf("decrypt cookie for tool %d: %w", toolID, err)
	}

	return &bundle, nil
}

// PutBundle encrypts and stores or replaces the bundle for bundle.ToolID.
func (r *SecretRepo) PutBundle(ctx context.Context, bundle model.CredentialBundle) error {
	email, err := r.encrypt(bundle.Email)
	if err != nil {
		return err
	}
	password, err := r.encrypt(bundle.Password)
	if err != nil {
		return err
	}
	cookie, err := r.encrypt(bundle.Cookie)
	if err != nil {
		return err
	}

	const query = `INSERT OR REPLACE INTO credential_bundles (tool_id, email, password, cookie, updated_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err = r.db.Writer.ExecContext(ctx, query,
		bundle.ToolID, email, password, cookie, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("put bundle for tool %d: %w", bundle.ToolID, err)
	}

	return nil
}

// encrypt encrypts plaintext using AES-256-GCM and returns a base64-encoded
// string containing the nonce (12 bytes) prepended to the ciphertext.
func (r *SecretRepo) encrypt(plaintext string) (string, error) {
	if r.key == nil {
		return "", driven.ErrEncryptionKeyNotSet
	}

	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	// Seal appends the ciphertext to nonce, producing: nonce || ciphertext || tag.
	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt decrypts a base64-encoded AES-256-GCM ciphertext.
func (r *SecretRepo) decrypt(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("base64 decode: %w", err)
	}

	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("gcm.Open: %w", err)
	}

	return string(plaintext), nil
}
