package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.FavoriteStore = (*FavoriteRepo)(nil)

// FavoriteRepo is the SQLite implementation of the FavoriteStore port
// interface. The (user_id, tool_id) primary key guarantees at most one edge
// per pair; Add on an existing edge is a no-op rather than an error so the
// store stays idempotent under retried writes.
type FavoriteRepo struct {
	db *DB
}

// NewFavoriteRepo creates a new FavoriteRepo backed by the given DB.
func NewFavoriteRepo(db *DB) *FavoriteRepo {
	return &FavoriteRepo{db: db}
}

// IsFavorite reports whether the (user, tool) edge exists.
func (r *FavoriteRepo) IsFavorite(ctx context.Context, userID string, toolID int64) (bool, error) {
	const query = `SELECT COUNT(1) FROM favorites WHERE user_id = ? AND tool_id = ?`

	var count int
	if err := r.db.Reader.QueryRowContext(ctx, query, userID, toolID).Scan(&count); err != nil {
		return false, fmt.Errorf("check favorite (%s, %d): %w", userID, toolID, err)
	}

	return count > 0, nil
}

// Add creates the (user, tool) edge if it does not already exist.
func (r *FavoriteRepo) Add(ctx context.Context, userID string, toolID int64) error {
	const query = `INSERT INTO favorites (user_id, tool_id, created_at) VALUES (?, ?, ?)`

	_, err := r.db.Writer.ExecContext(ctx, query, userID, toolID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("add favorite (%s, %d): %w", userID, toolID, err)
	}

	return nil
}

// Remove deletes the (user, tool) edge. Removing an absent edge is a no-op.
func (r *FavoriteRepo) Remove(ctx context.Context, userID string, toolID int64) error {
	const query = `DELETE FROM favorites WHERE user_id = ? AND tool_id = ?`

	if _, err := r.db.Writer.ExecContext(ctx, query, userID, toolID); err != nil {
		return fmt.Errorf("remove favorite (%s, %d): %w", userID, toolID, err)
	}

	return nil
}

// ListByUser returns the user's favorited tool ids in insertion order.
func (r *FavoriteRepo) ListByUser(ctx context.Context, userID string) ([]int64, error) {
	// rowid preserves insertion order even when created_at timestamps collide.
	const query = `SELECT tool_id FROM favorites WHERE user_id = ? ORDER BY rowid`

	rows, err := r.db.Reader.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites for %s: %w", userID, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorites: %w", err)
	}

	return ids, nil
}
