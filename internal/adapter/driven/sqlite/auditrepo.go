package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/model"
	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.DisclosureLog = (*AuditRepo)(nil)

// AuditRepo is the SQLite implementation of the DisclosureLog port
// interface. The table is append-only: no UPDATE or DELETE statement exists
// in this file, and none may be added.
type AuditRepo struct {
	db *DB
}

// NewAuditRepo creates a new AuditRepo backed by the given DB.
func NewAuditRepo(db *DB) *AuditRepo {
	return &AuditRepo{db: db}
}

// Append writes one disclosure event.
func (r *AuditRepo) Append(ctx context.Context, event model.DisclosureEvent) error {
	const query = `INSERT INTO disclosure_events (id, user_id, tool_id, field, created_at)
		VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.Writer.ExecContext(ctx, query,
		event.ID, event.UserID, event.ToolID, string(event.Field),
		event.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("append disclosure event %s: %w", event.ID, err)
	}

	return nil
}

// ListByUser returns the user's disclosure events, newest first.
func (r *AuditRepo) ListByUser(ctx context.Context, userID string) ([]model.DisclosureEvent, error) {
	// rowid DESC is append order reversed, which is newest first regardless
	// of timestamp string formatting.
	const query = `SELECT id, user_id, tool_id, field, created_at
		FROM disclosure_events WHERE user_id = ? ORDER BY rowid DESC`

	rows, err := r.db.Reader.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list disclosure events for %s: %w", userID, err)
	}
	defer rows.Close()

	var events []model.DisclosureEvent
	for rows.Next() {
		var event model.DisclosureEvent
		var field, createdAt string

		if err := rows.Scan(&event.ID, &event.UserID, &event.ToolID, &field, &createdAt); err != nil {
			return nil, fmt.Errorf("scan disclosure event: %w", err)
		}

		event.Field, err = model.ParseField(field)
		if err != nil {
			return nil, err
		}

		event.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}

		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate disclosure events: %w", err)
	}

	return events, nil
}

// CountByTool returns how many disclosure events exist for the tool.
func (r *AuditRepo) CountByTool(ctx context.Context, toolID int64) (int64, error) {
	const query = `SELECT COUNT(1) FROM disclosure_events WHERE tool_id = ?`

	var count int64
	if err := r.db.Reader.QueryRowContext(ctx, query, toolID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count disclosure events for tool %d: %w", toolID, err)
	}

	return count, nil
}
