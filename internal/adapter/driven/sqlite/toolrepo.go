package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/model"
	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ToolStore = (*ToolRepo)(nil)

// ToolRepo is the SQLite implementation of the ToolStore port interface.
// Reads go through the reader pool; Add and SetStatus go through the single
// writer connection, which serializes operator writes per process.
type ToolRepo struct {
	db *DB
}

// NewToolRepo creates a new ToolRepo backed by the given DB.
func NewToolRepo(db *DB) *ToolRepo {
	return &ToolRepo{db: db}
}

// Get retrieves a tool by id. Returns driven.ErrToolNotFound for unknown ids.
func (r *ToolRepo) Get(ctx context.Context, id int64) (*model.Tool, error) {
	const query = `SELECT id, title, category, status, description, logo_url, bg_color, text_color, created_at
		FROM tools WHERE id = ?`

	tool, err := scanTool(r.db.Reader.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get tool %d: %w", id, driven.ErrToolNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get tool %d: %w", id, err)
	}

	return tool, nil
}

// List returns all tools in registration order (ascending id; ids are
// assigned monotonically at registration).
func (r *ToolRepo) List(ctx context.Context) ([]model.Tool, error) {
	const query = `SELECT id, title, category, status, description, logo_url, bg_color, text_color, created_at
		FROM tools ORDER BY id`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	defer rows.Close()

	var tools []model.Tool
	for rows.Next() {
		tool, err := scanTool(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tool: %w", err)
		}
		tools = append(tools, *tool)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tools: %w", err)
	}

	return tools, nil
}

// Add inserts a new tool and returns its id. A zero ID lets SQLite assign
// the next rowid, which keeps ids monotonic with registration order; the
// assigned id comes back via LastInsertId, exact because all writes go
// through the single writer connection. Returns driven.ErrToolAlreadyExists
// when the id is taken.
func (r *ToolRepo) Add(ctx context.Context, tool model.Tool) (int64, error) {
	const query = `INSERT INTO tools (id, title, category, status, description, logo_url, bg_color, text_color, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	createdAt := tool.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var id any
	if tool.ID != 0 {
		id = tool.ID
	}

	result, err := r.db.Writer.ExecContext(ctx, query,
		id, tool.Title, tool.Category, string(tool.Status),
		tool.Description, tool.LogoURL, tool.BgColor, tool.TextColor,
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return 0, fmt.Errorf("add tool %d: %w", tool.ID, driven.ErrToolAlreadyExists)
		}
		return 0, fmt.Errorf("add tool %q: %w", tool.Title, err)
	}

	assigned, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve id for tool %q: %w", tool.Title, err)
	}

	return assigned, nil
}

// SetStatus updates a tool's availability status. Returns
// driven.ErrToolNotFound if the id does not exist. The write goes through
// the single writer connection, so concurrent operator transitions for the
// same tool are last-write-wins and immediately visible to readers.
func (r *ToolRepo) SetStatus(ctx context.Context, id int64, status model.ToolStatus) error {
	const query = `UPDATE tools SET status = ? WHERE id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("set status for tool %d: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("set status for tool %d: %w", id, driven.ErrToolNotFound)
	}

	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTool(s scanner) (*model.Tool, error) {
	var tool model.Tool
	var status string
	var createdAt string

	err := s.Scan(&tool.ID, &tool.Title, &tool.Category, &status,
		&tool.Description, &tool.LogoURL, &tool.BgColor, &tool.TextColor, &createdAt)
	if err != nil {
		return nil, err
	}

	tool.Status, err = model.ParseToolStatus(status)
	if err != nil {
		return nil, err
	}

	tool.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}

	return &tool, nil
}

// parseTime tries multiple SQLite datetime formats.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05.000",
		time.RFC3339,
		time.RFC3339Nano,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}
