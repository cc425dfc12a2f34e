// Package driven defines secondary port interfaces for external adapters.
package driven

import (
	"context"
	"errors"

	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/model"
)

// Sentinel errors returned by ToolStore implementations.
var (
	// ErrToolNotFound indicates the requested tool does not exist in the registry.
	// It is terminal for the request; callers must not retry.
	ErrToolNotFound = errors.New("tool not found")

	// ErrToolAlreadyExists indicates a tool with the same id already exists.
	ErrToolAlreadyExists = errors.New("tool already exists")
)

// ToolStore defines the driven port for the tool registry. Reads are
// coordination-free; Add and SetStatus are operator actions serialized by
// the adapter. Get returns ErrToolNotFound for unknown ids.
type ToolStore interface {
	Get(ctx context.Context, id int64) (*model.Tool, error)
	// List returns all tools in registration order.
	List(ctx context.Context) ([]model.Tool, error)
	// Add inserts a tool and returns its id. A zero tool.ID lets the store
	// assign the next id; the returned value is the authoritative id either
	// way, so callers never have to re-read the registry to learn it.
	Add(ctx context.Context, tool model.Tool) (int64, error)
	// SetStatus updates a tool's availability. Returns ErrToolNotFound if the
	// id does not exist. The new value is visible to subsequent reads
	// immediately within the process.
	SetStatus(ctx context.Context, id int64, status model.ToolStatus) error
}
