package driven

import (
	"context"

	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/model"
)

// DisclosureLog defines the driven port for the append-only disclosure audit
// trail. Append never mutates or deletes prior events; the vault is the
// single writer. ListByUser exists for the compliance read surface and
// returns events newest first.
type DisclosureLog interface {
	Append(ctx context.Context, event model.DisclosureEvent) error
	ListByUser(ctx context.Context, userID string) ([]model.DisclosureEvent, error)
	// CountByTool returns how many disclosure events exist for the tool.
	CountByTool(ctx context.Context, toolID int64) (int64, error)
}
