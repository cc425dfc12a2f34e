package driven

import (
	"context"
	"errors"

	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/model"
)

// ErrMemberNotFound indicates no member exists for the given email or id.
var ErrMemberNotFound = errors.New("member not found")

// MemberStore defines the driven port for portal account persistence.
// GetByEmail matches the login identifier case-insensitively.
type MemberStore interface {
	GetByEmail(ctx context.Context, email string) (*model.Member, error)
	GetByID(ctx context.Context, id string) (*model.Member, error)
	Add(ctx context.Context, member model.Member) error
}
