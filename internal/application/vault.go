package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/model"
	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/port/driven"
)

// VaultService is the access-control and audit layer in front of the secret
// store. It decides whether a disclosure is permitted (the tool's status,
// read fresh from the registry on every call) and records every permitted
// disclosure in the append-only log. Storage and encryption belong to the
// SecretStore adapter, never here.
type VaultService struct {
	tools   driven.ToolStore
	secrets driven.SecretStore
	log     driven.DisclosureLog
	timeout time.Duration
}

// NewVaultService creates a VaultService. timeout bounds each collaborator
// call inside Disclose; zero disables the bound.
func NewVaultService(tools driven.ToolStore, secrets driven.SecretStore, log driven.DisclosureLog, timeout time.Duration) *VaultService {
	return &VaultService{tools: tools, secrets: secrets, log: log, timeout: timeout}
}

// Disclose reveals the requested credential field(s) of a tool to a user.
//
// Preconditions: the tool exists (else driven.ErrToolNotFound) and its status
// is online (else *UnavailableError with the specific reason, never stale
// credentials). The status is not cached between calls; a tool that went
// offline a moment ago refuses immediately.
//
// A permitted disclosure appends exactly one DisclosureEvent before the
// payload is returned ("all" logs a single event, not four) and a refused
// one appends none. If the append itself fails, no payload is returned.
// Collaborator deadline expiry surfaces as ErrStoreTimeout, a retryable
// class distinct from the policy refusal.
func (s *VaultService) Disclose(ctx context.Context, userID string, toolID int64, field model.Field) (map[string]string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	tool, err := s.tools.Get(ctx, toolID)
	if err != nil {
		return nil, s.classify("get tool", err)
	}

	if tool.Status != model.StatusOnline {
		return nil, &UnavailableError{Reason: string(tool.Status)}
	}

	bundle, err := s.secrets.GetBundle(ctx, toolID)
	if err != nil {
		return nil, s.classify("get bundle", err)
	}

	event := model.DisclosureEvent{
		ID:        uuid.NewString(),
		UserID:    userID,
		ToolID:    toolID,
		Field:     field,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.log.Append(ctx, event); err != nil {
		// No payload without an audit record.
		return nil, s.classify("append disclosure event", err)
	}

	return bundle.Select(field), nil
}

// Disclosures returns the user's own disclosure events, newest first. This
// is the read surface consumed by compliance collaborators; the core itself
// only ever appends.
func (s *VaultService) Disclosures(ctx context.Context, userID string) ([]model.DisclosureEvent, error) {
	return s.log.ListByUser(ctx, userID)
}

// DisclosureCount reports how many disclosure events exist for the tool
// across all users. Operator surface only; the member API never exposes
// other users' activity.
func (s *VaultService) DisclosureCount(ctx context.Context, toolID int64) (int64, error) {
	return s.log.CountByTool(ctx, toolID)
}

// classify maps collaborator deadline expiry to ErrStoreTimeout and wraps
// everything else with the failing operation. Sentinels pass through for
// errors.Is at the handler boundary.
func (s *VaultService) classify(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, ErrStoreTimeout)
	}
	return fmt.Errorf("%s: %w", op, err)
}
