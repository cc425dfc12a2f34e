package application

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across application services. Together with the
// driven-port sentinels they form the full error taxonomy of the core:
// not-found and unavailable are terminal and never retried; the timeout
// class is the only one callers may reasonably retry.
var (
	// ErrUnauthenticated indicates no resolved user on the request. It is
	// checked before any vault or favorites logic runs.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidCredentials indicates a failed sign-in attempt. Deliberately
	// indistinguishable between unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnknownCategory indicates a category id outside the declarative
	// category table.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrStoreTimeout indicates a driven collaborator did not answer within
	// the configured deadline. Distinct from a policy refusal so callers can
	// tell "try later" from "not entitled".
	ErrStoreTimeout = errors.New("store timed out")
)

// UnavailableError is the policy refusal returned when a tool's status
// forbids credential disclosure. Reason is "offline" or "maintenance".
type UnavailableError struct {
	Reason string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("tool unavailable: %s", e.Reason)
}
