package model

import "time"

// DisclosureEvent is one append-only audit record: who revealed which
// credential field of which tool, and when. Events are immutable once
// written; the vault is the only writer. ID is a UUID assigned by the vault
// at append time.
type DisclosureEvent struct {
	ID        string
	UserID    string
	ToolID    int64
	Field     Field
	CreatedAt time.Time
}
