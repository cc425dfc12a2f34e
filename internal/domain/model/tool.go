package model

import (
	"fmt"
	"time"
)

// ToolStatus is the closed three-state availability tag for a tool.
// It drives both catalog filtering and the credential disclosure guard,
// so the two can never disagree about what a status means.
type ToolStatus string

const (
	StatusOnline      ToolStatus = "online"
	StatusMaintenance ToolStatus = "maintenance"
	StatusOffline     ToolStatus = "offline"
)

// ParseToolStatus validates a raw status string against the closed set.
func ParseToolStatus(raw string) (ToolStatus, error) {
	switch ToolStatus(raw) {
	case StatusOnline, StatusMaintenance, StatusOffline:
		return ToolStatus(raw), nil
	}
	return "", fmt.Errorf("unknown tool status %q", raw)
}

// Label returns the member-facing status label. The mapping is exhaustive;
// an unknown status falls back to "Desconhecido" rather than panicking.
func (s ToolStatus) Label() string {
	switch s {
	case StatusOnline:
		return "Ativa"
	case StatusMaintenance:
		return "Em Manutenção"
	case StatusOffline:
		return "Offline"
	}
	return "Desconhecido"
}

// Indicator returns the color hint the presentation layer uses for the
// status dot next to the label.
func (s ToolStatus) Indicator() string {
	switch s {
	case StatusOnline:
		return "green"
	case StatusMaintenance:
		return "yellow"
	case StatusOffline:
		return "red"
	}
	return "gray"
}

// Tool is a catalog entry. ID is unique and immutable; higher IDs were
// registered more recently. Category is a free-form tag string matched
// case-insensitively by the catalog query engine. LogoURL, BgColor and
// TextColor are presentation hints the core passes through untouched.
type Tool struct {
	ID          int64
	Title       string
	Category    string
	Status      ToolStatus
	Description string // Markdown; rendered and sanitized at the API boundary.
	LogoURL     string
	BgColor     string
	TextColor   string
	CreatedAt   time.Time
}
