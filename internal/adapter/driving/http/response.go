package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/application"
	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeRefusal writes the structured refusal body used by the credential
// disclosure endpoint: {"reason": "offline"|"maintenance"|"not_found"|"unauthenticated"}.
func writeRefusal(w http.ResponseWriter, status int, reason string) {
	writeJSON(w, status, refusalResponse{Reason: reason})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// refusalResponse is the structured refusal body for credential requests.
type refusalResponse struct {
	Reason string `json:"reason"`
}

// LoginRequest is the JSON body for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the signed session token and its expiry.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// ToolResponse is the JSON representation of a catalog entry.
type ToolResponse struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Category        string `json:"category"`
	Status          string `json:"status"`
	StatusLabel     string `json:"status_label"`
	StatusIndicator string `json:"status_indicator"`
	LogoURL         string `json:"logo_url"`
	BgColor         string `json:"bg_color"`
	TextColor       string `json:"text_color"`
	IsFavorite      bool   `json:"is_favorite"`
}

// ToolDetailResponse extends ToolResponse with the rendered description.
type ToolDetailResponse struct {
	ToolResponse
	DescriptionHTML string `json:"description_html"`
}

// CategoryResponse is one entry of the category table.
type CategoryResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ToggleResponse reports the new favorite state after a toggle.
type ToggleResponse struct {
	ToolID   int64 `json:"tool_id"`
	Favorite bool  `json:"favorite"`
}

// DisclosureResponse is the JSON representation of one audit event.
type DisclosureResponse struct {
	ID        string `json:"id"`
	ToolID    int64  `json:"tool_id"`
	Field     string `json:"field"`
	CreatedAt string `json:"created_at"`
}

// CreateToolRequest is the JSON body for the admin tool registration
// endpoint. ID may be zero to let the registry assign the next id.
// Credentials, when present, seeds the tool's bundle in the secret store.
type CreateToolRequest struct {
	ID          int64               `json:"id"`
	Title       string              `json:"title"`
	Category    string              `json:"category"`
	Status      string              `json:"status"`
	Description string              `json:"description"`
	LogoURL     string              `json:"logo_url"`
	BgColor     string              `json:"bg_color"`
	TextColor   string              `json:"text_color"`
	Credentials *CredentialsPayload `json:"credentials,omitempty"`
}

// CreateToolResponse echoes the id the registry assigned to a new tool.
type CreateToolResponse struct {
	ID int64 `json:"id"`
}

// CredentialsPayload is the plaintext bundle accepted from the admin surface.
type CredentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Cookie   string `json:"cookie"`
}

// CreateMemberRequest is the JSON body for the admin member provisioning
// endpoint. The password is hashed before it reaches storage.
type CreateMemberRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// CreateMemberResponse returns the assigned member id.
type CreateMemberResponse struct {
	ID string `json:"id"`
}

// ToolStatsResponse is the per-tool usage summary for the admin surface.
type ToolStatsResponse struct {
	ToolID          int64 `json:"tool_id"`
	DisclosureCount int64 `json:"disclosure_count"`
}

// SetStatusRequest is the JSON body for the admin status transition endpoint.
type SetStatusRequest struct {
	Status string `json:"status"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// toToolResponse converts a catalog entry to its JSON representation.
func toToolResponse(ct application.CatalogTool) ToolResponse {
	return ToolResponse{
		ID:              ct.Tool.ID,
		Title:           ct.Tool.Title,
		Category:        ct.Tool.Category,
		Status:          string(ct.Tool.Status),
		StatusLabel:     ct.Tool.Status.Label(),
		StatusIndicator: ct.Tool.Status.Indicator(),
		LogoURL:         ct.Tool.LogoURL,
		BgColor:         ct.Tool.BgColor,
		TextColor:       ct.Tool.TextColor,
		IsFavorite:      ct.IsFavorite,
	}
}

// toDisclosureResponse converts a domain DisclosureEvent to its JSON representation.
func toDisclosureResponse(e model.DisclosureEvent) DisclosureResponse {
	return DisclosureResponse{
		ID:        e.ID,
		ToolID:    e.ToolID,
		Field:     string(e.Field),
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
	}
}
