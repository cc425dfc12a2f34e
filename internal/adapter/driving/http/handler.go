package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/application"
	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/model"
	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/port/driven"
)

// Handler is the HTTP driving adapter that serves the member REST API.
type Handler struct {
	catalog    *application.CatalogService
	favorites  *application.FavoriteService
	vault      *application.VaultService
	auth       *application.AuthService
	tools      driven.ToolStore
	secrets    driven.SecretStore
	adminToken string
	logger     *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	catalog *application.CatalogService,
	favorites *application.FavoriteService,
	vault *application.VaultService,
	auth *application.AuthService,
	tools driven.ToolStore,
	secrets driven.SecretStore,
	adminToken string,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		catalog:    catalog,
		favorites:  favorites,
		vault:      vault,
		auth:       auth,
		tools:      tools,
		secrets:    secrets,
		adminToken: adminToken,
		logger:     logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/auth/login", h.Login)
	mux.HandleFunc("GET /api/v1/tools", h.requireAuth(h.ListTools))
	mux.HandleFunc("GET /api/v1/tools/{id}", h.requireAuth(h.GetTool))
	mux.HandleFunc("GET /api/v1/categories", h.requireAuth(h.ListCategories))
	mux.HandleFunc("GET /api/v1/favorites", h.requireAuth(h.ListFavorites))
	mux.HandleFunc("POST /api/v1/favorites/{toolId}/toggle", h.requireAuth(h.ToggleFavorite))
	mux.HandleFunc("POST /api/v1/tools/{toolId}/credentials/{field}", h.requireAuth(h.DiscloseCredential))
	mux.HandleFunc("GET /api/v1/disclosures", h.requireAuth(h.ListDisclosures))
	mux.HandleFunc("POST /api/v1/admin/tools", h.requireAdmin(h.CreateTool))
	mux.HandleFunc("PUT /api/v1/admin/tools/{id}/status", h.requireAdmin(h.SetToolStatus))
	mux.HandleFunc("GET /api/v1/admin/tools/{id}/stats", h.requireAdmin(h.ToolStats))
	mux.HandleFunc("POST /api/v1/admin/members", h.requireAdmin(h.CreateMember))
	mux.HandleFunc("GET /api/v1/health", h.Health)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// Login exchanges an email/password pair for a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, expiresAt, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if errors.Is(err, application.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		h.logger.Error("sign-in failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	})
}

// ListTools returns the catalog filtered by category and search text.
//
// Caller contract: when the member switches category the client clears the
// search box (and vice versa); the server applies exactly the parameters it
// receives and keeps no filter state between requests.
func (h *Handler) ListTools(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFrom(r.Context())

	category := r.URL.Query().Get("category")
	search := r.URL.Query().Get("q")

	tools, err := h.catalog.Query(r.Context(), userID, category, search)
	if errors.Is(err, application.ErrUnknownCategory) {
		writeError(w, http.StatusBadRequest, "unknown category")
		return
	}
	if err != nil {
		h.logger.Error("failed to query catalog", "category", category, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]ToolResponse, 0, len(tools))
	for _, t := range tools {
		resp = append(resp, toToolResponse(t))
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetTool returns a single tool with its rendered description.
func (h *Handler) GetTool(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFrom(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tool id")
		return
	}

	tool, err := h.catalog.Get(r.Context(), userID, id)
	if errors.Is(err, driven.ErrToolNotFound) {
		writeError(w, http.StatusNotFound, "tool not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get tool", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, ToolDetailResponse{
		ToolResponse:    toToolResponse(*tool),
		DescriptionHTML: renderMarkdown(tool.Tool.Description),
	})
}

// ListCategories returns the declarative category table in display order.
func (h *Handler) ListCategories(w http.ResponseWriter, _ *http.Request) {
	resp := make([]CategoryResponse, 0, len(model.Categories))
	for _, c := range model.Categories {
		resp = append(resp, CategoryResponse{ID: c.ID, Label: c.Label})
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListFavorites returns the caller's favorited tools in insertion order.
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFrom(r.Context())

	tools, err := h.catalog.Favorites(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list favorites", "user", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]ToolResponse, 0, len(tools))
	for _, t := range tools {
		resp = append(resp, toToolResponse(t))
	}

	writeJSON(w, http.StatusOK, resp)
}

// ToggleFavorite flips the caller's favorite edge for a tool and returns the
// new state.
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFrom(r.Context())

	toolID, err := strconv.ParseInt(r.PathValue("toolId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tool id")
		return
	}

	favorite, err := h.favorites.Toggle(r.Context(), userID, toolID)
	if err != nil {
		h.logger.Error("failed to toggle favorite", "user", userID, "tool", toolID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, ToggleResponse{ToolID: toolID, Favorite: favorite})
}

// DiscloseCredential reveals the requested credential field(s) for a tool,
// or answers with a structured refusal naming the reason.
func (h *Handler) DiscloseCredential(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFrom(r.Context())

	toolID, err := strconv.ParseInt(r.PathValue("toolId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tool id")
		return
	}

	field, err := model.ParseField(r.PathValue("field"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid credential field")
		return
	}

	payload, err := h.vault.Disclose(r.Context(), userID, toolID, field)
	if err != nil {
		h.writeDisclosureError(w, userID, toolID, err)
		return
	}

	writeJSON(w, http.StatusOK, payload)
}

// writeDisclosureError maps the vault error taxonomy onto the structured
// refusal contract. Policy refusals carry their reason; timeouts are 503 so
// callers know a retry may help, unlike every other class here.
func (h *Handler) writeDisclosureError(w http.ResponseWriter, userID string, toolID int64, err error) {
	var unavailable *application.UnavailableError
	switch {
	case errors.As(err, &unavailable):
		writeRefusal(w, http.StatusConflict, unavailable.Reason)
	case errors.Is(err, driven.ErrToolNotFound), errors.Is(err, driven.ErrBundleNotFound):
		writeRefusal(w, http.StatusNotFound, "not_found")
	case errors.Is(err, application.ErrStoreTimeout):
		writeError(w, http.StatusServiceUnavailable, "store timed out, try again")
	default:
		h.logger.Error("disclosure failed", "user", userID, "tool", toolID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// ListDisclosures returns the caller's own disclosure audit events, newest first.
func (h *Handler) ListDisclosures(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFrom(r.Context())

	events, err := h.vault.Disclosures(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list disclosures", "user", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]DisclosureResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, toDisclosureResponse(e))
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreateTool registers a tool and, when credentials are supplied, seeds its
// bundle in the secret store. Operator surface.
func (h *Handler) CreateTool(w http.ResponseWriter, r *http.Request) {
	var req CreateToolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	status := model.StatusOnline
	if req.Status != "" {
		parsed, err := model.ParseToolStatus(req.Status)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid status")
			return
		}
		status = parsed
	}

	tool := model.Tool{
		ID:          req.ID,
		Title:       req.Title,
		Category:    req.Category,
		Status:      status,
		Description: req.Description,
		LogoURL:     req.LogoURL,
		BgColor:     req.BgColor,
		TextColor:   req.TextColor,
	}

	// The store reports the authoritative id, so a concurrent create can
	// never make this request seed its bundle under someone else's tool.
	id, err := h.tools.Add(r.Context(), tool)
	if err != nil {
		if errors.Is(err, driven.ErrToolAlreadyExists) {
			writeError(w, http.StatusConflict, "tool already exists")
			return
		}
		h.logger.Error("failed to add tool", "title", req.Title, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if req.Credentials != nil {
		bundle := model.CredentialBundle{
			ToolID:   id,
			Email:    req.Credentials.Email,
			Password: req.Credentials.Password,
			Cookie:   req.Credentials.Cookie,
		}
		if err := h.secrets.PutBundle(r.Context(), bundle); err != nil {
			h.logger.Error("failed to store credential bundle", "tool", id, "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	writeJSON(w, http.StatusCreated, CreateToolResponse{ID: id})
}

// SetToolStatus applies an operator-driven status transition.
func (h *Handler) SetToolStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tool id")
		return
	}

	var req SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status, err := model.ParseToolStatus(req.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	if err := h.tools.SetStatus(r.Context(), id, status); err != nil {
		if errors.Is(err, driven.ErrToolNotFound) {
			writeError(w, http.StatusNotFound, "tool not found")
			return
		}
		h.logger.Error("failed to set tool status", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ToolStats reports per-tool usage to operators, currently the total number
// of credential disclosures.
func (h *Handler) ToolStats(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tool id")
		return
	}

	if _, err := h.tools.Get(r.Context(), id); err != nil {
		if errors.Is(err, driven.ErrToolNotFound) {
			writeError(w, http.StatusNotFound, "tool not found")
			return
		}
		h.logger.Error("failed to get tool", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	count, err := h.vault.DisclosureCount(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to count disclosures", "tool", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, ToolStatsResponse{ToolID: id, DisclosureCount: count})
}

// CreateMember provisions a portal account. Operator surface.
func (h *Handler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req CreateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	member, err := h.auth.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		h.logger.Error("failed to register member", "email", req.Email, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, CreateMemberResponse{ID: member.ID})
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
