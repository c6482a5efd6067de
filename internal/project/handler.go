package project

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/pointtaken/timesheet/internal"
	"github.com/pointtaken/timesheet/internal/access"
	"github.com/pointtaken/timesheet/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	service  ServiceAPI
	resolver *access.Resolver
}

func NewHandler(logger *slog.Logger, service ServiceAPI, resolver *access.Resolver) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger),
		service:     service,
		resolver:    resolver,
	}
}

// List returns every project for admins and only the granted ones for
// everybody else.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var (
		projects []Project
		err      error
	)
	if h.resolver.ResolveGlobalRole(user.Email) == access.RoleAdmin {
		projects, err = h.service.GetAll(r.Context())
	} else {
		projects, err = h.service.GetAccessibleBy(r.Context(), user.Email)
	}
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"projects": projects})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectID")
	p, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.service.Create(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectID")

	var dto UpdateProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.service.Update(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectID")
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GetOrganizationConfig resolves the roster/rate/budget view for one
// organization. Unknown ids return a placeholder, never an error.
func (h *Handler) GetOrganizationConfig(w http.ResponseWriter, r *http.Request) {
	organizationID := chi.URLParam(r, "organizationID")
	cfg := h.service.ResolveOrganizationConfig(r.Context(), organizationID)
	h.WriteJSON(w, http.StatusOK, cfg)
}

// GetOrganizationAccess reports the caller's resolved role and whether
// they may write, so the client can render the right controls.
func (h *Handler) GetOrganizationAccess(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	organizationID := chi.URLParam(r, "organizationID")
	accessEmail, err := h.service.AccessEmailForOrganization(r.Context(), organizationID)
	if err != nil {
		h.Logger.Error("access email lookup failed", "organization_id", organizationID, "error", err)
		accessEmail = ""
	}

	role := h.resolver.ResolveRole(user.Email, organizationID, accessEmail)
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"organization_id": organizationID,
		"role":            role,
		"can_write":       h.resolver.CanWrite(role),
	})
}
