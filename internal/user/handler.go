package user

import (
	"log/slog"
	"net/http"

	"github.com/pointtaken/timesheet/internal"
	"github.com/pointtaken/timesheet/internal/access"
	"github.com/pointtaken/timesheet/internal/transport"
)

// Handler serves the session user's own profile. The role reported here
// is the global one; per-organization roles come from the organization
// access endpoint.
type Handler struct {
	*transport.BaseHandler
	resolver *access.Resolver
}

func NewHandler(logger *slog.Logger, resolver *access.Resolver) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger),
		resolver:    resolver,
	}
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"id":                   user.ID,
		"email":                user.Email,
		"name":                 user.Name,
		"role":                 h.resolver.ResolveGlobalRole(user.Email),
		"legacy_organizations": h.resolver.LegacyOrganizationsFor(user.Email),
	})
}
