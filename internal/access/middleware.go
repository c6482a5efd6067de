package access

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/pointtaken/timesheet/internal"
	"github.com/pointtaken/timesheet/internal/transport"
)

// AccessEmailLookup fetches the configured viewer address for an
// organization. Unknown organizations must return "", not an error.
type AccessEmailLookup func(ctx context.Context, organizationID string) (string, error)

// Middleware guards routes based on the resolved role.
type Middleware struct {
	*transport.BaseHandler
	resolver *Resolver
	lookup   AccessEmailLookup
}

func NewMiddleware(logger *slog.Logger, resolver *Resolver, lookup AccessEmailLookup) *Middleware {
	return &Middleware{
		BaseHandler: transport.NewBaseHandler(logger),
		resolver:    resolver,
		lookup:      lookup,
	}
}

// RequireAdmin allows only staff and allow-listed admins through.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := internal.UserFromContext(r.Context())
		if !ok {
			m.WriteError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		role := m.resolver.ResolveGlobalRole(user.Email)
		if role != RoleAdmin {
			m.Logger.Warn("admin route denied", "email", user.Email)
			m.HandleServiceError(w, internal.NewForbiddenError("admin access required", internal.ErrCodeAccessDenied))
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithRole(r.Context(), role)))
	})
}

// RequireOrganizationAccess resolves the caller's role for the
// organization in the URL and rejects callers with none. The resolved
// role is stored in the context for downstream write checks.
func (m *Middleware) RequireOrganizationAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := internal.UserFromContext(r.Context())
		if !ok {
			m.WriteError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		organizationID := chi.URLParam(r, "organizationID")
		if organizationID == "" {
			m.WriteError(w, http.StatusBadRequest, "organization id is required")
			return
		}

		accessEmail, err := m.lookup(r.Context(), organizationID)
		if err != nil {
			m.Logger.Error("access email lookup failed", "organization_id", organizationID, "error", err)
			m.WriteError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		role := m.resolver.ResolveRole(user.Email, organizationID, accessEmail)
		if role == RoleNone {
			m.Logger.Warn("organization access denied",
				"email", user.Email,
				"organization_id", organizationID,
			)
			m.HandleServiceError(w, internal.NewForbiddenError(m.resolver.DenialReason(organizationID), internal.ErrCodeAccessDenied))
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithRole(r.Context(), role)))
	})
}

// RequireWriteAccess must run after RequireOrganizationAccess. It
// enforces the global write gate: admins always write, viewers only if
// the deployment opted in.
func (m *Middleware) RequireWriteAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := RoleFromContext(r.Context())
		if !ok {
			m.WriteError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		if !m.resolver.CanWrite(role) {
			m.HandleServiceError(w, internal.NewForbiddenError("read-only access", internal.ErrCodeReadOnly))
			return
		}

		next.ServeHTTP(w, r)
	})
}
