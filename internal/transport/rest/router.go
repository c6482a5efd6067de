package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/pointtaken/timesheet/internal/access"
	"github.com/pointtaken/timesheet/internal/auth"
	"github.com/pointtaken/timesheet/internal/notes"
	"github.com/pointtaken/timesheet/internal/project"
	"github.com/pointtaken/timesheet/internal/report"
	"github.com/pointtaken/timesheet/internal/timeentry"
	"github.com/pointtaken/timesheet/internal/transport/middleware"
	"github.com/pointtaken/timesheet/internal/transport/swagger"
	"github.com/pointtaken/timesheet/internal/user"
)

// Handlers bundles everything the router wires up.
type Handlers struct {
	Auth      *auth.Handler
	User      *user.Handler
	Project   *project.Handler
	TimeEntry *timeentry.Handler
	Report    *report.Handler
	Notes     *notes.Handler
	Access    *access.Middleware
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.TraceID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// OpenAPI spec and Swagger UI live outside the API prefix.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Everything below requires a session.
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.User.Me)

			pr.Route("/projects", func(pjr chi.Router) {
				pjr.Get("/", h.Project.List)

				// Project management is admin only.
				pjr.Group(func(ar chi.Router) {
					ar.Use(h.Access.RequireAdmin)
					ar.Post("/", h.Project.Create)
					ar.Get("/{projectID}", h.Project.Get)
					ar.Put("/{projectID}", h.Project.Update)
					ar.Delete("/{projectID}", h.Project.Delete)
				})
			})

			pr.Route("/organizations/{organizationID}", func(or chi.Router) {
				or.Use(h.Access.RequireOrganizationAccess)

				or.Get("/config", h.Project.GetOrganizationConfig)
				or.Get("/access", h.Project.GetOrganizationAccess)

				or.Get("/entries", h.TimeEntry.List)
				or.Get("/report", h.Report.GetReport)
				or.Get("/report/history", h.Report.GetHistory)
				or.Get("/export", h.Report.Export)
				or.Get("/notes", h.Notes.List)

				// Writes go through the global write gate.
				or.Group(func(wr chi.Router) {
					wr.Use(h.Access.RequireWriteAccess)

					wr.Post("/entries", h.TimeEntry.Create)
					wr.Delete("/entries/{entryID}", h.TimeEntry.Delete)

					wr.Post("/notes", h.Notes.Create)
					wr.Put("/notes/{noteID}", h.Notes.Update)
					wr.Delete("/notes/{noteID}", h.Notes.Delete)
				})
			})
		})
	})
}
