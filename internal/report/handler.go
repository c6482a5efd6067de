package report

import (
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"github.com/pointtaken/timesheet/internal/timeentry"
	"github.com/pointtaken/timesheet/internal/transport"
)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

type Handler struct {
	*transport.BaseHandler
	entries         timeentry.ServiceAPI
	resolver        timeentry.ConfigResolver
	hoursPerWorkday float64
}

func NewHandler(logger *slog.Logger, entries timeentry.ServiceAPI, resolver timeentry.ConfigResolver, hoursPerWorkday float64) *Handler {
	if hoursPerWorkday <= 0 {
		hoursPerWorkday = DefaultHoursPerWorkday
	}
	return &Handler{
		BaseHandler:     transport.NewBaseHandler(logger),
		entries:         entries,
		resolver:        resolver,
		hoursPerWorkday: hoursPerWorkday,
	}
}

// parseMonths reads the months query parameter, defaulting to the
// current month when absent.
func parseMonths(r *http.Request) ([]string, bool) {
	raw := r.URL.Query().Get("months")
	if raw == "" {
		return []string{time.Now().UTC().Format("2006-01")}, true
	}

	var months []string
	for _, m := range strings.Split(raw, ",") {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		if !monthPattern.MatchString(m) {
			return nil, false
		}
		months = append(months, m)
	}
	if len(months) == 0 {
		return []string{time.Now().UTC().Format("2006-01")}, true
	}
	return months, true
}

// GetReport returns the aggregated stats, budgets and capacities for
// the selected months.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	organizationID := chi.URLParam(r, "organizationID")

	months, ok := parseMonths(r)
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "months must be on the form YYYY-MM")
		return
	}

	all, err := h.entries.ListByOrganization(r.Context(), organizationID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	cfg := h.resolver.ResolveOrganizationConfig(r.Context(), organizationID)
	h.WriteJSON(w, http.StatusOK, Build(cfg, all, months, h.hoursPerWorkday))
}

// GetHistory returns per-month totals over the full entry set,
// independent of any month selection.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	organizationID := chi.URLParam(r, "organizationID")

	all, err := h.entries.ListByOrganization(r.Context(), organizationID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"history": MonthlyHistory(all)})
}

// Export streams the CSV download for the selected months.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	organizationID := chi.URLParam(r, "organizationID")

	months, ok := parseMonths(r)
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "months must be on the form YYYY-MM")
		return
	}

	all, err := h.entries.ListByOrganization(r.Context(), organizationID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	cfg := h.resolver.ResolveOrganizationConfig(r.Context(), organizationID)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+Filename(cfg.OrganizationName, months, time.Now().UTC())+`"`)

	if err := WriteCSV(w, cfg, all, months); err != nil {
		h.Logger.Error("csv export failed", "organization_id", organizationID, "error", err)
	}
}
