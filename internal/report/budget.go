package report

import (
	"sort"
	"time"

	"github.com/pointtaken/timesheet/internal/project"
	"github.com/pointtaken/timesheet/internal/timeentry"
)

const (
	warnThresholdPercent     = 85
	exceededThresholdPercent = 100

	// DefaultHoursPerWorkday is the contractual workday length used in
	// capacity calculations.
	DefaultHoursPerWorkday = 7.5
)

type BudgetStatus struct {
	BudgetHours        float64 `json:"budget_hours"`
	UsedHours          float64 `json:"used_hours"`
	UtilizationPercent float64 `json:"utilization_percent"`
	Warning            bool    `json:"warning"`
	Exceeded           bool    `json:"exceeded"`
}

type ConsultantCapacity struct {
	Name               string  `json:"name"`
	CapacityHours      float64 `json:"capacity_hours"`
	LoggedHours        float64 `json:"logged_hours"`
	UtilizationPercent float64 `json:"utilization_percent"`
	OverCapacity       bool    `json:"over_capacity"`
}

func newBudgetStatus(budget, used float64) *BudgetStatus {
	status := &BudgetStatus{BudgetHours: budget, UsedHours: used}
	if budget > 0 {
		status.UtilizationPercent = used / budget * 100
	}
	status.Warning = status.UtilizationPercent >= warnThresholdPercent
	status.Exceeded = status.UtilizationPercent >= exceededThresholdPercent
	return status
}

// MonthlyBudgetStatus compares the filtered period's consultant hours
// against the monthly cap. Manager hours are never counted here; the
// cap frames consultant delivery. Nil when no monthly budget is set.
func MonthlyBudgetStatus(filtered []timeentry.TimeEntry, monthlyBudget *float64) *BudgetStatus {
	if monthlyBudget == nil {
		return nil
	}
	var used float64
	for _, e := range filtered {
		if !e.IsProjectManager {
			used += e.Hours
		}
	}
	return newBudgetStatus(*monthlyBudget, used)
}

// TotalBudgetStatus compares all-time hours against the lifetime cap.
// Whether manager hours count is a per-organization policy.
func TotalBudgetStatus(all []timeentry.TimeEntry, totalBudget *float64, includeManager bool) *BudgetStatus {
	if totalBudget == nil {
		return nil
	}
	var used float64
	for _, e := range all {
		if e.IsProjectManager && !includeManager {
			continue
		}
		used += e.Hours
	}
	return newBudgetStatus(*totalBudget, used)
}

// WorkingDaysInMonth counts Mon-Fri calendar days in a YYYY-MM month.
func WorkingDaysInMonth(month string) int {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return 0
	}
	days := 0
	for d := start; d.Month() == start.Month(); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			days++
		}
	}
	return days
}

// ConsultantCapacities computes, for every rostered consultant, the
// hours their capacity percentage allows across the selected months and
// how much of it they have logged.
func ConsultantCapacities(
	filtered []timeentry.TimeEntry,
	cfg project.OrganizationConfig,
	months []string,
	hoursPerWorkday float64,
) []ConsultantCapacity {
	if hoursPerWorkday <= 0 {
		hoursPerWorkday = DefaultHoursPerWorkday
	}

	workingDays := 0
	for _, m := range months {
		workingDays += WorkingDaysInMonth(m)
	}

	logged := make(map[string]float64)
	for _, e := range filtered {
		if !e.IsProjectManager {
			logged[e.Consultant] += e.Hours
		}
	}

	names := make([]string, 0, len(cfg.Consultants))
	for name := range cfg.Consultants {
		names = append(names, name)
	}
	sort.Strings(names)

	capacities := make([]ConsultantCapacity, 0, len(names))
	for _, name := range names {
		capacityHours := cfg.PercentageFor(name) / 100 * float64(workingDays) * hoursPerWorkday
		c := ConsultantCapacity{
			Name:          name,
			CapacityHours: capacityHours,
			LoggedHours:   logged[name],
		}
		if capacityHours > 0 {
			c.UtilizationPercent = c.LoggedHours / capacityHours * 100
		}
		c.OverCapacity = c.UtilizationPercent >= exceededThresholdPercent
		capacities = append(capacities, c)
	}
	return capacities
}

// Report is the full aggregated view for one organization and month
// selection.
type Report struct {
	OrganizationID      string               `json:"organization_id"`
	OrganizationName    string               `json:"organization_name"`
	Months              []string             `json:"months"`
	Totals              Totals               `json:"totals"`
	ConsultantStats     []ConsultantStat     `json:"consultant_stats"`
	ProjectManagerStats []ProjectManagerStat `json:"project_manager_stats"`
	CategoryStats       []CategoryStat       `json:"category_stats"`
	MonthlyBudget       *BudgetStatus        `json:"monthly_budget,omitempty"`
	TotalBudget         *BudgetStatus        `json:"total_budget,omitempty"`
	Capacities          []ConsultantCapacity `json:"capacities"`
}

// Build assembles the report. The lifetime budget always looks at the
// full entry set; everything else looks at the filtered period.
func Build(cfg project.OrganizationConfig, all []timeentry.TimeEntry, months []string, hoursPerWorkday float64) Report {
	filtered := FilterByMonths(all, months)

	return Report{
		OrganizationID:      cfg.OrganizationID,
		OrganizationName:    cfg.OrganizationName,
		Months:              months,
		Totals:              Summarize(filtered),
		ConsultantStats:     ConsultantStats(filtered),
		ProjectManagerStats: ProjectManagerStats(filtered),
		CategoryStats:       CategoryStats(filtered),
		MonthlyBudget:       MonthlyBudgetStatus(filtered, cfg.MonthlyBudget),
		TotalBudget:         TotalBudgetStatus(all, cfg.TotalBudget, cfg.IncludeManagerInBudget),
		Capacities:          ConsultantCapacities(filtered, cfg, months, hoursPerWorkday),
	}
}
