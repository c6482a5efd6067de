package project

import (
	"strings"

	"github.com/pointtaken/timesheet/internal"
)

type CreateProjectDTO struct {
	Name                   string             `json:"name"`
	BudgetHours            *float64           `json:"budget_hours"`
	MonthlyBudgetHours     *float64           `json:"monthly_budget_hours"`
	HourlyRate             float64            `json:"hourly_rate"`
	Consultants            []string           `json:"consultants"`
	ConsultantRates        map[string]float64 `json:"consultant_rates"`
	ConsultantPercentages  map[string]float64 `json:"consultant_percentages"`
	ProjectManagerName     string             `json:"project_manager_name"`
	ProjectManagerRate     float64            `json:"project_manager_rate"`
	Categories             []string           `json:"categories"`
	AccessEmail            string             `json:"access_email"`
	IncludeManagerInBudget *bool              `json:"include_manager_in_budget"`
}

func (dto *CreateProjectDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if dto.BudgetHours != nil && dto.MonthlyBudgetHours != nil {
		return internal.NewValidationError(
			"a project can have a total budget or a monthly budget, not both",
			internal.ErrCodeBudgetConflict,
		)
	}
	if dto.BudgetHours != nil && *dto.BudgetHours < 0 {
		return internal.NewValidationError("budget_hours cannot be negative", internal.ErrCodeValidationFailed)
	}
	if dto.MonthlyBudgetHours != nil && *dto.MonthlyBudgetHours < 0 {
		return internal.NewValidationError("monthly_budget_hours cannot be negative", internal.ErrCodeValidationFailed)
	}
	if dto.HourlyRate < 0 {
		return internal.NewValidationError("hourly_rate cannot be negative", internal.ErrCodeValidationFailed)
	}
	for _, pct := range dto.ConsultantPercentages {
		if pct < 0 {
			return internal.NewValidationError("consultant percentage cannot be negative", internal.ErrCodeValidationFailed)
		}
	}
	if dto.AccessEmail != "" && !strings.Contains(dto.AccessEmail, "@") {
		return internal.NewValidationError("access_email must be an email address", internal.ErrCodeValidationFailed)
	}
	return nil
}

// UpdateProjectDTO shares the create shape; updates replace the whole
// roster and rate tables rather than patching individual keys.
type UpdateProjectDTO = CreateProjectDTO
