package timeentry

import (
	"strings"
	"time"

	"github.com/pointtaken/timesheet/internal"
)

type CreateTimeEntryDTO struct {
	Consultant  string  `json:"consultant"`
	Date        string  `json:"date"`
	Hours       float64 `json:"hours"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

func (dto *CreateTimeEntryDTO) Validate() error {
	if strings.TrimSpace(dto.Consultant) == "" {
		return internal.NewValidationError("consultant is required", internal.ErrCodeValidationFailed)
	}
	if dto.Hours <= 0 {
		return internal.NewValidationError("hours must be greater than zero", internal.ErrCodeInvalidHours)
	}
	if _, err := time.Parse(DateLayout, dto.Date); err != nil {
		return internal.NewValidationError("date must be on the form YYYY-MM-DD", internal.ErrCodeInvalidDate)
	}
	if strings.TrimSpace(dto.Category) == "" {
		return internal.NewValidationError("category is required", internal.ErrCodeInvalidCategory)
	}
	return nil
}
