package notes

import (
	"strings"

	"github.com/pointtaken/timesheet/internal"
)

type NoteDTO struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

func (dto *NoteDTO) Validate() error {
	if strings.TrimSpace(dto.Content) == "" {
		return internal.NewValidationError("content is required", internal.ErrCodeValidationFailed)
	}
	return nil
}
