package notes

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pointtaken/timesheet/internal"
)

type ServiceAPI interface {
	ListByOrganization(ctx context.Context, organizationID string) ([]Note, error)
	Create(ctx context.Context, organizationID string, dto NoteDTO) (*Note, error)
	Update(ctx context.Context, organizationID, id string, dto NoteDTO) (*Note, error)
	Delete(ctx context.Context, organizationID, id string) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) ListByOrganization(ctx context.Context, organizationID string) ([]Note, error) {
	notes, err := s.repo.GetByOrganization(ctx, organizationID)
	if err != nil {
		return nil, internal.NewInternalError("failed to list notes", err)
	}
	return notes, nil
}

func (s *Service) Create(ctx context.Context, organizationID string, dto NoteDTO) (*Note, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	note := &Note{
		ID:             uuid.NewString(),
		OrganizationID: organizationID,
		Title:          strings.TrimSpace(dto.Title),
		Content:        strings.TrimSpace(dto.Content),
		URL:            strings.TrimSpace(dto.URL),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, note); err != nil {
		return nil, internal.NewInternalError("failed to save note", err)
	}

	s.logger.Info("note created", "organization_id", organizationID, "note_id", note.ID)
	return note, nil
}

func (s *Service) Update(ctx context.Context, organizationID, id string, dto NoteDTO) (*Note, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	note, err := s.loadForOrganization(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	note.Title = strings.TrimSpace(dto.Title)
	note.Content = strings.TrimSpace(dto.Content)
	note.URL = strings.TrimSpace(dto.URL)
	note.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, note); err != nil {
		return nil, internal.NewInternalError("failed to update note", err)
	}

	return note, nil
}

func (s *Service) Delete(ctx context.Context, organizationID, id string) error {
	if _, err := s.loadForOrganization(ctx, organizationID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return internal.NewInternalError("failed to delete note", err)
	}

	s.logger.Info("note deleted", "organization_id", organizationID, "note_id", id)
	return nil
}

func (s *Service) loadForOrganization(ctx context.Context, organizationID, id string) (*Note, error) {
	note, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNoteNotFound) {
			return nil, internal.NewNotFoundError("note not found", internal.ErrCodeNoteNotFound)
		}
		return nil, internal.NewInternalError("failed to load note", err)
	}
	if note.OrganizationID != organizationID {
		return nil, internal.NewNotFoundError("note not found", internal.ErrCodeNoteNotFound)
	}
	return note, nil
}
