package timeentry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pointtaken/timesheet/internal"
	"github.com/pointtaken/timesheet/internal/project"
)

type ServiceAPI interface {
	ListByOrganization(ctx context.Context, organizationID string) ([]TimeEntry, error)
	Create(ctx context.Context, organizationID string, dto CreateTimeEntryDTO) (*TimeEntry, error)
	Delete(ctx context.Context, organizationID string, id int64) error
	DeleteByOrganization(ctx context.Context, organizationID string) error
}

// ConfigResolver supplies the rate and category tables entries are
// validated and priced against.
type ConfigResolver interface {
	ResolveOrganizationConfig(ctx context.Context, organizationID string) project.OrganizationConfig
}

type Service struct {
	repo     RepositoryAPI
	resolver ConfigResolver
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, resolver ConfigResolver, logger *slog.Logger) *Service {
	return &Service{repo: repo, resolver: resolver, logger: logger}
}

func (s *Service) ListByOrganization(ctx context.Context, organizationID string) ([]TimeEntry, error) {
	entries, err := s.repo.GetByOrganization(ctx, organizationID)
	if err != nil {
		return nil, internal.NewInternalError("failed to list time entries", err)
	}
	return entries, nil
}

// Create validates the entry against the organization's roster and
// category tables, freezes the cost at the current rate, and stores it.
func (s *Service) Create(ctx context.Context, organizationID string, dto CreateTimeEntryDTO) (*TimeEntry, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	cfg := s.resolver.ResolveOrganizationConfig(ctx, organizationID)

	rate, isManager, ok := cfg.RateFor(dto.Consultant)
	if !ok {
		return nil, internal.NewValidationError(
			fmt.Sprintf("consultant %q is not on this project", dto.Consultant),
			internal.ErrCodeUnknownConsultant,
		)
	}

	if !cfg.HasCategory(dto.Category) {
		return nil, internal.NewValidationError(
			fmt.Sprintf("category %q is not configured for this project", dto.Category),
			internal.ErrCodeInvalidCategory,
		)
	}

	entry := &TimeEntry{
		OrganizationID:   organizationID,
		Consultant:       dto.Consultant,
		Date:             dto.Date,
		Hours:            dto.Hours,
		Description:      dto.Description,
		Category:         dto.Category,
		Cost:             dto.Hours * rate,
		IsProjectManager: isManager,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, internal.NewInternalError("failed to save time entry", err)
	}

	s.logger.Info("time entry created",
		"organization_id", organizationID,
		"entry_id", entry.ID,
		"consultant", entry.Consultant,
		"hours", entry.Hours,
	)
	return entry, nil
}

func (s *Service) Delete(ctx context.Context, organizationID string, id int64) error {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			return internal.NewNotFoundError("time entry not found", internal.ErrCodeEntryNotFound)
		}
		return internal.NewInternalError("failed to load time entry", err)
	}
	if entry.OrganizationID != organizationID {
		return internal.NewNotFoundError("time entry not found", internal.ErrCodeEntryNotFound)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return internal.NewInternalError("failed to delete time entry", err)
	}

	s.logger.Info("time entry deleted", "organization_id", organizationID, "entry_id", id)
	return nil
}

// DeleteByOrganization removes every entry for a project, used when the
// project itself is deleted. The two deletes are separate calls; a
// failure in between leaves orphaned entries, which is accepted and
// logged rather than wrapped in a transaction across services.
func (s *Service) DeleteByOrganization(ctx context.Context, organizationID string) error {
	if err := s.repo.DeleteByOrganization(ctx, organizationID); err != nil {
		return internal.NewInternalError("failed to delete time entries", err)
	}
	s.logger.Info("time entries deleted for organization", "organization_id", organizationID)
	return nil
}
