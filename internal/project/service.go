package project

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
	GetAll(ctx context.Context) ([]Project, error)
	GetAccessibleBy(ctx context.Context, email string) ([]Project, error)
	GetByID(ctx context.Context, id string) (*Project, error)
	Create(ctx context.Context, dto CreateProjectDTO) (*Project, error)
	Update(ctx context.Context, id string, dto UpdateProjectDTO) (*Project, error)
	Delete(ctx context.Context, id string) error
	ResolveOrganizationConfig(ctx context.Context, organizationID string) OrganizationConfig
	AccessEmailForOrganization(ctx context.Context, organizationID string) (string, error)
}

// EntryPurger removes every logged entry for an organization. Satisfied
// by the time entry repository; declared here to avoid an import loop.
type EntryPurger interface {
	DeleteByOrganization(ctx context.Context, organizationID string) error
}

type Service struct {
	repo    RepositoryAPI
	entries EntryPurger
	logger  *slog.Logger
}

func NewService(repo RepositoryAPI, entries EntryPurger, logger *slog.Logger) *Service {
	return &Service{repo: repo, entries: entries, logger: logger}
}

func (s *Service) GetAll(ctx context.Context) ([]Project, error) {
	projects, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, internal.NewInternalError("failed to list projects", err)
	}
	return projects, nil
}

// GetAccessibleBy returns the projects a viewer was granted via their
// access email. Admins use GetAll instead.
func (s *Service) GetAccessibleBy(ctx context.Context, email string) ([]Project, error) {
	projects, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, internal.NewInternalError("failed to list projects", err)
	}
	accessible := make([]Project, 0)
	for _, p := range projects {
		if p.AccessEmail != "" && strings.EqualFold(p.AccessEmail, email) {
			accessible = append(accessible, p)
		}
	}
	return accessible, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return nil, internal.NewNotFoundError("project not found", internal.ErrCodeProjectNotFound)
		}
		return nil, internal.NewInternalError("failed to load project", err)
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, dto CreateProjectDTO) (*Project, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &Project{
		ID:                     uuid.NewString(),
		Name:                   strings.TrimSpace(dto.Name),
		BudgetHours:            dto.BudgetHours,
		MonthlyBudgetHours:     dto.MonthlyBudgetHours,
		HourlyRate:             dto.HourlyRate,
		Consultants:            dto.Consultants,
		ConsultantRates:        dto.ConsultantRates,
		ConsultantPercentages:  dto.ConsultantPercentages,
		ProjectManagerName:     strings.TrimSpace(dto.ProjectManagerName),
		ProjectManagerRate:     dto.ProjectManagerRate,
		Categories:             dto.Categories,
		AccessEmail:            strings.TrimSpace(dto.AccessEmail),
		IncludeManagerInBudget: true,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if dto.IncludeManagerInBudget != nil {
		p.IncludeManagerInBudget = *dto.IncludeManagerInBudget
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, internal.NewInternalError("failed to create project", err)
	}

	s.logger.Info("project created", "project_id", p.ID, "name", p.Name)
	return p, nil
}

func (s *Service) Update(ctx context.Context, id string, dto UpdateProjectDTO) (*Project, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return nil, internal.NewNotFoundError("project not found", internal.ErrCodeProjectNotFound)
		}
		return nil, internal.NewInternalError("failed to load project", err)
	}

	p.Name = strings.TrimSpace(dto.Name)
	p.BudgetHours = dto.BudgetHours
	p.MonthlyBudgetHours = dto.MonthlyBudgetHours
	p.HourlyRate = dto.HourlyRate
	p.Consultants = dto.Consultants
	p.ConsultantRates = dto.ConsultantRates
	p.ConsultantPercentages = dto.ConsultantPercentages
	p.ProjectManagerName = strings.TrimSpace(dto.ProjectManagerName)
	p.ProjectManagerRate = dto.ProjectManagerRate
	p.Categories = dto.Categories
	p.AccessEmail = strings.TrimSpace(dto.AccessEmail)
	if dto.IncludeManagerInBudget != nil {
		p.IncludeManagerInBudget = *dto.IncludeManagerInBudget
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, internal.NewInternalError("failed to update project", err)
	}

	s.logger.Info("project updated", "project_id", p.ID)
	return p, nil
}

// Delete removes the project's entries and then the project itself as
// two sequential calls. A failure between them leaves the project in
// place with its entries gone; the purge failure is logged either way.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s.entries != nil {
		if err := s.entries.DeleteByOrganization(ctx, id); err != nil {
			s.logger.Error("failed to purge entries for project", "project_id", id, "error", err)
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return internal.NewNotFoundError("project not found", internal.ErrCodeProjectNotFound)
		}
		return internal.NewInternalError("failed to delete project", err)
	}
	s.logger.Info("project deleted", "project_id", id)
	return nil
}

// ResolveOrganizationConfig turns an organization id into the full
// roster, rate and budget view. Legacy ids resolve from the compiled-in
// table without touching the database. Unknown ids and read failures
// both degrade to a placeholder config so callers can still render;
// failures are logged for operators.
func (s *Service) ResolveOrganizationConfig(ctx context.Context, organizationID string) OrganizationConfig {
	if cfg, ok := legacyConfig(organizationID); ok {
		return cfg
	}

	p, err := s.repo.GetByID(ctx, organizationID)
	if err != nil {
		if !errors.Is(err, ErrProjectNotFound) {
			s.logger.Error("organization config lookup failed",
				"organization_id", organizationID,
				"error", err,
			)
		}
		return unknownOrganizationConfig(organizationID)
	}

	return configFromProject(p)
}

func configFromProject(p *Project) OrganizationConfig {
	consultants := make(map[string]float64, len(p.Consultants))
	percentages := make(map[string]float64, len(p.Consultants))
	for _, name := range p.Consultants {
		rate, ok := p.ConsultantRates[name]
		if !ok || rate == 0 {
			rate = p.HourlyRate
		}
		consultants[name] = rate

		if pct, ok := p.ConsultantPercentages[name]; ok {
			percentages[name] = pct
		} else {
			percentages[name] = 100
		}
	}

	managerName := p.ProjectManagerName
	if managerName == "" {
		managerName = DefaultManagerLabel
	}

	categories := p.Categories
	if categories == nil {
		categories = []string{}
	}

	return OrganizationConfig{
		OrganizationID:         p.ID,
		OrganizationName:       p.Name,
		Consultants:            consultants,
		ConsultantPercentages:  percentages,
		ProjectManager:         map[string]float64{managerName: p.ProjectManagerRate},
		Categories:             categories,
		MonthlyBudget:          p.MonthlyBudgetHours,
		TotalBudget:            p.BudgetHours,
		IncludeManagerInBudget: p.IncludeManagerInBudget,
		AccessEmail:            p.AccessEmail,
	}
}

func unknownOrganizationConfig(organizationID string) OrganizationConfig {
	return OrganizationConfig{
		OrganizationID:        organizationID,
		OrganizationName:      "Ukjent prosjekt",
		Consultants:           map[string]float64{},
		ConsultantPercentages: map[string]float64{},
		ProjectManager:        map[string]float64{},
		Categories:            []string{},
		Unknown:               true,
	}
}

// AccessEmailForOrganization supports the access middleware. Legacy and
// unknown organizations have no per-project viewer address.
func (s *Service) AccessEmailForOrganization(ctx context.Context, organizationID string) (string, error) {
	if IsLegacyOrganization(organizationID) {
		return "", nil
	}
	p, err := s.repo.GetByID(ctx, organizationID)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return "", nil
		}
		return "", err
	}
	return p.AccessEmail, nil
}
