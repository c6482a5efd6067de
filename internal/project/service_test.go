package project_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pointtaken/timesheet/internal"
	"github.com/pointtaken/timesheet/internal/project"
	"github.com/pointtaken/timesheet/pkg/logger"
)

func TestProjectService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Project Service Suite")
}

type mockProjectRepository struct {
	projects map[string]*project.Project
	failWith error
}

func newMockProjectRepository() *mockProjectRepository {
	return &mockProjectRepository{projects: make(map[string]*project.Project)}
}

func (m *mockProjectRepository) GetAll(ctx context.Context) ([]project.Project, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := make([]project.Project, 0, len(m.projects))
	for _, p := range m.projects {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockProjectRepository) GetByID(ctx context.Context, id string) (*project.Project, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	p, ok := m.projects[id]
	if !ok {
		return nil, project.ErrProjectNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *mockProjectRepository) Create(ctx context.Context, p *project.Project) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.projects[p.ID] = p
	return nil
}

func (m *mockProjectRepository) Update(ctx context.Context, p *project.Project) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.projects[p.ID] = p
	return nil
}

func (m *mockProjectRepository) Delete(ctx context.Context, id string) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.projects[id]; !ok {
		return project.ErrProjectNotFound
	}
	delete(m.projects, id)
	return nil
}

type mockEntryPurger struct {
	purged   []string
	failWith error
}

func (m *mockEntryPurger) DeleteByOrganization(ctx context.Context, organizationID string) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.purged = append(m.purged, organizationID)
	return nil
}

var _ = Describe("Project Service", func() {
	var (
		service *project.Service
		repo    *mockProjectRepository
		purger  *mockEntryPurger
		ctx     context.Context
	)

	BeforeEach(func() {
		repo = newMockProjectRepository()
		purger = &mockEntryPurger{}
		service = project.NewService(repo, purger, logger.L())
		ctx = context.Background()
	})

	Describe("Create", func() {
		It("creates a project with a generated id", func() {
			p, err := service.Create(ctx, project.CreateProjectDTO{
				Name:        "Acme Webshop",
				HourlyRate:  1500,
				Consultants: []string{"Anna"},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(p.ID).NotTo(BeEmpty())
			Expect(p.Name).To(Equal("Acme Webshop"))
			Expect(p.IncludeManagerInBudget).To(BeTrue())
		})

		It("rejects an empty name", func() {
			_, err := service.Create(ctx, project.CreateProjectDTO{Name: "  "})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeValidationFailed))
		})

		It("rejects a total and a monthly budget at the same time", func() {
			total, monthly := 500.0, 100.0
			_, err := service.Create(ctx, project.CreateProjectDTO{
				Name:               "Acme",
				BudgetHours:        &total,
				MonthlyBudgetHours: &monthly,
			})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeBudgetConflict))
		})

		It("allows either budget shape alone", func() {
			total := 500.0
			_, err := service.Create(ctx, project.CreateProjectDTO{Name: "A", BudgetHours: &total})
			Expect(err).NotTo(HaveOccurred())

			monthly := 100.0
			_, err = service.Create(ctx, project.CreateProjectDTO{Name: "B", MonthlyBudgetHours: &monthly})
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("Update", func() {
		It("returns not found for a missing project", func() {
			_, err := service.Update(ctx, "nope", project.UpdateProjectDTO{Name: "X"})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeProjectNotFound))
		})

		It("replaces the roster and budget", func() {
			created, err := service.Create(ctx, project.CreateProjectDTO{
				Name:        "Acme",
				Consultants: []string{"Anna"},
			})
			Expect(err).NotTo(HaveOccurred())

			monthly := 80.0
			updated, err := service.Update(ctx, created.ID, project.UpdateProjectDTO{
				Name:               "Acme v2",
				Consultants:        []string{"Anna", "Bjørn"},
				MonthlyBudgetHours: &monthly,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("Acme v2"))
			Expect(updated.Consultants).To(HaveLen(2))
			Expect(updated.MonthlyBudgetHours).To(HaveValue(Equal(80.0)))
		})
	})

	Describe("Delete", func() {
		It("purges the project's entries before removing it", func() {
			created, err := service.Create(ctx, project.CreateProjectDTO{Name: "Acme"})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(ctx, created.ID)).To(Succeed())
			Expect(purger.purged).To(Equal([]string{created.ID}))
			_, err = service.GetByID(ctx, created.ID)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeProjectNotFound))
		})

		It("still deletes the project when the purge fails", func() {
			created, err := service.Create(ctx, project.CreateProjectDTO{Name: "Acme"})
			Expect(err).NotTo(HaveOccurred())

			purger.failWith = errors.New("db down")
			Expect(service.Delete(ctx, created.ID)).To(Succeed())
			Expect(repo.projects).NotTo(HaveKey(created.ID))
		})

		It("returns not found for a missing project", func() {
			err := service.Delete(ctx, "nope")

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeProjectNotFound))
		})
	})

	Describe("GetAccessibleBy", func() {
		It("returns only projects granted to the email", func() {
			_, err := service.Create(ctx, project.CreateProjectDTO{Name: "Mine", AccessEmail: "pm@customer.com"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Create(ctx, project.CreateProjectDTO{Name: "Other", AccessEmail: "someone@else.com"})
			Expect(err).NotTo(HaveOccurred())

			projects, err := service.GetAccessibleBy(ctx, "PM@Customer.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(projects).To(HaveLen(1))
			Expect(projects[0].Name).To(Equal("Mine"))
		})
	})

	Describe("ResolveOrganizationConfig", func() {
		It("resolves legacy organizations from the compiled-in table", func() {
			cfg := service.ResolveOrganizationConfig(ctx, "redcross")

			Expect(cfg.OrganizationName).To(Equal("Røde Kors"))
			Expect(cfg.Consultants).To(HaveKeyWithValue("Per", 1550.0))
			Expect(cfg.ProjectManager).To(HaveKeyWithValue("Kariann (Prosjektleder)", 1550.0))
			Expect(cfg.MonthlyBudget).To(HaveValue(Equal(200.0)))
			Expect(cfg.TotalBudget).To(BeNil())
			Expect(cfg.IncludeManagerInBudget).To(BeFalse())
			Expect(cfg.Categories).To(Equal([]string{"Utvikling", "Forvaltning", "Møter"}))
		})

		It("never hits the repository for legacy ids", func() {
			repo.failWith = errors.New("db down")

			cfg := service.ResolveOrganizationConfig(ctx, "infunnel")
			Expect(cfg.Unknown).To(BeFalse())
			Expect(cfg.OrganizationName).To(Equal("Infunnel/Holmen"))
			Expect(cfg.TotalBudget).To(HaveValue(Equal(630.0)))
		})

		It("derives rates from overrides with the flat rate as fallback", func() {
			created, err := service.Create(ctx, project.CreateProjectDTO{
				Name:            "Acme",
				HourlyRate:      1500,
				Consultants:     []string{"Anna", "Bjørn"},
				ConsultantRates: map[string]float64{"Bjørn": 1800},
			})
			Expect(err).NotTo(HaveOccurred())

			cfg := service.ResolveOrganizationConfig(ctx, created.ID)
			Expect(cfg.Consultants).To(HaveKeyWithValue("Anna", 1500.0))
			Expect(cfg.Consultants).To(HaveKeyWithValue("Bjørn", 1800.0))
		})

		It("defaults capacity percentages to 100", func() {
			created, err := service.Create(ctx, project.CreateProjectDTO{
				Name:                  "Acme",
				HourlyRate:            1500,
				Consultants:           []string{"Anna", "Bjørn"},
				ConsultantPercentages: map[string]float64{"Bjørn": 50},
			})
			Expect(err).NotTo(HaveOccurred())

			cfg := service.ResolveOrganizationConfig(ctx, created.ID)
			Expect(cfg.PercentageFor("Anna")).To(Equal(100.0))
			Expect(cfg.PercentageFor("Bjørn")).To(Equal(50.0))
		})

		It("uses the default manager label when none is set", func() {
			created, err := service.Create(ctx, project.CreateProjectDTO{
				Name:               "Acme",
				ProjectManagerRate: 1600,
			})
			Expect(err).NotTo(HaveOccurred())

			cfg := service.ResolveOrganizationConfig(ctx, created.ID)
			Expect(cfg.ProjectManager).To(HaveKeyWithValue("Prosjektleder", 1600.0))
		})

		It("returns a placeholder for unknown ids", func() {
			cfg := service.ResolveOrganizationConfig(ctx, "stale-bookmark")

			Expect(cfg.Unknown).To(BeTrue())
			Expect(cfg.Consultants).To(BeEmpty())
			Expect(cfg.OrganizationName).To(Equal("Ukjent prosjekt"))
		})

		It("degrades to the placeholder when the repository fails", func() {
			repo.failWith = errors.New("db down")

			cfg := service.ResolveOrganizationConfig(ctx, "some-id")
			Expect(cfg.Unknown).To(BeTrue())
		})
	})

	Describe("AccessEmailForOrganization", func() {
		It("returns empty for legacy organizations", func() {
			email, err := service.AccessEmailForOrganization(ctx, "advokatforeningen")
			Expect(err).NotTo(HaveOccurred())
			Expect(email).To(BeEmpty())
		})

		It("returns the project's access email", func() {
			created, err := service.Create(ctx, project.CreateProjectDTO{
				Name:        "Acme",
				AccessEmail: "pm@customer.com",
			})
			Expect(err).NotTo(HaveOccurred())

			email, err := service.AccessEmailForOrganization(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(email).To(Equal("pm@customer.com"))
		})

		It("returns empty for unknown ids", func() {
			email, err := service.AccessEmailForOrganization(ctx, "nope")
			Expect(err).NotTo(HaveOccurred())
			Expect(email).To(BeEmpty())
		})
	})
})
