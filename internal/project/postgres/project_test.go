package postgres

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pointtaken/timesheet/internal/project"
)

func TestProjectRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ProjectRepository Suite")
}

type SQLiteProject struct {
	ID                     string    `gorm:"primaryKey"`
	Name                   string    `gorm:"not null"`
	BudgetHours            *float64  `gorm:"column:budget_hours"`
	MonthlyBudgetHours     *float64  `gorm:"column:monthly_budget_hours"`
	HourlyRate             float64   `gorm:"column:hourly_rate"`
	Consultants            string    `gorm:"column:consultants"`
	ConsultantRates        string    `gorm:"column:consultant_rates"`
	ConsultantPercentages  string    `gorm:"column:consultant_percentages"`
	ProjectManagerName     string    `gorm:"column:project_manager_name"`
	ProjectManagerRate     float64   `gorm:"column:project_manager_rate"`
	Categories             string    `gorm:"column:categories"`
	AccessEmail            string    `gorm:"column:access_email"`
	IncludeManagerInBudget bool      `gorm:"column:include_manager_in_budget"`
	CreatedAt              time.Time `gorm:"column:created_at"`
	UpdatedAt              time.Time `gorm:"column:updated_at"`
}

func (SQLiteProject) TableName() string {
	return "projects"
}

var _ = Describe("ProjectRepository", func() {
	var (
		db   *gorm.DB
		repo project.RepositoryAPI
		ctx  context.Context
	)

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteProject{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewProjectRepository(db)
		ctx = context.Background()
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	newProject := func(id, name string) *project.Project {
		now := time.Now().UTC()
		return &project.Project{
			ID:                    id,
			Name:                  name,
			HourlyRate:            1500,
			Consultants:           project.StringList{"Anna", "Bjørn"},
			ConsultantRates:       project.NumberMap{"Bjørn": 1800},
			ConsultantPercentages: project.NumberMap{"Bjørn": 50},
			Categories:            project.StringList{"Utvikling"},
			AccessEmail:           "pm@customer.com",
			CreatedAt:             now,
			UpdatedAt:             now,
		}
	}

	Describe("Create and GetByID", func() {
		It("round-trips the JSON columns", func() {
			err := repo.Create(ctx, newProject("p1", "Acme"))
			Expect(err).NotTo(HaveOccurred())

			got, err := repo.GetByID(ctx, "p1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Name).To(Equal("Acme"))
			Expect(got.Consultants).To(Equal(project.StringList{"Anna", "Bjørn"}))
			Expect(got.ConsultantRates).To(HaveKeyWithValue("Bjørn", 1800.0))
			Expect(got.ConsultantPercentages).To(HaveKeyWithValue("Bjørn", 50.0))
			Expect(got.Categories).To(Equal(project.StringList{"Utvikling"}))
		})

		It("returns the sentinel for a missing id", func() {
			_, err := repo.GetByID(ctx, "missing")
			Expect(err).To(MatchError(project.ErrProjectNotFound))
		})
	})

	Describe("GetAll", func() {
		It("lists every project", func() {
			Expect(repo.Create(ctx, newProject("p1", "One"))).To(Succeed())
			Expect(repo.Create(ctx, newProject("p2", "Two"))).To(Succeed())

			all, err := repo.GetAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(2))
		})
	})

	Describe("Update", func() {
		It("persists changed fields", func() {
			p := newProject("p1", "Acme")
			Expect(repo.Create(ctx, p)).To(Succeed())

			p.Name = "Acme v2"
			p.AccessEmail = "new@customer.com"
			Expect(repo.Update(ctx, p)).To(Succeed())

			got, err := repo.GetByID(ctx, "p1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Name).To(Equal("Acme v2"))
			Expect(got.AccessEmail).To(Equal("new@customer.com"))
		})
	})

	Describe("Delete", func() {
		It("removes the row", func() {
			Expect(repo.Create(ctx, newProject("p1", "Acme"))).To(Succeed())
			Expect(repo.Delete(ctx, "p1")).To(Succeed())

			_, err := repo.GetByID(ctx, "p1")
			Expect(err).To(MatchError(project.ErrProjectNotFound))
		})

		It("reports a missing id", func() {
			Expect(repo.Delete(ctx, "missing")).To(MatchError(project.ErrProjectNotFound))
		})
	})
})
