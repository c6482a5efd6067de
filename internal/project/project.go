package project

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	ErrProjectNotFound = errors.New("project not found")
)

// DefaultManagerLabel is used when a project has no named manager.
const DefaultManagerLabel = "Prosjektleder"

// Project is a billable engagement for one customer organization. The
// roster and rate tables are stored as JSON columns; they are small and
// only ever read as a whole.
type Project struct {
	ID                     string     `gorm:"primaryKey" json:"id"`
	Name                   string     `gorm:"column:name;not null" json:"name"`
	BudgetHours            *float64   `gorm:"column:budget_hours" json:"budget_hours"`
	MonthlyBudgetHours     *float64   `gorm:"column:monthly_budget_hours" json:"monthly_budget_hours"`
	HourlyRate             float64    `gorm:"column:hourly_rate" json:"hourly_rate"`
	Consultants            StringList `gorm:"column:consultants;type:jsonb" json:"consultants"`
	ConsultantRates        NumberMap  `gorm:"column:consultant_rates;type:jsonb" json:"consultant_rates"`
	ConsultantPercentages  NumberMap  `gorm:"column:consultant_percentages;type:jsonb" json:"consultant_percentages"`
	ProjectManagerName     string     `gorm:"column:project_manager_name" json:"project_manager_name"`
	ProjectManagerRate     float64    `gorm:"column:project_manager_rate" json:"project_manager_rate"`
	Categories             StringList `gorm:"column:categories;type:jsonb" json:"categories"`
	AccessEmail            string     `gorm:"column:access_email" json:"access_email"`
	IncludeManagerInBudget bool       `gorm:"column:include_manager_in_budget;default:true" json:"include_manager_in_budget"`
	CreatedAt              time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt              time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]Project, error)
	GetByID(ctx context.Context, id string) (*Project, error)
	Create(ctx context.Context, project *Project) error
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id string) error
}

// OrganizationConfig is the resolved view of an organization that the
// entry and report layers consume: who may log time at which rate, which
// categories exist, and how the budget is shaped.
type OrganizationConfig struct {
	OrganizationID         string             `json:"organization_id"`
	OrganizationName       string             `json:"organization_name"`
	Consultants            map[string]float64 `json:"consultants"`
	ConsultantPercentages  map[string]float64 `json:"consultant_percentages"`
	ProjectManager         map[string]float64 `json:"project_manager"`
	Categories             []string           `json:"categories"`
	MonthlyBudget          *float64           `json:"monthly_budget"`
	TotalBudget            *float64           `json:"total_budget"`
	IncludeManagerInBudget bool               `json:"include_manager_in_budget"`
	AccessEmail            string             `json:"-"`
	Unknown                bool               `json:"unknown"`
}

// RateFor looks up the hourly rate for a name across both the
// consultant and manager tables. The second return tells whether the
// name belongs to the manager table.
func (c *OrganizationConfig) RateFor(name string) (rate float64, isManager bool, ok bool) {
	if rate, ok := c.Consultants[name]; ok {
		return rate, false, true
	}
	if rate, ok := c.ProjectManager[name]; ok {
		return rate, true, true
	}
	return 0, false, false
}

// PercentageFor returns the capacity percentage for a consultant,
// defaulting to 100 when no override exists.
func (c *OrganizationConfig) PercentageFor(name string) float64 {
	if pct, ok := c.ConsultantPercentages[name]; ok {
		return pct
	}
	return 100
}

func (c *OrganizationConfig) HasCategory(name string) bool {
	for _, cat := range c.Categories {
		if cat == name {
			return true
		}
	}
	return false
}

// StringList is a JSON-encoded string array column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// NumberMap is a JSON-encoded name-to-number column, used for the
// per-consultant rate and percentage overrides.
type NumberMap map[string]float64

func (m NumberMap) Value() (driver.Value, error) {
	if m == nil {
		m = NumberMap{}
	}
	return json.Marshal(m)
}

func (m *NumberMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

func scanJSON(value, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dest)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported column type %T", value)
	}
}
