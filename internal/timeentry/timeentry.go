package timeentry

import (
	"context"
	"errors"
	"time"
)

var (
	ErrEntryNotFound = errors.New("time entry not found")
)

// DateLayout is the stored date format. Dates are kept as plain
// ISO strings so month filtering stays a prefix comparison and entries
// never shift across a timezone boundary.
const DateLayout = "2006-01-02"

// TimeEntry is one logged block of work. Cost is computed from the rate
// table once at creation and never recomputed; rate changes must not
// rewrite history.
type TimeEntry struct {
	ID               int64     `gorm:"primaryKey" json:"id"`
	OrganizationID   string    `gorm:"column:organization_id;not null;index" json:"organization_id"`
	Consultant       string    `gorm:"column:consultant;not null" json:"consultant"`
	Date             string    `gorm:"column:date;not null" json:"date"`
	Hours            float64   `gorm:"column:hours;not null" json:"hours"`
	Description      string    `gorm:"column:description" json:"description"`
	Category         string    `gorm:"column:category" json:"category"`
	Cost             float64   `gorm:"column:cost;not null" json:"cost"`
	IsProjectManager bool      `gorm:"column:is_project_manager;default:false" json:"is_project_manager"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"created_at"`
}

func (TimeEntry) TableName() string {
	return "time_entries"
}

// Month returns the entry's YYYY-MM prefix.
func (e TimeEntry) Month() string {
	if len(e.Date) < 7 {
		return e.Date
	}
	return e.Date[:7]
}

type RepositoryAPI interface {
	GetByOrganization(ctx context.Context, organizationID string) ([]TimeEntry, error)
	GetByID(ctx context.Context, id int64) (*TimeEntry, error)
	Create(ctx context.Context, entry *TimeEntry) error
	Delete(ctx context.Context, id int64) error
	DeleteByOrganization(ctx context.Context, organizationID string) error
}
