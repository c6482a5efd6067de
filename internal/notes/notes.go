package notes

import (
	"context"
	"errors"
	"time"
)

var ErrNoteNotFound = errors.New("note not found")

// Note is a free-form customer note attached to an organization,
// typically meeting minutes or links to external documents.
type Note struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	OrganizationID string    `gorm:"column:organization_id;not null;index" json:"organization_id"`
	Title          string    `gorm:"column:title" json:"title"`
	Content        string    `gorm:"column:content;not null" json:"content"`
	URL            string    `gorm:"column:url" json:"url"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Note) TableName() string {
	return "customer_notes"
}

type RepositoryAPI interface {
	GetByOrganization(ctx context.Context, organizationID string) ([]Note, error)
	GetByID(ctx context.Context, id string) (*Note, error)
	Create(ctx context.Context, note *Note) error
	Update(ctx context.Context, note *Note) error
	Delete(ctx context.Context, id string) error
}
