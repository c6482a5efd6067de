package postgres

import (
	"context"
	"errors"

	"github.com/pointtaken/timesheet/internal/timeentry"
	"gorm.io/gorm"
)

type TimeEntryRepository struct {
	db *gorm.DB
}

func NewTimeEntryRepository(db *gorm.DB) *TimeEntryRepository {
	return &TimeEntryRepository{db: db}
}

func (r *TimeEntryRepository) GetByOrganization(ctx context.Context, organizationID string) ([]timeentry.TimeEntry, error) {
	var entries []timeentry.TimeEntry
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("date DESC, created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *TimeEntryRepository) GetByID(ctx context.Context, id int64) (*timeentry.TimeEntry, error) {
	var entry timeentry.TimeEntry
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, timeentry.ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *TimeEntryRepository) Create(ctx context.Context, entry *timeentry.TimeEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *TimeEntryRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&timeentry.TimeEntry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return timeentry.ErrEntryNotFound
	}
	return nil
}

func (r *TimeEntryRepository) DeleteByOrganization(ctx context.Context, organizationID string) error {
	return r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Delete(&timeentry.TimeEntry{}).Error
}
