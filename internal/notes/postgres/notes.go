package postgres

import (
	"context"
	"errors"

	"github.com/pointtaken/timesheet/internal/notes"
	"gorm.io/gorm"
)

type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) GetByOrganization(ctx context.Context, organizationID string) ([]notes.Note, error) {
	var out []notes.Note
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *NoteRepository) GetByID(ctx context.Context, id string) (*notes.Note, error) {
	var note notes.Note
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notes.ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

func (r *NoteRepository) Create(ctx context.Context, note *notes.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *NoteRepository) Update(ctx context.Context, note *notes.Note) error {
	return r.db.WithContext(ctx).Save(note).Error
}

func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&notes.Note{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notes.ErrNoteNotFound
	}
	return nil
}
