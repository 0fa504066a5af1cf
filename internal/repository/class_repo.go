package repository

import (
	"context"
	"time"

	"classmanager/internal/entity"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ClassRepository interface {
	Create(ctx context.Context, class *entity.Class) error
	FindByID(ctx context.Context, id string) (*entity.Class, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Class, error)
	Exists(ctx context.Context, field string, value string, excludeID string) (bool, error)
	Update(ctx context.Context, class *entity.Class) error
	Delete(ctx context.Context, id string) (bool, error)
	// RemoveStudent pulls studentID out of every class roster, stamping the
	// changed classes with at, and reports how many changed.
	RemoveStudent(ctx context.Context, studentID string, at time.Time) (int64, error)
	// UnassignInstructor clears instructorID from every class it teaches.
	UnassignInstructor(ctx context.Context, instructorID string, at time.Time) (int64, error)
}

type classRepository struct {
	db *gorm.DB
}

func NewClassRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) Create(ctx context.Context, class *entity.Class) error {
	return translateError(r.db.WithContext(ctx).Create(class).Error)
}

func (r *classRepository) FindByID(ctx context.Context, id string) (*entity.Class, error) {
	return findOne[entity.Class](ctx, r.db, "id = ?", id)
}

func (r *classRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Class, error) {
	return listByOwner[entity.Class](ctx, r.db, ownerID)
}

func (r *classRepository) Exists(ctx context.Context, field string, value string, excludeID string) (bool, error) {
	return exists[entity.Class](ctx, r.db, field, value, excludeID)
}

func (r *classRepository) Update(ctx context.Context, class *entity.Class) error {
	return updateByID(ctx, r.db, class.ID, class)
}

func (r *classRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID[entity.Class](ctx, r.db, id)
}

func (r *classRepository) RemoveStudent(ctx context.Context, studentID string, at time.Time) (int64, error) {
	var classes []entity.Class
	err := r.db.WithContext(ctx).
		Where("CAST(students AS TEXT) LIKE ?", `%"`+studentID+`"%`).
		Find(&classes).Error
	if err != nil {
		return 0, err
	}

	var changed int64
	for i := range classes {
		if !classes[i].HasStudent(studentID) {
			continue
		}
		remaining := make(datatypes.JSONSlice[string], 0, len(classes[i].Students))
		for _, id := range classes[i].Students {
			if id != studentID {
				remaining = append(remaining, id)
			}
		}
		err := r.db.WithContext(ctx).
			Model(&entity.Class{}).
			Where("id = ?", classes[i].ID).
			UpdateColumns(map[string]any{"students": remaining, "updated_at": at}).Error
		if err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}

func (r *classRepository) UnassignInstructor(ctx context.Context, instructorID string, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Class{}).
		Where("instructor_id = ?", instructorID).
		UpdateColumns(map[string]any{"instructor_id": nil, "updated_at": at})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
