package repository

import (
	"context"

	"classmanager/internal/entity"

	"gorm.io/gorm"
)

type StudentRepository interface {
	Create(ctx context.Context, student *entity.Student) error
	FindByID(ctx context.Context, id string) (*entity.Student, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Student, error)
	// FindIDs returns the subset of ids that exist. A non-empty ownerID also
	// requires the student to be linked to that user.
	FindIDs(ctx context.Context, ids []string, ownerID string) ([]string, error)
	Exists(ctx context.Context, field string, value string, excludeID string) (bool, error)
	Registrations(ctx context.Context) ([]string, error)
	Update(ctx context.Context, student *entity.Student) error
	Delete(ctx context.Context, id string) (bool, error)
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *entity.Student) error {
	return translateError(r.db.WithContext(ctx).Create(student).Error)
}

func (r *studentRepository) FindByID(ctx context.Context, id string) (*entity.Student, error) {
	return findOne[entity.Student](ctx, r.db, "id = ?", id)
}

func (r *studentRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Student, error) {
	return listByOwner[entity.Student](ctx, r.db, ownerID)
}

func (r *studentRepository) FindIDs(ctx context.Context, ids []string, ownerID string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []string
	query := r.db.WithContext(ctx).Model(&entity.Student{}).Where("id IN ?", ids)
	if ownerID != "" {
		query = query.Where("linked_to = ?", ownerID)
	}
	if err := query.Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

func (r *studentRepository) Exists(ctx context.Context, field string, value string, excludeID string) (bool, error) {
	return exists[entity.Student](ctx, r.db, field, value, excludeID)
}

func (r *studentRepository) Registrations(ctx context.Context) ([]string, error) {
	return registrations[entity.Student](ctx, r.db)
}

func (r *studentRepository) Update(ctx context.Context, student *entity.Student) error {
	return updateByID(ctx, r.db, student.ID, student)
}

func (r *studentRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID[entity.Student](ctx, r.db, id)
}
