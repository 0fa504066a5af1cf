package repository

import (
	"context"

	"classmanager/internal/entity"

	"gorm.io/gorm"
)

type InstructorRepository interface {
	Create(ctx context.Context, instructor *entity.Instructor) error
	FindByID(ctx context.Context, id string) (*entity.Instructor, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Instructor, error)
	Exists(ctx context.Context, field string, value string, excludeID string) (bool, error)
	Registrations(ctx context.Context) ([]string, error)
	Update(ctx context.Context, instructor *entity.Instructor) error
	Delete(ctx context.Context, id string) (bool, error)
}

type instructorRepository struct {
	db *gorm.DB
}

func NewInstructorRepository(db *gorm.DB) InstructorRepository {
	return &instructorRepository{db: db}
}

func (r *instructorRepository) Create(ctx context.Context, instructor *entity.Instructor) error {
	return translateError(r.db.WithContext(ctx).Create(instructor).Error)
}

func (r *instructorRepository) FindByID(ctx context.Context, id string) (*entity.Instructor, error) {
	return findOne[entity.Instructor](ctx, r.db, "id = ?", id)
}

func (r *instructorRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Instructor, error) {
	return listByOwner[entity.Instructor](ctx, r.db, ownerID)
}

func (r *instructorRepository) Exists(ctx context.Context, field string, value string, excludeID string) (bool, error) {
	return exists[entity.Instructor](ctx, r.db, field, value, excludeID)
}

func (r *instructorRepository) Registrations(ctx context.Context) ([]string, error) {
	return registrations[entity.Instructor](ctx, r.db)
}

func (r *instructorRepository) Update(ctx context.Context, instructor *entity.Instructor) error {
	return updateByID(ctx, r.db, instructor.ID, instructor)
}

func (r *instructorRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID[entity.Instructor](ctx, r.db, id)
}
