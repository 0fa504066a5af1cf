package repository

import (
	"context"

	"classmanager/internal/entity"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByLogin(ctx context.Context, login string) (*entity.User, error)
	Exists(ctx context.Context, field string, value string, excludeID string) (bool, error)
	Registrations(ctx context.Context) ([]string, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]entity.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return translateError(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return findOne[entity.User](ctx, r.db, "id = ?", id)
}

// FindByLogin matches either the user name or the (already normalized) email.
func (r *userRepository) FindByLogin(ctx context.Context, login string) (*entity.User, error) {
	return findOne[entity.User](ctx, r.db, "user_name = ? OR email = ?", login, login)
}

func (r *userRepository) Exists(ctx context.Context, field string, value string, excludeID string) (bool, error) {
	return exists[entity.User](ctx, r.db, field, value, excludeID)
}

func (r *userRepository) Registrations(ctx context.Context) ([]string, error) {
	return registrations[entity.User](ctx, r.db)
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return updateByID(ctx, r.db, user.ID, user)
}

func (r *userRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID[entity.User](ctx, r.db, id)
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]entity.User, error) {
	users := make([]entity.User, 0)
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
