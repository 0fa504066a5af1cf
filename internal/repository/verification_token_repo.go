package repository

import (
	"context"
	"time"

	"classmanager/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VerificationTokenRepository interface {
	// Upsert stores the token keyed by email, replacing any earlier code.
	Upsert(ctx context.Context, token *entity.VerificationToken) error
	FindByEmailAndCode(ctx context.Context, email string, code string) (*entity.VerificationToken, error)
	DeleteExpired(ctx context.Context, createdBefore time.Time) (int64, error)
}

type verificationTokenRepository struct {
	db *gorm.DB
}

func NewVerificationTokenRepository(db *gorm.DB) VerificationTokenRepository {
	return &verificationTokenRepository{db: db}
}

func (r *verificationTokenRepository) Upsert(ctx context.Context, t *entity.VerificationToken) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"code", "created_at"}),
		}).
		Create(t).Error
}

func (r *verificationTokenRepository) FindByEmailAndCode(ctx context.Context, email string, code string) (*entity.VerificationToken, error) {
	return findOne[entity.VerificationToken](ctx, r.db, "email = ? AND code = ?", email, code)
}

func (r *verificationTokenRepository) DeleteExpired(ctx context.Context, createdBefore time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at <= ?", createdBefore).
		Delete(&entity.VerificationToken{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
