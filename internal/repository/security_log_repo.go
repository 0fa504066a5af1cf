package repository

import (
	"context"

	"classmanager/internal/entity"

	"gorm.io/gorm"
)

// SecurityLogRepository is the append-only audit trail of logins and
// verification codes.
type SecurityLogRepository interface {
	Log(ctx context.Context, log *entity.SecurityLog) error
	RecentForUser(ctx context.Context, userID string, limit int) ([]entity.SecurityLog, error)
}

type securityLogRepository struct {
	db *gorm.DB
}

func NewSecurityLogRepository(db *gorm.DB) SecurityLogRepository {
	return &securityLogRepository{db: db}
}

func (r *securityLogRepository) Log(ctx context.Context, log *entity.SecurityLog) error {
	return translateError(r.db.WithContext(ctx).Create(log).Error)
}

// RecentForUser returns the newest entries first.
func (r *securityLogRepository) RecentForUser(ctx context.Context, userID string, limit int) ([]entity.SecurityLog, error) {
	logs := []entity.SecurityLog{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
