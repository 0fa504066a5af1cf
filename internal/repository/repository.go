package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"classmanager/internal/entity"

	"gorm.io/gorm"
)

// ErrDuplicateKey is returned when a write is rejected by a unique index.
var ErrDuplicateKey = errors.New("duplicate key")

// ErrNoRecord is returned by Update when the target id no longer exists.
var ErrNoRecord = errors.New("record does not exist")

// Column (and document field) names accepted by Exists.
const (
	FieldRegistration = "registration"
	FieldCPF          = "cpf"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldUserName     = "user_name"
	FieldCode         = "code"
)

// Store bundles one repository per collection so the backend can be chosen
// at startup.
type Store struct {
	Users         UserRepository
	Students      StudentRepository
	Instructors   InstructorRepository
	Classes       ClassRepository
	Verifications VerificationTokenRepository
	SecurityLogs  SecurityLogRepository

	// transact runs fn against a store bound to one transaction. Nil means
	// the backend has no multi-document transactions.
	transact func(ctx context.Context, fn func(ctx context.Context, tx *Store) error) error
}

// Atomically runs fn so that its writes commit or roll back together when
// the backend supports it. Otherwise fn runs directly against s.
func (s *Store) Atomically(ctx context.Context, fn func(ctx context.Context, tx *Store) error) error {
	if s.transact == nil {
		return fn(ctx, s)
	}
	return s.transact(ctx, fn)
}

func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Users:         NewUserRepository(db),
		Students:      NewStudentRepository(db),
		Instructors:   NewInstructorRepository(db),
		Classes:       NewClassRepository(db),
		Verifications: NewVerificationTokenRepository(db),
		SecurityLogs:  NewSecurityLogRepository(db),
		transact: func(ctx context.Context, fn func(ctx context.Context, tx *Store) error) error {
			return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				return fn(ctx, NewGormStore(tx))
			})
		},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Student{},
		&entity.Instructor{},
		&entity.Class{},
		&entity.VerificationToken{},
		&entity.SecurityLog{},
	)
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	}
	message := strings.ToLower(err.Error())
	if strings.Contains(message, "unique constraint") || strings.Contains(message, "duplicate key") {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	}
	return err
}

func findOne[T any](ctx context.Context, db *gorm.DB, query string, args ...any) (*T, error) {
	var record T
	err := db.WithContext(ctx).
		Where(query, args...).
		First(&record).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func exists[T any](ctx context.Context, db *gorm.DB, field string, value string, excludeID string) (bool, error) {
	var count int64
	query := db.WithContext(ctx).Model(new(T)).Where(field+" = ?", value)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func listByOwner[T any](ctx context.Context, db *gorm.DB, ownerID string) ([]T, error) {
	records := make([]T, 0)
	err := db.WithContext(ctx).
		Where("linked_to = ?", ownerID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func registrations[T any](ctx context.Context, db *gorm.DB) ([]string, error) {
	var values []string
	if err := db.WithContext(ctx).Model(new(T)).Pluck("registration", &values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

// updateByID writes every column of record onto the existing row. Unlike
// Save it never inserts, and the caller's updated_at is kept as is.
func updateByID[T any](ctx context.Context, db *gorm.DB, id string, record *T) error {
	result := db.WithContext(ctx).
		Model(new(T)).
		Where("id = ?", id).
		Select("*").
		Omit("id", "created_at").
		UpdateColumns(record)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNoRecord
	}
	return nil
}

func deleteByID[T any](ctx context.Context, db *gorm.DB, id string) (bool, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
