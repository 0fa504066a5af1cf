package service

import (
	"context"
	"time"

	"classmanager/internal/entity"

	"golang.org/x/crypto/bcrypt"
)

type EmailSender interface {
	SendVerificationCode(ctx context.Context, email string, code string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) bool
}

type AccessTokenIssuer interface {
	IssueAccessToken(user entity.User) (string, time.Duration, error)
}

// Recorder receives domain counters; the metrics package implements it.
type Recorder interface {
	RecordCreated(kind string)
	RecordVerification(outcome string)
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

type BcryptPasswordHasher struct {
	Cost int
}

func (h BcryptPasswordHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (h BcryptPasswordHasher) Verify(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func currentTime(clock Clock) time.Time {
	if clock == nil {
		return time.Now()
	}
	return clock.Now()
}

func recordCreated(recorder Recorder, kind string) {
	if recorder != nil {
		recorder.RecordCreated(kind)
	}
}
