package service

import (
	"context"
	"time"

	"classmanager/internal/entity"
	"classmanager/internal/repository"
	"classmanager/internal/utils"
	"classmanager/internal/validation"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	DefaultVerificationCodeTTL = 5 * time.Minute
	verificationCodeLength     = 6
)

// VerificationService issues and checks the 6-digit email codes. A code is
// valid for ttl after it was issued; issuing again replaces it.
type VerificationService struct {
	tokens       repository.VerificationTokenRepository
	securityLogs repository.SecurityLogRepository

	emailSender  EmailSender
	generateCode func() (string, error)
	clock        Clock
	ttl          time.Duration
	logger       logrus.FieldLogger
	recorder     Recorder
}

func NewVerificationService(
	store *repository.Store,
	emailSender EmailSender,
	clock Clock,
	ttl time.Duration,
	logger logrus.FieldLogger,
	recorder Recorder,
) *VerificationService {
	if ttl <= 0 {
		ttl = DefaultVerificationCodeTTL
	}
	return &VerificationService{
		tokens:       store.Verifications,
		securityLogs: store.SecurityLogs,
		emailSender:  emailSender,
		generateCode: func() (string, error) { return utils.RandomDigits(verificationCodeLength) },
		clock:        clock,
		ttl:          ttl,
		logger:       logger,
		recorder:     recorder,
	}
}

// WithCodeGenerator replaces the random source.
func (s *VerificationService) WithCodeGenerator(generate func() (string, error)) *VerificationService {
	s.generateCode = generate
	return s
}

func (s *VerificationService) RequestCode(ctx context.Context, email string, ipAddress *string) error {
	email = utils.NormalizeEmail(email)
	if !validation.Email(email) {
		return validationError("email is invalid")
	}

	code, err := s.generateCode()
	if err != nil {
		return err
	}
	token := &entity.VerificationToken{
		ID:        uuid.NewString(),
		Email:     email,
		Code:      code,
		CreatedAt: currentTime(s.clock),
	}
	if err := s.tokens.Upsert(ctx, token); err != nil {
		return err
	}

	if err := s.emailSender.SendVerificationCode(ctx, email, code); err != nil {
		s.logger.WithError(err).WithField("email", email).Error("send verification code")
		s.record("delivery_failed")
		return newError(ErrDelivery, "could not send the verification email")
	}

	s.record("issued")
	logSecurity(ctx, s.securityLogs, s.clock, s.logger, nil, ipAddress, entity.VerificationIssued, map[string]any{"email": email})
	return nil
}

// VerifyCode only checks the code; it has no side effect on users.
func (s *VerificationService) VerifyCode(ctx context.Context, email string, code string, ipAddress *string) error {
	email = utils.NormalizeEmail(email)
	token, err := s.tokens.FindByEmailAndCode(ctx, email, code)
	if err != nil {
		return err
	}
	if token == nil || token.ExpiredAt(currentTime(s.clock), s.ttl) {
		s.record("rejected")
		logSecurity(ctx, s.securityLogs, s.clock, s.logger, nil, ipAddress, entity.VerificationRejected, map[string]any{"email": email})
		return newError(ErrInvalidOrExpired, "invalid or expired code")
	}
	s.record("verified")
	return nil
}

// PurgeExpired deletes every token older than the ttl.
func (s *VerificationService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.tokens.DeleteExpired(ctx, currentTime(s.clock).Add(-s.ttl))
}

func (s *VerificationService) record(outcome string) {
	if s.recorder != nil {
		s.recorder.RecordVerification(outcome)
	}
}
