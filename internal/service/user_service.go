package service

import (
	"context"
	"strings"
	"time"

	"classmanager/internal/dto"
	"classmanager/internal/entity"
	"classmanager/internal/repository"
	"classmanager/internal/utils"
	"classmanager/internal/validation"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

const kindUser = "user"

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

type UserService struct {
	users        repository.UserRepository
	securityLogs repository.SecurityLogRepository

	passwordHash PasswordHasher
	accessTokens AccessTokenIssuer
	clock        Clock
	logger       logrus.FieldLogger
	recorder     Recorder
}

func NewUserService(
	store *repository.Store,
	passwordHash PasswordHasher,
	accessTokens AccessTokenIssuer,
	clock Clock,
	logger logrus.FieldLogger,
	recorder Recorder,
) *UserService {
	return &UserService{
		users:        store.Users,
		securityLogs: store.SecurityLogs,
		passwordHash: passwordHash,
		accessTokens: accessTokens,
		clock:        clock,
		logger:       logger,
		recorder:     recorder,
	}
}

type LoginResult struct {
	AccessToken string
	ExpiresIn   time.Duration
	User        *entity.User
}

func (s *UserService) Create(ctx context.Context, input dto.CreateUserRequest) (*entity.User, error) {
	if err := requireFields(
		field{"name", input.Name},
		field{"email", input.Email},
		field{"phone", input.Phone},
		field{"userName", input.UserName},
		field{"password", input.Password},
	); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	email := utils.NormalizeEmail(input.Email)
	phone := strings.TrimSpace(input.Phone)
	userName := strings.TrimSpace(input.UserName)

	if !validation.PersonName(name) {
		return nil, validationError("name must contain only letters and spaces, up to 100 characters")
	}
	if !validation.Email(email) {
		return nil, validationError("email is invalid")
	}
	if !validation.Phone(phone) {
		return nil, validationError("phone must contain 11 to 15 digits")
	}
	if !validation.Username(userName) {
		return nil, validationError("userName must contain 1 to 30 letters or digits")
	}
	if err := checkPassword(input.Password); err != nil {
		return nil, err
	}

	if err := ensureUnique(ctx, s.users.Exists, kindUser, "",
		field{repository.FieldEmail, email},
		field{repository.FieldPhone, phone},
		field{repository.FieldUserName, userName},
	); err != nil {
		return nil, err
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	createdAt := currentTime(s.clock)
	user := &entity.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		UserName:     userName,
		PasswordHash: hash,
		UserProfile:  entity.UserProfileTeacher,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	err = insertGenerated(ctx, kindUser,
		registrationFrom(s.users.Registrations),
		func(value string) { user.Registration = value },
		func(ctx context.Context) error { return s.users.Create(ctx, user) },
	)
	if err != nil {
		return nil, err
	}

	recordCreated(s.recorder, kindUser)
	s.logger.WithFields(logrus.Fields{"user_id": user.ID, "registration": user.Registration}).Info("user created")
	return user, nil
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]entity.User, error) {
	return s.users.List(ctx, limit, offset)
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFoundError(kindUser)
	}
	return user, nil
}

// RecentActivity lists the user's latest audit entries, newest first.
func (s *UserService) RecentActivity(ctx context.Context, userID string, limit int) ([]entity.SecurityLog, error) {
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}
	switch {
	case limit <= 0:
		limit = defaultActivityLimit
	case limit > maxActivityLimit:
		limit = maxActivityLimit
	}
	return s.securityLogs.RecentForUser(ctx, userID, limit)
}

// Update changes name, phone or password of the acting user's own account.
func (s *UserService) Update(ctx context.Context, id string, input dto.UpdateUserRequest) (*entity.User, error) {
	user, err := guardMutation(ctx, s.users, kindUser, s.users.FindByID, id, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if !validation.PersonName(name) {
			return nil, validationError("name must contain only letters and spaces, up to 100 characters")
		}
		user.Name = name
	}
	if input.Phone != nil {
		phone := strings.TrimSpace(*input.Phone)
		if !validation.Phone(phone) {
			return nil, validationError("phone must contain 11 to 15 digits")
		}
		if err := ensureUnique(ctx, s.users.Exists, kindUser, user.ID, field{repository.FieldPhone, phone}); err != nil {
			return nil, err
		}
		user.Phone = phone
	}
	if input.Password != nil {
		if err := checkPassword(*input.Password); err != nil {
			return nil, err
		}
		hash, err := s.passwordHash.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	user.UpdatedAt = currentTime(s.clock)
	if err := updateExisting(ctx, kindUser, func(ctx context.Context) error { return s.users.Update(ctx, user) }); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string, userID string) error {
	if _, err := guardMutation(ctx, s.users, kindUser, s.users.FindByID, id, userID); err != nil {
		return err
	}
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return notFoundError(kindUser)
	}
	s.logger.WithField("user_id", id).Info("user deleted")
	return nil
}

// Login accepts either the userName or the email together with the password.
func (s *UserService) Login(ctx context.Context, input dto.LoginRequest, ipAddress *string) (*LoginResult, error) {
	login := strings.TrimSpace(input.UserName)
	if login == "" {
		login = utils.NormalizeEmail(input.Email)
	}
	if login == "" || input.Password == "" {
		return nil, validationError("userName or email and password are required")
	}

	user, err := s.users.FindByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = s.passwordHash.Verify(dummyPasswordHash, input.Password)
		logSecurity(ctx, s.securityLogs, s.clock, s.logger, nil, ipAddress, entity.LoginFailed, map[string]any{"login": login})
		return nil, newError(ErrAuthentication, "invalid credentials")
	}
	if !s.passwordHash.Verify(user.PasswordHash, input.Password) {
		logSecurity(ctx, s.securityLogs, s.clock, s.logger, &user.ID, ipAddress, entity.LoginFailed, map[string]any{"login": login})
		return nil, newError(ErrAuthentication, "invalid credentials")
	}

	token, expiresIn, err := s.accessTokens.IssueAccessToken(*user)
	if err != nil {
		return nil, err
	}
	logSecurity(ctx, s.securityLogs, s.clock, s.logger, &user.ID, ipAddress, entity.LoginSuccess, nil)
	return &LoginResult{AccessToken: token, ExpiresIn: expiresIn, User: user}, nil
}

func checkPassword(password string) error {
	if failed := validation.Password(password); len(failed) > 0 {
		return validationError("password %s", strings.Join(failed, "; "))
	}
	return nil
}
