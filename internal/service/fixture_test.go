package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"classmanager/internal/dto"
	"classmanager/internal/entity"
	"classmanager/internal/metrics"
	"classmanager/internal/mocks"
	"classmanager/internal/repository"
	"classmanager/internal/service"
	"classmanager/internal/testutil"
	"classmanager/internal/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var epoch = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	db       *gorm.DB
	store    *repository.Store
	clock    *testutil.FixedClock
	email    *mocks.MockEmailSender
	registry *prometheus.Registry

	users         *service.UserService
	students      *service.StudentService
	instructors   *service.InstructorService
	classes       *service.ClassService
	verifications *service.VerificationService

	seq int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	store := repository.NewGormStore(db)
	clock := testutil.NewClock(epoch)
	logger, _ := testutil.NullLogger()
	registry := prometheus.NewRegistry()
	recorder := metrics.New(registry)
	email := new(mocks.MockEmailSender)
	issuer := service.JWTAccessIssuer{Manager: &utils.JWTManager{Secret: []byte("test-secret"), Issuer: "classmanager"}}

	return &fixture{
		db:            db,
		store:         store,
		clock:         clock,
		email:         email,
		registry:      registry,
		users:         service.NewUserService(store, mocks.PlainHasher{}, issuer, clock, logger, recorder),
		students:      service.NewStudentService(store, clock, logger, recorder),
		instructors:   service.NewInstructorService(store, clock, logger, recorder),
		classes:       service.NewClassService(store, clock, logger, recorder),
		verifications: service.NewVerificationService(store, email, clock, 5*time.Minute, logger, recorder),
	}
}

func (f *fixture) next() int {
	f.seq++
	return f.seq
}

func (f *fixture) userRequest() dto.CreateUserRequest {
	n := f.next()
	return dto.CreateUserRequest{
		Name:     "Maria Silva",
		Email:    fmt.Sprintf("teacher%d@school.com", n),
		Phone:    fmt.Sprintf("119%08d", n),
		UserName: fmt.Sprintf("teacher%d", n),
		Password: "Str0ng!Pass123",
	}
}

func (f *fixture) createUser(t *testing.T) *entity.User {
	t.Helper()
	user, err := f.users.Create(context.Background(), f.userRequest())
	require.NoError(t, err)
	return user
}

func (f *fixture) studentRequest(userID string) dto.CreateStudentRequest {
	n := f.next()
	return dto.CreateStudentRequest{
		UserID: userID,
		CPF:    fmt.Sprintf("%011d", n),
		Name:   "João Pereira",
		Email:  fmt.Sprintf("student%d@school.com", n),
		Phone:  fmt.Sprintf("219%08d", n),
	}
}

func (f *fixture) createStudent(t *testing.T, userID string) *entity.Student {
	t.Helper()
	student, err := f.students.Create(context.Background(), f.studentRequest(userID))
	require.NoError(t, err)
	return student
}

func (f *fixture) instructorRequest(userID string) dto.CreateInstructorRequest {
	n := f.next()
	return dto.CreateInstructorRequest{
		UserID:          userID,
		CPF:             fmt.Sprintf("%011d", 50000+n),
		Name:            "Ana Souza",
		Email:           fmt.Sprintf("instructor%d@school.com", n),
		Phone:           fmt.Sprintf("319%08d", n),
		Specializations: []string{"Go", "Databases"},
	}
}

func (f *fixture) createInstructor(t *testing.T, userID string) *entity.Instructor {
	t.Helper()
	instructor, err := f.instructors.Create(context.Background(), f.instructorRequest(userID))
	require.NoError(t, err)
	return instructor
}

func (f *fixture) classRequest(userID string, students ...string) dto.CreateClassRequest {
	return dto.CreateClassRequest{
		UserID:    userID,
		Course:    "Introdução à Programação",
		Modality:  string(entity.ModalityHybrid),
		Students:  students,
		StartDate: "2025-04-01",
		EndDate:   "2025-06-30",
	}
}

// createClass advances the clock so consecutive classes get distinct codes.
func (f *fixture) createClass(t *testing.T, userID string, students ...string) *entity.Class {
	t.Helper()
	f.clock.Advance(time.Millisecond)
	class, err := f.classes.Create(context.Background(), f.classRequest(userID, students...))
	require.NoError(t, err)
	return class
}

func strPtr(value string) *string {
	return &value
}
