package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"classmanager/internal/dto"
	"classmanager/internal/entity"
	"classmanager/internal/repository"
	"classmanager/internal/service"
	"classmanager/internal/testutil"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStudentLinksToActingUser(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t)

	student := f.createStudent(t, user.ID)

	assert.Equal(t, user.ID, student.LinkedTo)
	assert.Equal(t, "000001", student.Registration)
	assert.Equal(t, entity.StatusActive, student.Status)
}

func TestCreateStudentKeepsSuppliedRegistration(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t)
	req := f.studentRequest(user.ID)
	req.Registration = "000041"

	student, err := f.students.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "000041", student.Registration)

	next := f.createStudent(t, user.ID)
	assert.Equal(t, "000042", next.Registration)

	dup := f.studentRequest(user.ID)
	dup.Registration = "000041"
	_, err = f.students.Create(context.Background(), dup)
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestCreateStudentRequiresExistingUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.students.Create(context.Background(), f.studentRequest("ghost"))
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = f.students.Create(context.Background(), f.studentRequest(""))
	require.ErrorIs(t, err, service.ErrValidation)
	assert.Contains(t, err.Error(), "userId")
}

func TestCreateStudentValidation(t *testing.T) {
	cases := map[string]func(*dto.CreateStudentRequest){
		"cpf":          func(r *dto.CreateStudentRequest) { r.CPF = "123.456.789-01" },
		"name":         func(r *dto.CreateStudentRequest) { r.Name = "Jo_ana" },
		"email":        func(r *dto.CreateStudentRequest) { r.Email = "joana@" },
		"phone":        func(r *dto.CreateStudentRequest) { r.Phone = "(11)98765-4321" },
		"registration": func(r *dto.CreateStudentRequest) { r.Registration = "A-1" },
		"status":       func(r *dto.CreateStudentRequest) { r.Status = "graduated" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			user := f.createUser(t)
			req := f.studentRequest(user.ID)
			mutate(&req)

			_, err := f.students.Create(context.Background(), req)
			require.ErrorIs(t, err, service.ErrValidation)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestCreateStudentRejectsDuplicateCPF(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t)
	existing := f.createStudent(t, user.ID)

	req := f.studentRequest(user.ID)
	req.CPF = existing.CPF
	_, err := f.students.Create(context.Background(), req)

	require.ErrorIs(t, err, service.ErrConflict)
	assert.Contains(t, err.Error(), "cpf")
}

func TestListStudentsByOwner(t *testing.T) {
	f := newFixture(t)
	owner := f.createUser(t)
	other := f.createUser(t)
	f.createStudent(t, owner.ID)
	f.createStudent(t, owner.ID)
	f.createStudent(t, other.ID)

	mine, err := f.students.ListByOwner(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	loner := f.createUser(t)
	none, err := f.students.ListByOwner(context.Background(), loner.ID)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = f.students.ListByOwner(context.Background(), "ghost")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestUpdateStudent(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t)
	student := f.createStudent(t, user.ID)

	updated, err := f.students.Update(context.Background(), student.ID, dto.UpdateStudentRequest{
		UserID: user.ID,
		Name:   strPtr("Joana Lima"),
		Status: strPtr("inactive"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Joana Lima", updated.Name)
	assert.Equal(t, entity.StatusInactive, updated.Status)
	assert.Equal(t, student.CPF, updated.CPF)

	_, err = f.students.Update(context.Background(), student.ID, dto.UpdateStudentRequest{UserID: user.ID, Status: strPtr("paused")})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestDeleteStudentOfAnotherUserIsDenied(t *testing.T) {
	f := newFixture(t)
	owner := f.createUser(t)
	intruder := f.createUser(t)
	student := f.createStudent(t, owner.ID)

	err := f.students.Delete(context.Background(), student.ID, intruder.ID)
	assert.ErrorIs(t, err, service.ErrAccessDenied)

	still, err := f.students.Get(context.Background(), student.ID)
	require.NoError(t, err)
	assert.Equal(t, student.ID, still.ID)
}

func TestDeleteStudentCleansClassRosters(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t)
	leaving := f.createStudent(t, user.ID)
	staying := f.createStudent(t, user.ID)
	both := f.createClass(t, user.ID, leaving.ID, staying.ID)
	onlyLeaving := f.createClass(t, user.ID, leaving.ID)
	unrelated := f.createClass(t, user.ID, staying.ID)

	require.NoError(t, f.students.Delete(context.Background(), leaving.ID, user.ID))

	for _, tc := range []struct {
		id   string
		want []string
	}{
		{both.ID, []string{staying.ID}},
		{onlyLeaving.ID, []string{}},
		{unrelated.ID, []string{staying.ID}},
	} {
		class, err := f.classes.Get(context.Background(), tc.id)
		require.NoError(t, err)
		assert.Equal(t, tc.want, []string(class.Students))
	}

	_, err := f.students.Get(context.Background(), leaving.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

// deletedAfterLoad removes the student right after handing it out, the way a
// concurrent delete would between the ownership check and the write.
type deletedAfterLoad struct {
	repository.StudentRepository
}

func (r deletedAfterLoad) FindByID(ctx context.Context, id string) (*entity.Student, error) {
	student, err := r.StudentRepository.FindByID(ctx, id)
	if err != nil || student == nil {
		return student, err
	}
	if _, err := r.StudentRepository.Delete(ctx, id); err != nil {
		return nil, err
	}
	return student, nil
}

func TestUpdateStudentDeletedConcurrentlyIsNotFound(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t)
	student := f.createStudent(t, user.ID)

	racy := *f.store
	racy.Students = deletedAfterLoad{StudentRepository: f.store.Students}
	logger, _ := testutil.NullLogger()
	students := service.NewStudentService(&racy, f.clock, logger, nil)

	_, err := students.Update(context.Background(), student.ID, dto.UpdateStudentRequest{
		UserID: user.ID,
		Name:   strPtr("Ana Souza"),
	})
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = f.students.Get(context.Background(), student.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

type failingRosters struct {
	repository.ClassRepository
}

func (failingRosters) RemoveStudent(context.Context, string, time.Time) (int64, error) {
	return 0, errors.New("classes unavailable")
}

func TestDeleteStudentLogsRosterCleanupFailure(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t)
	student := f.createStudent(t, user.ID)

	store := &repository.Store{
		Users:    f.store.Users,
		Students: f.store.Students,
		Classes:  failingRosters{ClassRepository: f.store.Classes},
	}
	logger, hook := testutil.NullLogger()
	students := service.NewStudentService(store, f.clock, logger, nil)

	err := students.Delete(context.Background(), student.ID, user.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrNotFound)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, student.ID, entry.Data["student_id"])
}

func TestUpdateStudentKeepsServiceClock(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t)
	student := f.createStudent(t, user.ID)

	f.clock.Advance(time.Hour)
	_, err := f.students.Update(context.Background(), student.ID, dto.UpdateStudentRequest{
		UserID: user.ID,
		Status: strPtr("inactive"),
	})
	require.NoError(t, err)

	reloaded, err := f.students.Get(context.Background(), student.ID)
	require.NoError(t, err)
	assert.True(t, f.clock.Now().Equal(reloaded.UpdatedAt))
	assert.True(t, student.CreatedAt.Equal(reloaded.CreatedAt))
}
