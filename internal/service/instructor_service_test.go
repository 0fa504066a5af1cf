package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"classmanager/internal/dto"
	"classmanager/internal/repository"
	"classmanager/internal/service"
	"classmanager/internal/testutil"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInstructor(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t)
	req := f.instructorRequest(user.ID)
	req.Specializations = []string{"  Go ", "Databases"}

	instructor, err := f.instructors.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, user.ID, instructor.LinkedTo)
	assert.Equal(t, "000001", instructor.Registration)
	assert.Equal(t, []string{"Go", "Databases"}, []string(instructor.Specializations))

	found, err := f.instructors.Get(context.Background(), instructor.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Databases"}, []string(found.Specializations))
}

func TestCreateInstructorRequiresSpecializations(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t)

	req := f.instructorRequest(user.ID)
	req.Specializations = nil
	_, err := f.instructors.Create(context.Background(), req)
	require.ErrorIs(t, err, service.ErrValidation)
	assert.Contains(t, err.Error(), "specializations")

	req = f.instructorRequest(user.ID)
	req.Specializations = []string{"Go", strings.Repeat("x", 51)}
	_, err = f.instructors.Create(context.Background(), req)
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestUpdateInstructorSpecializations(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t)
	instructor := f.createInstructor(t, user.ID)

	updated, err := f.instructors.Update(context.Background(), instructor.ID, dto.UpdateInstructorRequest{
		UserID:          user.ID,
		Specializations: []string{"Kubernetes"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Kubernetes"}, []string(updated.Specializations))
	assert.Equal(t, instructor.Name, updated.Name)

	_, err = f.instructors.Update(context.Background(), instructor.ID, dto.UpdateInstructorRequest{
		UserID:          user.ID,
		Specializations: []string{},
	})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestDeleteInstructorUnassignsClasses(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t)
	instructor := f.createInstructor(t, user.ID)

	req := f.classRequest(user.ID)
	req.Instructor = &instructor.ID
	class, err := f.classes.Create(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, class.InstructorID)

	other := f.createUser(t)
	assert.ErrorIs(t, f.instructors.Delete(context.Background(), instructor.ID, other.ID), service.ErrAccessDenied)

	require.NoError(t, f.instructors.Delete(context.Background(), instructor.ID, user.ID))

	reloaded, err := f.classes.Get(context.Background(), class.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.InstructorID)
}

type failingAssignments struct {
	repository.ClassRepository
}

func (failingAssignments) UnassignInstructor(context.Context, string, time.Time) (int64, error) {
	return 0, errors.New("classes unavailable")
}

func TestDeleteInstructorLogsUnassignFailure(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t)
	instructor := f.createInstructor(t, user.ID)

	store := &repository.Store{
		Users:       f.store.Users,
		Instructors: f.store.Instructors,
		Classes:     failingAssignments{ClassRepository: f.store.Classes},
	}
	logger, hook := testutil.NullLogger()
	instructors := service.NewInstructorService(store, f.clock, logger, nil)

	err := instructors.Delete(context.Background(), instructor.ID, user.ID)
	require.Error(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, instructor.ID, entry.Data["instructor_id"])
}
