package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"classmanager/internal/entity"
	"classmanager/internal/repository"
	"classmanager/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

var created = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newUser(registration, email, phone, userName string) *entity.User {
	return &entity.User{
		ID:           uuid.NewString(),
		Registration: registration,
		Name:         "Maria Silva",
		Email:        email,
		Phone:        phone,
		UserName:     userName,
		PasswordHash: "hash",
		UserProfile:  entity.UserProfileTeacher,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
}

func newStudent(ownerID, registration, cpf string) *entity.Student {
	return &entity.Student{
		ID:           uuid.NewString(),
		Registration: registration,
		CPF:          cpf,
		Name:         "João Pereira",
		Email:        cpf + "@school.com",
		Phone:        "219" + cpf[3:],
		Status:       entity.StatusActive,
		LinkedTo:     ownerID,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
}

func TestUserRepository(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	user := newUser("000001", "ana@school.com", "11987654321", "ana")
	require.NoError(t, store.Users.Create(ctx, user))

	byName, err := store.Users.FindByLogin(ctx, "ana")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := store.Users.FindByLogin(ctx, "ana@school.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)

	missing, err := store.Users.FindByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	taken, err := store.Users.Exists(ctx, repository.FieldEmail, "ana@school.com", "")
	require.NoError(t, err)
	assert.True(t, taken)

	self, err := store.Users.Exists(ctx, repository.FieldEmail, "ana@school.com", user.ID)
	require.NoError(t, err)
	assert.False(t, self)

	registrations, err := store.Users.Registrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001"}, registrations)
}

func TestDuplicateKeyIsTranslated(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	require.NoError(t, store.Users.Create(ctx, newUser("000001", "ana@school.com", "11987654321", "ana")))
	err := store.Users.Create(ctx, newUser("000001", "bia@school.com", "11987654322", "bia"))

	assert.ErrorIs(t, err, repository.ErrDuplicateKey)
}

func TestStudentFindIDsHonoursOwner(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	mine := newStudent("owner", "000001", "00000000001")
	theirs := newStudent("other", "000002", "00000000002")
	require.NoError(t, store.Students.Create(ctx, mine))
	require.NoError(t, store.Students.Create(ctx, theirs))

	found, err := store.Students.FindIDs(ctx, []string{mine.ID, theirs.ID, "ghost"}, "owner")
	require.NoError(t, err)
	assert.Equal(t, []string{mine.ID}, found)

	all, err := store.Students.FindIDs(ctx, []string{mine.ID, theirs.ID}, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{mine.ID, theirs.ID}, all)
}

func TestListByOwnerReturnsEmptySlice(t *testing.T) {
	store := testutil.NewStore(t)

	students, err := store.Students.ListByOwner(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)
}

func TestClassRemoveStudentMatchesWholeIDs(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	class := &entity.Class{
		ID:        uuid.NewString(),
		Code:      "20250310090000000",
		Course:    "Go",
		Modality:  entity.ModalityRemote,
		Students:  datatypes.JSONSlice[string]{"abc", "abcd", "xabc"},
		StartDate: created,
		EndDate:   created,
		Status:    entity.ClassNotStarted,
		LinkedTo:  "owner",
		CreatedAt: created,
		UpdatedAt: created,
	}
	require.NoError(t, store.Classes.Create(ctx, class))

	cleanedAt := created.Add(time.Hour)
	changed, err := store.Classes.RemoveStudent(ctx, "abc", cleanedAt)
	require.NoError(t, err)
	assert.Equal(t, int64(1), changed)

	reloaded, err := store.Classes.FindByID(ctx, class.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"abcd", "xabc"}, []string(reloaded.Students))
	assert.True(t, cleanedAt.Equal(reloaded.UpdatedAt))

	changed, err = store.Classes.RemoveStudent(ctx, "missing", cleanedAt)
	require.NoError(t, err)
	assert.Zero(t, changed)
}

func TestClassUnassignInstructor(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()
	instructorID := "instructor-1"

	class := &entity.Class{
		ID:           uuid.NewString(),
		Code:         "20250310090000001",
		Course:       "Go",
		Modality:     entity.ModalityInPerson,
		Students:     datatypes.JSONSlice[string]{},
		InstructorID: &instructorID,
		StartDate:    created,
		EndDate:      created,
		Status:       entity.ClassNotStarted,
		LinkedTo:     "owner",
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	require.NoError(t, store.Classes.Create(ctx, class))

	changed, err := store.Classes.UnassignInstructor(ctx, instructorID, created.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), changed)

	reloaded, err := store.Classes.FindByID(ctx, class.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.InstructorID)
	assert.True(t, created.Add(time.Hour).Equal(reloaded.UpdatedAt))
}

func TestVerificationTokenUpsertAndPurge(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	first := &entity.VerificationToken{ID: uuid.NewString(), Email: "ana@school.com", Code: "111111", CreatedAt: created}
	require.NoError(t, store.Verifications.Upsert(ctx, first))

	later := created.Add(time.Minute)
	second := &entity.VerificationToken{ID: uuid.NewString(), Email: "ana@school.com", Code: "222222", CreatedAt: later}
	require.NoError(t, store.Verifications.Upsert(ctx, second))

	stale, err := store.Verifications.FindByEmailAndCode(ctx, "ana@school.com", "111111")
	require.NoError(t, err)
	assert.Nil(t, stale)

	current, err := store.Verifications.FindByEmailAndCode(ctx, "ana@school.com", "222222")
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.True(t, current.CreatedAt.Equal(later))

	purged, err := store.Verifications.DeleteExpired(ctx, created)
	require.NoError(t, err)
	assert.Zero(t, purged)

	purged, err = store.Verifications.DeleteExpired(ctx, later)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
}

func TestSecurityLogRecentForUser(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()
	userID := "user-1"
	other := "user-2"

	for i, owner := range []*string{&userID, &userID, &other, nil, &userID} {
		require.NoError(t, store.SecurityLogs.Log(ctx, &entity.SecurityLog{
			ID:        uuid.NewString(),
			UserID:    owner,
			Action:    entity.LoginFailed,
			Metadata:  datatypes.JSON(`{"attempt":1}`),
			CreatedAt: created.Add(time.Duration(i) * time.Minute),
		}))
	}

	logs, err := store.SecurityLogs.RecentForUser(ctx, userID, 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, created.Add(4*time.Minute), logs[0].CreatedAt.UTC())
	assert.Equal(t, created.Add(time.Minute), logs[1].CreatedAt.UTC())
	assert.JSONEq(t, `{"attempt":1}`, string(logs[0].Metadata))

	none, err := store.SecurityLogs.RecentForUser(ctx, "ghost", 10)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestUpdateOfDeletedRecordDoesNotRecreateIt(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()
	student := newStudent("owner", "000001", "12345678901")
	require.NoError(t, store.Students.Create(ctx, student))

	loaded, err := store.Students.FindByID(ctx, student.ID)
	require.NoError(t, err)
	deleted, err := store.Students.Delete(ctx, student.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	loaded.Name = "Ana Souza"
	assert.ErrorIs(t, store.Students.Update(ctx, loaded), repository.ErrNoRecord)

	gone, err := store.Students.FindByID(ctx, student.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	user := newUser("000001", "ana@school.com", "11987654321", "ana")
	assert.ErrorIs(t, store.Users.Update(ctx, user), repository.ErrNoRecord)
	users, err := store.Users.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUpdateKeepsCallerTimestamp(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()
	student := newStudent("owner", "000001", "12345678901")
	require.NoError(t, store.Students.Create(ctx, student))

	student.Name = "Ana Souza"
	student.UpdatedAt = created.Add(time.Minute)
	require.NoError(t, store.Students.Update(ctx, student))

	reloaded, err := store.Students.FindByID(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", reloaded.Name)
	assert.True(t, created.Add(time.Minute).Equal(reloaded.UpdatedAt))
	assert.True(t, created.Equal(reloaded.CreatedAt))
}

func TestUpdateTranslatesDuplicates(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()
	first := newStudent("owner", "000001", "12345678901")
	second := newStudent("owner", "000002", "12345678902")
	require.NoError(t, store.Students.Create(ctx, first))
	require.NoError(t, store.Students.Create(ctx, second))

	second.Phone = first.Phone
	assert.ErrorIs(t, store.Students.Update(ctx, second), repository.ErrDuplicateKey)
}

func TestAtomicallyRollsBack(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()
	student := newStudent("owner", "000001", "12345678901")
	require.NoError(t, store.Students.Create(ctx, student))

	failure := errors.New("cleanup failed")
	err := store.Atomically(ctx, func(ctx context.Context, tx *repository.Store) error {
		deleted, err := tx.Students.Delete(ctx, student.ID)
		require.NoError(t, err)
		require.True(t, deleted)
		return failure
	})
	assert.ErrorIs(t, err, failure)

	kept, err := store.Students.FindByID(ctx, student.ID)
	require.NoError(t, err)
	assert.NotNil(t, kept)
}
