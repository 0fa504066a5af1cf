package service

import (
	"context"
	"errors"
	"testing"

	"classmanager/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertGeneratedRetriesOnDuplicateKey(t *testing.T) {
	pool := []string{"000001"}
	var assigned string
	attempts := 0

	err := insertGenerated(context.Background(), "student",
		registrationFrom(func(context.Context) ([]string, error) { return pool, nil }),
		func(value string) { assigned = value },
		func(context.Context) error {
			attempts++
			if attempts == 1 {
				// a concurrent insert took the value we computed
				pool = append(pool, assigned)
				return repository.ErrDuplicateKey
			}
			return nil
		},
	)

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, "000003", assigned)
}

func TestInsertGeneratedGivesUpWithConflict(t *testing.T) {
	attempts := 0
	err := insertGenerated(context.Background(), "user",
		func(context.Context) (string, error) { return "000001", nil },
		func(string) {},
		func(context.Context) error {
			attempts++
			return repository.ErrDuplicateKey
		},
	)

	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, maxInsertAttempts, attempts)
}

func TestInsertGeneratedStopsOnOtherErrors(t *testing.T) {
	boom := errors.New("connection reset")
	attempts := 0
	err := insertGenerated(context.Background(), "user",
		func(context.Context) (string, error) { return "000001", nil },
		func(string) {},
		func(context.Context) error {
			attempts++
			return boom
		},
	)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)
}

func TestRequireFieldsListsEveryMissingField(t *testing.T) {
	err := requireFields(field{"name", ""}, field{"email", "a@b.co"}, field{"phone", "  "})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "missing required fields: name, phone", err.Error())
}
