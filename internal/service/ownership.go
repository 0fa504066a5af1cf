package service

import (
	"context"
	"strings"

	"classmanager/internal/entity"
	"classmanager/internal/repository"
)

type ownedRecord interface {
	OwnerID() string
}

// assertOwned loads the record and checks it is linked to userID.
func assertOwned[E ownedRecord](
	ctx context.Context,
	kind string,
	lookup func(ctx context.Context, id string) (*E, error),
	id string,
	userID string,
) (*E, error) {
	record, err := lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, notFoundError(kind)
	}
	if (*record).OwnerID() != userID {
		return nil, newError(ErrAccessDenied, "%s belongs to another user", kind)
	}
	return record, nil
}

func requireActingUser(ctx context.Context, users repository.UserRepository, userID string) (*entity.User, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, validationError("userId is required")
	}
	user, err := users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFoundError("user")
	}
	return user, nil
}

// guardMutation applies the ownership checks shared by update and delete.
func guardMutation[E ownedRecord](
	ctx context.Context,
	users repository.UserRepository,
	kind string,
	lookup func(ctx context.Context, id string) (*E, error),
	id string,
	userID string,
) (*E, error) {
	if _, err := requireActingUser(ctx, users, userID); err != nil {
		return nil, err
	}
	return assertOwned(ctx, kind, lookup, id, userID)
}

var fieldLabels = map[string]string{
	repository.FieldRegistration: "registration",
	repository.FieldCPF:          "cpf",
	repository.FieldEmail:        "email",
	repository.FieldPhone:        "phone",
	repository.FieldUserName:     "userName",
	repository.FieldCode:         "code",
}

type existsFunc func(ctx context.Context, field string, value string, excludeID string) (bool, error)

// ensureUnique rejects the first field whose value is already taken by a
// record other than excludeID.
func ensureUnique(ctx context.Context, exists existsFunc, kind string, excludeID string, fields ...field) error {
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		taken, err := exists(ctx, f.name, f.value, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return conflictError("a %s with this %s already exists", kind, fieldLabels[f.name])
		}
	}
	return nil
}
