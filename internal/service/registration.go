package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"classmanager/internal/repository"
)

const maxInsertAttempts = 3

// NextRegistration returns the successor of the numerically highest value in
// existing, zero-padded to six digits. Non-numeric values are ignored.
func NextRegistration(existing []string) string {
	highest := 0
	for _, value := range existing {
		if !allDigits(value) {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%06d", highest+1)
}

func allDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// insertGenerated assigns a freshly generated unique value and inserts,
// recomputing the value when the store reports a duplicate key.
func insertGenerated(
	ctx context.Context,
	kind string,
	generate func(ctx context.Context) (string, error),
	assign func(value string),
	insert func(ctx context.Context) error,
) error {
	for attempt := 0; attempt < maxInsertAttempts; attempt++ {
		value, err := generate(ctx)
		if err != nil {
			return err
		}
		assign(value)
		err = insert(ctx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrDuplicateKey) {
			return err
		}
	}
	return conflictError("could not register %s, a concurrent request took the same identifier", kind)
}

func registrationFrom(pool func(ctx context.Context) ([]string, error)) func(ctx context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		existing, err := pool(ctx)
		if err != nil {
			return "", err
		}
		return NextRegistration(existing), nil
	}
}

// insertOnce is used when every unique value came from the client.
func insertOnce(ctx context.Context, kind string, insert func(ctx context.Context) error) error {
	err := insert(ctx)
	if errors.Is(err, repository.ErrDuplicateKey) {
		return conflictError("%s already registered", kind)
	}
	return err
}

// updateExisting writes back a record loaded earlier in the workflow. A
// record deleted in the meantime is reported as not found.
func updateExisting(ctx context.Context, kind string, update func(ctx context.Context) error) error {
	err := update(ctx)
	switch {
	case errors.Is(err, repository.ErrNoRecord):
		return notFoundError(kind)
	case errors.Is(err, repository.ErrDuplicateKey):
		return conflictError("%s already registered", kind)
	}
	return err
}
