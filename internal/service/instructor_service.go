package service

import (
	"context"
	"strings"

	"classmanager/internal/dto"
	"classmanager/internal/entity"
	"classmanager/internal/repository"
	"classmanager/internal/validation"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

const kindInstructor = "instructor"

type InstructorService struct {
	store       *repository.Store
	users       repository.UserRepository
	instructors repository.InstructorRepository

	clock    Clock
	logger   logrus.FieldLogger
	recorder Recorder
}

func NewInstructorService(store *repository.Store, clock Clock, logger logrus.FieldLogger, recorder Recorder) *InstructorService {
	return &InstructorService{
		store:       store,
		users:       store.Users,
		instructors: store.Instructors,
		clock:       clock,
		logger:      logger,
		recorder:    recorder,
	}
}

func (s *InstructorService) Create(ctx context.Context, input dto.CreateInstructorRequest) (*entity.Instructor, error) {
	if err := requireFields(
		field{"userId", input.UserID},
		field{"cpf", input.CPF},
		field{"name", input.Name},
		field{"email", input.Email},
		field{"phone", input.Phone},
	); err != nil {
		return nil, err
	}
	if len(input.Specializations) == 0 {
		return nil, validationError("missing required fields: specializations")
	}
	if _, err := requireActingUser(ctx, s.users, input.UserID); err != nil {
		return nil, err
	}

	person, err := parsePerson(input.Registration, input.CPF, input.Name, input.Email, input.Phone, input.Status)
	if err != nil {
		return nil, err
	}
	specializations, err := parseSpecializations(input.Specializations)
	if err != nil {
		return nil, err
	}
	if err := ensureUnique(ctx, s.instructors.Exists, kindInstructor, "", person.uniqueFields()...); err != nil {
		return nil, err
	}

	createdAt := currentTime(s.clock)
	instructor := &entity.Instructor{
		ID:              uuid.NewString(),
		Registration:    person.registration,
		CPF:             person.cpf,
		Name:            person.name,
		Email:           person.email,
		Phone:           person.phone,
		Specializations: specializations,
		Status:          person.status,
		LinkedTo:        input.UserID,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}
	insert := func(ctx context.Context) error { return s.instructors.Create(ctx, instructor) }
	if person.registration != "" {
		err = insertOnce(ctx, kindInstructor, insert)
	} else {
		err = insertGenerated(ctx, kindInstructor,
			registrationFrom(s.instructors.Registrations),
			func(value string) { instructor.Registration = value },
			insert,
		)
	}
	if err != nil {
		return nil, err
	}

	recordCreated(s.recorder, kindInstructor)
	s.logger.WithFields(logrus.Fields{"instructor_id": instructor.ID, "linked_to": instructor.LinkedTo}).Info("instructor created")
	return instructor, nil
}

func (s *InstructorService) ListByOwner(ctx context.Context, userID string) ([]entity.Instructor, error) {
	if _, err := requireActingUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	return s.instructors.ListByOwner(ctx, userID)
}

func (s *InstructorService) Get(ctx context.Context, id string) (*entity.Instructor, error) {
	instructor, err := s.instructors.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if instructor == nil {
		return nil, notFoundError(kindInstructor)
	}
	return instructor, nil
}

func (s *InstructorService) Update(ctx context.Context, id string, input dto.UpdateInstructorRequest) (*entity.Instructor, error) {
	instructor, err := guardMutation(ctx, s.users, kindInstructor, s.instructors.FindByID, id, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if instructor.Name, err = parseName(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Phone != nil {
		phone, err := parsePhone(*input.Phone)
		if err != nil {
			return nil, err
		}
		if err := ensureUnique(ctx, s.instructors.Exists, kindInstructor, instructor.ID, field{repository.FieldPhone, phone}); err != nil {
			return nil, err
		}
		instructor.Phone = phone
	}
	if input.Status != nil {
		if instructor.Status, err = parseStatus(*input.Status); err != nil {
			return nil, err
		}
	}
	if input.Specializations != nil {
		if instructor.Specializations, err = parseSpecializations(input.Specializations); err != nil {
			return nil, err
		}
	}

	instructor.UpdatedAt = currentTime(s.clock)
	if err := updateExisting(ctx, kindInstructor, func(ctx context.Context) error { return s.instructors.Update(ctx, instructor) }); err != nil {
		return nil, err
	}
	return instructor, nil
}

// Delete removes the instructor and unassigns it from its classes, in one
// transaction where the store supports it.
func (s *InstructorService) Delete(ctx context.Context, id string, userID string) error {
	if _, err := guardMutation(ctx, s.users, kindInstructor, s.instructors.FindByID, id, userID); err != nil {
		return err
	}

	var cleaned int64
	err := s.store.Atomically(ctx, func(ctx context.Context, tx *repository.Store) error {
		deleted, err := tx.Instructors.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return notFoundError(kindInstructor)
		}
		if cleaned, err = tx.Classes.UnassignInstructor(ctx, id, currentTime(s.clock)); err != nil {
			s.logger.WithError(err).WithField("instructor_id", id).Error("unassign deleted instructor from classes")
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{"instructor_id": id, "classes_updated": cleaned}).Info("instructor deleted")
	return nil
}

func parseSpecializations(values []string) (datatypes.JSONSlice[string], error) {
	if len(values) == 0 {
		return nil, validationError("specializations must list at least one entry")
	}
	tags := make(datatypes.JSONSlice[string], 0, len(values))
	for _, value := range values {
		if !validation.Specialization(value) {
			return nil, validationError("each specialization must have 1 to 50 characters")
		}
		tags = append(tags, strings.TrimSpace(value))
	}
	return tags, nil
}
