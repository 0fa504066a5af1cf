package service

import (
	"context"
	"strings"

	"classmanager/internal/dto"
	"classmanager/internal/entity"
	"classmanager/internal/repository"
	"classmanager/internal/utils"
	"classmanager/internal/validation"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const kindStudent = "student"

type StudentService struct {
	store    *repository.Store
	users    repository.UserRepository
	students repository.StudentRepository

	clock    Clock
	logger   logrus.FieldLogger
	recorder Recorder
}

func NewStudentService(store *repository.Store, clock Clock, logger logrus.FieldLogger, recorder Recorder) *StudentService {
	return &StudentService{
		store:    store,
		users:    store.Users,
		students: store.Students,
		clock:    clock,
		logger:   logger,
		recorder: recorder,
	}
}

func (s *StudentService) Create(ctx context.Context, input dto.CreateStudentRequest) (*entity.Student, error) {
	if err := requireFields(
		field{"userId", input.UserID},
		field{"cpf", input.CPF},
		field{"name", input.Name},
		field{"email", input.Email},
		field{"phone", input.Phone},
	); err != nil {
		return nil, err
	}
	if _, err := requireActingUser(ctx, s.users, input.UserID); err != nil {
		return nil, err
	}

	person, err := parsePerson(input.Registration, input.CPF, input.Name, input.Email, input.Phone, input.Status)
	if err != nil {
		return nil, err
	}
	if err := ensureUnique(ctx, s.students.Exists, kindStudent, "", person.uniqueFields()...); err != nil {
		return nil, err
	}

	createdAt := currentTime(s.clock)
	student := &entity.Student{
		ID:           uuid.NewString(),
		Registration: person.registration,
		CPF:          person.cpf,
		Name:         person.name,
		Email:        person.email,
		Phone:        person.phone,
		Status:       person.status,
		LinkedTo:     input.UserID,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	insert := func(ctx context.Context) error { return s.students.Create(ctx, student) }
	if person.registration != "" {
		err = insertOnce(ctx, kindStudent, insert)
	} else {
		err = insertGenerated(ctx, kindStudent,
			registrationFrom(s.students.Registrations),
			func(value string) { student.Registration = value },
			insert,
		)
	}
	if err != nil {
		return nil, err
	}

	recordCreated(s.recorder, kindStudent)
	s.logger.WithFields(logrus.Fields{"student_id": student.ID, "linked_to": student.LinkedTo}).Info("student created")
	return student, nil
}

func (s *StudentService) ListByOwner(ctx context.Context, userID string) ([]entity.Student, error) {
	if _, err := requireActingUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	return s.students.ListByOwner(ctx, userID)
}

func (s *StudentService) Get(ctx context.Context, id string) (*entity.Student, error) {
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, notFoundError(kindStudent)
	}
	return student, nil
}

func (s *StudentService) Update(ctx context.Context, id string, input dto.UpdateStudentRequest) (*entity.Student, error) {
	student, err := guardMutation(ctx, s.users, kindStudent, s.students.FindByID, id, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if student.Name, err = parseName(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Phone != nil {
		phone, err := parsePhone(*input.Phone)
		if err != nil {
			return nil, err
		}
		if err := ensureUnique(ctx, s.students.Exists, kindStudent, student.ID, field{repository.FieldPhone, phone}); err != nil {
			return nil, err
		}
		student.Phone = phone
	}
	if input.Status != nil {
		if student.Status, err = parseStatus(*input.Status); err != nil {
			return nil, err
		}
	}

	student.UpdatedAt = currentTime(s.clock)
	if err := updateExisting(ctx, kindStudent, func(ctx context.Context) error { return s.students.Update(ctx, student) }); err != nil {
		return nil, err
	}
	return student, nil
}

// Delete removes the student and pulls its id from every class roster, in
// one transaction where the store supports it.
func (s *StudentService) Delete(ctx context.Context, id string, userID string) error {
	if _, err := guardMutation(ctx, s.users, kindStudent, s.students.FindByID, id, userID); err != nil {
		return err
	}

	var cleaned int64
	err := s.store.Atomically(ctx, func(ctx context.Context, tx *repository.Store) error {
		deleted, err := tx.Students.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return notFoundError(kindStudent)
		}
		if cleaned, err = tx.Classes.RemoveStudent(ctx, id, currentTime(s.clock)); err != nil {
			s.logger.WithError(err).WithField("student_id", id).Error("remove deleted student from class rosters")
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{"student_id": id, "classes_updated": cleaned}).Info("student deleted")
	return nil
}

// person holds the validated fields shared by students and instructors.
type person struct {
	registration string
	cpf          string
	name         string
	email        string
	phone        string
	status       entity.PersonStatus
}

func parsePerson(registration, cpf, name, email, phone, status string) (person, error) {
	var p person
	var err error

	p.registration = strings.TrimSpace(registration)
	if p.registration != "" && !validation.Registration(p.registration) {
		return p, validationError("registration must contain 1 to 30 letters or digits")
	}
	p.cpf = strings.TrimSpace(cpf)
	if !validation.CPF(p.cpf) {
		return p, validationError("cpf must contain exactly 11 digits")
	}
	if p.name, err = parseName(name); err != nil {
		return p, err
	}
	p.email = utils.NormalizeEmail(email)
	if !validation.Email(p.email) {
		return p, validationError("email is invalid")
	}
	if p.phone, err = parsePhone(phone); err != nil {
		return p, err
	}
	p.status = entity.StatusActive
	if strings.TrimSpace(status) != "" {
		if p.status, err = parseStatus(status); err != nil {
			return p, err
		}
	}
	return p, nil
}

func (p person) uniqueFields() []field {
	return []field{
		{repository.FieldRegistration, p.registration},
		{repository.FieldCPF, p.cpf},
		{repository.FieldEmail, p.email},
		{repository.FieldPhone, p.phone},
	}
}

func parseName(value string) (string, error) {
	name := strings.TrimSpace(value)
	if !validation.PersonName(name) {
		return "", validationError("name must contain only letters and spaces, up to 100 characters")
	}
	return name, nil
}

func parsePhone(value string) (string, error) {
	phone := strings.TrimSpace(value)
	if !validation.Phone(phone) {
		return "", validationError("phone must contain 11 to 15 digits")
	}
	return phone, nil
}

func parseStatus(value string) (entity.PersonStatus, error) {
	status := entity.PersonStatus(strings.TrimSpace(value))
	if !status.Valid() {
		return "", validationError("status must be active or inactive")
	}
	return status, nil
}
