package service

import (
	"context"
	"strings"
	"time"

	"classmanager/internal/dto"
	"classmanager/internal/entity"
	"classmanager/internal/repository"
	"classmanager/internal/validation"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

const kindClass = "class"

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

type ClassService struct {
	users       repository.UserRepository
	students    repository.StudentRepository
	instructors repository.InstructorRepository
	classes     repository.ClassRepository

	clock    Clock
	logger   logrus.FieldLogger
	recorder Recorder
}

func NewClassService(store *repository.Store, clock Clock, logger logrus.FieldLogger, recorder Recorder) *ClassService {
	return &ClassService{
		users:       store.Users,
		students:    store.Students,
		instructors: store.Instructors,
		classes:     store.Classes,
		clock:       clock,
		logger:      logger,
		recorder:    recorder,
	}
}

func (s *ClassService) Create(ctx context.Context, input dto.CreateClassRequest) (*entity.Class, error) {
	if err := requireFields(
		field{"userId", input.UserID},
		field{"course", input.Course},
		field{"modality", input.Modality},
		field{"startDate", input.StartDate},
		field{"endDate", input.EndDate},
	); err != nil {
		return nil, err
	}
	if _, err := requireActingUser(ctx, s.users, input.UserID); err != nil {
		return nil, err
	}

	class := &entity.Class{
		ID:       uuid.NewString(),
		Status:   entity.ClassNotStarted,
		LinkedTo: input.UserID,
	}
	var err error
	if class.Course, err = parseCourse(input.Course); err != nil {
		return nil, err
	}
	if class.Modality, err = parseModality(input.Modality); err != nil {
		return nil, err
	}
	if class.StartDate, err = parseDate("startDate", input.StartDate); err != nil {
		return nil, err
	}
	if class.EndDate, err = parseDate("endDate", input.EndDate); err != nil {
		return nil, err
	}
	if err := checkDateRange(class.StartDate, class.EndDate); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Status) != "" {
		if class.Status, err = parseClassStatus(input.Status); err != nil {
			return nil, err
		}
	}
	if class.Students, err = s.resolveStudents(ctx, input.Students, input.UserID); err != nil {
		return nil, err
	}
	if class.InstructorID, err = s.resolveInstructor(ctx, input.Instructor, input.UserID); err != nil {
		return nil, err
	}

	err = insertGenerated(ctx, kindClass,
		func(context.Context) (string, error) {
			createdAt := currentTime(s.clock)
			class.CreatedAt, class.UpdatedAt = createdAt, createdAt
			return classCode(createdAt), nil
		},
		func(value string) { class.Code = value },
		func(ctx context.Context) error { return s.classes.Create(ctx, class) },
	)
	if err != nil {
		return nil, err
	}

	recordCreated(s.recorder, kindClass)
	s.logger.WithFields(logrus.Fields{"class_id": class.ID, "code": class.Code, "students": len(class.Students)}).Info("class created")
	return class, nil
}

func (s *ClassService) ListByOwner(ctx context.Context, userID string) ([]entity.Class, error) {
	if _, err := requireActingUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	return s.classes.ListByOwner(ctx, userID)
}

func (s *ClassService) Get(ctx context.Context, id string) (*entity.Class, error) {
	class, err := s.classes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, notFoundError(kindClass)
	}
	return class, nil
}

func (s *ClassService) Update(ctx context.Context, id string, input dto.UpdateClassRequest) (*entity.Class, error) {
	class, err := guardMutation(ctx, s.users, kindClass, s.classes.FindByID, id, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Course != nil {
		if class.Course, err = parseCourse(*input.Course); err != nil {
			return nil, err
		}
	}
	if input.Modality != nil {
		if class.Modality, err = parseModality(*input.Modality); err != nil {
			return nil, err
		}
	}
	if input.StartDate != nil {
		if class.StartDate, err = parseDate("startDate", *input.StartDate); err != nil {
			return nil, err
		}
	}
	if input.EndDate != nil {
		if class.EndDate, err = parseDate("endDate", *input.EndDate); err != nil {
			return nil, err
		}
	}
	if err := checkDateRange(class.StartDate, class.EndDate); err != nil {
		return nil, err
	}
	if input.Status != nil {
		if class.Status, err = parseClassStatus(*input.Status); err != nil {
			return nil, err
		}
	}
	if input.Students != nil {
		if class.Students, err = s.resolveStudents(ctx, input.Students, input.UserID); err != nil {
			return nil, err
		}
	}
	if input.Instructor != nil {
		if class.InstructorID, err = s.resolveInstructor(ctx, input.Instructor, input.UserID); err != nil {
			return nil, err
		}
	}

	class.UpdatedAt = currentTime(s.clock)
	if err := updateExisting(ctx, kindClass, func(ctx context.Context) error { return s.classes.Update(ctx, class) }); err != nil {
		return nil, err
	}
	return class, nil
}

func (s *ClassService) Delete(ctx context.Context, id string, userID string) error {
	if _, err := guardMutation(ctx, s.users, kindClass, s.classes.FindByID, id, userID); err != nil {
		return err
	}
	deleted, err := s.classes.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return notFoundError(kindClass)
	}
	s.logger.WithField("class_id", id).Info("class deleted")
	return nil
}

// resolveStudents deduplicates ids and requires each to be a student linked
// to userID.
func (s *ClassService) resolveStudents(ctx context.Context, ids []string, userID string) (datatypes.JSONSlice[string], error) {
	roster := make(datatypes.JSONSlice[string], 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		roster = append(roster, id)
	}
	if len(roster) > entity.MaxClassStudents {
		return nil, validationError("a class holds at most %d students", entity.MaxClassStudents)
	}
	if len(roster) == 0 {
		return roster, nil
	}

	found, err := s.students.FindIDs(ctx, roster, userID)
	if err != nil {
		return nil, err
	}
	if len(found) != len(roster) {
		known := make(map[string]struct{}, len(found))
		for _, id := range found {
			known[id] = struct{}{}
		}
		var missing []string
		for _, id := range roster {
			if _, ok := known[id]; !ok {
				missing = append(missing, id)
			}
		}
		return nil, validationError("students not found for this user: %s", strings.Join(missing, ", "))
	}
	return roster, nil
}

// resolveInstructor returns nil for an empty id, which leaves the class
// without an instructor.
func (s *ClassService) resolveInstructor(ctx context.Context, id *string, userID string) (*string, error) {
	if id == nil {
		return nil, nil
	}
	value := strings.TrimSpace(*id)
	if value == "" {
		return nil, nil
	}
	instructor, err := s.instructors.FindByID(ctx, value)
	if err != nil {
		return nil, err
	}
	if instructor == nil || instructor.LinkedTo != userID {
		return nil, validationError("instructor not found for this user")
	}
	return &value, nil
}

// classCode renders the creation instant as 17 digits, milliseconds included.
func classCode(at time.Time) string {
	return strings.Replace(at.Format("20060102150405.000"), ".", "", 1)
}

func parseCourse(value string) (string, error) {
	course := strings.TrimSpace(value)
	if !validation.Course(course) {
		return "", validationError("course must have 1 to 80 characters on a single line")
	}
	return course, nil
}

func parseModality(value string) (entity.Modality, error) {
	modality := entity.Modality(strings.TrimSpace(value))
	if !modality.Valid() {
		return "", validationError("modality must be in-person, hybrid or remote")
	}
	return modality, nil
}

func parseClassStatus(value string) (entity.ClassStatus, error) {
	status := entity.ClassStatus(strings.TrimSpace(value))
	if !status.Valid() {
		return "", validationError("status must be not_started, in_progress, completed or cancelled")
	}
	return status, nil
}

func parseDate(name string, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, validationError("%s must be a date (YYYY-MM-DD) or an RFC 3339 timestamp", name)
}

func checkDateRange(start, end time.Time) error {
	if end.Before(start) {
		return validationError("endDate must not be before startDate")
	}
	return nil
}
