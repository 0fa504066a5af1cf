package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"classmanager/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// NewValidator reports fields by their JSON names.
func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// base carries what every handler needs to decode requests and map errors.
type base struct {
	Validate *validator.Validate
	Logger   logrus.FieldLogger
}

func (h base) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	err := h.Validate.Struct(payload)
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		messages := make([]string, 0, len(fieldErrors))
		for _, fe := range fieldErrors {
			messages = append(messages, describeFieldError(fe))
		}
		return errors.New(strings.Join(messages, "; "))
	}
	return err
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return fe.Field() + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "email":
		return fe.Field() + " must be a valid email"
	case "len":
		return fmt.Sprintf("%s must have %s characters", fe.Field(), fe.Param())
	case "numeric":
		return fe.Field() + " must contain only digits"
	}
	return fe.Field() + " is invalid"
}

// writeServiceError maps workflow errors to statuses. Anything unclassified
// is logged and hidden behind a generic message.
func (h base) writeServiceError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrInvalidOrExpired):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrAuthentication):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrAccessDenied):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrDelivery):
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).WithFields(logrus.Fields{
				"method": c.Request().Method,
				"path":   c.Path(),
			}).Error("unexpected error")
		}
		return writeError(c, status, errors.New("internal server error"))
	}
	return writeError(c, status, err)
}

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// decodePatch tolerates unknown fields so that immutable attributes sent
// back by clients are silently dropped.
func decodePatch(c echo.Context, target any) error {
	if err := json.NewDecoder(c.Request().Body).Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeError(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"message": err.Error()})
}

// actingUserID reads userId from the query string, then from the body.
func actingUserID(c echo.Context) (string, error) {
	if userID := strings.TrimSpace(c.QueryParam("userId")); userID != "" {
		return userID, nil
	}
	var body struct {
		UserID string `json:"userId"`
	}
	if err := decodePatch(c, &body); err != nil {
		return "", err
	}
	return strings.TrimSpace(body.UserID), nil
}

func parseLimitOffset(c echo.Context) (int, int) {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func stringPtr(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
