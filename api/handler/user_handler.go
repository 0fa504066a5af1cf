package handler

import (
	"errors"
	"net/http"

	"classmanager/api/middleware"
	"classmanager/internal/dto"
	"classmanager/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type UserHandler struct {
	base
	Service       *service.UserService
	Verifications *service.VerificationService
}

func NewUserHandler(
	svc *service.UserService,
	verifications *service.VerificationService,
	validate *validator.Validate,
	logger logrus.FieldLogger,
) *UserHandler {
	return &UserHandler{
		base:          base{Validate: validate, Logger: logger},
		Service:       svc,
		Verifications: verifications,
	}
}

func (h *UserHandler) Create(c echo.Context) error {
	var req dto.CreateUserRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	user, err := h.Service.Create(c.Request().Context(), req)
	if err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "user created",
		"user":    dto.UserResponseFromEntity(user),
	})
}

func (h *UserHandler) List(c echo.Context) error {
	limit, offset := parseLimitOffset(c)
	users, err := h.Service.List(c.Request().Context(), limit, offset)
	if err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "users found",
		"users":   dto.UserResponsesFromEntities(users),
	})
}

func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.Service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "user found",
		"user":    dto.UserResponseFromEntity(user),
	})
}

func (h *UserHandler) Update(c echo.Context) error {
	var req dto.UpdateUserRequest
	if err := decodePatch(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	user, err := h.Service.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "user updated",
		"user":    dto.UserResponseFromEntity(user),
	})
}

func (h *UserHandler) Delete(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.Delete(c.Request().Context(), c.Param("id"), userID); err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user deleted"})
}

func (h *UserHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	result, err := h.Service.Login(c.Request().Context(), req, stringPtr(c.RealIP()))
	if err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "login successful",
		"session": dto.LoginResponse{
			AccessToken: result.AccessToken,
			TokenType:   "Bearer",
			ExpiresIn:   int64(result.ExpiresIn.Seconds()),
			User:        dto.UserResponseFromEntity(result.User),
		},
	})
}

func (h *UserHandler) Me(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	user, err := h.Service.Get(c.Request().Context(), userID)
	if err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "user found",
		"user":    dto.UserResponseFromEntity(user),
	})
}

func (h *UserHandler) Activity(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	limit, _ := parseLimitOffset(c)
	logs, err := h.Service.RecentActivity(c.Request().Context(), userID, limit)
	if err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":  "activity found",
		"activity": dto.ActivityResponsesFromEntities(logs),
	})
}

func (h *UserHandler) RequestEmailVerification(c echo.Context) error {
	var req dto.RequestVerificationRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Verifications.RequestCode(c.Request().Context(), req.Email, stringPtr(c.RealIP())); err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "verification code sent"})
}

func (h *UserHandler) VerifyEmailCode(c echo.Context) error {
	var req dto.VerifyCodeRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Verifications.VerifyCode(c.Request().Context(), req.Email, req.Code, stringPtr(c.RealIP())); err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "email verified"})
}
