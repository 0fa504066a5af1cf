package handler

import (
	"net/http"

	"classmanager/internal/dto"
	"classmanager/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type InstructorHandler struct {
	base
	Service *service.InstructorService
}

func NewInstructorHandler(svc *service.InstructorService, validate *validator.Validate, logger logrus.FieldLogger) *InstructorHandler {
	return &InstructorHandler{base: base{Validate: validate, Logger: logger}, Service: svc}
}

func (h *InstructorHandler) Create(c echo.Context) error {
	var req dto.CreateInstructorRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	instructor, err := h.Service.Create(c.Request().Context(), req)
	if err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"message": "instructor created", "instructor": instructor})
}

func (h *InstructorHandler) List(c echo.Context) error {
	instructors, err := h.Service.ListByOwner(c.Request().Context(), c.QueryParam("userId"))
	if err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "instructors found", "instructors": instructors})
}

func (h *InstructorHandler) Get(c echo.Context) error {
	instructor, err := h.Service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "instructor found", "instructor": instructor})
}

func (h *InstructorHandler) Update(c echo.Context) error {
	var req dto.UpdateInstructorRequest
	if err := decodePatch(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	instructor, err := h.Service.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "instructor updated", "instructor": instructor})
}

func (h *InstructorHandler) Delete(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.Delete(c.Request().Context(), c.Param("id"), userID); err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "instructor deleted"})
}
