package handler

import (
	"net/http"

	"classmanager/internal/dto"
	"classmanager/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type StudentHandler struct {
	base
	Service *service.StudentService
}

func NewStudentHandler(svc *service.StudentService, validate *validator.Validate, logger logrus.FieldLogger) *StudentHandler {
	return &StudentHandler{base: base{Validate: validate, Logger: logger}, Service: svc}
}

func (h *StudentHandler) Create(c echo.Context) error {
	var req dto.CreateStudentRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	student, err := h.Service.Create(c.Request().Context(), req)
	if err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"message": "student created", "student": student})
}

func (h *StudentHandler) List(c echo.Context) error {
	students, err := h.Service.ListByOwner(c.Request().Context(), c.QueryParam("userId"))
	if err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "students found", "students": students})
}

func (h *StudentHandler) Get(c echo.Context) error {
	student, err := h.Service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "student found", "student": student})
}

func (h *StudentHandler) Update(c echo.Context) error {
	var req dto.UpdateStudentRequest
	if err := decodePatch(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	student, err := h.Service.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "student updated", "student": student})
}

func (h *StudentHandler) Delete(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.Delete(c.Request().Context(), c.Param("id"), userID); err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "student deleted"})
}
