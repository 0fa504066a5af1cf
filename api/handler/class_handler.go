package handler

import (
	"net/http"

	"classmanager/internal/dto"
	"classmanager/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type ClassHandler struct {
	base
	Service *service.ClassService
}

func NewClassHandler(svc *service.ClassService, validate *validator.Validate, logger logrus.FieldLogger) *ClassHandler {
	return &ClassHandler{base: base{Validate: validate, Logger: logger}, Service: svc}
}

func (h *ClassHandler) Create(c echo.Context) error {
	var req dto.CreateClassRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	class, err := h.Service.Create(c.Request().Context(), req)
	if err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"message": "class created", "class": class})
}

func (h *ClassHandler) List(c echo.Context) error {
	classes, err := h.Service.ListByOwner(c.Request().Context(), c.QueryParam("userId"))
	if err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "classes found", "classes": classes})
}

func (h *ClassHandler) Get(c echo.Context) error {
	class, err := h.Service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "class found", "class": class})
}

func (h *ClassHandler) Update(c echo.Context) error {
	var req dto.UpdateClassRequest
	if err := decodePatch(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	class, err := h.Service.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "class updated", "class": class})
}

func (h *ClassHandler) Delete(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.Delete(c.Request().Context(), c.Param("id"), userID); err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "class deleted"})
}
