package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"user-admin/internal/entity"
	"user-admin/internal/repository"
	"user-admin/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new instance of UserHandler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func errorJSON(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"error": msg})
}

// ListUsers lists every user --> GET /api/users
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "query failed")
	}
	return c.JSON(http.StatusOK, users)
}

// GetUserByID retrieves a user by ID --> GET /api/users/:id
func (h *UserHandler) GetUserByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid ID")
	}

	user, err := h.userService.GetUserByID(c.Request().Context(), id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return errorJSON(c, http.StatusNotFound, "not found")
	case err != nil:
		return errorJSON(c, http.StatusInternalServerError, "query failed")
	}
	return c.JSON(http.StatusOK, user)
}

// CreateUser creates a new user --> POST /api/users
func (h *UserHandler) CreateUser(c echo.Context) error {
	var in entity.Payload
	if err := c.Bind(&in); err != nil {
		return errorJSON(c, http.StatusBadRequest, entity.ErrInvalidPayload.Error())
	}

	user, err := h.userService.CreateUser(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err, "create failed")
	}
	return c.JSON(http.StatusCreated, user)
}

// UpdateUser replaces name and email of a user --> PUT /api/users/:id
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid ID")
	}

	var in entity.Payload
	if err := c.Bind(&in); err != nil {
		return errorJSON(c, http.StatusBadRequest, entity.ErrInvalidPayload.Error())
	}

	user, err := h.userService.UpdateUser(c.Request().Context(), id, in)
	if err != nil {
		return writeError(c, err, "update failed")
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser removes a user --> DELETE /api/users/:id
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid ID")
	}

	if err := h.userService.DeleteUser(c.Request().Context(), id); err != nil {
		return writeError(c, err, "delete failed")
	}
	return c.NoContent(http.StatusNoContent)
}

func writeError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, entity.ErrInvalidPayload):
		return errorJSON(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		return errorJSON(c, http.StatusNotFound, "not found")
	case errors.Is(err, repository.ErrDuplicateEmail):
		return errorJSON(c, http.StatusConflict, repository.ErrDuplicateEmail.Error())
	default:
		return errorJSON(c, http.StatusInternalServerError, fallback)
	}
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
