package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fleetstack/fleetpoint/internal/domain"
	"github.com/fleetstack/fleetpoint/internal/service"
	"github.com/fleetstack/fleetpoint/internal/service/serviceutils"
)

// UserHandler exposes the operator account endpoints. Every route in
// this group sits behind the administrator middleware.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Create registers an operator account.
func (h *UserHandler) Create(c echo.Context) error {
	var req UserRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, "Invalid request body", domain.Validationf("malformed body"))
	}

	user := req.ToDomain()
	if err := h.users.Create(c.Request().Context(), user, req.Password); err != nil {
		return respondError(c, "Failed to create user", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusCreated, "User created", user)
}

// Get returns one account by id.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, "Invalid user id", err)
	}

	user, err := h.users.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, "Failed to get user", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "User retrieved", user)
}

// Update saves an account's fields, optionally replacing the password.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, "Invalid user id", err)
	}

	var req UserRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, "Invalid request body", domain.Validationf("malformed body"))
	}

	user := req.ToDomain()
	user.ID = id
	if err := h.users.Update(c.Request().Context(), user, req.Password); err != nil {
		return respondError(c, "Failed to update user", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "User updated", user)
}

// Delete removes an operator account.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, "Invalid user id", err)
	}

	if err := h.users.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, "Failed to delete user", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "User deleted", nil)
}

// List returns all operator accounts.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return respondError(c, "Failed to list users", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Users retrieved", users)
}
