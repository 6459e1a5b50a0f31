package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fleetstack/fleetpoint/internal/domain"
	"github.com/fleetstack/fleetpoint/internal/logger"
	"github.com/fleetstack/fleetpoint/internal/service"
	"github.com/fleetstack/fleetpoint/internal/service/serviceutils"
)

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login verifies credentials and returns a bearer token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, "Invalid request body", domain.Validationf("malformed body"))
	}
	if req.Username == "" || req.Password == "" {
		return respondError(c, "Missing credentials",
			domain.Validationf("username and password are required"))
	}

	user, token, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return respondError(c, "Login failed", err)
	}

	logger.InfoLog(c.Request().Context(), "user logged in: %s", user.Username)
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Login successful", LoginResponse{
		Token: token,
		User:  user,
	})
}
