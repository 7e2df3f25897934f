package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codedrill/codedrill/internal/apperror"
)

// Handler handles HTTP requests for authentication. Handlers are thin:
// they bind the request, validate shape, call the service, and shape the
// response. No business logic lives here.
type Handler struct {
	service AuthService
}

// NewHandler creates a new auth handler with the given service.
func NewHandler(service AuthService) *Handler {
	return &Handler{service: service}
}

// Register processes POST /api/auth/register. The route's rate limiter has
// already run, so a rejected request never reaches validation.
func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	if req.Username == "" || req.Password == "" {
		return apperror.NewBadRequest("username and password are required")
	}
	if len(req.Username) < 3 {
		return apperror.NewBadRequest("username must be at least 3 characters")
	}
	if len(req.Password) < 6 {
		return apperror.NewBadRequest("password must be at least 6 characters")
	}

	user, err := h.service.Register(c.Request().Context(), RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		return err
	}

	// Only the sanitized username goes back out; never the hash.
	return c.JSON(http.StatusOK, map[string]any{
		"ok": true,
		"user": map[string]any{
			"username": user.Username,
		},
	})
}

// Login processes POST /api/auth/login.
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	if req.Username == "" || req.Password == "" {
		return apperror.NewBadRequest("username and password are required")
	}

	result, err := h.service.Login(c.Request().Context(), LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"ok": true,
		"user": map[string]any{
			"username":     result.Username,
			"profilePhoto": result.ProfilePhoto,
		},
	})
}
