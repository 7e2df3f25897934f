package challenges

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codedrill/codedrill/internal/apperror"
)

// Handler handles HTTP requests for challenge CRUD. Handlers are thin:
// they bind the request, call the service, and shape the response.
type Handler struct {
	service ChallengeService
}

// NewHandler creates a new challenges handler with the given service.
func NewHandler(service ChallengeService) *Handler {
	return &Handler{service: service}
}

// List serves GET /api/challenges.
func (h *Handler) List(c echo.Context) error {
	list, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	// An empty table serves [] rather than null.
	if list == nil {
		list = []Challenge{}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"challenges": list,
	})
}

// Create serves POST /api/challenges. CSRF and rate limiting have already
// run as route middleware.
func (h *Handler) Create(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	ch, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":   true,
		"challenge": ch,
	})
}

// Delete serves DELETE /api/challenges/:id.
func (h *Handler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
	})
}

// BulkDelete serves POST /api/challenges/bulk-delete.
func (h *Handler) BulkDelete(c echo.Context) error {
	var req BulkDeleteRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	n, err := h.service.BulkDelete(c.Request().Context(), req.IDs)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":      true,
		"deletedCount": n,
	})
}
