package analytics

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codedrill/codedrill/internal/apperror"
)

// Handler serves analytics HTTP endpoints.
type Handler struct {
	service AnalyticsService
}

// NewHandler creates a new analytics handler.
func NewHandler(service AnalyticsService) *Handler {
	return &Handler{service: service}
}

// TrackEvent handles POST /api/analytics/event.
func (h *Handler) TrackEvent(c echo.Context) error {
	var req TrackRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	if err := h.service.Track(c.Request().Context(), req); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// GetSummary handles GET /api/analytics/summary.
func (h *Handler) GetSummary(c echo.Context) error {
	summary, err := h.service.Summarize(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"events": summary.Events,
	})
}
