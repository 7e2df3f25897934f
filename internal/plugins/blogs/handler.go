package blogs

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for blog posts.
type Handler struct {
	service BlogService
}

// NewHandler creates a new blogs handler with the given service.
func NewHandler(service BlogService) *Handler {
	return &Handler{service: service}
}

// List serves GET /api/blogs.
func (h *Handler) List(c echo.Context) error {
	list, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	if list == nil {
		list = []Blog{}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"blogs": list,
	})
}

// Get serves GET /api/blogs/:slug.
func (h *Handler) Get(c echo.Context) error {
	b, err := h.service.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"blog": b,
	})
}
