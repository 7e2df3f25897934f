package blogs

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts the blog endpoints under /api/blogs. Both routes
// are public reads.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/blogs")

	g.GET("", h.List)
	g.GET("/:slug", h.Get)
}
