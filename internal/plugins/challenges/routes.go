package challenges

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/codedrill/codedrill/internal/middleware"
	"github.com/codedrill/codedrill/internal/security"
)

// Challenge creation is rate limited per IP; deletions are gated by CSRF
// alone since they require IDs the client already obtained.
const (
	createMaxAttempts = 30
	createRateWindow  = time.Minute
)

// RegisterRoutes mounts the challenge endpoints under /api/challenges.
// Listing is public; every mutating route requires a valid CSRF token.
func (h *Handler) RegisterRoutes(e *echo.Echo, limiter *security.RateLimiter, tokens *security.TokenManager) {
	csrf := middleware.RequireCSRF(tokens)

	g := e.Group("/api/challenges")

	g.GET("", h.List)
	g.POST("", h.Create, csrf,
		middleware.RateLimit(limiter, "challenge-create", createMaxAttempts, createRateWindow))
	g.DELETE("/:id", h.Delete, csrf)
	g.POST("/bulk-delete", h.BulkDelete, csrf)
}
