package auth

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/codedrill/codedrill/internal/middleware"
	"github.com/codedrill/codedrill/internal/security"
)

// Per-IP auth rate limits. Registration is tighter than login because
// account creation is the cheaper abuse vector.
const (
	registerMaxAttempts = 5
	loginMaxAttempts    = 10
	authRateWindow      = 5 * time.Minute
)

// RegisterRoutes mounts the auth endpoints under /api/auth. The shared
// rate limiter gates each endpoint per client IP before any validation or
// store access happens.
func (h *Handler) RegisterRoutes(e *echo.Echo, limiter *security.RateLimiter) {
	g := e.Group("/api/auth")

	g.POST("/register", h.Register,
		middleware.RateLimit(limiter, "register", registerMaxAttempts, authRateWindow))
	g.POST("/login", h.Login,
		middleware.RateLimit(limiter, "login", loginMaxAttempts, authRateWindow))
}
