// Package middleware provides HTTP middleware for the CodeDrill Echo
// server. Middleware is applied globally (all routes) or per-route group
// depending on the middleware type. See internal/app/routes.go for
// registration.
package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/codedrill/codedrill/internal/security"
)

// RateLimit returns middleware that limits requests per client IP to
// maxRequests within the given fixed window, keyed by action so separate
// routes get separate quotas. Returns 429 with a JSON error body when
// exceeded.
//
// The limiter instance is shared and injected so the global limit and the
// per-action auth limits draw from one explicitly-owned state object, and
// tests can construct isolated instances with a controlled clock.
func RateLimit(limiter *security.RateLimiter, action string, maxRequests int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := action + ":" + c.RealIP()
			if !limiter.Allow(key, maxRequests, window) {
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error": "Too many requests. Please try again later.",
				})
			}
			return next(c)
		}
	}
}
