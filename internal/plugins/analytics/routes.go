package analytics

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/codedrill/codedrill/internal/middleware"
	"github.com/codedrill/codedrill/internal/security"
)

const (
	trackMaxAttempts = 120
	trackRateWindow  = time.Minute
)

// RegisterRoutes mounts the analytics endpoints.
func (h *Handler) RegisterRoutes(e *echo.Echo, limiter *security.RateLimiter) {
	g := e.Group("/api/analytics")

	g.POST("/event", h.TrackEvent,
		middleware.RateLimit(limiter, "analytics-track", trackMaxAttempts, trackRateWindow))
	g.GET("/summary", h.GetSummary)
}
