package app

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/codedrill/codedrill/internal/apperror"
	"github.com/codedrill/codedrill/internal/plugins/analytics"
	"github.com/codedrill/codedrill/internal/plugins/auth"
	"github.com/codedrill/codedrill/internal/plugins/blogs"
	"github.com/codedrill/codedrill/internal/plugins/challenges"
	"github.com/codedrill/codedrill/internal/security"
)

// sweepInterval is how often the limiter and token stores drop expired entries.
const sweepInterval = 5 * time.Minute

// RegisterRoutes sets up all application routes. It registers public routes
// directly and delegates to each plugin's route registration function.
//
// This is the single place where all routes are aggregated. When a new
// plugin is added, its routes are registered here.
func (a *App) RegisterRoutes() {
	e := a.Echo

	// --- Public Routes ---

	// Deployment smoke check.
	e.GET("/api/ping", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message": a.Config.PingMessage,
		})
	})

	// Health check endpoint for Docker health monitoring.
	e.GET("/healthz", func(c echo.Context) error {
		if err := a.DB.PingContext(c.Request().Context()); err != nil {
			return apperror.NewUnavailable("Service is unhealthy", err)
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// CSRF token issuance. Clients fetch a token here and replay it in the
	// X-CSRF-Token header on state-changing requests.
	e.GET("/api/csrf-token", func(c echo.Context) error {
		token, err := a.CSRFTokens.Generate()
		if err != nil {
			return apperror.NewInternal(err)
		}
		return c.JSON(http.StatusOK, map[string]string{"csrfToken": token})
	})

	// --- Plugin Routes ---

	breakGlass := security.NewBreakGlass(
		a.Config.Security.BreakGlassEnabled,
		a.Config.Security.BreakGlassUser,
		a.Config.Security.BreakGlassPassword,
	)

	authHandler := auth.NewHandler(auth.NewAuthService(
		auth.NewUserRepository(a.DB), breakGlass))
	authHandler.RegisterRoutes(e, a.Limiter)

	challengeHandler := challenges.NewHandler(challenges.NewChallengeService(
		challenges.NewChallengeRepository(a.DB)))
	challengeHandler.RegisterRoutes(e, a.Limiter, a.CSRFTokens)

	blogHandler := blogs.NewHandler(blogs.NewBlogService(
		blogs.NewBlogRepository(a.DB)))
	blogHandler.RegisterRoutes(e)

	analyticsHandler := analytics.NewHandler(analytics.NewAnalyticsService(a.Redis))
	analyticsHandler.RegisterRoutes(e, a.Limiter)
}

// StartSweepers launches the background goroutines that evict expired
// rate limit windows and CSRF tokens. They exit when stop is closed.
func (a *App) StartSweepers(stop <-chan struct{}) {
	a.Limiter.StartSweeper(sweepInterval, stop)
	a.CSRFTokens.StartSweeper(sweepInterval, stop)
}
