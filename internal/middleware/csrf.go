package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codedrill/codedrill/internal/security"
)

// CSRFHeaderName is the header clients echo the CSRF token back in on
// state-mutating requests. Tokens are fetched from GET /api/csrf-token.
const CSRFHeaderName = "X-CSRF-Token"

// RequireCSRF returns middleware that rejects state-mutating requests
// whose X-CSRF-Token header does not carry a currently-valid token issued
// by the manager. The check runs before any business logic; safe methods
// (GET, HEAD, OPTIONS) pass through untouched.
func RequireCSRF(tokens *security.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if isSafeMethod(c.Request().Method) {
				return next(c)
			}

			token := c.Request().Header.Get(CSRFHeaderName)
			if !tokens.Validate(token) {
				return c.JSON(http.StatusForbidden, map[string]string{
					"error": "Invalid or missing CSRF token",
				})
			}

			return next(c)
		}
	}
}

// isSafeMethod returns true for HTTP methods that should not change state.
func isSafeMethod(method string) bool {
	return method == http.MethodGet ||
		method == http.MethodHead ||
		method == http.MethodOptions
}
