// Package auth handles user registration and login for CodeDrill. It
// orchestrates the rate limiter, input sanitizer, and credential verifier
// around a transactional uniqueness check in MariaDB, and carries the
// break-glass fallback used when the data store is unreachable.
package auth

import (
	"time"
)

// User represents a registered CodeDrill user. This is the domain model
// used throughout the application. Database scanning and JSON marshaling
// use this struct directly.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        *string   `json:"email,omitempty"`
	PasswordHash string    `json:"-"` // Never expose in JSON responses.
	ProfilePhoto *string   `json:"profilePhoto,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// --- Request DTOs (bound from HTTP requests) ---

// RegisterRequest holds the data submitted to POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

// LoginRequest holds the data submitted to POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// --- Service Input/Output DTOs (passed between handler and service) ---

// RegisterInput is the validated input for creating a new user.
type RegisterInput struct {
	Username string
	Password string
	Email    string
}

// LoginInput is the validated input for authenticating a user.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult is what a successful login returns to the handler.
type LoginResult struct {
	Username     string
	ProfilePhoto *string

	// BreakGlass is true when the login succeeded via the emergency
	// operator credential while the data store was unreachable. No
	// profile photo is available on this path.
	BreakGlass bool
}
