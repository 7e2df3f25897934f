package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/codedrill/codedrill/internal/apperror"
	"github.com/codedrill/codedrill/internal/sanitize"
	"github.com/codedrill/codedrill/internal/security"
)

// invalidCredentialsMsg is the single message returned for every login
// failure caused by the credentials themselves. Unknown username and
// wrong password must be indistinguishable to the caller.
const invalidCredentialsMsg = "Invalid credentials"

// AuthService defines the business logic contract for authentication.
// Handlers call these methods -- they never touch the repository directly.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
}

// authService implements AuthService with bcrypt hashing and an optional
// break-glass fallback for store outages.
type authService struct {
	repo       UserRepository
	breakGlass *security.BreakGlass
}

// NewAuthService creates a new auth service with the given dependencies.
func NewAuthService(repo UserRepository, breakGlass *security.BreakGlass) AuthService {
	return &authService{
		repo:       repo,
		breakGlass: breakGlass,
	}
}

// Register creates a new user account. It sanitizes the username and email,
// hashes the password with bcrypt, and persists the user behind a
// transactional uniqueness check. The stored username (sanitized) is what
// the caller gets back; the password and hash never leave the service.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*User, error) {
	username := sanitize.Input(input.Username)
	email := sanitize.Input(input.Email)

	// Sanitization can shorten the username below the minimum.
	if len(username) < 3 {
		return nil, apperror.NewBadRequest("username must be at least 3 characters")
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("hashing password: %w", err))
	}

	user := &User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if email != "" {
		user.Email = &email
	}

	if err := s.repo.CreateUnique(ctx, user); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		slog.Error("registration store failure", slog.Any("error", err))
		return nil, apperror.NewUnavailable("Registration is temporarily unavailable", err)
	}

	slog.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Login authenticates a user by username and password. Both the
// unknown-username and wrong-password paths return the same 401 error, and
// the unknown-username path burns a bcrypt verification so its timing
// matches a real check.
//
// When the store lookup fails with an infrastructure error (not a missing
// row), the break-glass operator credential is consulted: on match the
// login succeeds without a profile photo, otherwise the caller gets a 503.
func (s *authService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	username := sanitize.Input(input.Username)

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == 404 {
			security.BurnVerification(input.Password)
			return nil, apperror.NewUnauthorized(invalidCredentialsMsg)
		}

		// The store itself is unreachable. Emergency access only.
		slog.Error("login store failure, consulting break-glass",
			slog.Any("error", err),
		)
		if s.breakGlass.Authenticate(input.Username, input.Password) {
			return &LoginResult{Username: username, BreakGlass: true}, nil
		}
		return nil, apperror.NewUnavailable("Authentication is temporarily unavailable", err)
	}

	if !security.VerifyPassword(input.Password, user.PasswordHash) {
		return nil, apperror.NewUnauthorized(invalidCredentialsMsg)
	}

	slog.Info("user logged in",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return &LoginResult{
		Username:     user.Username,
		ProfilePhoto: user.ProfilePhoto,
	}, nil
}
