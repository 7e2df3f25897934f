package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/codedrill/codedrill/internal/apperror"
)

// UserRepository defines the data access contract for user operations.
// All SQL lives in the concrete implementation -- no SQL leaks out.
//
// Error contract: a missing row is reported as apperror.NewNotFound; any
// other error is an infrastructure failure (connection, pool exhaustion,
// query error) and is returned wrapped so the service can distinguish the
// two and decide whether the break-glass path applies.
type UserRepository interface {
	// CreateUnique checks username/email uniqueness and inserts the user
	// inside a single transaction. Returns apperror.Conflict when a row
	// with the same username or (non-null) email already exists.
	CreateUnique(ctx context.Context, user *User) error

	// FindByUsername retrieves a user, including the stored password hash
	// and profile photo, by exact username.
	FindByUsername(ctx context.Context, username string) (*User, error)
}

// userRepository implements UserRepository with hand-written MariaDB queries.
type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository backed by the given DB pool.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateUnique runs the uniqueness check and insert atomically. If another
// registration commits the same username between our check and insert, the
// unique index still rejects it and the transaction rolls back.
func (r *userRepository) CreateUnique(ctx context.Context, user *User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning registration transaction: %w", err)
	}
	defer tx.Rollback()

	// Non-null email collides with an existing email; a null email only
	// collides on username.
	checkQuery := `SELECT EXISTS(
	                 SELECT 1 FROM users
	                 WHERE username = ? OR (? IS NOT NULL AND email = ?)
	               )`

	var exists bool
	if err := tx.QueryRowContext(ctx, checkQuery, user.Username, user.Email, user.Email).Scan(&exists); err != nil {
		return fmt.Errorf("checking user uniqueness: %w", err)
	}
	if exists {
		return apperror.NewConflict("username or email is already taken")
	}

	insertQuery := `INSERT INTO users (id, username, email, password_hash, profile_photo, created_at)
	                VALUES (?, ?, ?, ?, ?, ?)`

	if _, err := tx.ExecContext(ctx, insertQuery,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.ProfilePhoto,
		user.CreatedAt,
	); err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing registration: %w", err)
	}

	return nil
}

// FindByUsername retrieves a user by their username.
// Returns apperror.NotFound if no user exists with this username.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	query := `SELECT id, username, email, password_hash, profile_photo, created_at
	          FROM users WHERE username = ?`

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.ProfilePhoto,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by username: %w", err)
	}

	return user, nil
}
