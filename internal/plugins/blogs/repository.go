package blogs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/codedrill/codedrill/internal/apperror"
)

// BlogRepository defines the data access contract for blog posts.
type BlogRepository interface {
	ListPublished(ctx context.Context) ([]Blog, error)
	FindBySlug(ctx context.Context, slug string) (*Blog, error)
}

// blogRepository implements BlogRepository with hand-written MariaDB queries.
type blogRepository struct {
	db *sql.DB
}

// NewBlogRepository creates a new blog repository backed by the given DB pool.
func NewBlogRepository(db *sql.DB) BlogRepository {
	return &blogRepository{db: db}
}

// ListPublished returns all published posts, newest first. Drafts never
// leave this layer.
func (r *blogRepository) ListPublished(ctx context.Context) ([]Blog, error) {
	query := `SELECT id, title, content, author, slug, published, created_at
	          FROM blogs WHERE published = TRUE ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing blogs: %w", err)
	}
	defer rows.Close()

	var out []Blog
	for rows.Next() {
		var b Blog
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Content, &b.Author, &b.Slug, &b.Published, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning blog row: %w", err)
		}
		out = append(out, b)
	}

	return out, rows.Err()
}

// FindBySlug retrieves a single published post by its URL slug.
// Returns apperror.NotFound for absent or unpublished posts.
func (r *blogRepository) FindBySlug(ctx context.Context, slug string) (*Blog, error) {
	query := `SELECT id, title, content, author, slug, published, created_at
	          FROM blogs WHERE slug = ? AND published = TRUE`

	b := &Blog{}
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&b.ID, &b.Title, &b.Content, &b.Author, &b.Slug, &b.Published, &b.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("blog post not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying blog by slug: %w", err)
	}

	return b, nil
}
