package blogs

import (
	"context"
	"errors"
	"fmt"

	"github.com/codedrill/codedrill/internal/apperror"
	"github.com/codedrill/codedrill/internal/sanitize"
)

// BlogService defines the business logic contract for blog posts.
type BlogService interface {
	List(ctx context.Context) ([]Blog, error)
	GetBySlug(ctx context.Context, slug string) (*Blog, error)
}

type blogService struct {
	repo BlogRepository
}

// NewBlogService creates a new blog service with the given repository.
func NewBlogService(repo BlogRepository) BlogService {
	return &blogService{repo: repo}
}

// List returns all published posts, newest first.
func (s *blogService) List(ctx context.Context) ([]Blog, error) {
	out, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing blogs: %w", err))
	}
	return out, nil
}

// GetBySlug returns one published post. The slug comes straight from the
// URL, so it is sanitized before it reaches the store.
func (s *blogService) GetBySlug(ctx context.Context, slug string) (*Blog, error) {
	slug = sanitize.Input(slug)
	if slug == "" {
		return nil, apperror.NewNotFound("blog post not found")
	}

	b, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.NewInternal(fmt.Errorf("finding blog: %w", err))
	}
	return b, nil
}
