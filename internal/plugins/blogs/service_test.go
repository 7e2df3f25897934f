package blogs

import (
	"context"
	"errors"
	"testing"

	"github.com/codedrill/codedrill/internal/apperror"
)

// mockBlogRepo implements BlogRepository for testing.
type mockBlogRepo struct {
	listPublishedFn func(ctx context.Context) ([]Blog, error)
	findBySlugFn    func(ctx context.Context, slug string) (*Blog, error)
}

func (m *mockBlogRepo) ListPublished(ctx context.Context) ([]Blog, error) {
	if m.listPublishedFn != nil {
		return m.listPublishedFn(ctx)
	}
	return nil, nil
}

func (m *mockBlogRepo) FindBySlug(ctx context.Context, slug string) (*Blog, error) {
	if m.findBySlugFn != nil {
		return m.findBySlugFn(ctx, slug)
	}
	return nil, apperror.NewNotFound("blog post not found")
}

func TestGetBySlug_SanitizesSlug(t *testing.T) {
	var captured string
	repo := &mockBlogRepo{
		findBySlugFn: func(ctx context.Context, slug string) (*Blog, error) {
			captured = slug
			return &Blog{Slug: slug, Published: true}, nil
		},
	}

	svc := NewBlogService(repo)
	if _, err := svc.GetBySlug(context.Background(), "intro<script>-to-java"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured != "introscript-to-java" {
		t.Errorf("slug not sanitized before the store: %q", captured)
	}
}

func TestGetBySlug_NotFound(t *testing.T) {
	svc := NewBlogService(&mockBlogRepo{})

	_, err := svc.GetBySlug(context.Background(), "missing-post")
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 404 {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestGetBySlug_EmptyAfterSanitization(t *testing.T) {
	svc := NewBlogService(&mockBlogRepo{
		findBySlugFn: func(ctx context.Context, slug string) (*Blog, error) {
			t.Error("store must not be queried with an empty slug")
			return nil, nil
		},
	})

	_, err := svc.GetBySlug(context.Background(), "<>")
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 404 {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestList_StoreFailure(t *testing.T) {
	svc := NewBlogService(&mockBlogRepo{
		listPublishedFn: func(ctx context.Context) ([]Blog, error) {
			return nil, errors.New("query failed")
		},
	})

	_, err := svc.List(context.Background())
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 500 {
		t.Errorf("expected 500, got %v", err)
	}
}
