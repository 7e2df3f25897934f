package challenges

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/codedrill/codedrill/internal/apperror"
	"github.com/codedrill/codedrill/internal/sanitize"
)

// ChallengeService defines the business logic contract for challenges.
// Handlers call these methods -- they never touch the repository directly.
type ChallengeService interface {
	List(ctx context.Context) ([]Challenge, error)
	Create(ctx context.Context, req CreateRequest) (*Challenge, error)
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) (int64, error)
}

// challengeService implements ChallengeService.
type challengeService struct {
	repo ChallengeRepository
}

// NewChallengeService creates a new challenge service with the given repository.
func NewChallengeService(repo ChallengeRepository) ChallengeService {
	return &challengeService{repo: repo}
}

// List returns all challenges, newest first.
func (s *challengeService) List(ctx context.Context) ([]Challenge, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing challenges: %w", err))
	}
	return out, nil
}

// Create validates and persists a new challenge. Plain-text fields go
// through the input sanitizer; problem statement and sample code may carry
// rich-text HTML and go through the HTML policy instead.
func (s *challengeService) Create(ctx context.Context, req CreateRequest) (*Challenge, error) {
	title := sanitize.Input(req.Title)
	problem := sanitize.RichText(req.Problem)

	if title == "" {
		return nil, apperror.NewBadRequest("title is required")
	}
	if problem == "" {
		return nil, apperror.NewBadRequest("problem statement is required")
	}

	difficulty := req.Difficulty
	switch difficulty {
	case "":
		difficulty = DifficultyBeginner
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
	default:
		return nil, apperror.NewBadRequest("difficulty must be beginner, intermediate, or advanced")
	}

	ch := &Challenge{
		ID:         uuid.NewString(),
		Title:      title,
		Problem:    problem,
		Concept:    sanitize.Input(req.Concept),
		Category:   sanitize.Input(req.Category),
		Difficulty: difficulty,
		SampleCode: sanitize.RichText(req.SampleCode),
		TestCases:  req.TestCases,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, ch); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating challenge: %w", err))
	}

	slog.Info("challenge created",
		slog.String("challenge_id", ch.ID),
		slog.String("title", ch.Title),
	)

	return ch, nil
}

// Delete removes a single challenge. Deleting an already-absent ID
// succeeds; the route reports only store failures.
func (s *challengeService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperror.NewInternal(fmt.Errorf("deleting challenge: %w", err))
	}
	return nil
}

// BulkDelete removes all challenges in the ID list and returns how many
// rows were deleted. An empty list is a validation error.
func (s *challengeService) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, apperror.NewBadRequest("ids must be a non-empty list")
	}

	n, err := s.repo.DeleteMany(ctx, ids)
	if err != nil {
		return 0, apperror.NewInternal(fmt.Errorf("bulk deleting challenges: %w", err))
	}

	slog.Info("challenges bulk deleted", slog.Int64("count", n))
	return n, nil
}
