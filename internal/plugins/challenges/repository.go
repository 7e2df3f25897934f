package challenges

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// ChallengeRepository defines the data access contract for challenges.
// All SQL lives in the concrete implementation -- no SQL leaks out.
type ChallengeRepository interface {
	List(ctx context.Context) ([]Challenge, error)
	Create(ctx context.Context, ch *Challenge) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}

// challengeRepository implements ChallengeRepository with hand-written
// MariaDB queries.
type challengeRepository struct {
	db *sql.DB
}

// NewChallengeRepository creates a new challenge repository backed by the
// given DB pool.
func NewChallengeRepository(db *sql.DB) ChallengeRepository {
	return &challengeRepository{db: db}
}

// List returns all challenges, newest first.
func (r *challengeRepository) List(ctx context.Context) ([]Challenge, error) {
	query := `SELECT id, title, problem, concept, category, difficulty,
	                 sample_code, test_cases, created_at
	          FROM challenges ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing challenges: %w", err)
	}
	defer rows.Close()

	var out []Challenge
	for rows.Next() {
		var ch Challenge
		var concept, category, sampleCode, testCases sql.NullString
		if err := rows.Scan(
			&ch.ID, &ch.Title, &ch.Problem, &concept, &category,
			&ch.Difficulty, &sampleCode, &testCases, &ch.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning challenge row: %w", err)
		}
		ch.Concept = concept.String
		ch.Category = category.String
		ch.SampleCode = sampleCode.String
		ch.TestCases = testCases.String
		out = append(out, ch)
	}

	return out, rows.Err()
}

// Create inserts a new challenge row.
func (r *challengeRepository) Create(ctx context.Context, ch *Challenge) error {
	query := `INSERT INTO challenges (id, title, problem, concept, category,
	                                  difficulty, sample_code, test_cases, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		ch.ID,
		ch.Title,
		ch.Problem,
		nullable(ch.Concept),
		nullable(ch.Category),
		ch.Difficulty,
		nullable(ch.SampleCode),
		nullable(ch.TestCases),
		ch.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting challenge: %w", err)
	}

	return nil
}

// Delete removes a challenge by ID. Deleting an absent row is not an
// error; the operation is idempotent.
func (r *challengeRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM challenges WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting challenge: %w", err)
	}
	return nil
}

// DeleteMany removes all challenges whose IDs are in the given list and
// returns how many rows were actually deleted.
func (r *challengeRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	query := fmt.Sprintf(`DELETE FROM challenges WHERE id IN (%s)`, placeholders)

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("bulk deleting challenges: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows: %w", err)
	}
	return n, nil
}

// nullable maps an empty string to NULL so optional columns stay NULL
// instead of storing empty strings.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
