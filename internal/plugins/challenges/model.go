// Package challenges provides CRUD for the Java practice challenges served
// to the browser client. Listing is public; every mutating route requires
// a valid CSRF token and creation is additionally rate limited.
package challenges

import "time"

// Difficulty levels stored in the challenges.difficulty ENUM.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Challenge represents one practice problem. Problem and SampleCode may
// contain rich-text HTML; both are sanitized before storage.
type Challenge struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Problem    string    `json:"problem"`
	Concept    string    `json:"concept,omitempty"`
	Category   string    `json:"category,omitempty"`
	Difficulty string    `json:"difficulty"`
	SampleCode string    `json:"sampleCode,omitempty"`
	TestCases  string    `json:"testCases,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CreateRequest holds the data submitted to POST /api/challenges.
type CreateRequest struct {
	Title      string `json:"title"`
	Problem    string `json:"problem"`
	Concept    string `json:"concept"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	SampleCode string `json:"sampleCode"`
	TestCases  string `json:"testCases"`
}

// BulkDeleteRequest holds the data submitted to POST /api/challenges/bulk-delete.
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}
