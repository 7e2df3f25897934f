// Package blogs serves the published blog posts shown alongside the
// challenge catalog. Read-only: posts are authored through migrations or
// operator tooling, not through the public API.
package blogs

import "time"

// Blog represents one blog post. Content is stored as sanitized HTML.
type Blog struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Slug      string    `json:"slug"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
}
