// Package analytics records lightweight usage events from the browser
// client (challenge views, runs, completions) as Redis counters. It is
// fire-and-forget by design: an analytics failure must never break the
// user-facing request that triggered it.
package analytics

// --- Event Constants ---
// Each event string follows the pattern "resource.verb" for consistent
// filtering and display grouping. The client may also send custom events
// matching the same shape.

const (
	// EventChallengeViewed is sent when a challenge is opened.
	EventChallengeViewed = "challenge.viewed"

	// EventChallengeRun is sent when sample code is executed.
	EventChallengeRun = "challenge.run"

	// EventChallengeSolved is sent when all test cases pass.
	EventChallengeSolved = "challenge.solved"

	// EventBlogViewed is sent when a blog post is opened.
	EventBlogViewed = "blog.viewed"
)

// TrackRequest holds the data submitted to POST /api/analytics/event.
type TrackRequest struct {
	Event       string `json:"event"`
	ChallengeID string `json:"challengeId,omitempty"`
}

// Summary is the aggregate view returned by GET /api/analytics/summary:
// total occurrence count per event name since counters were started.
type Summary struct {
	Events map[string]int64 `json:"events"`
}
