// Package sanitize provides input cleaning for untrusted user data.
// Plain-text fields (usernames, titles, categories) go through Input,
// values destined for HTML rendering go through HTML, and rich-text
// challenge content goes through a bluemonday policy that strips script
// tags, event handlers, and javascript: URLs while preserving safe
// formatting.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// maxInputLength is the maximum number of characters Input keeps.
// Anything longer is truncated before storage.
const maxInputLength = 1000

// inputReplacer removes characters that enable HTML injection (angle
// brackets, quotes) and shell/command metacharacters. Single pass,
// non-overlapping replacements.
var inputReplacer = strings.NewReplacer(
	"<", "",
	">", "",
	`"`, "",
	"'", "",
	"`", "",
	";", "",
	"&", "",
	"|", "",
	"$", "",
)

// Input strips dangerous characters from untrusted plain-text input, trims
// surrounding whitespace, and truncates to maxInputLength characters.
// Pure and total: every string maps to a string, empty input yields empty
// output, and the function is idempotent (a second pass changes nothing).
func Input(s string) string {
	if s == "" {
		return ""
	}

	s = inputReplacer.Replace(s)
	s = strings.TrimSpace(s)

	if runes := []rune(s); len(runes) > maxInputLength {
		s = string(runes[:maxInputLength])
	}

	// Truncation can expose trailing whitespace; trim again so repeated
	// sanitization is a no-op.
	return strings.TrimSpace(s)
}

// htmlReplacer entity-escapes the characters that break out of HTML text
// and attribute contexts. The ampersand is escaped first in the same pass
// so already-escaped entities are not double-safe-listed. Replacements are
// non-overlapping: output of one rule is never re-scanned by another.
var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

// HTML entity-escapes a string for safe embedding in HTML. The result
// contains no literal <, >, ", ', or / characters.
func HTML(s string) string {
	if s == "" {
		return ""
	}
	return htmlReplacer.Replace(s)
}

// policy is the singleton bluemonday policy for rich-text challenge content.
// Initialized once via sync.Once for thread-safe lazy initialization.
var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy returns the shared sanitization policy, initializing it on first call.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.UGCPolicy()

		// Challenge problem statements use <pre><code class="language-java">
		// blocks for embedded snippets.
		policy.AllowAttrs("class").OnElements("pre", "code")

		// Tables appear in complexity/requirement breakdowns.
		policy.AllowElements("table", "thead", "tbody", "tr", "td", "th")
		policy.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
	})
	return policy
}

// RichText sanitizes user-provided HTML (challenge problem statements,
// sample explanations) by stripping dangerous elements while preserving
// safe formatting. MUST be called before storing rich-text content.
func RichText(s string) string {
	if s == "" {
		return ""
	}
	return getPolicy().Sanitize(s)
}
