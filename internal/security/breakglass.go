package security

import (
	"crypto/sha256"
	"crypto/subtle"
	"log/slog"
)

// BreakGlass is the emergency operator credential check used when the
// data store is unreachable during login. It exists for operational
// continuity only: it is configured explicitly, disabled by default, and
// every use (successful or not) is audit-logged.
//
// Comparison is timing-safe on both fields: inputs are reduced to SHA-256
// digests so lengths never differ, compared with constant-time equality,
// and the two results are combined with a non-short-circuiting AND so the
// observable timing does not reveal which field mismatched.
type BreakGlass struct {
	enabled  bool
	userSum  [sha256.Size]byte
	passSum  [sha256.Size]byte
	username string
}

// NewBreakGlass builds a break-glass checker for the given operator
// credential pair. If enabled is false or either field is empty, every
// authentication attempt fails.
func NewBreakGlass(enabled bool, username, password string) *BreakGlass {
	bg := &BreakGlass{
		enabled:  enabled && username != "" && password != "",
		username: username,
	}
	if bg.enabled {
		bg.userSum = sha256.Sum256([]byte(username))
		bg.passSum = sha256.Sum256([]byte(password))
	}
	return bg
}

// Enabled reports whether the break-glass path is configured and active.
func (b *BreakGlass) Enabled() bool {
	return b.enabled
}

// Authenticate checks the supplied credentials against the fixed operator
// pair. Both field comparisons are always evaluated regardless of whether
// the first matches.
func (b *BreakGlass) Authenticate(username, password string) bool {
	if !b.enabled {
		return false
	}

	userSum := sha256.Sum256([]byte(username))
	passSum := sha256.Sum256([]byte(password))

	userMatch := subtle.ConstantTimeCompare(userSum[:], b.userSum[:])
	passMatch := subtle.ConstantTimeCompare(passSum[:], b.passSum[:])

	ok := userMatch&passMatch == 1

	if ok {
		slog.Warn("break-glass credential used for login",
			slog.String("username", b.username),
		)
	} else {
		slog.Warn("break-glass credential check failed",
			slog.String("supplied_username", username),
		)
	}

	return ok
}
