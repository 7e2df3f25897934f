package security

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// csrfTokenBytes is the number of random bytes in a CSRF token.
// 32 bytes = 256 bits of entropy, hex-encoded to 64 characters.
const csrfTokenBytes = 32

// DefaultCSRFTokenTTL is how long an issued CSRF token stays valid.
const DefaultCSRFTokenTTL = time.Hour

// TokenManager issues opaque random CSRF tokens and tracks their validity.
// Clients fetch a token from GET /api/csrf-token and echo it back in the
// X-CSRF-Token header on state-mutating requests.
//
// Tokens are NOT single-use: validation does not consume them, and they
// remain valid until the TTL elapses or the process restarts. They are
// also not bound to a session, so any outstanding valid token passes.
// A weaker form of the defense, relied on together with same-origin
// checks elsewhere.
type TokenManager struct {
	mu     sync.Mutex
	tokens map[string]time.Time // token -> expiry
	ttl    time.Duration

	// now is the clock source, replaceable in tests.
	now func() time.Time
}

// NewTokenManager creates a token manager issuing tokens valid for ttl.
func NewTokenManager(ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultCSRFTokenTTL
	}
	return &TokenManager{
		tokens: make(map[string]time.Time),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Generate produces a cryptographically random token, registers it as
// valid, and returns it. The token expires exactly ttl after issuance.
func (m *TokenManager) Generate() (string, error) {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b)

	m.mu.Lock()
	m.tokens[token] = m.now().Add(m.ttl)
	m.mu.Unlock()

	return token, nil
}

// Validate reports whether token is currently valid: registered and not
// yet expired. Expired tokens found during validation are removed; valid
// tokens are left untouched so they can be reused until expiry.
func (m *TokenManager) Validate(token string) bool {
	if token == "" {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	expiry, ok := m.tokens[token]
	if !ok {
		return false
	}
	if m.now().After(expiry) {
		delete(m.tokens, token)
		return false
	}
	return true
}

// PruneExpired removes all expired tokens. Called periodically so the
// token set does not accumulate dead entries between validations.
func (m *TokenManager) PruneExpired() {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	for token, expiry := range m.tokens {
		if now.After(expiry) {
			delete(m.tokens, token)
		}
	}
}

// StartSweeper launches a background goroutine that prunes expired tokens
// at the given interval until stop is closed.
func (m *TokenManager) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.PruneExpired()
			case <-stop:
				return
			}
		}
	}()
}

// size returns the number of tracked tokens. Test helper.
func (m *TokenManager) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tokens)
}
