package app

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/codedrill/codedrill/internal/config"
)

// newTestApp builds an App with no live DB or Redis. Routes that only
// touch in-process state (ping, csrf-token, 404 handling) work fine.
func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{
		Env:         "development",
		Port:        0,
		PingMessage: "pong",
		CORSOrigins: []string{"http://localhost:3000"},
		Security: config.SecurityConfig{
			GlobalRateLimit:  1000,
			GlobalRateWindow: time.Minute,
			CSRFTokenTTL:     time.Hour,
		},
	}
	a := New(cfg, nil, nil)
	a.RegisterRoutes()
	return a
}

func TestPing_ReturnsConfiguredMessage(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["message"] != "pong" {
		t.Errorf("message = %q, want %q", body["message"], "pong")
	}
}

func TestSecurityHeaders_PresentOnEveryResponse(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)

	want := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"X-XSS-Protection":       "1; mode=block",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	for header, value := range want {
		if got := rec.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}
}

func TestCSRFToken_IssuesValidatableToken(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/csrf-token", nil)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	token := body["csrfToken"]
	if len(token) != 64 {
		t.Fatalf("token length = %d, want 64 hex chars", len(token))
	}
	if _, err := hex.DecodeString(token); err != nil {
		t.Fatalf("token is not hex: %v", err)
	}

	// The issued token must validate against the server-side store.
	if !a.CSRFTokens.Validate(token) {
		t.Error("freshly issued token failed validation")
	}
}

func TestErrorHandler_UnknownRouteIsJSON(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("404 body is not JSON: %v", err)
	}
	if body["error"] == "" {
		t.Error("404 body missing error field")
	}
}
