package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/codedrill/codedrill/internal/apperror"
	"github.com/codedrill/codedrill/internal/security"
)

// mockAuthService implements AuthService for handler tests.
type mockAuthService struct {
	registerFn func(ctx context.Context, input RegisterInput) (*User, error)
	loginFn    func(ctx context.Context, input LoginInput) (*LoginResult, error)
}

func (m *mockAuthService) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, input)
	}
	return &User{ID: "u-1", Username: input.Username}, nil
}

func (m *mockAuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, input)
	}
	return &LoginResult{Username: input.Username}, nil
}

// newTestServer wires the auth routes onto a bare Echo instance with the
// same error-to-JSON mapping the app installs.
func newTestServer(svc AuthService) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		c.JSON(apperror.SafeCode(err), map[string]string{"error": apperror.SafeMessage(err)})
	}
	NewHandler(svc).RegisterRoutes(e, security.NewRateLimiter())
	return e
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRegisterHandler_Validation(t *testing.T) {
	e := newTestServer(&mockAuthService{})

	tests := []struct {
		name string
		body string
	}{
		{"missing username", `{"password":"secret1"}`},
		{"missing password", `{"username":"alice"}`},
		{"short username", `{"username":"ab","password":"secret1"}`},
		{"short password", `{"username":"alice","password":"12345"}`},
		{"malformed json", `{"username":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(e, "/api/auth/register", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}

			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("response is not JSON: %v", err)
			}
			if body["error"] == "" {
				t.Error("expected an error key in the failure body")
			}
		})
	}
}

func TestRegisterHandler_Success(t *testing.T) {
	e := newTestServer(&mockAuthService{
		registerFn: func(ctx context.Context, input RegisterInput) (*User, error) {
			return &User{ID: "u-1", Username: "alice"}, nil
		},
	})

	rec := postJSON(e, "/api/auth/register", `{"username":"alice","password":"secret1","email":"a@x.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		OK   bool `json:"ok"`
		User struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !body.OK || body.User.Username != "alice" {
		t.Errorf("unexpected response: %s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("register response must not contain password material")
	}
}

func TestRegisterHandler_RateLimitIndependentOfPayload(t *testing.T) {
	e := newTestServer(&mockAuthService{})

	// httptest requests all come from the same simulated IP. The first 5
	// attempts consume the quota regardless of payload validity; the 6th
	// gets 429 before validation runs.
	for i := 0; i < 5; i++ {
		rec := postJSON(e, "/api/auth/register", `{"username":"ab"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("attempt %d: expected 400, got %d", i+1, rec.Code)
		}
	}

	rec := postJSON(e, "/api/auth/register", `{"username":"alice","password":"secret1"}`)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("6th attempt: expected 429, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("429 response is not JSON: %v", err)
	}
	if body["error"] == "" {
		t.Error("429 body should carry an error key")
	}
}

func TestLoginHandler_Validation(t *testing.T) {
	e := newTestServer(&mockAuthService{})

	rec := postJSON(e, "/api/auth/login", `{"username":"alice"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestLoginHandler_UniformUnauthorizedPayload(t *testing.T) {
	e := newTestServer(&mockAuthService{
		loginFn: func(ctx context.Context, input LoginInput) (*LoginResult, error) {
			return nil, apperror.NewUnauthorized("Invalid credentials")
		},
	})

	ghost := postJSON(e, "/api/auth/login", `{"username":"ghost","password":"x"}`)
	wrong := postJSON(e, "/api/auth/login", `{"username":"realuser","password":"wrongpass"}`)

	if ghost.Code != http.StatusUnauthorized || wrong.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", ghost.Code, wrong.Code)
	}
	if ghost.Body.String() != wrong.Body.String() {
		t.Errorf("401 payloads must be identical: %s vs %s", ghost.Body.String(), wrong.Body.String())
	}
}

func TestLoginHandler_Success(t *testing.T) {
	photo := "/media/avatars/alice.png"
	e := newTestServer(&mockAuthService{
		loginFn: func(ctx context.Context, input LoginInput) (*LoginResult, error) {
			return &LoginResult{Username: "alice", ProfilePhoto: &photo}, nil
		},
	})

	rec := postJSON(e, "/api/auth/login", `{"username":"alice","password":"secret1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		OK   bool `json:"ok"`
		User struct {
			Username     string  `json:"username"`
			ProfilePhoto *string `json:"profilePhoto"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !body.OK || body.User.Username != "alice" {
		t.Errorf("unexpected response: %s", rec.Body.String())
	}
	if body.User.ProfilePhoto == nil || *body.User.ProfilePhoto != photo {
		t.Error("expected profile photo in login response")
	}
}
