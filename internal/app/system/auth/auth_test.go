package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testManager() *TokenManager {
	return NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
}

func TestTokenRoundTrip(t *testing.T) {
	m := testManager()

	token, err := m.NewAccessToken("user@example.com", "User")
	if err != nil {
		t.Fatalf("NewAccessToken failed: %v", err)
	}

	claims, err := m.ParseAccess(token)
	if err != nil {
		t.Fatalf("ParseAccess failed: %v", err)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("email = %q, want %q", claims.Email, "user@example.com")
	}
	if claims.Role != "User" {
		t.Errorf("role = %q, want %q", claims.Role, "User")
	}
}

func TestParseAccess_RejectsRefreshToken(t *testing.T) {
	m := testManager()

	token, err := m.NewRefreshToken("user@example.com", "User")
	if err != nil {
		t.Fatalf("NewRefreshToken failed: %v", err)
	}

	if _, err := m.ParseAccess(token); err == nil {
		t.Error("expected refresh token to fail access validation")
	}
}

func TestParseAccess_RejectsGarbage(t *testing.T) {
	m := testManager()
	if _, err := m.ParseAccess("not-a-token"); err == nil {
		t.Error("expected garbage token to be rejected")
	}
}

func TestClaims_IssuedBefore(t *testing.T) {
	m := testManager()
	token, err := m.NewAccessToken("user@example.com", "User")
	if err != nil {
		t.Fatalf("NewAccessToken failed: %v", err)
	}
	claims, err := m.ParseAccess(token)
	if err != nil {
		t.Fatalf("ParseAccess failed: %v", err)
	}

	if claims.IssuedBefore(time.Now().Add(-time.Minute)) {
		t.Error("fresh token should not be issued before one minute ago")
	}
	if !claims.IssuedBefore(time.Now().Add(time.Hour)) {
		t.Error("token should be issued before a future password change")
	}
}

func TestRequireAuth(t *testing.T) {
	m := testManager()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := CurrentClaims(r)
		if !ok {
			t.Error("expected claims in context")
		} else if claims.Email != "user@example.com" {
			t.Errorf("claims email = %q", claims.Email)
		}
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		authHeader func() string
		roles      []string
		wantStatus int
	}{
		{
			name:       "missing token",
			authHeader: func() string { return "" },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			authHeader: func() string { return "Token abc" },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "valid token no role restriction",
			authHeader: func() string {
				tok, _ := m.NewAccessToken("user@example.com", "User")
				return "Bearer " + tok
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "role allowed",
			authHeader: func() string {
				tok, _ := m.NewAccessToken("user@example.com", "User")
				return "Bearer " + tok
			},
			roles:      []string{"User", "Admin"},
			wantStatus: http.StatusOK,
		},
		{
			name: "role forbidden",
			authHeader: func() string {
				tok, _ := m.NewAccessToken("user@example.com", "User")
				return "Bearer " + tok
			},
			roles:      []string{"Admin"},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if h := tt.authHeader(); h != "" {
				r.Header.Set("Authorization", h)
			}
			w := httptest.NewRecorder()

			m.RequireAuth(tt.roles...)(next).ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestCookieCodec_RoundTrip(t *testing.T) {
	codec := NewCookieCodec("0123456789abcdef0123456789abcdef", false, 24*time.Hour)

	w := httptest.NewRecorder()
	if err := codec.Set(w, "some-refresh-token"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	resp := w.Result()
	cookies := resp.Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if !cookies[0].HttpOnly {
		t.Error("refresh cookie must be http-only")
	}

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.AddCookie(cookies[0])

	token, err := codec.Read(r)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if token != "some-refresh-token" {
		t.Errorf("token = %q, want %q", token, "some-refresh-token")
	}
}

func TestCookieCodec_RejectsTamperedValue(t *testing.T) {
	codec := NewCookieCodec("0123456789abcdef0123456789abcdef", false, 24*time.Hour)

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: "tampered"})

	if _, err := codec.Read(r); err == nil {
		t.Error("expected tampered cookie to fail decode")
	}
}
