// internal/app/system/auth/middleware.go
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/apperr"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/response"
)

type ctxKey int

const claimsKey ctxKey = iota

// CurrentClaims returns the authenticated claims placed in the request
// context by RequireAuth, and a found flag.
func CurrentClaims(r *http.Request) (*Claims, bool) {
	c, ok := r.Context().Value(claimsKey).(*Claims)
	return c, ok
}

// WithClaims injects claims into the request context. Exported for
// handler tests that bypass the middleware.
func WithClaims(r *http.Request, c *Claims) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), claimsKey, c))
}

// RequireAuth extracts and validates the bearer access token, rejecting
// with 401 when absent or invalid. When allowed roles are given, a valid
// token whose role is not in the set is rejected with 403. The middleware
// deliberately does not load the user record on every request; handlers
// that need fresh user state fetch it themselves.
func (m *TokenManager) RequireAuth(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				response.Err(w, nil, apperr.Unauthorized("Unauthorized Access"))
				return
			}

			claims, err := m.ParseAccess(token)
			if err != nil {
				response.Err(w, nil, apperr.Unauthorized("Unauthorized Access"))
				return
			}

			if len(set) > 0 {
				if _, ok := set[strings.ToLower(claims.Role)]; !ok {
					response.Err(w, nil, apperr.Forbidden("Access Forbidden"))
					return
				}
			}

			next.ServeHTTP(w, WithClaims(r, claims))
		})
	}
}

// OptionalAuth injects claims when a valid bearer token is present and
// passes the request through untouched otherwise. Handlers behind it
// decide whether anonymous access is allowed.
func (m *TokenManager) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := bearerToken(r); token != "" {
				if claims, err := m.ParseAccess(token); err == nil {
					r = WithClaims(r, claims)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
