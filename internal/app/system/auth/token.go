// internal/app/system/auth/token.go

// Package auth issues and checks the bearer tokens that gate the API.
// Access tokens are short-lived HS256 JWTs carried in the Authorization
// header; refresh tokens are long-lived JWTs delivered in an http-only
// cookie.
package auth

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// Claims is the token payload: just enough to authorize a request without
// a user lookup. Handlers that need the full user record load it by email.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.StandardClaims
}

// IssuedBefore reports whether the token was issued before t. Used to
// reject tokens minted before the user's last password change.
func (c *Claims) IssuedBefore(t time.Time) bool {
	return c.IssuedAt < t.Unix()
}

// TokenManager signs and verifies access and refresh tokens with separate
// secrets so a leaked refresh secret cannot mint access tokens and vice
// versa.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenManager builds a TokenManager from the configured secrets and
// lifetimes.
func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// RefreshTTL returns the configured refresh-token lifetime (the cookie
// max-age mirrors it).
func (m *TokenManager) RefreshTTL() time.Duration { return m.refreshTTL }

// NewAccessToken mints a short-lived access token for the given identity.
func (m *TokenManager) NewAccessToken(email, role string) (string, error) {
	return m.sign(email, role, m.accessSecret, m.accessTTL)
}

// NewRefreshToken mints a long-lived refresh token for the given identity.
func (m *TokenManager) NewRefreshToken(email, role string) (string, error) {
	return m.sign(email, role, m.refreshSecret, m.refreshTTL)
}

func (m *TokenManager) sign(email, role string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: email,
		Role:  role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseAccess validates an access token and returns its claims.
func (m *TokenManager) ParseAccess(token string) (*Claims, error) {
	return parse(token, m.accessSecret)
}

// ParseRefresh validates a refresh token and returns its claims.
func (m *TokenManager) ParseRefresh(token string) (*Claims, error) {
	return parse(token, m.refreshSecret)
}

func parse(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
