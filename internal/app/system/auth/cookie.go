// internal/app/system/auth/cookie.go
package auth

import (
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

// RefreshCookieName is the http-only cookie carrying the refresh token.
const RefreshCookieName = "refreshToken"

// CookieCodec writes and reads the refresh-token cookie. The value is
// encoded with securecookie so a tampered cookie fails decode before the
// JWT is ever parsed.
type CookieCodec struct {
	sc     *securecookie.SecureCookie
	secure bool
	maxAge time.Duration
}

// NewCookieCodec builds a codec from the session signing key. secure
// should be true in production so the cookie is HTTPS-only.
func NewCookieCodec(hashKey string, secure bool, maxAge time.Duration) *CookieCodec {
	return &CookieCodec{
		sc:     securecookie.New([]byte(hashKey), nil),
		secure: secure,
		maxAge: maxAge,
	}
}

// Set encodes token and writes the refresh cookie.
func (c *CookieCodec) Set(w http.ResponseWriter, token string) error {
	encoded, err := c.sc.Encode(RefreshCookieName, token)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(c.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Read decodes the refresh token out of the request cookie.
func (c *CookieCodec) Read(r *http.Request) (string, error) {
	cookie, err := r.Cookie(RefreshCookieName)
	if err != nil {
		return "", err
	}
	var token string
	if err := c.sc.Decode(RefreshCookieName, cookie.Value, &token); err != nil {
		return "", err
	}
	return token, nil
}

// Clear expires the refresh cookie.
func (c *CookieCodec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
