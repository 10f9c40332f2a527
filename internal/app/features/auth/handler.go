// internal/app/features/auth/handler.go

// Package auth is the account feature: registration, login, token
// refresh, and the password lifecycle.
package auth

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/users"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/auth"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/mailer"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/ratelimit"
)

// Handler is the feature-level handler for auth.
type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	Users   *userstore.Store
	Tokens  *auth.TokenManager
	Cookies *auth.CookieCodec
	Mail    mailer.Sender
	Limits  *ratelimit.CredentialLimiter

	SiteName string
	// ResetBaseURL is the frontend page that collects the new password;
	// the reset token is appended as a query parameter.
	ResetBaseURL string
}

func NewHandler(db *mongo.Database, tokens *auth.TokenManager, cookies *auth.CookieCodec, mail mailer.Sender, siteName, resetBaseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		DB:           db,
		Log:          logger,
		Users:        userstore.New(db),
		Tokens:       tokens,
		Cookies:      cookies,
		Mail:         mail,
		Limits:       ratelimit.NewCredentialLimiter(),
		SiteName:     siteName,
		ResetBaseURL: resetBaseURL,
	}
}
