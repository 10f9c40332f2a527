// internal/app/features/payments/handler.go

// Package payments handles the gateway's payment callbacks and the
// payment lookup endpoints.
package payments

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	paymentstore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/payments"
	subscriptionstore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/subscriptions"
	userstore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/users"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/auth"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/mailer"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/paygate"
)

// Handler is the feature-level handler for payments.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Users    *userstore.Store
	Subs     *subscriptionstore.Store
	Payments *paymentstore.Store
	Tokens   *auth.TokenManager
	Gateway  paygate.Gateway
	Mail     mailer.Sender
	SiteName string
}

func NewHandler(db *mongo.Database, tokens *auth.TokenManager, gateway paygate.Gateway, mail mailer.Sender, siteName string, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Users:    userstore.New(db),
		Subs:     subscriptionstore.New(db),
		Payments: paymentstore.New(db),
		Tokens:   tokens,
		Gateway:  gateway,
		Mail:     mail,
		SiteName: siteName,
	}
}
