// internal/app/features/subscriptions/handler.go

// Package subscriptions opens premium checkout sessions with the payment
// gateway.
package subscriptions

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	paymentstore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/payments"
	subscriptionstore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/subscriptions"
	userstore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/users"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/auth"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/paygate"
)

// Handler is the feature-level handler for subscriptions.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Users    *userstore.Store
	Subs     *subscriptionstore.Store
	Payments *paymentstore.Store
	Tokens   *auth.TokenManager
	Gateway  paygate.Gateway
}

func NewHandler(db *mongo.Database, tokens *auth.TokenManager, gateway paygate.Gateway, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Users:    userstore.New(db),
		Subs:     subscriptionstore.New(db),
		Payments: paymentstore.New(db),
		Tokens:   tokens,
		Gateway:  gateway,
	}
}
