// internal/app/features/users/handler.go

// Package users covers profile management, admin moderation, and the
// follow graph.
package users

import (
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	followerstore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/followers"
	userstore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/users"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/auth"
)

// Handler is the feature-level handler for users.
type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	Users     *userstore.Store
	Followers *followerstore.Store
	Tokens    *auth.TokenManager
	Files     storage.Store
}

func NewHandler(db *mongo.Database, tokens *auth.TokenManager, files storage.Store, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Log:       logger,
		Users:     userstore.New(db),
		Followers: followerstore.New(db),
		Tokens:    tokens,
		Files:     files,
	}
}
