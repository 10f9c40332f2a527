// internal/app/features/categories/handler.go

// Package categories manages the post category catalog.
package categories

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	categorystore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/categories"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/auth"
)

// Handler is the feature-level handler for categories.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	Categories *categorystore.Store
	Tokens     *auth.TokenManager
}

func NewHandler(db *mongo.Database, tokens *auth.TokenManager, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		Categories: categorystore.New(db),
		Tokens:     tokens,
	}
}
