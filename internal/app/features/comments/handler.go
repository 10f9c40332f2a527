// internal/app/features/comments/handler.go

// Package comments handles discussion on posts. Creation and listing are
// mounted under /posts/{id}/comments; deletion lives at /comments/{id}.
package comments

import (
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	commentstore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/comments"
	poststore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/posts"
	userstore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/users"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/auth"
)

// Handler is the feature-level handler for comments.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Comments *commentstore.Store
	Posts    *poststore.Store
	Users    *userstore.Store
	Tokens   *auth.TokenManager
	Files    storage.Store
}

func NewHandler(db *mongo.Database, tokens *auth.TokenManager, files storage.Store, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Comments: commentstore.New(db),
		Posts:    poststore.New(db),
		Users:    userstore.New(db),
		Tokens:   tokens,
		Files:    files,
	}
}
