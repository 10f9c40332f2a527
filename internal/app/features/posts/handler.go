// internal/app/features/posts/handler.go

// Package posts is the article feature: authoring, feeds, the premium
// read gate, and voting.
package posts

import (
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	categorystore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/categories"
	poststore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/posts"
	subscriptionstore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/subscriptions"
	userstore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/users"
	viewstore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/views"
	votestore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/votes"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/auth"
)

// Handler is the feature-level handler for posts.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	Posts      *poststore.Store
	Users      *userstore.Store
	Categories *categorystore.Store
	Votes      *votestore.Store
	Views      *viewstore.Store
	Subs       *subscriptionstore.Store
	Tokens     *auth.TokenManager
	Files      storage.Store
}

func NewHandler(db *mongo.Database, tokens *auth.TokenManager, files storage.Store, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		Posts:      poststore.New(db),
		Users:      userstore.New(db),
		Categories: categorystore.New(db),
		Votes:      votestore.New(db),
		Views:      viewstore.New(db),
		Subs:       subscriptionstore.New(db),
		Tokens:     tokens,
		Files:      files,
	}
}
