// internal/app/features/posts/routes.go
package posts

import (
	"github.com/go-chi/chi/v5"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/features/comments"
	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

// Routes mounts all post routes under the path where the caller mounts
// it. Comment creation and listing live under /posts/{id}/comments, so
// the comments handler is wired in here.
func Routes(h *Handler, c *comments.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/users/{userId}", h.ServeByUser)

	// Free posts are public; premium posts check the caller inside.
	r.With(h.Tokens.OptionalAuth()).Get("/{slug}", h.ServeBySlug)

	r.Group(func(pr chi.Router) {
		pr.Use(h.Tokens.RequireAuth(models.RoleUser))

		pr.Post("/", h.HandleCreate)
		pr.Get("/my-posts", h.ServeMyPosts)
		pr.Put("/{id}/vote", h.HandleVote)
		pr.Post("/{id}/comments", c.HandleCreateOnPost)
		pr.Get("/{id}/comments", c.ServeListByPost)
	})

	return r
}
