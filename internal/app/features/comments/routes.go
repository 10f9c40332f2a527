// internal/app/features/comments/routes.go
package comments

import (
	"github.com/go-chi/chi/v5"

	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

// Routes mounts the standalone comment routes. The post-scoped routes
// are wired by the posts feature.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(h.Tokens.RequireAuth(models.RoleUser, models.RoleAdmin))

		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
