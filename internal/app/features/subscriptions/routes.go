// internal/app/features/subscriptions/routes.go
package subscriptions

import (
	"github.com/go-chi/chi/v5"

	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

// Routes mounts the subscription routes under the path where the caller
// mounts it.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(h.Tokens.RequireAuth(models.RoleUser))

		pr.Post("/subscribe", h.HandleSubscribe)
	})

	return r
}
