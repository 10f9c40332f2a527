// internal/app/features/categories/routes.go
package categories

import (
	"github.com/go-chi/chi/v5"

	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

// Routes mounts all category routes under the path where the caller
// mounts it. Typically: r.Mount("/categories", categories.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeSingle)

	r.Group(func(pr chi.Router) {
		pr.Use(h.Tokens.RequireAuth(models.RoleAdmin))

		pr.Post("/", h.HandleCreate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
