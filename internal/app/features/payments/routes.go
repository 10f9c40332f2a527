// internal/app/features/payments/routes.go
package payments

import (
	"github.com/go-chi/chi/v5"

	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

// Routes mounts the payment routes under the path where the caller
// mounts it. The callback routes are public because the gateway calls
// them server-to-server.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/confirmation", h.HandleConfirmation)
	r.Post("/failed", h.HandleFailed)
	r.Get("/canceled", h.HandleCanceled)

	r.Group(func(pr chi.Router) {
		pr.Use(h.Tokens.RequireAuth(models.RoleAdmin))

		pr.Get("/", h.ServeList)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(h.Tokens.RequireAuth(models.RoleUser, models.RoleAdmin))

		pr.Get("/{transactionId}", h.ServeByTransactionID)
	})

	return r
}
