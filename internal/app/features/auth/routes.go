// internal/app/features/auth/routes.go
package auth

import (
	"github.com/go-chi/chi/v5"

	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

// Routes mounts all auth routes under the path where the caller mounts it.
// Typically: r.Mount("/auth", auth.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)
	r.Post("/refresh-token", h.HandleRefreshToken)
	r.Post("/forget-password", h.HandleForgetPassword)
	r.Post("/reset-password", h.HandleResetPassword)

	r.Group(func(pr chi.Router) {
		pr.Use(h.Tokens.RequireAuth(models.RoleUser, models.RoleAdmin))

		pr.Get("/me", h.ServeMe)
		pr.Put("/change-password", h.HandleChangePassword)
	})

	return r
}
