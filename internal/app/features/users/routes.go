// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"

	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

// Routes mounts all user routes under the path where the caller mounts
// it. Typically: r.Mount("/users", users.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/{id}/followers", h.ServeFollowersByID)
	r.Get("/{id}/following", h.ServeFollowingByID)

	r.Group(func(pr chi.Router) {
		pr.Use(h.Tokens.RequireAuth(models.RoleUser, models.RoleAdmin))

		pr.Patch("/update-profile", h.HandleUpdateProfile)
		pr.Put("/profile/update-social-links", h.HandleUpdateSocialLinks)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(h.Tokens.RequireAuth(models.RoleAdmin))

		pr.Patch("/{id}/block", h.HandleBlock)
		pr.Patch("/{id}/unblock", h.HandleUnblock)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(h.Tokens.RequireAuth(models.RoleUser))

		pr.Put("/{id}/follow", h.HandleFollow)
		pr.Delete("/{id}/unfollow", h.HandleUnfollow)
		pr.Get("/my-followers", h.ServeMyFollowers)
		pr.Get("/my-following", h.ServeMyFollowing)
	})

	return r
}
