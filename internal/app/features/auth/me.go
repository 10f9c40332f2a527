// internal/app/features/auth/me.go
package auth

import (
	"net/http"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/features/shared"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/response"
)

// ServeMe returns the authenticated user's own record.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	user, err := shared.CurrentUser(r.Context(), r, h.Users)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}
	response.OK(w, http.StatusOK, "User fetched successfully", user)
}
