// internal/app/features/auth/refresh.go
package auth

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/apperr"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/response"
	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

// HandleRefreshToken exchanges a valid refresh cookie for a fresh access
// token. The user record is re-checked so a blocked or deleted account
// cannot keep minting access tokens from an old cookie.
func (h *Handler) HandleRefreshToken(w http.ResponseWriter, r *http.Request) {
	token, err := h.Cookies.Read(r)
	if err != nil {
		response.Err(w, h.Log, apperr.Unauthorized("Unauthorized Access"))
		return
	}
	claims, err := h.Tokens.ParseRefresh(token)
	if err != nil {
		response.Err(w, h.Log, apperr.Unauthorized("Unauthorized Access"))
		return
	}

	user, err := h.Users.GetByEmail(r.Context(), claims.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = apperr.NotFound("User not found")
		}
		response.Err(w, h.Log, err)
		return
	}
	if user.Status == models.StatusBlocked {
		response.Err(w, h.Log, apperr.Forbidden("User is blocked"))
		return
	}
	if user.IsDeleted {
		response.Err(w, h.Log, apperr.Forbidden("User is deleted"))
		return
	}
	if user.PasswordChangedAt != nil && claims.IssuedBefore(*user.PasswordChangedAt) {
		response.Err(w, h.Log, apperr.Unauthorized("Unauthorized Access"))
		return
	}

	access, err := h.Tokens.NewAccessToken(user.Email, user.Role)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	response.OK(w, http.StatusOK, "Access token retrieved successfully", loginResponse{Token: access})
}
