// internal/app/features/auth/login.go
package auth

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/apperr"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/bind"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/response"
	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// HandleLogin verifies credentials, sets the refresh cookie, and returns
// the access token in the body.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := bind.JSON(w, r, &req); err != nil {
		response.Err(w, h.Log, err)
		return
	}
	if req.Email == "" {
		response.Err(w, h.Log, apperr.BadRequest("Email is required"))
		return
	}
	if req.Password == "" {
		response.Err(w, h.Log, apperr.BadRequest("Password is required"))
		return
	}
	if err := h.Limits.Check(r, req.Email); err != nil {
		response.Err(w, h.Log, err)
		return
	}

	user, err := h.Users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = apperr.NotFound("User not found")
		}
		response.Err(w, h.Log, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		response.Err(w, h.Log, apperr.Unauthorized("Incorrect credentials"))
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

	access, err := h.Tokens.NewAccessToken(user.Email, user.Role)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}
	refresh, err := h.Tokens.NewRefreshToken(user.Email, user.Role)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}
	if err := h.Cookies.Set(w, refresh); err != nil {
		response.Err(w, h.Log, err)
		return
	}

	h.Limits.ResetEmail(user.Email)

	response.OK(w, http.StatusOK, "User Logged in successfully", loginResponse{Token: access})
}
