// internal/app/features/auth/password.go
package auth

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/features/shared"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/apperr"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/bind"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/inputval"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/mailer"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/response"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/timeouts"
	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// HandleChangePassword replaces the authenticated user's password after
// verifying the old one. Stamping password_changed_at invalidates every
// token issued before this moment.
func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	user, err := shared.CurrentUser(r.Context(), r, h.Users)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	var req changePasswordRequest
	if err := bind.JSON(w, r, &req); err != nil {
		response.Err(w, h.Log, err)
		return
	}
	if req.OldPassword == "" {
		response.Err(w, h.Log, apperr.BadRequest("Old password is required"))
		return
	}
	if !inputval.IsValidPassword(req.NewPassword) {
		response.Err(w, h.Log, apperr.BadRequest("New password must be at least 6 characters"))
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)) != nil {
		response.Err(w, h.Log, apperr.Unauthorized("Incorrect credentials"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}
	if err := h.Users.SetPassword(r.Context(), user.ID, string(hash)); err != nil {
		response.Err(w, h.Log, err)
		return
	}

	response.OK(w, http.StatusOK, "Password changed successfully", nil)
}

type forgetPasswordRequest struct {
	Email string `json:"email"`
}

// HandleForgetPassword emails a short-lived reset link. The reset token
// is an ordinary access token; changing the password stamps
// password_changed_at, so a used link cannot be replayed.
func (h *Handler) HandleForgetPassword(w http.ResponseWriter, r *http.Request) {
	var req forgetPasswordRequest
	if err := bind.JSON(w, r, &req); err != nil {
		response.Err(w, h.Log, err)
		return
	}
	if req.Email == "" {
		response.Err(w, h.Log, apperr.BadRequest("Email is required"))
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
	if user.Status == models.StatusBlocked {
		response.Err(w, h.Log, apperr.Forbidden("User is blocked"))
		return
	}
	if user.IsDeleted {
		response.Err(w, h.Log, apperr.Forbidden("User is deleted"))
		return
	}

	token, err := h.Tokens.NewAccessToken(user.Email, user.Role)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}
	h.sendResetEmail(user, token)

	response.OK(w, http.StatusOK, "Password reset link sent successfully", nil)
}

func (h *Handler) sendResetEmail(user *models.User, token string) {
	link := h.ResetBaseURL + "?token=" + url.QueryEscape(token)
	email := mailer.BuildPasswordResetEmail(mailer.ResetEmailData{
		SiteName:  h.SiteName,
		FullName:  user.FullName,
		ResetLink: link,
	})
	email.To = user.Email

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeouts.Long())
		defer cancel()
		if err := h.Mail.Send(ctx, email); err != nil {
			h.Log.Warn("password reset email failed",
				zap.String("email", user.Email), zap.Error(err))
		}
	}()
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// HandleResetPassword completes the flow started by forget-password.
func (h *Handler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := bind.JSON(w, r, &req); err != nil {
		response.Err(w, h.Log, err)
		return
	}
	if req.Token == "" {
		response.Err(w, h.Log, apperr.BadRequest("Token is required"))
		return
	}
	if !inputval.IsValidPassword(req.NewPassword) {
		response.Err(w, h.Log, apperr.BadRequest("New password must be at least 6 characters"))
		return
	}

	claims, err := h.Tokens.ParseAccess(req.Token)
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

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}
	if err := h.Users.SetPassword(r.Context(), user.ID, string(hash)); err != nil {
		response.Err(w, h.Log, err)
		return
	}

	response.OK(w, http.StatusOK, "Password reset successfully", nil)
}
