// internal/app/features/auth/register.go
package auth

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	userstore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/users"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/apperr"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/bind"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/inputval"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/mailer"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/normalize"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/response"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/timeouts"
	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
	"go.uber.org/zap"
)

type registerRequest struct {
	FullName       string `json:"fullName"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

func (req *registerRequest) validate() error {
	switch {
	case req.FullName == "":
		return apperr.BadRequest("Full Name is required")
	case req.Username == "":
		return apperr.BadRequest("Username is required")
	case req.Email == "":
		return apperr.BadRequest("Email is required")
	case req.Password == "":
		return apperr.BadRequest("Password is required")
	case !inputval.IsValidEmail(req.Email):
		return apperr.BadRequest("Invalid email address")
	case !inputval.IsValidUsername(req.Username):
		return apperr.BadRequest("Invalid username")
	case !inputval.IsValidPassword(req.Password):
		return apperr.BadRequest("Password must be at least 6 characters")
	}
	return nil
}

// HandleRegister creates a new account and sends the welcome email.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := bind.JSON(w, r, &req); err != nil {
		response.Err(w, h.Log, err)
		return
	}
	if err := req.validate(); err != nil {
		response.Err(w, h.Log, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	user, err := h.Users.Create(r.Context(), models.User{
		FullName:       normalize.Name(req.FullName),
		Username:       req.Username,
		Email:          req.Email,
		Password:       string(hash),
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		switch {
		case errors.Is(err, userstore.ErrDuplicateEmail):
			err = apperr.Conflict("User already registered")
		case errors.Is(err, userstore.ErrDuplicateUsername):
			err = apperr.Conflict("Username already exists")
		}
		response.Err(w, h.Log, err)
		return
	}

	h.sendWelcomeEmail(user)

	response.OK(w, http.StatusCreated, "User Registered successfully", user)
}

// sendWelcomeEmail delivers the welcome email in the background; a
// delivery failure never fails the registration.
func (h *Handler) sendWelcomeEmail(user models.User) {
	email := mailer.BuildWelcomeEmail(mailer.WelcomeEmailData{
		SiteName: h.SiteName,
		FullName: user.FullName,
		Username: user.Username,
	})
	email.To = user.Email

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeouts.Long())
		defer cancel()
		if err := h.Mail.Send(ctx, email); err != nil {
			h.Log.Warn("welcome email failed",
				zap.String("email", user.Email), zap.Error(err))
		}
	}()
}
