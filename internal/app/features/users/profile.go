// internal/app/features/users/profile.go
package users

import (
	"net/http"
	"time"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/features/shared"
	userstore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/users"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/apperr"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/bind"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/inputval"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/response"
	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

type profileRequest struct {
	FullName    *string    `json:"fullName,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	Bio         *string    `json:"bio,omitempty"`
	Designation *string    `json:"designation,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Gender      *string    `json:"gender,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
}

// HandleUpdateProfile applies a partial profile update. The request is
// multipart: the "data" field carries the JSON payload and the optional
// "image" file replaces the profile picture.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, err := shared.CurrentUser(r.Context(), r, h.Users)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	if err := bind.Multipart(r); err != nil {
		response.Err(w, h.Log, err)
		return
	}
	var req profileRequest
	if err := bind.JSONField(r, "data", &req); err != nil {
		response.Err(w, h.Log, err)
		return
	}
	if req.Gender != nil && !inputval.IsValidGender(*req.Gender) {
		response.Err(w, h.Log, apperr.BadRequest("Invalid gender"))
		return
	}

	upd := userstore.ProfileUpdate{
		FullName:    req.FullName,
		Phone:       req.Phone,
		Bio:         req.Bio,
		Designation: req.Designation,
		Location:    req.Location,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
	}

	if fh := bind.FormFile(r, "image"); fh != nil {
		url, err := bind.SaveImage(r, h.Files, fh, "profiles")
		if err != nil {
			response.Err(w, h.Log, err)
			return
		}
		upd.ProfilePicture = &url
	}

	updated, err := h.Users.UpdateProfile(r.Context(), user.ID, upd)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	response.OK(w, http.StatusOK, "User profile updated successfully", updated)
}

type socialLinksRequest struct {
	SocialLinks []models.SocialLink `json:"socialLinks"`
}

// allowed social link platforms.
var platforms = map[string]struct{}{
	"facebook":  {},
	"twitter":   {},
	"linkedin":  {},
	"github":    {},
	"youtube":   {},
	"instagram": {},
}

// HandleUpdateSocialLinks replaces the user's social link list.
func (h *Handler) HandleUpdateSocialLinks(w http.ResponseWriter, r *http.Request) {
	user, err := shared.CurrentUser(r.Context(), r, h.Users)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	var req socialLinksRequest
	if err := bind.JSON(w, r, &req); err != nil {
		response.Err(w, h.Log, err)
		return
	}
	for _, link := range req.SocialLinks {
		if _, ok := platforms[link.Platform]; !ok {
			response.Err(w, h.Log, apperr.BadRequest("Invalid social link platform"))
			return
		}
		if link.URL == "" {
			response.Err(w, h.Log, apperr.BadRequest("Social link URL is required"))
			return
		}
	}
	if req.SocialLinks == nil {
		req.SocialLinks = []models.SocialLink{}
	}

	updated, err := h.Users.UpdateProfile(r.Context(), user.ID, userstore.ProfileUpdate{
		SocialLinks: req.SocialLinks,
	})
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	response.OK(w, http.StatusOK, "User social links updated successfully", updated)
}
