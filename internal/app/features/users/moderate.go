// internal/app/features/users/moderate.go
package users

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/apperr"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/response"
	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

func userIDParam(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, apperr.BadRequest("Invalid user id")
	}
	return id, nil
}

// HandleBlock marks a user Blocked. Blocked users cannot log in and
// their tokens stop working at the next user check.
func (h *Handler) HandleBlock(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, models.StatusBlocked, "User is already blocked", "User blocked successfully")
}

// HandleUnblock restores a blocked user to Active.
func (h *Handler) HandleUnblock(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, models.StatusActive, "User is already Active", "User unblock successfully")
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, status, alreadyMsg, okMsg string) {
	id, err := userIDParam(r)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	user, err := h.Users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = apperr.NotFound("User not found")
		}
		response.Err(w, h.Log, err)
		return
	}
	if user.Status == status {
		response.Err(w, h.Log, apperr.BadRequest(alreadyMsg))
		return
	}

	updated, err := h.Users.SetStatus(r.Context(), id, status)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	response.OK(w, http.StatusOK, okMsg, updated)
}
