// internal/app/features/comments/delete.go
package comments

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/features/shared"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/apperr"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/response"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/txn"
	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

// HandleDelete soft deletes a comment and decrements the post's
// totalComments in the same transaction. Only the comment's author or an
// admin may delete it.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, err := shared.CurrentUser(r.Context(), r, h.Users)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, h.Log, apperr.BadRequest("Invalid comment id"))
		return
	}

	comment, err := h.Comments.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = apperr.NotFound("Comment not found")
		}
		response.Err(w, h.Log, err)
		return
	}

	if comment.User != user.ID && user.Role != models.RoleAdmin {
		response.Err(w, h.Log, apperr.Forbidden("Access Forbidden"))
		return
	}

	err = txn.Run(r.Context(), h.DB, h.Log, func(ctx context.Context) error {
		if err := h.Comments.SoftDelete(ctx, id); err != nil {
			return err
		}
		return h.Posts.AdjustComments(ctx, comment.Post, -1)
	})
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	response.OK(w, http.StatusOK, "Comment deleted successfully", nil)
}
