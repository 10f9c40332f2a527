// internal/app/features/posts/single.go
package posts

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/features/shared"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/apperr"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/response"
)

// ServeBySlug returns one post by slug. Free posts are public. Premium
// posts require an authenticated premium reader with an active
// subscription window; the author always gets through. A premium read is
// counted once per user.
func (h *Handler) ServeBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.Posts.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = apperr.NotFound("Post not found")
		}
		response.Err(w, h.Log, err)
		return
	}

	if !post.IsPremium {
		response.OK(w, http.StatusOK, "Post retrieved successfully", post)
		return
	}

	user, err := shared.CurrentUser(r.Context(), r, h.Users)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	if post.Author != user.ID {
		if !user.IsPremiumUser {
			response.Err(w, h.Log, apperr.Forbidden("Premium content access is only for premium members"))
			return
		}
		if _, err := h.Subs.GetActiveForUser(r.Context(), user.ID, time.Now().UTC()); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				err = apperr.Forbidden("You do not have an active subscription. Please subscribe to access premium content.")
			}
			response.Err(w, h.Log, err)
			return
		}

		created, err := h.Views.MarkViewed(r.Context(), user.ID, post.ID)
		if err != nil {
			response.Err(w, h.Log, err)
			return
		}
		if created {
			if err := h.Posts.IncViews(r.Context(), post.ID); err != nil {
				response.Err(w, h.Log, err)
				return
			}
			post.TotalViews++
		}
	}

	response.OK(w, http.StatusOK, "Post retrieved successfully", post)
}
