// internal/app/features/users/follow.go
package users

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/features/shared"
	followerstore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/followers"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/apperr"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/response"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/txn"
)

// HandleFollow creates a follow edge. The edge insert and both users'
// denormalized counters commit together; the unique index on the pair
// turns a concurrent duplicate into a conflict.
func (h *Handler) HandleFollow(w http.ResponseWriter, r *http.Request) {
	me, err := shared.CurrentUser(r.Context(), r, h.Users)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	targetID, err := userIDParam(r)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}
	if targetID == me.ID {
		response.Err(w, h.Log, apperr.BadRequest("You cannot follow yourself"))
		return
	}
	if _, err := h.Users.GetByID(r.Context(), targetID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = apperr.NotFound("User to follow not found")
		}
		response.Err(w, h.Log, err)
		return
	}

	err = txn.Run(r.Context(), h.DB, h.Log, func(ctx context.Context) error {
		if _, err := h.Followers.Insert(ctx, me.ID, targetID); err != nil {
			return err
		}
		return h.Users.AdjustFollowCounts(ctx, me.ID, targetID, 1)
	})
	if err != nil {
		if errors.Is(err, followerstore.ErrAlreadyFollowing) {
			err = apperr.BadRequest("You are already following this user")
		}
		response.Err(w, h.Log, err)
		return
	}

	response.OK(w, http.StatusOK, "Successfully followed the user", nil)
}

// HandleUnfollow removes a follow edge and restores both counters.
func (h *Handler) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	me, err := shared.CurrentUser(r.Context(), r, h.Users)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	targetID, err := userIDParam(r)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}
	if targetID == me.ID {
		response.Err(w, h.Log, apperr.BadRequest("You cannot unfollow yourself"))
		return
	}
	if _, err := h.Users.GetByID(r.Context(), targetID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = apperr.NotFound("User to unfollow not found")
		}
		response.Err(w, h.Log, err)
		return
	}

	err = txn.Run(r.Context(), h.DB, h.Log, func(ctx context.Context) error {
		if err := h.Followers.Delete(ctx, me.ID, targetID); err != nil {
			return err
		}
		return h.Users.AdjustFollowCounts(ctx, me.ID, targetID, -1)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = apperr.BadRequest("You are not following this user")
		}
		response.Err(w, h.Log, err)
		return
	}

	response.OK(w, http.StatusOK, "Successfully unfollowed the user", nil)
}
