// internal/app/features/users/followers.go
package users

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/features/shared"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/response"
)

// ServeMyFollowers lists the users who follow the caller.
func (h *Handler) ServeMyFollowers(w http.ResponseWriter, r *http.Request) {
	me, err := shared.CurrentUser(r.Context(), r, h.Users)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}
	h.serveEdge(w, r, me.ID, true, "Followers retrieved successfully")
}

// ServeMyFollowing lists the users the caller follows.
func (h *Handler) ServeMyFollowing(w http.ResponseWriter, r *http.Request) {
	me, err := shared.CurrentUser(r.Context(), r, h.Users)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}
	h.serveEdge(w, r, me.ID, false, "Following retrieved successfully")
}

// ServeFollowersByID lists any user's followers.
func (h *Handler) ServeFollowersByID(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}
	h.serveEdge(w, r, id, true, "Followers retrieved successfully")
}

// ServeFollowingByID lists the users any user follows.
func (h *Handler) ServeFollowingByID(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}
	h.serveEdge(w, r, id, false, "Following retrieved successfully")
}

func (h *Handler) serveEdge(w http.ResponseWriter, r *http.Request, userID primitive.ObjectID, followers bool, message string) {
	var (
		ids []primitive.ObjectID
		err error
	)
	if followers {
		ids, err = h.Followers.FollowerIDs(r.Context(), userID)
	} else {
		ids, err = h.Followers.FollowingIDs(r.Context(), userID)
	}
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	list, err := h.Users.GetManyByIDs(r.Context(), ids)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	response.OK(w, http.StatusOK, message, list)
}
