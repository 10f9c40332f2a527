// internal/app/features/posts/vote.go
package posts

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/features/shared"
	votestore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/votes"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/apperr"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/bind"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/inputval"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/response"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/txn"
	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

type voteRequest struct {
	VoteType string `json:"voteType"`
}

// HandleVote applies one vote action. Repeating the same vote removes it,
// sending the opposite vote switches it; the vote record and the post
// counters move in the same transaction.
func (h *Handler) HandleVote(w http.ResponseWriter, r *http.Request) {
	user, err := shared.CurrentUser(r.Context(), r, h.Users)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	var req voteRequest
	if err := bind.JSON(w, r, &req); err != nil {
		response.Err(w, h.Log, err)
		return
	}
	if !inputval.IsValidVoteType(req.VoteType) {
		response.Err(w, h.Log, apperr.BadRequest("Invalid vote type"))
		return
	}

	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, h.Log, apperr.BadRequest("Invalid post Id"))
		return
	}
	if _, err := h.Posts.GetByID(r.Context(), postID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = apperr.NotFound("Post not found")
		}
		response.Err(w, h.Log, err)
		return
	}

	var message string
	err = txn.Run(r.Context(), h.DB, h.Log, func(ctx context.Context) error {
		var applyErr error
		message, applyErr = h.applyVote(ctx, user.ID, postID, req.VoteType)
		return applyErr
	})
	if err != nil {
		if errors.Is(err, votestore.ErrAlreadyVoted) {
			err = apperr.Conflict("You have already voted on this post")
		}
		response.Err(w, h.Log, err)
		return
	}

	post, err := h.Posts.GetByID(r.Context(), postID)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	response.OK(w, http.StatusOK, message, post)
}

func (h *Handler) applyVote(ctx context.Context, userID, postID primitive.ObjectID, voteType string) (string, error) {
	existing, err := h.Votes.Get(ctx, userID, postID)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		if _, err := h.Votes.Insert(ctx, userID, postID, voteType); err != nil {
			return "", err
		}
		if voteType == models.VoteUp {
			return "Post upvoted successfully", h.Posts.AdjustVotes(ctx, postID, 1, 0)
		}
		return "Post downvoted successfully", h.Posts.AdjustVotes(ctx, postID, 0, 1)

	case err != nil:
		return "", err

	case existing.Type == voteType:
		if err := h.Votes.Delete(ctx, existing.ID); err != nil {
			return "", err
		}
		if voteType == models.VoteUp {
			return "Upvote removed", h.Posts.AdjustVotes(ctx, postID, -1, 0)
		}
		return "Downvote removed", h.Posts.AdjustVotes(ctx, postID, 0, -1)

	default:
		if err := h.Votes.SetType(ctx, existing.ID, voteType); err != nil {
			return "", err
		}
		if voteType == models.VoteUp {
			return "Post upvoted successfully", h.Posts.AdjustVotes(ctx, postID, 1, -1)
		}
		return "Post downvoted successfully", h.Posts.AdjustVotes(ctx, postID, -1, 1)
	}
}
