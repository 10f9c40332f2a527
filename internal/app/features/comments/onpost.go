// internal/app/features/comments/onpost.go
package comments

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/features/shared"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/apperr"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/bind"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/listquery"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/response"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/sanitize"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/txn"
	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

type createRequest struct {
	Content string `json:"content"`
}

func postIDParam(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, apperr.BadRequest("Invalid post Id")
	}
	return id, nil
}

// HandleCreateOnPost adds a comment to a post. The request is multipart:
// the "data" field carries the JSON payload and "images" files are
// attached. The insert and the post's totalComments increment commit
// together.
func (h *Handler) HandleCreateOnPost(w http.ResponseWriter, r *http.Request) {
	user, err := shared.CurrentUser(r.Context(), r, h.Users)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	postID, err := postIDParam(r)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}
	if _, err := h.Posts.GetByID(r.Context(), postID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = apperr.NotFound("Post not found")
		}
		response.Err(w, h.Log, err)
		return
	}

	if err := bind.Multipart(r); err != nil {
		response.Err(w, h.Log, err)
		return
	}
	var req createRequest
	if err := bind.JSONField(r, "data", &req); err != nil {
		response.Err(w, h.Log, err)
		return
	}
	if req.Content == "" {
		response.Err(w, h.Log, apperr.BadRequest("Content is required"))
		return
	}

	images, err := bind.SaveImages(r, h.Files, "images", "comments")
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	comment := models.Comment{
		Post:    postID,
		User:    user.ID,
		Content: sanitize.HTML(req.Content),
		Images:  images,
	}

	err = txn.Run(r.Context(), h.DB, h.Log, func(ctx context.Context) error {
		created, err := h.Comments.Create(ctx, comment)
		if err != nil {
			return err
		}
		comment = created
		return h.Posts.AdjustComments(ctx, postID, 1)
	})
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	response.OK(w, http.StatusCreated, "Comment added successfully", comment)
}

// ServeListByPost lists a post's comments with the standard list
// parameters.
func (h *Handler) ServeListByPost(w http.ResponseWriter, r *http.Request) {
	postID, err := postIDParam(r)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	base := bson.M{"post": postID, "is_deleted": bson.M{"$ne": true}}
	q := listquery.New(h.Comments.Collection(), r.URL.Query(), base).
		Search("content").
		Filter("user").
		Sort().
		Paginate().
		Fields()

	var list []models.Comment
	if err := q.Find(r.Context(), &list); err != nil {
		response.Err(w, h.Log, err)
		return
	}
	meta, err := q.CountTotal(r.Context())
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	response.List(w, http.StatusOK, "Comments retrieved successfully", list, meta)
}
