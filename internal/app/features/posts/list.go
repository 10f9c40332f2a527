// internal/app/features/posts/list.go
package posts

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/features/shared"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/apperr"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/listquery"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/response"
	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

// searchFields are the post fields matched by ?searchTerm=.
var searchFields = []string{"title", "content", "tags"}

// filterFields are the post fields accepted as direct query filters.
var filterFields = []string{"category", "author", "content_type", "is_premium", "tags"}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, base bson.M) {
	base["is_deleted"] = bson.M{"$ne": true}

	q := listquery.New(h.Posts.Collection(), r.URL.Query(), base).
		Search(searchFields...).
		Filter(filterFields...).
		Sort().
		Paginate().
		Fields()

	var posts []models.Post
	if err := q.Find(r.Context(), &posts); err != nil {
		response.Err(w, h.Log, err)
		return
	}
	meta, err := q.CountTotal(r.Context())
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	response.List(w, http.StatusOK, "Posts retrieved successfully", posts, meta)
}

// ServeList is the public feed.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, bson.M{})
}

// ServeMyPosts lists the authenticated user's own posts.
func (h *Handler) ServeMyPosts(w http.ResponseWriter, r *http.Request) {
	user, err := shared.CurrentUser(r.Context(), r, h.Users)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}
	h.list(w, r, bson.M{"author": user.ID})
}

// ServeByUser lists any user's posts by id.
func (h *Handler) ServeByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userId"))
	if err != nil {
		response.Err(w, h.Log, apperr.BadRequest("Invalid user id"))
		return
	}
	h.list(w, r, bson.M{"author": userID})
}
