// internal/app/features/posts/create.go
package posts

import (
	"context"
	"errors"
	"net/http"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/features/shared"
	poststore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/posts"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/apperr"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/bind"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/inputval"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/normalize"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/response"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/sanitize"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/slug"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/txn"
	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type createRequest struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	ContentType string   `json:"contentType,omitempty"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags,omitempty"`
	IsPremium   bool     `json:"isPremium,omitempty"`
}

func (req *createRequest) validate() error {
	switch {
	case normalize.Name(req.Title) == "":
		return apperr.BadRequest("Title is required")
	case req.Content == "":
		return apperr.BadRequest("Content is required")
	case req.Category == "":
		return apperr.BadRequest("Category is required")
	case req.ContentType != "" && !inputval.IsValidContentType(req.ContentType):
		return apperr.BadRequest("Invalid content type")
	}
	return nil
}

// HandleCreate publishes a post. The request is multipart: the "data"
// field carries the JSON payload and the optional "image" file becomes
// the cover image. The post insert and the category postCount increment
// commit together.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, err := shared.CurrentUser(r.Context(), r, h.Users)
	if err != nil {
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
	if err := req.validate(); err != nil {
		response.Err(w, h.Log, err)
		return
	}

	categoryID, err := primitive.ObjectIDFromHex(req.Category)
	if err != nil {
		response.Err(w, h.Log, apperr.BadRequest("Invalid category id"))
		return
	}
	category, err := h.Categories.GetByID(r.Context(), categoryID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = apperr.NotFound("Category not found")
		}
		response.Err(w, h.Log, err)
		return
	}

	coverImage := ""
	if fh := bind.FormFile(r, "image"); fh != nil {
		coverImage, err = bind.SaveImage(r, h.Files, fh, "posts")
		if err != nil {
			response.Err(w, h.Log, err)
			return
		}
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = models.ContentTypeHTML
	}

	postSlug, err := slug.Unique(r.Context(), slug.Make(req.Title, user.Username), h.Posts.SlugExists)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	post := models.Post{
		Author:      user.ID,
		Title:       normalize.Name(req.Title),
		Slug:        postSlug,
		ContentType: contentType,
		Content:     sanitize.Content(contentType, req.Content),
		CoverImage:  coverImage,
		Category:    category.ID,
		Tags:        req.Tags,
		IsPremium:   req.IsPremium,
	}

	err = txn.Run(r.Context(), h.DB, h.Log, func(ctx context.Context) error {
		created, err := h.Posts.Create(ctx, post)
		if err != nil {
			return err
		}
		post = created
		return h.Categories.AdjustPostCount(ctx, category.ID, 1)
	})
	if err != nil {
		if errors.Is(err, poststore.ErrDuplicateSlug) {
			err = apperr.Conflict("Post slug already exists")
		}
		response.Err(w, h.Log, err)
		return
	}

	response.OK(w, http.StatusCreated, "Post created successfully", post)
}
