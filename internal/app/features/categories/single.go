// internal/app/features/categories/single.go
package categories

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/apperr"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/response"
)

func categoryID(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, apperr.BadRequest("Invalid category id")
	}
	return id, nil
}

// ServeSingle returns one category by id.
func (h *Handler) ServeSingle(w http.ResponseWriter, r *http.Request) {
	id, err := categoryID(r)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	cat, err := h.Categories.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = apperr.NotFound("Category not found")
		}
		response.Err(w, h.Log, err)
		return
	}

	response.OK(w, http.StatusOK, "Category retrieved successfully", cat)
}

// HandleDelete soft deletes a category. Existing posts keep their
// category reference.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := categoryID(r)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	if err := h.Categories.SoftDelete(r.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = apperr.NotFound("Category not found")
		}
		response.Err(w, h.Log, err)
		return
	}

	response.OK(w, http.StatusOK, "Category deleted successfully", nil)
}
