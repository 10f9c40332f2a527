// internal/app/features/categories/create.go
package categories

import (
	"errors"
	"net/http"

	categorystore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/categories"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/apperr"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/bind"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/normalize"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/response"
	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

type createRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// HandleCreate adds a category. Names are unique; a duplicate is a
// conflict regardless of who sends it first.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := bind.JSON(w, r, &req); err != nil {
		response.Err(w, h.Log, err)
		return
	}
	if normalize.Name(req.Name) == "" {
		response.Err(w, h.Log, apperr.BadRequest("Name is required"))
		return
	}

	cat, err := h.Categories.Create(r.Context(), models.Category{
		Name:        normalize.Name(req.Name),
		Description: normalize.Name(req.Description),
	})
	if err != nil {
		if errors.Is(err, categorystore.ErrDuplicateName) {
			err = apperr.Conflict("Category already exists")
		}
		response.Err(w, h.Log, err)
		return
	}

	response.OK(w, http.StatusCreated, "Category created successfully", cat)
}
