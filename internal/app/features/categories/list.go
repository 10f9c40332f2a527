// internal/app/features/categories/list.go
package categories

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/listquery"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/response"
	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

// ServeList returns categories with search, filter, sort, pagination,
// and field selection from query parameters.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := listquery.New(h.Categories.Collection(), r.URL.Query(), bson.M{"is_deleted": bson.M{"$ne": true}}).
		Search("name", "description").
		Filter("name").
		Sort().
		Paginate().
		Fields()

	var cats []models.Category
	if err := q.Find(r.Context(), &cats); err != nil {
		response.Err(w, h.Log, err)
		return
	}
	meta, err := q.CountTotal(r.Context())
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	response.List(w, http.StatusOK, "Categories retrieved successfully", cats, meta)
}
