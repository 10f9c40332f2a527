// internal/app/features/payments/single.go
package payments

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/apperr"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/auth"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/listquery"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/response"
	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

// ServeByTransactionID returns one payment. Regular users can only read
// their own payments; admins can read any.
func (h *Handler) ServeByTransactionID(w http.ResponseWriter, r *http.Request) {
	txnID := chi.URLParam(r, "transactionId")

	payment, err := h.Payments.GetByTransactionID(r.Context(), txnID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			response.Err(w, h.Log, apperr.NotFound("Payment not found"))
			return
		}
		response.Err(w, h.Log, err)
		return
	}

	claims, ok := auth.CurrentClaims(r)
	if !ok {
		response.Err(w, h.Log, apperr.Unauthorized("Unauthorized Access"))
		return
	}
	if claims.Role != models.RoleAdmin {
		user, err := h.Users.GetByEmail(r.Context(), claims.Email)
		if err != nil || user.ID != payment.User {
			response.Err(w, h.Log, apperr.Forbidden("Access Forbidden"))
			return
		}
	}

	response.OK(w, http.StatusOK, "Payment retrieved successfully", payment)
}

// ServeList returns all payments for the admin dashboard with search,
// filter, sort, and pagination from query parameters.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := listquery.New(h.Payments.Collection(), r.URL.Query(), bson.M{}).
		Search("transaction_id").
		Filter("status", "payment_method", "currency").
		Sort().
		Paginate().
		Fields()

	var results []models.Payment
	if err := q.Find(r.Context(), &results); err != nil {
		response.Err(w, h.Log, err)
		return
	}
	meta, err := q.CountTotal(r.Context())
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	response.List(w, http.StatusOK, "Payments retrieved successfully", results, meta)
}
