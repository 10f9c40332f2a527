// internal/app/features/subscriptions/subscribe.go
package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/apperr"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/auth"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/bind"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/inputval"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/paygate"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/response"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/txn"
	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

type subscribeRequest struct {
	Type          string  `json:"type"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
	PaymentMethod string  `json:"paymentMethod"`
}

func (req *subscribeRequest) validate() error {
	switch {
	case !inputval.IsValidSubscriptionType(req.Type):
		return apperr.BadRequest("Invalid subscription type")
	case req.Price <= 0:
		return apperr.BadRequest("Price must be greater than zero")
	case !inputval.IsValidCurrency(req.Currency):
		return apperr.BadRequest("Invalid currency")
	case !inputval.IsValidPaymentMethod(req.PaymentMethod):
		return apperr.BadRequest("Invalid payment method")
	}
	return nil
}

// HandleSubscribe opens a premium checkout session. The subscription and
// payment records are created Pending with a shared transaction id; the
// caller is redirected to the gateway's hosted payment page.
func (h *Handler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := bind.JSON(w, r, &req); err != nil {
		response.Err(w, h.Log, err)
		return
	}
	if err := req.validate(); err != nil {
		response.Err(w, h.Log, err)
		return
	}

	user, err := h.currentUser(r)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	transactionID := paygate.NewTransactionID()

	phone := user.Phone
	if phone == "" {
		phone = "N/A"
	}
	address := user.Location
	if address == "" {
		address = "N/A"
	}

	checkout, err := h.Gateway.Initiate(r.Context(), paygate.InitiateRequest{
		TransactionID: transactionID,
		Amount:        fmt.Sprintf("%.2f", req.Price),
		Currency:      req.Currency,
		CustomerName:  user.FullName,
		CustomerEmail: user.Email,
		CustomerPhone: phone,
		Address:       address,
		Description:   fmt.Sprintf("%s premium subscription", req.Type),
	})
	if err != nil {
		response.Err(w, h.Log, apperr.Wrap(http.StatusBadGateway, "Failed to initiate payment", err))
		return
	}

	err = txn.Run(r.Context(), h.DB, h.Log, func(ctx context.Context) error {
		sub, err := h.Subs.Create(ctx, models.Subscription{
			User:          user.ID,
			TransactionID: transactionID,
			Type:          req.Type,
			Price:         req.Price,
			Currency:      req.Currency,
		})
		if err != nil {
			return err
		}
		_, err = h.Payments.Create(ctx, models.Payment{
			TransactionID: transactionID,
			User:          user.ID,
			Subscription:  sub.ID,
			PaymentMethod: req.PaymentMethod,
			Amount:        req.Price,
			Currency:      req.Currency,
		})
		return err
	})
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	response.OK(w, http.StatusOK, "Subscription initiate successfully", checkout)
}

// currentUser applies the subscribe-specific account checks.
func (h *Handler) currentUser(r *http.Request) (*models.User, error) {
	claims, ok := auth.CurrentClaims(r)
	if !ok {
		return nil, apperr.Unauthorized("Unauthorized Access")
	}

	user, err := h.Users.GetByEmail(r.Context(), claims.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}
	switch {
	case user.IsDeleted:
		return nil, apperr.Forbidden("User is already deleted")
	case user.Status == models.StatusBlocked:
		return nil, apperr.Forbidden("User is blocked")
	case user.IsPremiumUser:
		return nil, apperr.Forbidden("User is already a premium user")
	}
	return user, nil
}
