// internal/app/features/payments/fail.go
package payments

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/apperr"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/response"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/txn"
	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

// HandleFailed is the gateway's failure callback. The subscription drops
// back to Pending so the user can retry the checkout.
func (h *Handler) HandleFailed(w http.ResponseWriter, r *http.Request) {
	h.closeOut(w, r, models.PaymentFailed, models.SubscriptionPending, "Payment failed")
}

// HandleCanceled is the gateway's cancel callback. Unlike a failure the
// subscription itself is closed out.
func (h *Handler) HandleCanceled(w http.ResponseWriter, r *http.Request) {
	h.closeOut(w, r, models.PaymentCanceled, models.SubscriptionCanceled, "Payment canceled")
}

// closeOut settles an unsuccessful checkout. Premium access granted by
// this subscription is revoked if it had already been activated.
func (h *Handler) closeOut(w http.ResponseWriter, r *http.Request, paymentStatus, subStatus, message string) {
	txnID, err := transactionIDParam(r)
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	payment, err := h.Payments.GetByTransactionID(r.Context(), txnID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			response.Err(w, h.Log, apperr.NotFound("Payment not found"))
			return
		}
		response.Err(w, h.Log, err)
		return
	}

	sub, err := h.Subs.GetByTransactionID(r.Context(), txnID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			response.Err(w, h.Log, apperr.NotFound("Subscription not found"))
			return
		}
		response.Err(w, h.Log, err)
		return
	}

	err = txn.Run(r.Context(), h.DB, h.Log, func(ctx context.Context) error {
		if err := h.Payments.SetStatusByTransaction(ctx, txnID, paymentStatus); err != nil {
			return err
		}
		if err := h.Subs.SetStatusByTransaction(ctx, txnID, subStatus); err != nil {
			return err
		}
		if sub.Status == models.SubscriptionActive {
			return h.Users.SetPremium(ctx, payment.User, false)
		}
		return nil
	})
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	if paymentStatus == models.PaymentFailed {
		h.sendOutcomeEmail(payment, nil, false)
	}

	response.OK(w, http.StatusOK, message, nil)
}
