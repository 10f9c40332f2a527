// internal/app/features/payments/confirm.go
package payments

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/apperr"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/mailer"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/response"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/timeouts"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/txn"
	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

// transactionIDParam reads the transaction id the gateway appends to the
// callback URLs.
func transactionIDParam(r *http.Request) (string, error) {
	txnID := r.URL.Query().Get("transactionId")
	if txnID == "" {
		return "", apperr.BadRequest("Transaction id is required")
	}
	return txnID, nil
}

// premiumWindow is the access period granted per plan.
func premiumWindow(subscriptionType string) time.Duration {
	if subscriptionType == models.SubscriptionAnnual {
		return 365 * 24 * time.Hour
	}
	return 30 * 24 * time.Hour
}

// HandleConfirmation verifies the transaction with the gateway and, on
// success, marks the payment Paid, activates the subscription, and grants
// the user premium access.
func (h *Handler) HandleConfirmation(w http.ResponseWriter, r *http.Request) {
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
	if payment.Status == models.PaymentPaid {
		response.Err(w, h.Log, apperr.Conflict("Payment already paid"))
		return
	}

	verified, err := h.Gateway.Verify(r.Context(), txnID)
	if err != nil {
		response.Err(w, h.Log, apperr.Wrap(http.StatusBadGateway, "Failed to verify payment", err))
		return
	}
	if !verified.Successful() {
		err = txn.Run(r.Context(), h.DB, h.Log, func(ctx context.Context) error {
			if err := h.Payments.SetStatusByTransaction(ctx, txnID, models.PaymentFailed); err != nil {
				return err
			}
			return h.Subs.SetStatusByTransaction(ctx, txnID, models.SubscriptionPending)
		})
		if err != nil {
			response.Err(w, h.Log, err)
			return
		}
		response.Err(w, h.Log, apperr.BadRequest("Payment verification failed"))
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

	now := time.Now().UTC()
	err = txn.Run(r.Context(), h.DB, h.Log, func(ctx context.Context) error {
		if payment, err = h.Payments.MarkPaid(ctx, txnID, now); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return apperr.Conflict("Payment already paid")
			}
			return err
		}
		if sub, err = h.Subs.Activate(ctx, txnID, now, now.Add(premiumWindow(sub.Type))); err != nil {
			return err
		}
		return h.Users.SetPremium(ctx, payment.User, true)
	})
	if err != nil {
		response.Err(w, h.Log, err)
		return
	}

	h.sendOutcomeEmail(payment, sub, true)

	response.OK(w, http.StatusOK, "Payment confirmed successfully", payment)
}

// sendOutcomeEmail notifies the payer after the callback transaction has
// committed. Delivery failures are logged, never surfaced.
func (h *Handler) sendOutcomeEmail(payment *models.Payment, sub *models.Subscription, confirmed bool) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeouts.Long())
		defer cancel()

		user, err := h.Users.GetByID(ctx, payment.User)
		if err != nil {
			h.Log.Warn("payment email: load user", zap.Error(err))
			return
		}

		data := mailer.PaymentEmailData{
			SiteName:      h.SiteName,
			FullName:      user.FullName,
			TransactionID: payment.TransactionID,
			Amount:        payment.Amount,
			Currency:      payment.Currency,
		}
		email := mailer.BuildPaymentFailedEmail(data)
		if confirmed && sub != nil {
			data.SubscriptionType = sub.Type
			data.EndDate = sub.EndDate.Format("January 2, 2006")
			email = mailer.BuildPaymentConfirmedEmail(data)
		}
		email.To = user.Email

		if err := h.Mail.Send(ctx, email); err != nil {
			h.Log.Warn("payment email: send", zap.String("to", user.Email), zap.Error(err))
		}
	}()
}
