package paymentstore_test

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	paymentstore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/payments"
	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
	"github.com/noyonalways/tech-tips-hub-api/internal/testutil"
)

func TestMarkPaidOnlyOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := paymentstore.New(db)
	f := testutil.NewFixtures(t, db)
	user := f.CreateUser(ctx, "Payer", models.RoleUser)
	_, payment := f.CreatePendingPayment(ctx, user.ID)

	now := time.Now().UTC()
	paid, err := store.MarkPaid(ctx, payment.TransactionID, now)
	if err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	if paid.Status != models.PaymentPaid {
		t.Errorf("status = %q, want Paid", paid.Status)
	}
	if paid.PaidAt == nil {
		t.Error("paid_at not stamped")
	}

	// A second confirmation racing past the handler's pre-check must
	// lose on the status filter, not double-mark the payment.
	if _, err := store.MarkPaid(ctx, payment.TransactionID, now); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("second MarkPaid: err = %v, want ErrNoDocuments", err)
	}

	if _, err := store.MarkPaid(ctx, "TXN-UNKNOWN", now); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("unknown txn: err = %v, want ErrNoDocuments", err)
	}
}
