// internal/app/features/subscriptions/handler_test.go
package subscriptions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/auth"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/paygate"
	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
	"github.com/noyonalways/tech-tips-hub-api/internal/testutil"
)

// fakeGateway records initiations and returns a fixed checkout URL.
type fakeGateway struct {
	initiated []paygate.InitiateRequest
	failNext  bool
}

func (f *fakeGateway) Initiate(_ context.Context, req paygate.InitiateRequest) (paygate.CheckoutSession, error) {
	if f.failNext {
		return paygate.CheckoutSession{}, context.DeadlineExceeded
	}
	f.initiated = append(f.initiated, req)
	return paygate.CheckoutSession{PaymentURL: "https://pay.example.com/checkout"}, nil
}

func (f *fakeGateway) Verify(context.Context, string) (paygate.VerifyResult, error) {
	return paygate.VerifyResult{PayStatus: "Successful"}, nil
}

func newTestHandler(t *testing.T) (*Handler, *fakeGateway, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	tokens := auth.NewTokenManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	gw := &fakeGateway{}
	return NewHandler(db, tokens, gw, zap.NewNop()), gw, testutil.NewFixtures(t, db)
}

func subscribeBody() map[string]any {
	return map[string]any{
		"type":          "Monthly",
		"price":         20.0,
		"currency":      "BDT",
		"paymentMethod": "Aamarpay",
	}
}

func TestSubscribeCreatesPendingRecords(t *testing.T) {
	h, gw, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Subscriber", "User")

	rec := httptest.NewRecorder()
	req := testutil.JSONRequest(t, http.MethodPost, "/subscriptions/subscribe", subscribeBody())
	req = testutil.WithUserClaims(req, user)
	h.HandleSubscribe(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("subscribe: code=%d body=%s", rec.Code, rec.Body.String())
	}

	var checkout paygate.CheckoutSession
	testutil.DecodeEnvelope(t, rec.Body, &checkout)
	if checkout.PaymentURL == "" {
		t.Fatal("no payment URL returned")
	}

	if len(gw.initiated) != 1 {
		t.Fatalf("gateway initiated %d times, want 1", len(gw.initiated))
	}
	txnID := gw.initiated[0].TransactionID

	sub, err := h.Subs.GetByTransactionID(ctx, txnID)
	if err != nil {
		t.Fatalf("load subscription: %v", err)
	}
	if sub.Status != models.SubscriptionPending || sub.User != user.ID {
		t.Fatalf("unexpected subscription: %+v", sub)
	}

	pay, err := h.Payments.GetByTransactionID(ctx, txnID)
	if err != nil {
		t.Fatalf("load payment: %v", err)
	}
	if pay.Status != models.PaymentPending || pay.Subscription != sub.ID {
		t.Fatalf("unexpected payment: %+v", pay)
	}
}

func TestSubscribeRejectsPremiumUser(t *testing.T) {
	h, _, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreatePremiumUser(ctx, "Already Premium")

	rec := httptest.NewRecorder()
	req := testutil.JSONRequest(t, http.MethodPost, "/subscriptions/subscribe", subscribeBody())
	req = testutil.WithUserClaims(req, user)
	h.HandleSubscribe(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("premium subscribe: code=%d, want 403", rec.Code)
	}
}

func TestSubscribeGatewayFailureWritesNothing(t *testing.T) {
	h, gw, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Unlucky", "User")
	gw.failNext = true

	rec := httptest.NewRecorder()
	req := testutil.JSONRequest(t, http.MethodPost, "/subscriptions/subscribe", subscribeBody())
	req = testutil.WithUserClaims(req, user)
	h.HandleSubscribe(rec, req)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("gateway failure: code=%d, want 502", rec.Code)
	}

	n, err := h.Subs.Collection().CountDocuments(ctx, bson.M{"user": user.ID})
	if err != nil {
		t.Fatalf("count subscriptions: %v", err)
	}
	if n != 0 {
		t.Fatalf("gateway failure left %d subscription records", n)
	}
}

func TestSubscribeInvalidBody(t *testing.T) {
	h, _, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Subscriber", "User")

	body := subscribeBody()
	body["type"] = "Lifetime"

	rec := httptest.NewRecorder()
	req := testutil.JSONRequest(t, http.MethodPost, "/subscriptions/subscribe", body)
	req = testutil.WithUserClaims(req, user)
	h.HandleSubscribe(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid type: code=%d, want 400", rec.Code)
	}
}
