package subscriptionstore_test

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	subscriptionstore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/subscriptions"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/indexes"
	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
	"github.com/noyonalways/tech-tips-hub-api/internal/testutil"
)

func TestCreateAndActivate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	store := subscriptionstore.New(db)
	f := testutil.NewFixtures(t, db)
	user := f.CreateUser(ctx, "Subscriber", models.RoleUser)

	sub, err := store.Create(ctx, models.Subscription{
		User:          user.ID,
		TransactionID: "TXN-AAA",
		Type:          models.SubscriptionMonthly,
		Price:         999,
		Currency:      models.CurrencyBDT,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sub.Status != models.SubscriptionPending {
		t.Errorf("status = %q, want Pending default", sub.Status)
	}

	if _, err := store.Create(ctx, models.Subscription{
		User:          user.ID,
		TransactionID: "TXN-AAA",
		Type:          models.SubscriptionMonthly,
		Price:         999,
		Currency:      models.CurrencyBDT,
	}); !errors.Is(err, subscriptionstore.ErrDuplicateTransaction) {
		t.Errorf("duplicate txn: err = %v, want ErrDuplicateTransaction", err)
	}

	now := time.Now().UTC()
	activated, err := store.Activate(ctx, "TXN-AAA", now, now.Add(30*24*time.Hour))
	if err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if activated.Status != models.SubscriptionActive {
		t.Errorf("status = %q after Activate", activated.Status)
	}
	if !activated.IsActiveAt(now.Add(24 * time.Hour)) {
		t.Error("subscription not active inside its window")
	}
	if activated.IsActiveAt(now.Add(31 * 24 * time.Hour)) {
		t.Error("subscription active outside its window")
	}
}

func TestGetActiveForUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := subscriptionstore.New(db)
	f := testutil.NewFixtures(t, db)
	user := f.CreateUser(ctx, "NoSub", models.RoleUser)
	premium := f.CreatePremiumUser(ctx, "Premium")

	now := time.Now().UTC()
	if _, err := store.GetActiveForUser(ctx, user.ID, now); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("no subscription: err = %v, want ErrNoDocuments", err)
	}

	sub, err := store.GetActiveForUser(ctx, premium.ID, now)
	if err != nil {
		t.Fatalf("GetActiveForUser: %v", err)
	}
	if sub.User != premium.ID || sub.Status != models.SubscriptionActive {
		t.Errorf("wrong subscription: %+v", sub)
	}
}
