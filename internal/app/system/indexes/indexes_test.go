package indexes_test

import (
	"testing"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/indexes"
	"github.com/noyonalways/tech-tips-hub-api/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("first EnsureAll failed: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesUniqueIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	want := map[string][]string{
		"users":         {"uniq_users_email", "uniq_users_username"},
		"categories":    {"uniq_categories_name"},
		"posts":         {"uniq_posts_slug"},
		"votes":         {"uniq_votes_user_post"},
		"views":         {"uniq_views_user_post"},
		"followers":     {"uniq_followers_pair"},
		"subscriptions": {"uniq_subscriptions_txnid"},
		"payments":      {"uniq_payments_txnid"},
	}

	for coll, names := range want {
		cur, err := db.Collection(coll).Indexes().List(ctx)
		if err != nil {
			t.Fatalf("list indexes on %s failed: %v", coll, err)
		}
		have := map[string]bool{}
		for cur.Next(ctx) {
			var idx bson.M
			if err := cur.Decode(&idx); err != nil {
				continue
			}
			if name, ok := idx["name"].(string); ok {
				have[name] = true
			}
		}
		cur.Close(ctx)

		for _, name := range names {
			if !have[name] {
				t.Errorf("expected index %q on %s", name, coll)
			}
		}
	}
}
