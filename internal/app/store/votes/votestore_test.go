package votestore_test

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	votestore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/votes"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/indexes"
	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
	"github.com/noyonalways/tech-tips-hub-api/internal/testutil"
)

func TestVoteLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	store := votestore.New(db)
	f := testutil.NewFixtures(t, db)
	user := f.CreateUser(ctx, "Voter", models.RoleUser)
	cat := f.CreateCategory(ctx, "Go")
	post := f.CreatePost(ctx, user.ID, cat.ID, "A Post")

	v, err := store.Insert(ctx, user.ID, post.ID, models.VoteUp)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	// Second record for the same pair must be rejected by the index.
	if _, err := store.Insert(ctx, user.ID, post.ID, models.VoteDown); !errors.Is(err, votestore.ErrAlreadyVoted) {
		t.Errorf("second insert: err = %v, want ErrAlreadyVoted", err)
	}

	if err := store.SetType(ctx, v.ID, models.VoteDown); err != nil {
		t.Fatalf("SetType: %v", err)
	}
	got, err := store.Get(ctx, user.ID, post.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Type != models.VoteDown {
		t.Errorf("type = %q after flip", got.Type)
	}

	if err := store.Delete(ctx, v.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, user.ID, post.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("Get after delete: err = %v, want ErrNoDocuments", err)
	}
}
