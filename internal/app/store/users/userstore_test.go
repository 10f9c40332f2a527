package userstore_test

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	userstore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/users"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/indexes"
	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
	"github.com/noyonalways/tech-tips-hub-api/internal/testutil"
)

func TestCreateAndLookup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db)

	created, err := store.Create(ctx, models.User{
		FullName: "  Ada Lovelace ",
		Username: "Ada",
		Email:    " ADA@Example.com ",
		Password: "hashed",
		Gender:   "female",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Email != "ada@example.com" || created.Username != "ada" {
		t.Errorf("normalization: email=%q username=%q", created.Email, created.Username)
	}
	if created.Role != models.RoleUser || created.Status != models.StatusActive {
		t.Errorf("defaults: role=%q status=%q", created.Role, created.Status)
	}

	byEmail, err := store.GetByEmail(ctx, "Ada@example.COM")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail.ID != created.ID {
		t.Error("GetByEmail returned wrong user")
	}

	byUsername, err := store.GetByUsername(ctx, "ADA")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if byUsername.ID != created.ID {
		t.Error("GetByUsername returned wrong user")
	}
}

func TestCreate_DuplicateEmailAndUsername(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	store := userstore.New(db)

	base := models.User{FullName: "Ada", Username: "ada", Email: "ada@example.com", Password: "x", Gender: "female"}
	if _, err := store.Create(ctx, base); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	dupEmail := base
	dupEmail.Username = "ada2"
	if _, err := store.Create(ctx, dupEmail); !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Errorf("duplicate email: err = %v, want ErrDuplicateEmail", err)
	}

	dupUsername := base
	dupUsername.Email = "other@example.com"
	if _, err := store.Create(ctx, dupUsername); !errors.Is(err, userstore.ErrDuplicateUsername) {
		t.Errorf("duplicate username: err = %v, want ErrDuplicateUsername", err)
	}
}

func TestSoftDeleteHidesUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db)
	f := testutil.NewFixtures(t, db)
	user := f.CreateUser(ctx, "Grace Hopper", models.RoleUser)

	if err := store.SoftDelete(ctx, user.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if _, err := store.GetByID(ctx, user.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("GetByID after delete: err = %v, want ErrNoDocuments", err)
	}
	// Email lookup still resolves so auth can report the deleted state.
	deleted, err := store.GetByEmail(ctx, user.Email)
	if err != nil {
		t.Fatalf("GetByEmail after delete: %v", err)
	}
	if !deleted.IsDeleted {
		t.Error("IsDeleted = false after SoftDelete")
	}
}

func TestAdjustFollowCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db)
	f := testutil.NewFixtures(t, db)
	a := f.CreateUser(ctx, "A", models.RoleUser)
	b := f.CreateUser(ctx, "B", models.RoleUser)

	if err := store.AdjustFollowCounts(ctx, a.ID, b.ID, 1); err != nil {
		t.Fatalf("AdjustFollowCounts: %v", err)
	}

	gotA, _ := store.GetByID(ctx, a.ID)
	gotB, _ := store.GetByID(ctx, b.ID)
	if gotA.TotalFollowing != 1 || gotB.TotalFollowers != 1 {
		t.Errorf("counts after follow: following=%d followers=%d", gotA.TotalFollowing, gotB.TotalFollowers)
	}

	if err := store.AdjustFollowCounts(ctx, a.ID, b.ID, -1); err != nil {
		t.Fatalf("AdjustFollowCounts undo: %v", err)
	}
	gotA, _ = store.GetByID(ctx, a.ID)
	gotB, _ = store.GetByID(ctx, b.ID)
	if gotA.TotalFollowing != 0 || gotB.TotalFollowers != 0 {
		t.Errorf("counts after unfollow: following=%d followers=%d", gotA.TotalFollowing, gotB.TotalFollowers)
	}
}

func TestSetStatusValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db)
	f := testutil.NewFixtures(t, db)
	user := f.CreateUser(ctx, "C", models.RoleUser)

	blocked, err := store.SetStatus(ctx, user.ID, models.StatusBlocked)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if blocked.Status != models.StatusBlocked {
		t.Errorf("status = %q", blocked.Status)
	}

	if _, err := store.SetStatus(ctx, user.ID, "Paused"); err == nil {
		t.Error("expected error for invalid status")
	}
}
