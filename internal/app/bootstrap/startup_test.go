package bootstrap

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
	"github.com/noyonalways/tech-tips-hub-api/internal/testutil"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestEnsureAdminCreatesNew(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}

	if err := ensureAdmin(ctx, deps, "admin@techtipshub.test", "s3cret-admin-pass", testLogger()); err != nil {
		t.Fatalf("ensureAdmin failed: %v", err)
	}

	var user models.User
	err := db.Collection("users").FindOne(ctx, bson.M{"email": "admin@techtipshub.test"}).Decode(&user)
	if err != nil {
		t.Fatalf("failed to find created user: %v", err)
	}

	if user.Role != models.RoleAdmin {
		t.Errorf("role = %q, want Admin", user.Role)
	}
	if user.Status != models.StatusActive {
		t.Errorf("status = %q, want Active", user.Status)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret-admin-pass")); err != nil {
		t.Error("stored password does not match configured admin_password")
	}
}

func TestEnsureAdminPromotesExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	existing := fx.CreateUser(ctx, "Regular Person", models.RoleUser)

	deps := DBDeps{MongoDatabase: db}

	if err := ensureAdmin(ctx, deps, existing.Email, "", testLogger()); err != nil {
		t.Fatalf("ensureAdmin failed: %v", err)
	}

	var user models.User
	err := db.Collection("users").FindOne(ctx, bson.M{"_id": existing.ID}).Decode(&user)
	if err != nil {
		t.Fatalf("failed to find user: %v", err)
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("role = %q, want Admin after promotion", user.Role)
	}
}

func TestEnsureAdminAlreadyAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	admin := fx.CreateUser(ctx, "Existing Admin", models.RoleAdmin)

	deps := DBDeps{MongoDatabase: db}

	if err := ensureAdmin(ctx, deps, admin.Email, "ignored", testLogger()); err != nil {
		t.Fatalf("ensureAdmin failed: %v", err)
	}

	var user models.User
	err := db.Collection("users").FindOne(ctx, bson.M{"_id": admin.ID}).Decode(&user)
	if err != nil {
		t.Fatalf("failed to find user: %v", err)
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("role = %q, want Admin", user.Role)
	}
}

func TestEnsureAdminMissingPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}

	// No account and no password: nothing to create, not an error.
	if err := ensureAdmin(ctx, deps, "nobody@techtipshub.test", "", testLogger()); err != nil {
		t.Fatalf("ensureAdmin failed: %v", err)
	}

	n, err := db.Collection("users").CountDocuments(ctx, bson.M{"email": "nobody@techtipshub.test"})
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if n != 0 {
		t.Error("account created without a configured password")
	}
}
