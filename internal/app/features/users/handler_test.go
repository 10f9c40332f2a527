// internal/app/features/users/handler_test.go
package users

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/auth"
	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
	"github.com/noyonalways/tech-tips-hub-api/internal/testutil"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	tokens := auth.NewTokenManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	return NewHandler(db, tokens, nil, zap.NewNop()), testutil.NewFixtures(t, db)
}

func followRequest(t *testing.T, method, action string, actor models.User, targetID string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, "/users/"+targetID+"/"+action, nil)
	req = testutil.WithChiURLParam(req, "id", targetID)
	return testutil.WithUserClaims(req, actor)
}

func TestFollowUnfollowRestoresCounters(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "User")
	bob := fx.CreateUser(ctx, "Bob", "User")

	counts := func(id models.User) (int64, int64) {
		u, err := h.Users.GetByID(ctx, id.ID)
		if err != nil {
			t.Fatalf("reload user: %v", err)
		}
		return u.TotalFollowers, u.TotalFollowing
	}

	rec := httptest.NewRecorder()
	h.HandleFollow(rec, followRequest(t, http.MethodPut, "follow", alice, bob.ID.Hex()))
	if rec.Code != http.StatusOK {
		t.Fatalf("follow: code=%d body=%s", rec.Code, rec.Body.String())
	}

	if followers, _ := counts(bob); followers != 1 {
		t.Fatalf("bob followers = %d, want 1", followers)
	}
	if _, following := counts(alice); following != 1 {
		t.Fatalf("alice following = %d, want 1", following)
	}

	// Following again is rejected and moves nothing.
	rec = httptest.NewRecorder()
	h.HandleFollow(rec, followRequest(t, http.MethodPut, "follow", alice, bob.ID.Hex()))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("double follow: code=%d, want 400", rec.Code)
	}
	if followers, _ := counts(bob); followers != 1 {
		t.Fatalf("double follow moved counter: %d", followers)
	}

	rec = httptest.NewRecorder()
	h.HandleUnfollow(rec, followRequest(t, http.MethodDelete, "unfollow", alice, bob.ID.Hex()))
	if rec.Code != http.StatusOK {
		t.Fatalf("unfollow: code=%d body=%s", rec.Code, rec.Body.String())
	}

	if followers, _ := counts(bob); followers != 0 {
		t.Fatalf("bob followers after unfollow = %d, want 0", followers)
	}
	if _, following := counts(alice); following != 0 {
		t.Fatalf("alice following after unfollow = %d, want 0", following)
	}

	// Unfollowing without an edge is rejected and moves nothing.
	rec = httptest.NewRecorder()
	h.HandleUnfollow(rec, followRequest(t, http.MethodDelete, "unfollow", alice, bob.ID.Hex()))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("double unfollow: code=%d, want 400", rec.Code)
	}
	if followers, _ := counts(bob); followers != 0 {
		t.Fatalf("double unfollow moved counter: %d", followers)
	}
}

func TestFollowSelf(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "User")

	rec := httptest.NewRecorder()
	h.HandleFollow(rec, followRequest(t, http.MethodPut, "follow", alice, alice.ID.Hex()))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("self follow: code=%d, want 400", rec.Code)
	}
}

func TestFollowerListings(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "User")
	bob := fx.CreateUser(ctx, "Bob", "User")
	carol := fx.CreateUser(ctx, "Carol", "User")

	for _, follower := range []models.User{bob, carol} {
		rec := httptest.NewRecorder()
		h.HandleFollow(rec, followRequest(t, http.MethodPut, "follow", follower, alice.ID.Hex()))
		if rec.Code != http.StatusOK {
			t.Fatalf("follow setup: code=%d", rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/my-followers", nil)
	req = testutil.WithUserClaims(req, alice)
	h.ServeMyFollowers(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("my-followers: code=%d body=%s", rec.Code, rec.Body.String())
	}

	var list []models.User
	testutil.DecodeEnvelope(t, rec.Body, &list)
	if len(list) != 2 {
		t.Fatalf("got %d followers, want 2", len(list))
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/users/"+bob.ID.Hex()+"/following", nil)
	req = testutil.WithChiURLParam(req, "id", bob.ID.Hex())
	h.ServeFollowingByID(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("following by id: code=%d", rec.Code)
	}
	list = nil
	testutil.DecodeEnvelope(t, rec.Body, &list)
	if len(list) != 1 || list[0].ID != alice.ID {
		t.Fatalf("bob's following list wrong: %+v", list)
	}
}

func TestBlockUnblock(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	target := fx.CreateUser(ctx, "Target", "User")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/users/"+target.ID.Hex()+"/block", nil)
	req = testutil.WithChiURLParam(req, "id", target.ID.Hex())
	h.HandleBlock(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("block: code=%d body=%s", rec.Code, rec.Body.String())
	}

	// Blocking twice is an error.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, "/users/"+target.ID.Hex()+"/block", nil)
	req = testutil.WithChiURLParam(req, "id", target.ID.Hex())
	h.HandleBlock(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("double block: code=%d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, "/users/"+target.ID.Hex()+"/unblock", nil)
	req = testutil.WithChiURLParam(req, "id", target.ID.Hex())
	h.HandleUnblock(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unblock: code=%d body=%s", rec.Code, rec.Body.String())
	}

	u, err := h.Users.GetByID(ctx, target.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if u.Status != models.StatusActive {
		t.Fatalf("status = %q, want Active", u.Status)
	}
}

func TestUpdateSocialLinks(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Linker", "User")

	rec := httptest.NewRecorder()
	req := testutil.JSONRequest(t, http.MethodPut, "/users/profile/update-social-links", map[string]any{
		"socialLinks": []map[string]string{
			{"platform": "github", "url": "https://github.com/linker"},
		},
	})
	req = testutil.WithUserClaims(req, user)
	h.HandleUpdateSocialLinks(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update links: code=%d body=%s", rec.Code, rec.Body.String())
	}

	var updated models.User
	testutil.DecodeEnvelope(t, rec.Body, &updated)
	if len(updated.SocialLinks) != 1 || updated.SocialLinks[0].Platform != "github" {
		t.Fatalf("social links not applied: %+v", updated.SocialLinks)
	}

	// Unknown platforms are rejected.
	rec = httptest.NewRecorder()
	req = testutil.JSONRequest(t, http.MethodPut, "/users/profile/update-social-links", map[string]any{
		"socialLinks": []map[string]string{
			{"platform": "myspace", "url": "https://myspace.com/linker"},
		},
	})
	req = testutil.WithUserClaims(req, user)
	h.HandleUpdateSocialLinks(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad platform: code=%d, want 400", rec.Code)
	}
}
