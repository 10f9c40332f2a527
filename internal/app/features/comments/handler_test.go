// internal/app/features/comments/handler_test.go
package comments

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
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

func commentRequest(t *testing.T, user models.User, postID, content string) *http.Request {
	t.Helper()
	raw, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("data", string(raw)); err != nil {
		t.Fatalf("write data field: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/posts/"+postID+"/comments", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = testutil.WithChiURLParam(req, "id", postID)
	return testutil.WithUserClaims(req, user)
}

func TestCreateCommentMovesCounter(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fx.CreateUser(ctx, "Author", "User")
	commenter := fx.CreateUser(ctx, "Commenter", "User")
	cat := fx.CreateCategory(ctx, "Go")
	post := fx.CreatePost(ctx, author.ID, cat.ID, "Discussable")

	rec := httptest.NewRecorder()
	h.HandleCreateOnPost(rec, commentRequest(t, commenter, post.ID.Hex(), "Nice writeup"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create comment: code=%d body=%s", rec.Code, rec.Body.String())
	}

	reloaded, err := h.Posts.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("reload post: %v", err)
	}
	if reloaded.TotalComments != 1 {
		t.Fatalf("totalComments = %d, want 1", reloaded.TotalComments)
	}
}

func TestCreateCommentOnMissingPost(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Commenter", "User")

	rec := httptest.NewRecorder()
	h.HandleCreateOnPost(rec, commentRequest(t, user, "64f000000000000000000000", "hello"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing post: code=%d, want 404", rec.Code)
	}
}

func TestListCommentsByPost(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fx.CreateUser(ctx, "Author", "User")
	cat := fx.CreateCategory(ctx, "Go")
	post := fx.CreatePost(ctx, author.ID, cat.ID, "Discussable")
	other := fx.CreatePost(ctx, author.ID, cat.ID, "Quiet")
	fx.CreateComment(ctx, post.ID, author.ID, "first")
	fx.CreateComment(ctx, post.ID, author.ID, "second")
	fx.CreateComment(ctx, other.ID, author.ID, "elsewhere")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/posts/"+post.ID.Hex()+"/comments", nil)
	req = testutil.WithChiURLParam(req, "id", post.ID.Hex())
	h.ServeListByPost(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: code=%d body=%s", rec.Code, rec.Body.String())
	}

	var list []models.Comment
	env := testutil.DecodeEnvelope(t, rec.Body, &list)
	if len(list) != 2 || env.Meta == nil || env.Meta.Total != 2 {
		t.Fatalf("got %d comments, meta=%+v", len(list), env.Meta)
	}
}

func TestDeleteCommentOwnerOnly(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fx.CreateUser(ctx, "Author", "User")
	commenter := fx.CreateUser(ctx, "Commenter", "User")
	stranger := fx.CreateUser(ctx, "Stranger", "User")
	cat := fx.CreateCategory(ctx, "Go")
	post := fx.CreatePost(ctx, author.ID, cat.ID, "Discussable")
	comment := fx.CreateComment(ctx, post.ID, commenter.ID, "mine")

	// A non-owner without the admin role is rejected.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/comments/"+comment.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", comment.ID.Hex())
	req = testutil.WithUserClaims(req, stranger)
	h.HandleDelete(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("stranger delete: code=%d, want 403", rec.Code)
	}

	// The owner may delete; the counter moves back.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/comments/"+comment.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", comment.ID.Hex())
	req = testutil.WithUserClaims(req, commenter)
	h.HandleDelete(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner delete: code=%d body=%s", rec.Code, rec.Body.String())
	}

	reloaded, err := h.Posts.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("reload post: %v", err)
	}
	if reloaded.TotalComments != 0 {
		t.Fatalf("totalComments = %d, want 0", reloaded.TotalComments)
	}
}
