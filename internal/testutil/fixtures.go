package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

// TestPassword is the plaintext behind every fixture user's hash.
const TestPassword = "secret-pass-123"

// testPasswordHash is computed once; bcrypt at min cost keeps fixture
// creation fast.
var testPasswordHash = func() string {
	h, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}()

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
	n  int
}

// NewFixtures creates a Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) next() int {
	f.n++
	return f.n
}

// CreateUser inserts an active user with a unique email and username.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, role string) models.User {
	f.t.Helper()

	n := f.next()
	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID(),
		FullName:  fullName,
		Username:  fmt.Sprintf("user%d", n),
		Email:     fmt.Sprintf("user%d@test.com", n),
		Password:  testPasswordHash,
		Gender:    "other",
		Role:      role,
		Status:    models.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("create test user: %v", err)
	}
	return user
}

// CreatePremiumUser inserts a premium user with an Active subscription
// window covering now.
func (f *Fixtures) CreatePremiumUser(ctx context.Context, fullName string) models.User {
	f.t.Helper()

	user := f.CreateUser(ctx, fullName, models.RoleUser)
	now := time.Now().UTC()

	_, err := f.db.Collection("users").UpdateByID(ctx, user.ID,
		map[string]any{"$set": map[string]any{"is_premium_user": true}})
	if err != nil {
		f.t.Fatalf("mark user premium: %v", err)
	}
	user.IsPremiumUser = true

	sub := models.Subscription{
		ID:            primitive.NewObjectID(),
		User:          user.ID,
		TransactionID: fmt.Sprintf("TXN-FIXTURE-%d", f.next()),
		Type:          models.SubscriptionMonthly,
		Price:         999,
		Currency:      models.CurrencyBDT,
		StartDate:     now.Add(-time.Hour),
		EndDate:       now.Add(29 * 24 * time.Hour),
		Status:        models.SubscriptionActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := f.db.Collection("subscriptions").InsertOne(ctx, sub); err != nil {
		f.t.Fatalf("create test subscription: %v", err)
	}
	return user
}

// CreateCategory inserts a category with the given name.
func (f *Fixtures) CreateCategory(ctx context.Context, name string) models.Category {
	f.t.Helper()

	now := time.Now().UTC()
	cat := models.Category{
		ID:        primitive.NewObjectID(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("categories").InsertOne(ctx, cat); err != nil {
		f.t.Fatalf("create test category: %v", err)
	}
	return cat
}

// CreatePost inserts a post by author in category. The slug is derived
// from the title with a uniquifying suffix.
func (f *Fixtures) CreatePost(ctx context.Context, author, category primitive.ObjectID, title string) models.Post {
	f.t.Helper()

	now := time.Now().UTC()
	post := models.Post{
		ID:          primitive.NewObjectID(),
		Author:      author,
		Title:       title,
		Slug:        fmt.Sprintf("fixture-post-%d", f.next()),
		ContentType: models.ContentTypeMarkdown,
		Content:     "Fixture content.",
		Category:    category,
		Tags:        []string{"testing"},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("posts").InsertOne(ctx, post); err != nil {
		f.t.Fatalf("create test post: %v", err)
	}
	return post
}

// CreatePremiumPost inserts a premium post.
func (f *Fixtures) CreatePremiumPost(ctx context.Context, author, category primitive.ObjectID, title string) models.Post {
	f.t.Helper()

	post := f.CreatePost(ctx, author, category, title)
	_, err := f.db.Collection("posts").UpdateByID(ctx, post.ID,
		map[string]any{"$set": map[string]any{"is_premium": true}})
	if err != nil {
		f.t.Fatalf("mark post premium: %v", err)
	}
	post.IsPremium = true
	return post
}

// CreateComment inserts a comment and bumps the post's comment counter,
// matching what the comment workflow maintains.
func (f *Fixtures) CreateComment(ctx context.Context, post, user primitive.ObjectID, content string) models.Comment {
	f.t.Helper()

	now := time.Now().UTC()
	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		Post:      post,
		User:      user,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("comments").InsertOne(ctx, comment); err != nil {
		f.t.Fatalf("create test comment: %v", err)
	}
	_, err := f.db.Collection("posts").UpdateByID(ctx, post,
		map[string]any{"$inc": map[string]any{"total_comments": 1}})
	if err != nil {
		f.t.Fatalf("bump comment counter: %v", err)
	}
	return comment
}

// CreatePendingPayment inserts a Pending subscription plus its Pending
// payment sharing one transaction id, the state subscribe leaves behind.
func (f *Fixtures) CreatePendingPayment(ctx context.Context, user primitive.ObjectID) (models.Subscription, models.Payment) {
	f.t.Helper()

	now := time.Now().UTC()
	txnID := fmt.Sprintf("TXN-FIXTURE-%d", f.next())

	sub := models.Subscription{
		ID:            primitive.NewObjectID(),
		User:          user,
		TransactionID: txnID,
		Type:          models.SubscriptionMonthly,
		Price:         999,
		Currency:      models.CurrencyBDT,
		Status:        models.SubscriptionPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := f.db.Collection("subscriptions").InsertOne(ctx, sub); err != nil {
		f.t.Fatalf("create test subscription: %v", err)
	}

	payment := models.Payment{
		ID:            primitive.NewObjectID(),
		TransactionID: txnID,
		User:          user,
		Subscription:  sub.ID,
		PaymentMethod: models.PaymentMethodAamarpay,
		Amount:        sub.Price,
		Currency:      sub.Currency,
		Status:        models.PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := f.db.Collection("payments").InsertOne(ctx, payment); err != nil {
		f.t.Fatalf("create test payment: %v", err)
	}
	return sub, payment
}
