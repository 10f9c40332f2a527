package subscriptionstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

// ErrDuplicateTransaction is returned when the transaction id collides.
var ErrDuplicateTransaction = errors.New("a subscription with this transaction id already exists")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("subscriptions")}
}

// Collection exposes the raw collection for list queries.
func (s *Store) Collection() *mongo.Collection {
	return s.c
}

// Create inserts a Pending subscription for a checkout in flight.
func (s *Store) Create(ctx context.Context, sub models.Subscription) (models.Subscription, error) {
	sub.ID = primitive.NewObjectID()
	if sub.Status == "" {
		sub.Status = models.SubscriptionPending
	}
	now := time.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, sub); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Subscription{}, ErrDuplicateTransaction
		}
		return models.Subscription{}, err
	}
	return sub, nil
}

// GetByTransactionID loads the subscription behind a gateway transaction.
func (s *Store) GetByTransactionID(ctx context.Context, txnID string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := s.c.FindOne(ctx, bson.M{"transaction_id": txnID}).Decode(&sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Activate moves the subscription to Active with the granted window.
// Run inside the payment confirmation transaction.
func (s *Store) Activate(ctx context.Context, txnID string, start, end time.Time) (*models.Subscription, error) {
	var sub models.Subscription
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"transaction_id": txnID},
		bson.M{"$set": bson.M{
			"status":     models.SubscriptionActive,
			"start_date": start,
			"end_date":   end,
			"updated_at": time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&sub)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// SetStatusByTransaction moves the subscription to the given status
// without touching the window. Used by the failed and canceled callbacks.
func (s *Store) SetStatusByTransaction(ctx context.Context, txnID, status string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"transaction_id": txnID},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// GetActiveForUser returns the user's Active subscription whose window
// contains at, or mongo.ErrNoDocuments. Backs the premium content gate.
func (s *Store) GetActiveForUser(ctx context.Context, user primitive.ObjectID, at time.Time) (*models.Subscription, error) {
	var sub models.Subscription
	err := s.c.FindOne(ctx, bson.M{
		"user":       user,
		"status":     models.SubscriptionActive,
		"start_date": bson.M{"$lte": at},
		"end_date":   bson.M{"$gte": at},
	}, options.FindOne().SetSort(bson.D{{Key: "end_date", Value: -1}})).Decode(&sub)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ExpireEnded moves Active subscriptions whose window closed before at to
// Expired and returns them so the caller can revoke premium access.
func (s *Store) ExpireEnded(ctx context.Context, at time.Time) ([]models.Subscription, error) {
	filter := bson.M{
		"status":   models.SubscriptionActive,
		"end_date": bson.M{"$lt": at},
	}

	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var subs []models.Subscription
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, nil
	}

	ids := make([]primitive.ObjectID, len(subs))
	for i, sub := range subs {
		ids[i] = sub.ID
	}
	_, err = s.c.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"status": models.SubscriptionExpired, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return nil, err
	}
	return subs, nil
}
