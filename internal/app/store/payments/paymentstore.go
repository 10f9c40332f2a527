package paymentstore

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
var ErrDuplicateTransaction = errors.New("a payment with this transaction id already exists")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("payments")}
}

// Collection exposes the raw collection for list queries.
func (s *Store) Collection() *mongo.Collection {
	return s.c
}

// Create inserts a Pending payment alongside its subscription.
func (s *Store) Create(ctx context.Context, p models.Payment) (models.Payment, error) {
	p.ID = primitive.NewObjectID()
	if p.Status == "" {
		p.Status = models.PaymentPending
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Payment{}, ErrDuplicateTransaction
		}
		return models.Payment{}, err
	}
	return p, nil
}

// GetByTransactionID loads the payment behind a gateway transaction.
func (s *Store) GetByTransactionID(ctx context.Context, txnID string) (*models.Payment, error) {
	var p models.Payment
	if err := s.c.FindOne(ctx, bson.M{"transaction_id": txnID}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// MarkPaid sets Paid and stamps paid_at. Run inside the confirmation
// transaction. The filter excludes already-Paid payments so two
// concurrent confirmations cannot both succeed; the loser gets
// mongo.ErrNoDocuments.
func (s *Store) MarkPaid(ctx context.Context, txnID string, at time.Time) (*models.Payment, error) {
	var p models.Payment
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"transaction_id": txnID, "status": bson.M{"$ne": models.PaymentPaid}},
		bson.M{"$set": bson.M{
			"status":     models.PaymentPaid,
			"paid_at":    at,
			"updated_at": time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SetStatusByTransaction moves the payment to the given status. Used by
// the failed and canceled callbacks.
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
