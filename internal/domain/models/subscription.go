// internal/domain/models/subscription.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscription statuses.
const (
	SubscriptionPending  = "Pending"
	SubscriptionActive   = "Active"
	SubscriptionCanceled = "Canceled"
	SubscriptionExpired  = "Expired"
)

// Subscription types.
const (
	SubscriptionMonthly = "Monthly"
	SubscriptionAnnual  = "Annual"
)

// Subscription is one-to-one with a Payment record through the shared
// transaction id. Status moves Pending to Active on payment confirmation,
// Pending to Canceled when the payment is canceled, and Active to Expired
// once the window has passed.
type Subscription struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User          primitive.ObjectID `bson:"user" json:"user"`
	TransactionID string             `bson:"transaction_id" json:"transactionId"`
	Type          string             `bson:"type" json:"type"`
	Price         float64            `bson:"price" json:"price"`
	Currency      string             `bson:"currency" json:"currency"`
	StartDate     time.Time          `bson:"start_date,omitempty" json:"startDate"`
	EndDate       time.Time          `bson:"end_date,omitempty" json:"endDate"`
	Status        string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsActiveAt reports whether the subscription grants premium access at t.
func (s Subscription) IsActiveAt(t time.Time) bool {
	return s.Status == SubscriptionActive && !t.Before(s.StartDate) && !t.After(s.EndDate)
}
