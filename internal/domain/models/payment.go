// internal/domain/models/payment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment statuses.
const (
	PaymentPending  = "Pending"
	PaymentPaid     = "Paid"
	PaymentFailed   = "Failed"
	PaymentCanceled = "Canceled"
)

// Payment methods.
const (
	PaymentMethodAamarpay = "Aamarpay"
	PaymentMethodStripe   = "Stripe"
)

// Payment currencies.
const (
	CurrencyBDT = "BDT"
	CurrencyUSD = "USD"
)

// Payment tracks one checkout attempt, identified by the gateway
// transaction id it shares with its Subscription. Status transitions out
// of Pending exactly once; confirming an already-Paid payment is a
// conflict.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TransactionID string             `bson:"transaction_id" json:"transactionId"`
	User          primitive.ObjectID `bson:"user" json:"user"`
	Subscription  primitive.ObjectID `bson:"subscription" json:"subscription"`
	PaymentMethod string             `bson:"payment_method" json:"paymentMethod"`
	Amount        float64            `bson:"amount" json:"amount"`
	Currency      string             `bson:"currency" json:"currency"`
	Status        string             `bson:"status" json:"status"`
	PaidAt        *time.Time         `bson:"paid_at,omitempty" json:"paidAt,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
