// internal/domain/models/vote.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vote types.
const (
	VoteUp   = "upvote"
	VoteDown = "downvote"
)

// Vote is the at-most-one record per (user, post) pair backing the post's
// denormalized up/down counters. A unique index on (user, post) enforces
// the pair constraint at the store level.
type Vote struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User    primitive.ObjectID `bson:"user" json:"user"`
	Post    primitive.ObjectID `bson:"post" json:"post"`
	Type    string             `bson:"type" json:"type"`
	VotedAt time.Time          `bson:"voted_at" json:"votedAt"`
}

// View marks that a premium read was already counted for (user, post),
// preventing double counting of total_views. Unique on the pair.
type View struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User     primitive.ObjectID `bson:"user" json:"user"`
	Post     primitive.ObjectID `bson:"post" json:"post"`
	ViewedAt time.Time          `bson:"viewed_at" json:"viewedAt"`
}
