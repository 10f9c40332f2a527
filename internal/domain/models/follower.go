// internal/domain/models/follower.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Follower is the directed follow edge: Follower follows Following.
// total_followers/total_following on both user records are kept in
// lockstep with edge creation and removal inside one transaction.
type Follower struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Follower   primitive.ObjectID `bson:"follower" json:"follower"`
	Following  primitive.ObjectID `bson:"following" json:"following"`
	FollowedAt time.Time          `bson:"followed_at" json:"followedAt"`
}
