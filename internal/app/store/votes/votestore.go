package votestore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

// ErrAlreadyVoted is returned when an insert loses the (user, post)
// uniqueness race.
var ErrAlreadyVoted = errors.New("user already voted on this post")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("votes")}
}

// Get returns the user's vote on a post, or mongo.ErrNoDocuments.
func (s *Store) Get(ctx context.Context, user, post primitive.ObjectID) (*models.Vote, error) {
	var v models.Vote
	if err := s.c.FindOne(ctx, bson.M{"user": user, "post": post}).Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Insert records a new vote. The unique (user, post) index rejects a
// second record for the pair.
func (s *Store) Insert(ctx context.Context, user, post primitive.ObjectID, voteType string) (models.Vote, error) {
	v := models.Vote{
		ID:      primitive.NewObjectID(),
		User:    user,
		Post:    post,
		Type:    voteType,
		VotedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, v); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Vote{}, ErrAlreadyVoted
		}
		return models.Vote{}, err
	}
	return v, nil
}

// SetType flips an existing vote to the other direction.
func (s *Store) SetType(ctx context.Context, id primitive.ObjectID, voteType string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"type": voteType, "voted_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a vote record (the same-direction toggle).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
