package followerstore

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

// ErrAlreadyFollowing is returned when the directed edge already exists.
var ErrAlreadyFollowing = errors.New("already following this user")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("followers")}
}

// Insert creates the directed edge. The unique (follower, following)
// index rejects duplicates; counter moves happen in the surrounding
// transaction.
func (s *Store) Insert(ctx context.Context, follower, following primitive.ObjectID) (models.Follower, error) {
	edge := models.Follower{
		ID:         primitive.NewObjectID(),
		Follower:   follower,
		Following:  following,
		FollowedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, edge); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Follower{}, ErrAlreadyFollowing
		}
		return models.Follower{}, err
	}
	return edge, nil
}

// Delete removes the directed edge. Returns mongo.ErrNoDocuments when
// the edge was not there.
func (s *Store) Delete(ctx context.Context, follower, following primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"follower": follower, "following": following})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// FollowerIDs returns the ids of users following userID.
func (s *Store) FollowerIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	return s.edgeIDs(ctx, bson.M{"following": userID}, "follower")
}

// FollowingIDs returns the ids of users userID follows.
func (s *Store) FollowingIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	return s.edgeIDs(ctx, bson.M{"follower": userID}, "following")
}

func (s *Store) edgeIDs(ctx context.Context, filter bson.M, field string) ([]primitive.ObjectID, error) {
	cur, err := s.c.Find(ctx, filter,
		options.Find().SetProjection(bson.M{field: 1}).SetSort(bson.D{{Key: "followed_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var edges []models.Follower
	if err := cur.All(ctx, &edges); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(edges))
	for _, e := range edges {
		if field == "follower" {
			ids = append(ids, e.Follower)
		} else {
			ids = append(ids, e.Following)
		}
	}
	return ids, nil
}
