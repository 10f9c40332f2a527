package viewstore

import (
	"context"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("views")}
}

// MarkViewed records that user read post, once. Returns true when this
// call created the record; false when the pair was already marked, so
// the caller knows not to bump the view counter again.
func (s *Store) MarkViewed(ctx context.Context, user, post primitive.ObjectID) (bool, error) {
	v := models.View{
		ID:       primitive.NewObjectID(),
		User:     user,
		Post:     post,
		ViewedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, v); err != nil {
		if wafflemongo.IsDup(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
