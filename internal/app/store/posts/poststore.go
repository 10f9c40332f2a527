package poststore

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

// ErrDuplicateSlug is returned when the slug lost a creation race despite
// the uniquifying suffix.
var ErrDuplicateSlug = errors.New("a post with this slug already exists")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("posts")}
}

// Collection exposes the raw collection for list queries.
func (s *Store) Collection() *mongo.Collection {
	return s.c
}

// Create inserts a post. Slug must already be uniquified by the caller;
// the unique index is the backstop.
func (s *Store) Create(ctx context.Context, p models.Post) (models.Post, error) {
	p.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Post{}, ErrDuplicateSlug
		}
		return models.Post{}, err
	}
	return p, nil
}

// GetByID loads a non-deleted post.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "is_deleted": bson.M{"$ne": true}}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetBySlug loads a non-deleted post by its slug.
func (s *Store) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var p models.Post
	if err := s.c.FindOne(ctx, bson.M{"slug": slug, "is_deleted": bson.M{"$ne": true}}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SlugExists reports whether any post, deleted included, holds the slug.
// Deleted posts keep their slug reserved so restored content stays
// reachable at its original URL.
func (s *Store) SlugExists(ctx context.Context, slug string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"slug": slug}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SoftDelete marks the post deleted.
func (s *Store) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "is_deleted": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AdjustVotes moves the up/down counters. Deltas may be negative; run in
// the same transaction as the vote record change.
func (s *Store) AdjustVotes(ctx context.Context, id primitive.ObjectID, upDelta, downDelta int64) error {
	inc := bson.M{}
	if upDelta != 0 {
		inc["up_votes"] = upDelta
	}
	if downDelta != 0 {
		inc["down_votes"] = downDelta
	}
	if len(inc) == 0 {
		return nil
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": inc})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AdjustComments moves the comment counter.
func (s *Store) AdjustComments(ctx context.Context, id primitive.ObjectID, delta int64) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"total_comments": delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// IncViews bumps the view counter by one.
func (s *Store) IncViews(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"total_views": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
