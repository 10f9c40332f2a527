package categorystore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/normalize"
	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

// ErrDuplicateName is returned when a category with the same name exists.
var ErrDuplicateName = errors.New("a category with this name already exists")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("categories")}
}

// Collection exposes the raw collection for list queries.
func (s *Store) Collection() *mongo.Collection {
	return s.c
}

// Create inserts a category. Name uniqueness is enforced by index.
func (s *Store) Create(ctx context.Context, cat models.Category) (models.Category, error) {
	cat.ID = primitive.NewObjectID()
	cat.Name = normalize.Name(cat.Name)
	now := time.Now().UTC()
	cat.CreatedAt = now
	cat.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, cat); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Category{}, ErrDuplicateName
		}
		return models.Category{}, err
	}
	return cat, nil
}

// GetByID loads a non-deleted category.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var cat models.Category
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "is_deleted": bson.M{"$ne": true}}).Decode(&cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Update changes name and/or description.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, name, description *string) (*models.Category, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if name != nil {
		set["name"] = normalize.Name(*name)
	}
	if description != nil {
		set["description"] = *description
	}

	var cat models.Category
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "is_deleted": bson.M{"$ne": true}},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&cat)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return &cat, nil
}

// SoftDelete marks the category deleted. Existing posts keep their
// reference.
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

// AdjustPostCount moves the denormalized post counter. Run in the same
// transaction as the post insert or delete.
func (s *Store) AdjustPostCount(ctx context.Context, id primitive.ObjectID, delta int64) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"post_count": delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
