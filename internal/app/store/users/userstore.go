package userstore

import (
	"context"
	"errors"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/normalize"
	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

var (
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrDuplicateUsername is returned when the username is taken.
	ErrDuplicateUsername = errors.New("a user with this username already exists")

	errBadRole   = errors.New(`role must be "User"|"Admin"`)
	errBadStatus = errors.New(`status must be "Active"|"Blocked"`)
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// Collection exposes the raw collection for list queries.
func (s *Store) Collection() *mongo.Collection {
	return s.c
}

// GetByID loads a user by ObjectID. Soft-deleted users are not returned.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "is_deleted": bson.M{"$ne": true}}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by normalized email, soft-deleted included.
// Auth and profile flows decide what a deleted or blocked user may do.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByUsername looks up a non-deleted user by normalized username.
func (s *Store) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	filter := bson.M{"username": normalize.Username(username), "is_deleted": bson.M{"$ne": true}}
	if err := s.c.FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetManyByIDs loads the non-deleted users for the given ids, in no
// particular order.
func (s *Store) GetManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}, "is_deleted": bson.M{"$ne": true}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Create inserts a new user after normalizing and validating fields.
// Password must already be hashed by the caller.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FullName = normalize.Name(u.FullName)
	u.Username = normalize.Username(u.Username)
	u.Email = normalize.Email(u.Email)
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	if u.Status == "" {
		u.Status = models.StatusActive
	}

	switch u.Role {
	case models.RoleUser, models.RoleAdmin:
	default:
		return models.User{}, errBadRole
	}
	switch u.Status {
	case models.StatusActive, models.StatusBlocked:
	default:
		return models.User{}, errBadStatus
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, dupError(err)
		}
		return models.User{}, err
	}
	return u, nil
}

// dupError maps a duplicate-key error onto the field that collided. The
// unique index name appears in the server message.
func dupError(err error) error {
	if strings.Contains(err.Error(), "uniq_users_username") {
		return ErrDuplicateUsername
	}
	return ErrDuplicateEmail
}

// ProfileUpdate holds the self-service editable fields. Nil pointers
// leave the stored value untouched.
type ProfileUpdate struct {
	FullName       *string
	Phone          *string
	Bio            *string
	Designation    *string
	Location       *string
	ProfilePicture *string
	Gender         *string
	DateOfBirth    *time.Time
	SocialLinks    []models.SocialLink
}

// UpdateProfile applies a partial profile update and returns the fresh
// document.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) (*models.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.FullName != nil {
		set["full_name"] = normalize.Name(*upd.FullName)
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.Bio != nil {
		set["bio"] = *upd.Bio
	}
	if upd.Designation != nil {
		set["designation"] = *upd.Designation
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}
	if upd.ProfilePicture != nil {
		set["profile_picture"] = *upd.ProfilePicture
	}
	if upd.Gender != nil {
		set["gender"] = *upd.Gender
	}
	if upd.DateOfBirth != nil {
		set["date_of_birth"] = *upd.DateOfBirth
	}
	if upd.SocialLinks != nil {
		set["social_links"] = upd.SocialLinks
	}

	var u models.User
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "is_deleted": bson.M{"$ne": true}},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SetStatus blocks or unblocks a user.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.User, error) {
	switch status {
	case models.StatusActive, models.StatusBlocked:
	default:
		return nil, errBadStatus
	}
	var u models.User
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "is_deleted": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SoftDelete marks the user deleted. The record stays for referential
// integrity of posts, comments, and payments.
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

// SetPremium flips the denormalized premium flag. Run inside the payment
// confirmation transaction.
func (s *Store) SetPremium(ctx context.Context, id primitive.ObjectID, premium bool) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_premium_user": premium, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetPassword stores a new bcrypt hash and stamps the change time, which
// invalidates tokens issued earlier.
func (s *Store) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "is_deleted": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"password": hash, "password_changed_at": now, "updated_at": now}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AdjustFollowCounts moves the denormalized counters for one follow edge:
// follower gains delta following, followee gains delta followers. Run in
// the same transaction that inserts or removes the edge.
func (s *Store) AdjustFollowCounts(ctx context.Context, follower, following primitive.ObjectID, delta int64) error {
	if _, err := s.c.UpdateOne(ctx, bson.M{"_id": follower},
		bson.M{"$inc": bson.M{"total_following": delta}}); err != nil {
		return err
	}
	if _, err := s.c.UpdateOne(ctx, bson.M{"_id": following},
		bson.M{"$inc": bson.M{"total_followers": delta}}); err != nil {
		return err
	}
	return nil
}
