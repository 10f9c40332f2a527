// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

// EnsureAll creates collections (if missing) and tries to attach
// JSON-Schema validators. On servers that don't support collMod or
// validators (some DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("users", usersSchema())
	ensure("categories", categoriesSchema())
	ensure("posts", postsSchema())
	ensure("comments", commentsSchema())
	ensure("votes", votesSchema())
	ensure("views", viewsSchema())
	ensure("followers", followersSchema())
	ensure("subscriptions", subscriptionsSchema())
	ensure("payments", paymentsSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// ensureCollection idempotently makes sure <name> exists. Listing first
// keeps the "created collection" log truthful; creation races are fine.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) error {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err == nil {
		for _, n := range names {
			if n == name {
				return nil
			}
		}
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if isNamespaceExistsErr(err) {
			return nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return nil
}

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

func usersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"full_name", "username", "email", "role", "status"},
			"properties": bson.M{
				"full_name":       bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"username":        bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"email":           bson.M{"bsonType": "string", "minLength": 3},
				"role":            bson.M{"enum": bson.A{models.RoleUser, models.RoleAdmin}},
				"status":          bson.M{"enum": bson.A{models.StatusActive, models.StatusBlocked}},
				"is_premium_user": bson.M{"bsonType": "bool"},
				"is_verified":     bson.M{"bsonType": "bool"},
				"is_deleted":      bson.M{"bsonType": "bool"},
				"total_followers": bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
				"total_following": bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
			},
		},
	}
}

func categoriesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name"},
			"properties": bson.M{
				"name":       bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"post_count": bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
				"is_deleted": bson.M{"bsonType": "bool"},
			},
		},
	}
}

func postsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"author", "title", "slug", "content_type", "content", "category"},
			"properties": bson.M{
				"author":         bson.M{"bsonType": "objectId"},
				"title":          bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"slug":           bson.M{"bsonType": "string", "minLength": 1},
				"content_type":   bson.M{"enum": bson.A{models.ContentTypeHTML, models.ContentTypeMarkdown, models.ContentTypeText}},
				"content":        bson.M{"bsonType": "string", "minLength": 1},
				"category":       bson.M{"bsonType": "objectId"},
				"is_premium":     bson.M{"bsonType": "bool"},
				"up_votes":       bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
				"down_votes":     bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
				"total_comments": bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
				"total_views":    bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
				"is_deleted":     bson.M{"bsonType": "bool"},
			},
		},
	}
}

func commentsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"post", "user", "content"},
			"properties": bson.M{
				"post":       bson.M{"bsonType": "objectId"},
				"user":       bson.M{"bsonType": "objectId"},
				"content":    bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"is_deleted": bson.M{"bsonType": "bool"},
			},
		},
	}
}

func votesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"user", "post", "type"},
			"properties": bson.M{
				"user": bson.M{"bsonType": "objectId"},
				"post": bson.M{"bsonType": "objectId"},
				"type": bson.M{"enum": bson.A{models.VoteUp, models.VoteDown}},
			},
		},
	}
}

func viewsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"user", "post"},
			"properties": bson.M{
				"user": bson.M{"bsonType": "objectId"},
				"post": bson.M{"bsonType": "objectId"},
			},
		},
	}
}

func followersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"follower", "following"},
			"properties": bson.M{
				"follower":  bson.M{"bsonType": "objectId"},
				"following": bson.M{"bsonType": "objectId"},
			},
		},
	}
}

func subscriptionsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"user", "transaction_id", "type", "price", "currency", "status"},
			"properties": bson.M{
				"user":           bson.M{"bsonType": "objectId"},
				"transaction_id": bson.M{"bsonType": "string", "minLength": 1},
				"type":           bson.M{"enum": bson.A{models.SubscriptionMonthly, models.SubscriptionAnnual}},
				"price":          bson.M{"bsonType": bson.A{"double", "int", "long", "decimal"}, "minimum": 0},
				"currency":       bson.M{"enum": bson.A{models.CurrencyBDT, models.CurrencyUSD}},
				"status":         bson.M{"enum": bson.A{models.SubscriptionPending, models.SubscriptionActive, models.SubscriptionCanceled}},
				"start_date":     bson.M{"bsonType": bson.A{"date", "null"}},
				"end_date":       bson.M{"bsonType": bson.A{"date", "null"}},
			},
		},
	}
}

func paymentsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"transaction_id", "user", "subscription", "payment_method", "amount", "currency", "status"},
			"properties": bson.M{
				"transaction_id": bson.M{"bsonType": "string", "minLength": 1},
				"user":           bson.M{"bsonType": "objectId"},
				"subscription":   bson.M{"bsonType": "objectId"},
				"payment_method": bson.M{"enum": bson.A{models.PaymentMethodAamarpay, models.PaymentMethodStripe}},
				"amount":         bson.M{"bsonType": bson.A{"double", "int", "long", "decimal"}, "minimum": 0},
				"currency":       bson.M{"enum": bson.A{models.CurrencyBDT, models.CurrencyUSD}},
				"status":         bson.M{"enum": bson.A{models.PaymentPending, models.PaymentPaid, models.PaymentFailed, models.PaymentCanceled}},
				"paid_at":        bson.M{"bsonType": bson.A{"date", "null"}},
			},
		},
	}
}
