// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	userstore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/users"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/normalize"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/workers"
	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

// premiumExpiry runs for the life of the process; Shutdown stops it.
var premiumExpiry *workers.PremiumExpiry

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.AdminEmail != "" {
		if err := ensureAdmin(ctx, deps, appCfg.AdminEmail, appCfg.AdminPassword, logger); err != nil {
			return err
		}
	}

	premiumExpiry = workers.NewPremiumExpiry(deps.MongoDatabase, logger, time.Hour)
	premiumExpiry.Start()

	return nil
}

// ensureAdmin guarantees an Admin account exists for the configured
// email. An existing account is promoted; otherwise a new one is created
// with the configured password.
func ensureAdmin(ctx context.Context, deps DBDeps, email, password string, logger *zap.Logger) error {
	users := userstore.New(deps.MongoDatabase)
	email = normalize.Email(email)

	existing, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role == models.RoleAdmin {
			return nil
		}
		_, err := users.Collection().UpdateOne(ctx,
			bson.M{"_id": existing.ID},
			bson.M{"$set": bson.M{"role": models.RoleAdmin, "updated_at": time.Now().UTC()}},
		)
		if err != nil {
			return err
		}
		logger.Info("promoted existing user to admin", zap.String("email", email))
		return nil

	case errors.Is(err, mongo.ErrNoDocuments):
		if password == "" {
			logger.Warn("admin account does not exist and no admin_password is configured",
				zap.String("email", email))
			return nil
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		_, err = users.Create(ctx, models.User{
			FullName: "Administrator",
			Username: adminUsername(email),
			Email:    email,
			Password: string(hash),
			Role:     models.RoleAdmin,
		})
		if err != nil {
			return err
		}
		logger.Info("created admin account", zap.String("email", email))
		return nil

	default:
		return err
	}
}

// adminUsername derives a username from the local part of the email.
func adminUsername(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return normalize.Username(local)
}
