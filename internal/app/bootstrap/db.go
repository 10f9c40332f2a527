// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/indexes"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/validators"
)

// EnsureSchema creates the unique and query indexes and attaches the
// collection validators. Uniqueness of emails, usernames, slugs, votes,
// follows, and transaction ids is enforced here rather than by
// check-then-insert in the stores.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("index setup failed", zap.Error(err))
		return err
	}
	if err := validators.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("validator setup failed", zap.Error(err))
		return err
	}
	logger.Info("schema ensured")
	return nil
}
