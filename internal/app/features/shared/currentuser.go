// internal/app/features/shared/currentuser.go

// Package shared holds helpers used by every authenticated feature.
package shared

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	userstore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/users"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/apperr"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/auth"
	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

// CurrentUser resolves the request's token claims to a live user record.
// Deleted and blocked accounts are rejected, as are tokens issued before
// the user last changed their password.
func CurrentUser(ctx context.Context, r *http.Request, users *userstore.Store) (*models.User, error) {
	claims, ok := auth.CurrentClaims(r)
	if !ok {
		return nil, apperr.Unauthorized("Unauthorized Access")
	}

	user, err := users.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}
	if user.IsDeleted {
		return nil, apperr.Forbidden("User is deleted")
	}
	if user.Status == models.StatusBlocked {
		return nil, apperr.Forbidden("User is blocked")
	}
	if user.PasswordChangedAt != nil && claims.IssuedBefore(*user.PasswordChangedAt) {
		return nil, apperr.Unauthorized("Unauthorized Access")
	}
	return user, nil
}
