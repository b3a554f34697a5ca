package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"vessel-orders/internal/authz"
	"vessel-orders/internal/entities"
	"vessel-orders/internal/repositories"
	apperrors "vessel-orders/pkg/errors"
	"vessel-orders/pkg/utils"
)

// IdentityLoader resolves the acting user of a request from storage, so role
// and sector changes take effect without a new token.
type IdentityLoader struct {
	userRepo repositories.UserRepositoryInterface
}

func NewIdentityLoader(userRepo repositories.UserRepositoryInterface) *IdentityLoader {
	return &IdentityLoader{userRepo: userRepo}
}

// Actor returns the user behind ctx together with its authorization identity.
func (l *IdentityLoader) Actor(ctx context.Context) (*entities.User, authz.Identity, error) {
	rawID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, authz.Identity{}, apperrors.ErrUnauthorized
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, authz.Identity{}, apperrors.ErrInvalidUserID
	}
	user, err := l.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// token outlived its user
			return nil, authz.Identity{}, apperrors.ErrUnauthorized
		}
		return nil, authz.Identity{}, err
	}
	return user, user.Identity(), nil
}

// IdentityFor is Actor without the user record.
func (l *IdentityLoader) IdentityFor(ctx context.Context) (authz.Identity, error) {
	_, id, err := l.Actor(ctx)
	return id, err
}
