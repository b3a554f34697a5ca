package utils

import (
	"context"

	"vessel-orders/pkg/contextkeys"
	apperrors "vessel-orders/pkg/errors"
)

// GetUserIDFromCtx returns the authenticated user id placed by the auth middleware.
func GetUserIDFromCtx(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(string)
	if !ok || userID == "" {
		return "", apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextkeys.UserIDKey, userID)
}
