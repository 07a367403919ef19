package utils

import (
	"context"

	"filasling/pkg/contextkeys"
	apperrors "filasling/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(string)
	if !ok || userID == "" {
		return "", apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

func GetUsernameFromCtx(ctx context.Context) string {
	username, _ := ctx.Value(contextkeys.UsernameKey).(string)
	return username
}
