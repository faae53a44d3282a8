package utils

import (
	"context"

	"maintenance-portal/internal/dto"
	"maintenance-portal/pkg/contextkeys"
	apperrors "maintenance-portal/pkg/errors"
)

// GetSessionFromCtx - единственный способ получить учётные данные:
// сессию кладёт в контекст middleware аутентификации.
func GetSessionFromCtx(ctx context.Context) (*dto.SessionDTO, error) {
	session, ok := ctx.Value(contextkeys.SessionKey).(*dto.SessionDTO)
	if !ok || session == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return session, nil
}

func GetTokenFromCtx(ctx context.Context) (string, error) {
	session, err := GetSessionFromCtx(ctx)
	if err != nil {
		return "", err
	}
	return session.Token, nil
}

func GetUserIDFromCtx(ctx context.Context) (int, error) {
	session, err := GetSessionFromCtx(ctx)
	if err != nil {
		return 0, err
	}
	return session.UserID, nil
}

func WithSession(ctx context.Context, session *dto.SessionDTO) context.Context {
	ctx = context.WithValue(ctx, contextkeys.SessionKey, session)
	return context.WithValue(ctx, contextkeys.UserIDKey, session.UserID)
}
