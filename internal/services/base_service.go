package services

import (
	"context"

	"go.uber.org/zap"

	"maintenance-portal/internal/repositories"
	apperrors "maintenance-portal/pkg/errors"
	"maintenance-portal/pkg/utils"
)

// BaseService - общий доступ к сессии текущего запроса.
type BaseService struct {
	logger *zap.Logger
}

func NewBaseService(logger *zap.Logger) *BaseService {
	return &BaseService{logger: logger}
}

// Token - токен API из серверной сессии.
func (s *BaseService) Token(ctx context.Context) (string, error) {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil || token == "" {
		s.logger.Warn("Requête sans session")
		return "", apperrors.ErrUnauthorized
	}
	return token, nil
}

// CheckStaff пропускает только администраторов.
func (s *BaseService) CheckStaff(ctx context.Context) (string, error) {
	session, err := utils.GetSessionFromCtx(ctx)
	if err != nil {
		return "", apperrors.ErrUnauthorized
	}
	if !session.IsStaff {
		s.logger.Warn("Accès administrateur refusé", zap.Int("userID", session.UserID))
		return "", apperrors.ErrForbidden
	}
	return session.Token, nil
}

// unauthenticated - результат списка, когда сессии нет вовсе.
func unauthenticated[T any]() repositories.ListResult[T] {
	return repositories.ListResult[T]{
		Items:   []T{},
		Outcome: repositories.OutcomeUnauthenticated,
		Err:     apperrors.ErrUnauthorized,
	}
}
