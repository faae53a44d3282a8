package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"maintenance-portal/internal/dto"
	"maintenance-portal/internal/repositories"
	apperrors "maintenance-portal/pkg/errors"
	"maintenance-portal/pkg/service"
)

type AuthServiceInterface interface {
	// Login возвращает сессию и подписанное значение для cookie.
	Login(ctx context.Context, credentials dto.LoginDTO) (*dto.SessionDTO, string, error)
	// Authenticate проверяет cookie и продлевает сессию. Вторым значением
	// возвращается перевыпущенная cookie, когда прошла половина её срока.
	Authenticate(ctx context.Context, cookieValue string) (*dto.SessionDTO, string, error)
	Logout(ctx context.Context, cookieValue string) error
}

type AuthService struct {
	authRepo    repositories.AuthRepositoryInterface
	sessionRepo repositories.SessionRepositoryInterface
	jwtService  service.JWTService
	logger      *zap.Logger
	now         func() time.Time
}

func NewAuthService(
	authRepo repositories.AuthRepositoryInterface,
	sessionRepo repositories.SessionRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		authRepo:    authRepo,
		sessionRepo: sessionRepo,
		jwtService:  jwtService,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *AuthService) Login(ctx context.Context, credentials dto.LoginDTO) (*dto.SessionDTO, string, error) {
	logger := s.logger.With(zap.String("username", credentials.Username))

	resp, err := s.authRepo.Login(ctx, credentials)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			logger.Info("Tentative de connexion refusée")
		} else {
			logger.Error("Échec de la connexion à l'API", zap.Error(err))
		}
		return nil, "", err
	}

	session := dto.SessionDTO{
		ID:        uuid.NewString(),
		UserID:    resp.UserID,
		Token:     resp.Token,
		Username:  resp.Username,
		Email:     resp.Email,
		IsStaff:   resp.IsStaff,
		CreatedAt: s.now(),
	}
	if session.Username == "" {
		session.Username = credentials.Username
	}

	if err := s.sessionRepo.SaveSession(ctx, session, s.jwtService.GetTokenTTL()); err != nil {
		logger.Error("Impossible d'enregistrer la session", zap.Error(err))
		return nil, "", err
	}

	cookieValue, err := s.jwtService.GenerateToken(session.ID, session.UserID)
	if err != nil {
		_ = s.sessionRepo.DeleteSession(ctx, session.ID)
		return nil, "", fmt.Errorf("signature du cookie de session: %w", err)
	}

	logger.Info("Utilisateur connecté", zap.Int("userID", session.UserID), zap.Bool("isStaff", session.IsStaff))
	return &session, cookieValue, nil
}

func (s *AuthService) Authenticate(ctx context.Context, cookieValue string) (*dto.SessionDTO, string, error) {
	if cookieValue == "" {
		return nil, "", apperrors.ErrUnauthorized
	}
	claims, err := s.jwtService.ValidateToken(cookieValue)
	if err != nil {
		return nil, "", err
	}

	session, err := s.sessionRepo.FindSession(ctx, claims.SessionID)
	if err != nil {
		return nil, "", err
	}
	if session.UserID != claims.UserID {
		s.logger.Warn("Cookie de session incohérent",
			zap.String("sessionID", claims.SessionID),
			zap.Int("claimUserID", claims.UserID),
			zap.Int("sessionUserID", session.UserID),
		)
		return nil, "", apperrors.ErrInvalidToken
	}

	ttl := s.jwtService.GetTokenTTL()
	if err := s.sessionRepo.TouchSession(ctx, session.ID, ttl); err != nil {
		s.logger.Warn("Impossible de prolonger la session", zap.String("sessionID", session.ID), zap.Error(err))
		return session, "", nil
	}

	// Redis продлевается на каждом запросе, cookie - только после половины срока.
	if claims.ExpiresAt == nil || claims.ExpiresAt.Sub(s.now()) >= ttl/2 {
		return session, "", nil
	}
	renewed, err := s.jwtService.GenerateToken(session.ID, session.UserID)
	if err != nil {
		s.logger.Warn("Impossible de renouveler le cookie de session", zap.String("sessionID", session.ID), zap.Error(err))
		return session, "", nil
	}
	return session, renewed, nil
}

// Logout удаляет серверную сессию; просроченный cookie не считается ошибкой.
func (s *AuthService) Logout(ctx context.Context, cookieValue string) error {
	claims, err := s.jwtService.ValidateToken(cookieValue)
	if err != nil {
		return nil
	}
	if err := s.sessionRepo.DeleteSession(ctx, claims.SessionID); err != nil {
		s.logger.Error("Impossible de supprimer la session", zap.String("sessionID", claims.SessionID), zap.Error(err))
		return err
	}
	s.logger.Info("Utilisateur déconnecté", zap.Int("userID", claims.UserID))
	return nil
}
