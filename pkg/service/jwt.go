package service

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	apperrors "maintenance-portal/pkg/errors"
)

// SessionClaim - содержимое cookie сессии. Сам токен API в cookie не попадает,
// он хранится на сервере под SessionID.
type SessionClaim struct {
	SessionID string `json:"sid"`
	UserID    int    `json:"uid"`
	jwt.RegisteredClaims
}

type JWTService interface {
	GenerateToken(sessionID string, userID int) (string, error)
	ValidateToken(tokenString string) (*SessionClaim, error)
	GetTokenTTL() time.Duration
}

type jwtService struct {
	SecretKey string
	TokenExp  time.Duration
	now       func() time.Time
}

func NewJWTService(secretKey string, tokenExp time.Duration) JWTService {
	return &jwtService{
		SecretKey: secretKey,
		TokenExp:  tokenExp,
		now:       time.Now,
	}
}

func (s *jwtService) GenerateToken(sessionID string, userID int) (string, error) {
	now := s.now()
	claims := &SessionClaim{
		SessionID: sessionID,
		UserID:    userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TokenExp)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString([]byte(s.SecretKey))
}

func (s *jwtService) GetTokenTTL() time.Duration {
	return s.TokenExp
}

func (s *jwtService) ValidateToken(tokenString string) (*SessionClaim, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaim{}, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			return []byte(s.SecretKey), nil
		default:
			return nil, apperrors.ErrInvalidSigningMethod
		}
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaim)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}
