package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"maintenance-portal/internal/dto"
	apperrors "maintenance-portal/pkg/errors"
)

const sessionKeyPrefix = "session:"

type SessionRepositoryInterface interface {
	SaveSession(ctx context.Context, session dto.SessionDTO, ttl time.Duration) error
	FindSession(ctx context.Context, id string) (*dto.SessionDTO, error)
	TouchSession(ctx context.Context, id string, ttl time.Duration) error
	DeleteSession(ctx context.Context, id string) error
}

// SessionRepository хранит сессии в кеше под ключами session:<id>.
type SessionRepository struct {
	cache CacheRepositoryInterface
}

func NewSessionRepository(cache CacheRepositoryInterface) SessionRepositoryInterface {
	return &SessionRepository{cache: cache}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (r *SessionRepository) SaveSession(ctx context.Context, session dto.SessionDTO, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("sérialisation de la session: %w", err)
	}
	if err := r.cache.Set(ctx, sessionKey(session.ID), data, ttl); err != nil {
		return fmt.Errorf("enregistrement de la session: %w", err)
	}
	return nil
}

func (r *SessionRepository) FindSession(ctx context.Context, id string) (*dto.SessionDTO, error) {
	raw, err := r.cache.Get(ctx, sessionKey(id))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("lecture de la session: %w", err)
	}
	var session dto.SessionDTO
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("session corrompue: %w", err)
	}
	return &session, nil
}

// TouchSession продлевает сессию при каждом запросе.
func (r *SessionRepository) TouchSession(ctx context.Context, id string, ttl time.Duration) error {
	ok, err := r.cache.Expire(ctx, sessionKey(id), ttl)
	if err != nil {
		return fmt.Errorf("prolongation de la session: %w", err)
	}
	if !ok {
		return apperrors.ErrSessionNotFound
	}
	return nil
}

func (r *SessionRepository) DeleteSession(ctx context.Context, id string) error {
	if err := r.cache.Del(ctx, sessionKey(id)); err != nil {
		return fmt.Errorf("suppression de la session: %w", err)
	}
	return nil
}
