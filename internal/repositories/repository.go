package repositories

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"maintenance-portal/internal/integrations/backend"
)

// API - то, что репозиториям нужно от backend.Client.
type API interface {
	Get(ctx context.Context, token, path string, target any) error
	Post(ctx context.Context, token, path string, body, target any) error
	Patch(ctx context.Context, token, path string, body, target any) error
	Delete(ctx context.Context, token, path string) error
	Stream(ctx context.Context, token, method, path string, body any) (*http.Response, error)
}

// Outcome - итог загрузки списка.
type Outcome int

const (
	OutcomeOK Outcome = iota
	// OutcomeUnauthenticated - API ответило 401, нужно заново войти.
	OutcomeUnauthenticated
	// OutcomeDegraded - любая другая ошибка; Items пуст, Err сохранена.
	OutcomeDegraded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeUnauthenticated:
		return "unauthenticated"
	case OutcomeDegraded:
		return "degraded"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// ListResult - результат загрузчика списков. Загрузчик никогда не
// возвращает ошибку отдельно: что делать с неудачей, решает маршрут.
type ListResult[T any] struct {
	Items   []T
	Outcome Outcome
	Err     error
}

func (r ListResult[T]) OK() bool { return r.Outcome == OutcomeOK }

func (r ListResult[T]) Unauthenticated() bool { return r.Outcome == OutcomeUnauthenticated }

// fetchList загружает коллекцию и переводит ошибку в Outcome.
func fetchList[T any](ctx context.Context, api API, logger *zap.Logger, token, path string) ListResult[T] {
	var items []T
	err := api.Get(ctx, token, path, &items)
	switch {
	case err == nil:
		if items == nil {
			items = []T{}
		}
		return ListResult[T]{Items: items, Outcome: OutcomeOK}
	case errors.Is(err, backend.ErrUnauthorized):
		return ListResult[T]{Items: []T{}, Outcome: OutcomeUnauthenticated, Err: err}
	default:
		logger.Error("Échec du chargement de la liste", zap.String("path", path), zap.Error(err))
		return ListResult[T]{Items: []T{}, Outcome: OutcomeDegraded, Err: err}
	}
}

// fetchOne загружает один элемент; ошибки пробрасываются как есть.
func fetchOne[T any](ctx context.Context, api API, token, path string) (*T, error) {
	var item T
	if err := api.Get(ctx, token, path, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func send[T any](ctx context.Context, api API, method, token, path string, body any) (*T, error) {
	var item T
	var err error
	switch method {
	case http.MethodPost:
		err = api.Post(ctx, token, path, body, &item)
	case http.MethodPatch:
		err = api.Patch(ctx, token, path, body, &item)
	default:
		return nil, fmt.Errorf("méthode non prise en charge: %s", method)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}
