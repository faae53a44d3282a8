package repositories

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"maintenance-portal/internal/dto"
	"maintenance-portal/internal/entities"
	"maintenance-portal/internal/integrations/backend"
)

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context, token string) ListResult[entities.User]
	FindUser(ctx context.Context, token string, id int) (*entities.User, error)
	CreateUser(ctx context.Context, token string, payload dto.CreateUserDTO) (*entities.User, error)
	UpdateUser(ctx context.Context, token string, id int, payload dto.UpdateUserDTO) (*entities.User, error)
	DeleteUser(ctx context.Context, token string, id int) error
}

type UserRepository struct {
	api    API
	logger *zap.Logger
}

func NewUserRepository(api API, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{api: api, logger: logger}
}

func (r *UserRepository) GetUsers(ctx context.Context, token string) ListResult[entities.User] {
	return fetchList[entities.User](ctx, r.api, r.logger, token, backend.PathUsers)
}

func (r *UserRepository) FindUser(ctx context.Context, token string, id int) (*entities.User, error) {
	u, err := fetchOne[entities.User](ctx, r.api, token, backend.ItemPath(backend.PathUsers, id))
	if err != nil {
		return nil, fmt.Errorf("lecture de l'utilisateur %d: %w", id, err)
	}
	return u, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, token string, payload dto.CreateUserDTO) (*entities.User, error) {
	u, err := send[entities.User](ctx, r.api, http.MethodPost, token, backend.PathUsers, payload)
	if err != nil {
		return nil, fmt.Errorf("création de l'utilisateur %s: %w", payload.Username, err)
	}
	return u, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, token string, id int, payload dto.UpdateUserDTO) (*entities.User, error) {
	u, err := send[entities.User](ctx, r.api, http.MethodPatch, token, backend.ItemPath(backend.PathUsers, id), payload)
	if err != nil {
		return nil, fmt.Errorf("mise à jour de l'utilisateur %d: %w", id, err)
	}
	return u, nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, token string, id int) error {
	if err := r.api.Delete(ctx, token, backend.ItemPath(backend.PathUsers, id)); err != nil {
		return fmt.Errorf("suppression de l'utilisateur %d: %w", id, err)
	}
	return nil
}
