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

type ComposantRepositoryInterface interface {
	GetComposants(ctx context.Context, token string) ListResult[entities.Composant]
	FindComposant(ctx context.Context, token string, id int) (*entities.Composant, error)
	CreateComposant(ctx context.Context, token string, payload dto.ComposantDTO) (*entities.Composant, error)
	UpdateComposant(ctx context.Context, token string, id int, payload dto.ComposantDTO) (*entities.Composant, error)
	DeleteComposant(ctx context.Context, token string, id int) error
}

type ComposantRepository struct {
	api    API
	logger *zap.Logger
}

func NewComposantRepository(api API, logger *zap.Logger) ComposantRepositoryInterface {
	return &ComposantRepository{api: api, logger: logger}
}

func (r *ComposantRepository) GetComposants(ctx context.Context, token string) ListResult[entities.Composant] {
	return fetchList[entities.Composant](ctx, r.api, r.logger, token, backend.PathComposants)
}

func (r *ComposantRepository) FindComposant(ctx context.Context, token string, id int) (*entities.Composant, error) {
	c, err := fetchOne[entities.Composant](ctx, r.api, token, backend.ItemPath(backend.PathComposants, id))
	if err != nil {
		return nil, fmt.Errorf("lecture du composant %d: %w", id, err)
	}
	return c, nil
}

func (r *ComposantRepository) CreateComposant(ctx context.Context, token string, payload dto.ComposantDTO) (*entities.Composant, error) {
	c, err := send[entities.Composant](ctx, r.api, http.MethodPost, token, backend.PathComposants, payload)
	if err != nil {
		return nil, fmt.Errorf("création du composant: %w", err)
	}
	return c, nil
}

func (r *ComposantRepository) UpdateComposant(ctx context.Context, token string, id int, payload dto.ComposantDTO) (*entities.Composant, error) {
	c, err := send[entities.Composant](ctx, r.api, http.MethodPatch, token, backend.ItemPath(backend.PathComposants, id), payload)
	if err != nil {
		return nil, fmt.Errorf("mise à jour du composant %d: %w", id, err)
	}
	return c, nil
}

func (r *ComposantRepository) DeleteComposant(ctx context.Context, token string, id int) error {
	if err := r.api.Delete(ctx, token, backend.ItemPath(backend.PathComposants, id)); err != nil {
		return fmt.Errorf("suppression du composant %d: %w", id, err)
	}
	return nil
}
