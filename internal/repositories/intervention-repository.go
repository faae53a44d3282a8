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

type InterventionRepositoryInterface interface {
	GetInterventions(ctx context.Context, token string) ListResult[entities.Intervention]
	FindIntervention(ctx context.Context, token string, id int) (*entities.Intervention, error)
	CreateIntervention(ctx context.Context, token string, payload dto.CreateInterventionDTO) (*entities.Intervention, error)
	UpdateIntervention(ctx context.Context, token string, id int, payload dto.UpdateInterventionDTO) (*entities.Intervention, error)
	UpdateInterventionStatus(ctx context.Context, token string, id int, payload dto.InterventionStatusDTO) (*entities.Intervention, error)
}

type InterventionRepository struct {
	api    API
	logger *zap.Logger
}

func NewInterventionRepository(api API, logger *zap.Logger) InterventionRepositoryInterface {
	return &InterventionRepository{api: api, logger: logger}
}

func (r *InterventionRepository) GetInterventions(ctx context.Context, token string) ListResult[entities.Intervention] {
	return fetchList[entities.Intervention](ctx, r.api, r.logger, token, backend.PathInterventions)
}

func (r *InterventionRepository) FindIntervention(ctx context.Context, token string, id int) (*entities.Intervention, error) {
	i, err := fetchOne[entities.Intervention](ctx, r.api, token, backend.ItemPath(backend.PathInterventions, id))
	if err != nil {
		return nil, fmt.Errorf("lecture de l'intervention %d: %w", id, err)
	}
	return i, nil
}

func (r *InterventionRepository) CreateIntervention(ctx context.Context, token string, payload dto.CreateInterventionDTO) (*entities.Intervention, error) {
	i, err := send[entities.Intervention](ctx, r.api, http.MethodPost, token, backend.PathInterventions, payload)
	if err != nil {
		return nil, fmt.Errorf("création de l'intervention pour la demande %d: %w", payload.Demande, err)
	}
	return i, nil
}

func (r *InterventionRepository) UpdateIntervention(ctx context.Context, token string, id int, payload dto.UpdateInterventionDTO) (*entities.Intervention, error) {
	i, err := send[entities.Intervention](ctx, r.api, http.MethodPatch, token, backend.ItemPath(backend.PathInterventions, id), payload)
	if err != nil {
		return nil, fmt.Errorf("mise à jour de l'intervention %d: %w", id, err)
	}
	return i, nil
}

func (r *InterventionRepository) UpdateInterventionStatus(ctx context.Context, token string, id int, payload dto.InterventionStatusDTO) (*entities.Intervention, error) {
	i, err := send[entities.Intervention](ctx, r.api, http.MethodPatch, token, backend.ItemPath(backend.PathInterventions, id), payload)
	if err != nil {
		return nil, fmt.Errorf("changement de statut de l'intervention %d: %w", id, err)
	}
	return i, nil
}
