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

type DemandeRepositoryInterface interface {
	GetDemandes(ctx context.Context, token string) ListResult[entities.Demande]
	FindDemande(ctx context.Context, token string, id int) (*entities.Demande, error)
	CreateDemande(ctx context.Context, payload dto.CreateDemandeDTO) (*entities.Demande, error)
	UpdateDemandeStatus(ctx context.Context, token string, id int, status string) (*entities.Demande, error)
}

type DemandeRepository struct {
	api    API
	logger *zap.Logger
}

func NewDemandeRepository(api API, logger *zap.Logger) DemandeRepositoryInterface {
	return &DemandeRepository{api: api, logger: logger}
}

func (r *DemandeRepository) GetDemandes(ctx context.Context, token string) ListResult[entities.Demande] {
	return fetchList[entities.Demande](ctx, r.api, r.logger, token, backend.PathDemandes)
}

func (r *DemandeRepository) FindDemande(ctx context.Context, token string, id int) (*entities.Demande, error) {
	d, err := fetchOne[entities.Demande](ctx, r.api, token, backend.ItemPath(backend.PathDemandes, id))
	if err != nil {
		return nil, fmt.Errorf("lecture de la demande %d: %w", id, err)
	}
	return d, nil
}

// CreateDemande - публичная подача, без токена.
func (r *DemandeRepository) CreateDemande(ctx context.Context, payload dto.CreateDemandeDTO) (*entities.Demande, error) {
	d, err := send[entities.Demande](ctx, r.api, http.MethodPost, "", backend.PathDemandes, payload)
	if err != nil {
		return nil, fmt.Errorf("création de la demande: %w", err)
	}
	return d, nil
}

func (r *DemandeRepository) UpdateDemandeStatus(ctx context.Context, token string, id int, status string) (*entities.Demande, error) {
	d, err := send[entities.Demande](ctx, r.api, http.MethodPatch, token, backend.ItemPath(backend.PathDemandes, id), dto.DemandeStatusDTO{Status: status})
	if err != nil {
		return nil, fmt.Errorf("mise à jour du statut de la demande %d: %w", id, err)
	}
	return d, nil
}
