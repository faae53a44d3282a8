package repositories

import (
	"context"
	"fmt"

	"maintenance-portal/internal/entities"
	"maintenance-portal/internal/integrations/backend"
)

type DashboardRepositoryInterface interface {
	GetDashboard(ctx context.Context, token string) (*entities.Dashboard, error)
}

type DashboardRepository struct {
	api API
}

func NewDashboardRepository(api API) DashboardRepositoryInterface {
	return &DashboardRepository{api: api}
}

func (r *DashboardRepository) GetDashboard(ctx context.Context, token string) (*entities.Dashboard, error) {
	d, err := fetchOne[entities.Dashboard](ctx, r.api, token, backend.PathDashboard)
	if err != nil {
		return nil, fmt.Errorf("lecture du tableau de bord: %w", err)
	}
	return d, nil
}
