package services

import (
	"context"

	"go.uber.org/zap"

	"maintenance-portal/internal/entities"
	"maintenance-portal/internal/repositories"
)

type DashboardServiceInterface interface {
	GetDashboard(ctx context.Context) (*entities.Dashboard, error)
}

type DashboardService struct {
	*BaseService
	dashboardRepo repositories.DashboardRepositoryInterface
	logger        *zap.Logger
}

func NewDashboardService(dashboardRepo repositories.DashboardRepositoryInterface, logger *zap.Logger) DashboardServiceInterface {
	return &DashboardService{
		BaseService:   NewBaseService(logger),
		dashboardRepo: dashboardRepo,
		logger:        logger,
	}
}

// GetDashboard берёт токен из той же серверной сессии, что и остальные страницы.
func (s *DashboardService) GetDashboard(ctx context.Context) (*entities.Dashboard, error) {
	token, err := s.CheckStaff(ctx)
	if err != nil {
		return nil, err
	}
	d, err := s.dashboardRepo.GetDashboard(ctx, token)
	if err != nil {
		s.logger.Error("Échec du chargement du tableau de bord", zap.Error(err))
		return nil, err
	}
	return d, nil
}
