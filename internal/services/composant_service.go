package services

import (
	"context"

	"go.uber.org/zap"

	"maintenance-portal/internal/dto"
	"maintenance-portal/internal/entities"
	"maintenance-portal/internal/repositories"
)

type ComposantServiceInterface interface {
	GetComposants(ctx context.Context) repositories.ListResult[entities.Composant]
	FindComposant(ctx context.Context, id int) (*entities.Composant, error)
	CreateComposant(ctx context.Context, form dto.ComposantDTO) (*entities.Composant, error)
	UpdateComposant(ctx context.Context, id int, form dto.ComposantDTO) (*entities.Composant, error)
	DeleteComposant(ctx context.Context, id int) error
}

type ComposantService struct {
	*BaseService
	composantRepo repositories.ComposantRepositoryInterface
	logger        *zap.Logger
}

func NewComposantService(composantRepo repositories.ComposantRepositoryInterface, logger *zap.Logger) ComposantServiceInterface {
	return &ComposantService{
		BaseService:   NewBaseService(logger),
		composantRepo: composantRepo,
		logger:        logger,
	}
}

func (s *ComposantService) GetComposants(ctx context.Context) repositories.ListResult[entities.Composant] {
	token, err := s.Token(ctx)
	if err != nil {
		return unauthenticated[entities.Composant]()
	}
	return s.composantRepo.GetComposants(ctx, token)
}

func (s *ComposantService) FindComposant(ctx context.Context, id int) (*entities.Composant, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}
	return s.composantRepo.FindComposant(ctx, token, id)
}

func (s *ComposantService) CreateComposant(ctx context.Context, form dto.ComposantDTO) (*entities.Composant, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.composantRepo.CreateComposant(ctx, token, form)
	if err != nil {
		s.logger.Error("Échec de la création du composant", zap.String("nom", form.Nom), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Composant créé", zap.Int("composantID", c.ID))
	return c, nil
}

func (s *ComposantService) UpdateComposant(ctx context.Context, id int, form dto.ComposantDTO) (*entities.Composant, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.composantRepo.UpdateComposant(ctx, token, id, form)
	if err != nil {
		s.logger.Error("Échec de la mise à jour du composant", zap.Int("composantID", id), zap.Error(err))
		return nil, err
	}
	return c, nil
}

func (s *ComposantService) DeleteComposant(ctx context.Context, id int) error {
	token, err := s.Token(ctx)
	if err != nil {
		return err
	}
	if err := s.composantRepo.DeleteComposant(ctx, token, id); err != nil {
		s.logger.Error("Échec de la suppression du composant", zap.Int("composantID", id), zap.Error(err))
		return err
	}
	s.logger.Info("Composant supprimé", zap.Int("composantID", id))
	return nil
}
