package services

import (
	"context"

	"go.uber.org/zap"

	"maintenance-portal/internal/dto"
	"maintenance-portal/internal/entities"
	"maintenance-portal/internal/repositories"
)

type EquipementServiceInterface interface {
	GetEquipements(ctx context.Context) repositories.ListResult[entities.Equipement]
	FindEquipement(ctx context.Context, id int) (*entities.Equipement, error)
	CreateEquipement(ctx context.Context, form dto.EquipementDTO) (*entities.Equipement, error)
	UpdateEquipement(ctx context.Context, id int, form dto.EquipementDTO) (*entities.Equipement, error)
	DeleteEquipement(ctx context.Context, id int) error
	ExportPDF(ctx context.Context) (*repositories.PDFDocument, error)
	SendPDFByEmail(ctx context.Context, form dto.EquipementsPDFEmailDTO) error
}

type EquipementService struct {
	*BaseService
	equipementRepo repositories.EquipementRepositoryInterface
	logger         *zap.Logger
}

func NewEquipementService(equipementRepo repositories.EquipementRepositoryInterface, logger *zap.Logger) EquipementServiceInterface {
	return &EquipementService{
		BaseService:    NewBaseService(logger),
		equipementRepo: equipementRepo,
		logger:         logger,
	}
}

func (s *EquipementService) GetEquipements(ctx context.Context) repositories.ListResult[entities.Equipement] {
	token, err := s.Token(ctx)
	if err != nil {
		return unauthenticated[entities.Equipement]()
	}
	return s.equipementRepo.GetEquipements(ctx, token)
}

func (s *EquipementService) FindEquipement(ctx context.Context, id int) (*entities.Equipement, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}
	return s.equipementRepo.FindEquipement(ctx, token, id)
}

func (s *EquipementService) CreateEquipement(ctx context.Context, form dto.EquipementDTO) (*entities.Equipement, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}
	e, err := s.equipementRepo.CreateEquipement(ctx, token, form)
	if err != nil {
		s.logger.Error("Échec de la création de l'équipement", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Équipement créé", zap.Int("equipementID", e.ID))
	return e, nil
}

func (s *EquipementService) UpdateEquipement(ctx context.Context, id int, form dto.EquipementDTO) (*entities.Equipement, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}
	e, err := s.equipementRepo.UpdateEquipement(ctx, token, id, form)
	if err != nil {
		s.logger.Error("Échec de la mise à jour de l'équipement", zap.Int("equipementID", id), zap.Error(err))
		return nil, err
	}
	return e, nil
}

func (s *EquipementService) DeleteEquipement(ctx context.Context, id int) error {
	token, err := s.Token(ctx)
	if err != nil {
		return err
	}
	if err := s.equipementRepo.DeleteEquipement(ctx, token, id); err != nil {
		s.logger.Error("Échec de la suppression de l'équipement", zap.Int("equipementID", id), zap.Error(err))
		return err
	}
	s.logger.Info("Équipement supprimé", zap.Int("equipementID", id))
	return nil
}

func (s *EquipementService) ExportPDF(ctx context.Context) (*repositories.PDFDocument, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := s.equipementRepo.ExportPDF(ctx, token)
	if err != nil {
		s.logger.Error("Échec de l'export PDF des équipements", zap.Error(err))
		return nil, err
	}
	return doc, nil
}

func (s *EquipementService) SendPDFByEmail(ctx context.Context, form dto.EquipementsPDFEmailDTO) error {
	token, err := s.Token(ctx)
	if err != nil {
		return err
	}
	if err := s.equipementRepo.SendPDFByEmail(ctx, token, form); err != nil {
		s.logger.Error("Échec de l'envoi du PDF des équipements", zap.String("email", form.Email), zap.Error(err))
		return err
	}
	s.logger.Info("PDF des équipements envoyé", zap.String("email", form.Email))
	return nil
}
