package services

import (
	"context"
	"fmt"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"maintenance-portal/internal/dto"
	"maintenance-portal/internal/entities"
	"maintenance-portal/internal/events"
	"maintenance-portal/internal/repositories"
	"maintenance-portal/pkg/constants"
	apperrors "maintenance-portal/pkg/errors"
	"maintenance-portal/pkg/eventbus"
	"maintenance-portal/pkg/utils"
)

type DemandeServiceInterface interface {
	GetDemandes(ctx context.Context) repositories.ListResult[entities.Demande]
	FindDemande(ctx context.Context, id int) (*entities.Demande, error)
	CreateDemande(ctx context.Context, form dto.CreateDemandeDTO) (*entities.Demande, error)
	AcceptDemande(ctx context.Context, id int, priorite string, technicien null.Int) (*entities.Intervention, error)
	RejectDemande(ctx context.Context, id int) (*entities.Demande, error)
	HoldDemande(ctx context.Context, id int) (*entities.Demande, error)
}

type DemandeService struct {
	*BaseService
	demandeRepo      repositories.DemandeRepositoryInterface
	interventionRepo repositories.InterventionRepositoryInterface
	bus              *eventbus.Bus
	logger           *zap.Logger
}

func NewDemandeService(
	demandeRepo repositories.DemandeRepositoryInterface,
	interventionRepo repositories.InterventionRepositoryInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) DemandeServiceInterface {
	return &DemandeService{
		BaseService:      NewBaseService(logger),
		demandeRepo:      demandeRepo,
		interventionRepo: interventionRepo,
		bus:              bus,
		logger:           logger,
	}
}

func (s *DemandeService) GetDemandes(ctx context.Context) repositories.ListResult[entities.Demande] {
	token, err := s.Token(ctx)
	if err != nil {
		return unauthenticated[entities.Demande]()
	}
	return s.demandeRepo.GetDemandes(ctx, token)
}

func (s *DemandeService) FindDemande(ctx context.Context, id int) (*entities.Demande, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}
	return s.demandeRepo.FindDemande(ctx, token, id)
}

// CreateDemande - публичная подача: статус всегда Nouvelle.
func (s *DemandeService) CreateDemande(ctx context.Context, form dto.CreateDemandeDTO) (*entities.Demande, error) {
	form.Status = constants.DemandeNouvelle
	demande, err := s.demandeRepo.CreateDemande(ctx, form)
	if err != nil {
		s.logger.Error("Échec de la création de la demande", zap.String("email", form.Email), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Demande créée", zap.Int("demandeID", demande.ID), zap.String("typeMateriel", demande.TypeMateriel))
	s.bus.Publish(ctx, events.DemandeCreatedEvent{Demande: *demande})
	return demande, nil
}

// AcceptDemande переводит заявку в Acceptee и открывает вмешательство.
// Принятая заявка без вмешательства может быть принята повторно: так
// восстанавливается частичный сбой между двумя запросами к API.
func (s *DemandeService) AcceptDemande(ctx context.Context, id int, priorite string, technicien null.Int) (*entities.Intervention, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}
	logger := s.logger.With(zap.Int("demandeID", id))

	demande, err := s.demandeRepo.FindDemande(ctx, token, id)
	if err != nil {
		return nil, err
	}

	resumable := demande.Status == constants.DemandeAcceptee && len(demande.Interventions) == 0
	if !demande.Actionable() && !resumable {
		logger.Warn("Demande déjà traitée", zap.String("status", demande.Status))
		return nil, apperrors.ErrDemandeNotActionable
	}
	if priorite == "" {
		priorite = constants.PrioriteMoyenne
	}

	if demande.Status != constants.DemandeAcceptee {
		if _, err := s.demandeRepo.UpdateDemandeStatus(ctx, token, id, constants.DemandeAcceptee); err != nil {
			logger.Error("Impossible d'accepter la demande", zap.Error(err))
			return nil, err
		}
	}

	intervention, err := s.interventionRepo.CreateIntervention(ctx, token, dto.CreateInterventionDTO{
		Demande:    id,
		Status:     constants.InterventionEnCours,
		Priorite:   priorite,
		Technicien: technicien,
		DateDebut:  utils.NowISO(),
	})
	if err != nil {
		logger.Error("Demande acceptée mais intervention non créée", zap.Error(err))
		return nil, fmt.Errorf("demande %d acceptée, intervention non créée: %w", id, err)
	}

	logger.Info("Demande acceptée", zap.Int("interventionID", intervention.ID), zap.String("priorite", priorite))
	return intervention, nil
}

func (s *DemandeService) RejectDemande(ctx context.Context, id int) (*entities.Demande, error) {
	return s.changeStatus(ctx, id, constants.DemandeRejetee, constants.IsDemandeActionable)
}

// HoldDemande - только для новой заявки.
func (s *DemandeService) HoldDemande(ctx context.Context, id int) (*entities.Demande, error) {
	return s.changeStatus(ctx, id, constants.DemandeEnAttente, func(status string) bool {
		return status == constants.DemandeNouvelle
	})
}

func (s *DemandeService) changeStatus(ctx context.Context, id int, target string, allowed func(string) bool) (*entities.Demande, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}
	logger := s.logger.With(zap.Int("demandeID", id), zap.String("target", target))

	demande, err := s.demandeRepo.FindDemande(ctx, token, id)
	if err != nil {
		return nil, err
	}
	if !allowed(demande.Status) {
		logger.Warn("Transition refusée", zap.String("status", demande.Status))
		return nil, apperrors.ErrDemandeNotActionable
	}

	updated, err := s.demandeRepo.UpdateDemandeStatus(ctx, token, id, target)
	if err != nil {
		logger.Error("Échec du changement de statut", zap.Error(err))
		return nil, err
	}
	logger.Info("Statut de la demande modifié")
	return updated, nil
}
