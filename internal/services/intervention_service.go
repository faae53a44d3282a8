package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

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

type InterventionServiceInterface interface {
	GetInterventions(ctx context.Context) repositories.ListResult[entities.Intervention]
	FindIntervention(ctx context.Context, id int) (*entities.Intervention, error)
	UpdateIntervention(ctx context.Context, id int, form dto.UpdateInterventionDTO) (*entities.Intervention, error)
	TerminateIntervention(ctx context.Context, id int) (*entities.Intervention, error)
	MarkIrreparable(ctx context.Context, id int, cause string) (*entities.Intervention, *entities.Equipement, error)
	RecordIrreparableEquipement(ctx context.Context, id int) (*entities.Equipement, bool, error)
}

// InterventionService - переходы статуса вмешательства:
// enCours → Termine | Irreparable, обратных переходов нет.
type InterventionService struct {
	*BaseService
	interventionRepo repositories.InterventionRepositoryInterface
	demandeRepo      repositories.DemandeRepositoryInterface
	equipementRepo   repositories.EquipementRepositoryInterface
	bus              *eventbus.Bus
	logger           *zap.Logger
	now              func() time.Time
}

func NewInterventionService(
	interventionRepo repositories.InterventionRepositoryInterface,
	demandeRepo repositories.DemandeRepositoryInterface,
	equipementRepo repositories.EquipementRepositoryInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) InterventionServiceInterface {
	return &InterventionService{
		BaseService:      NewBaseService(logger),
		interventionRepo: interventionRepo,
		demandeRepo:      demandeRepo,
		equipementRepo:   equipementRepo,
		bus:              bus,
		logger:           logger,
		now:              time.Now,
	}
}

func (s *InterventionService) GetInterventions(ctx context.Context) repositories.ListResult[entities.Intervention] {
	token, err := s.Token(ctx)
	if err != nil {
		return unauthenticated[entities.Intervention]()
	}
	return s.interventionRepo.GetInterventions(ctx, token)
}

func (s *InterventionService) FindIntervention(ctx context.Context, id int) (*entities.Intervention, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}
	return s.interventionRepo.FindIntervention(ctx, token, id)
}

// UpdateIntervention меняет приоритет, технического специалиста, детали и описание.
// Закрытое вмешательство только для чтения.
func (s *InterventionService) UpdateIntervention(ctx context.Context, id int, form dto.UpdateInterventionDTO) (*entities.Intervention, error) {
	token, current, err := s.loadEditable(ctx, id)
	if err != nil {
		return nil, err
	}
	if form.ComposantsUtilises == nil {
		form.ComposantsUtilises = []int{}
	}

	updated, err := s.interventionRepo.UpdateIntervention(ctx, token, current.ID, form)
	if err != nil {
		s.logger.Error("Échec de la mise à jour de l'intervention", zap.Int("interventionID", id), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Intervention mise à jour", zap.Int("interventionID", id))
	return updated, nil
}

// TerminateIntervention закрывает вмешательство и заявку-родителя.
func (s *InterventionService) TerminateIntervention(ctx context.Context, id int) (*entities.Intervention, error) {
	token, current, err := s.loadForTransition(ctx, id)
	if err != nil {
		return nil, err
	}
	logger := s.logger.With(zap.Int("interventionID", id))

	updated, err := s.interventionRepo.UpdateInterventionStatus(ctx, token, current.ID, dto.InterventionStatusDTO{
		Status:  constants.InterventionTermine,
		DateFin: s.now().Format(time.RFC3339),
	})
	if err != nil {
		logger.Error("Échec de la clôture de l'intervention", zap.Error(err))
		return nil, err
	}

	var demande *entities.Demande
	if current.Demande.Valid {
		// Вмешательство уже закрыто; сбой здесь не откатывает его.
		demande, err = s.demandeRepo.UpdateDemandeStatus(ctx, token, current.Demande.Int, constants.DemandeTerminee)
		if err != nil {
			logger.Error("Intervention terminée, demande non mise à jour", zap.Int("demandeID", current.Demande.Int), zap.Error(err))
		}
	}

	logger.Info("Intervention terminée")
	s.bus.Publish(ctx, events.InterventionClosedEvent{Intervention: *updated, Demande: demande, Token: token})
	return updated, nil
}

// MarkIrreparable фиксирует причину и заводит ровно одно оборудование с этой
// причиной в designation. Статус меняется ДО создания оборудования: при
// повторе вмешательство уже закрыто, и второе оборудование не появится.
// Если оборудование не создалось, его дозаводит RecordIrreparableEquipement.
func (s *InterventionService) MarkIrreparable(ctx context.Context, id int, cause string) (*entities.Intervention, *entities.Equipement, error) {
	cause = strings.TrimSpace(cause)
	if cause == "" {
		return nil, nil, apperrors.ErrCauseRequired
	}

	token, current, err := s.loadForTransition(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	logger := s.logger.With(zap.Int("interventionID", id))

	updated, err := s.interventionRepo.UpdateInterventionStatus(ctx, token, current.ID, dto.InterventionStatusDTO{
		Status:           constants.InterventionIrreparable,
		DateFin:          s.now().Format(time.RFC3339),
		CauseIrreparable: cause,
	})
	if err != nil {
		logger.Error("Échec du passage en irréparable", zap.Error(err))
		return nil, nil, err
	}

	var demande *entities.Demande
	if current.Demande.Valid {
		// Заявка нужна только для письма заявителю.
		demande, err = s.demandeRepo.FindDemande(ctx, token, current.Demande.Int)
		if err != nil {
			logger.Warn("Demande introuvable pour la notification", zap.Int("demandeID", current.Demande.Int), zap.Error(err))
		}
	}
	// Вмешательство закрыто независимо от судьбы оборудования.
	s.bus.Publish(ctx, events.InterventionClosedEvent{Intervention: *updated, Demande: demande, Token: token})

	equipement, err := s.createIrreparableEquipement(ctx, token, current.ID, cause)
	if err != nil {
		logger.Error("Intervention irréparable, équipement non créé", zap.Error(err))
		return updated, nil, fmt.Errorf("intervention %d irréparable, équipement non créé: %w", current.ID, err)
	}

	logger.Info("Intervention déclarée irréparable", zap.Int("equipementID", equipement.ID))
	return updated, equipement, nil
}

// RecordIrreparableEquipement дозаводит оборудование для уже irréparable
// вмешательства. created=false - оборудование с отметкой этого вмешательства
// уже есть, оно и возвращается.
func (s *InterventionService) RecordIrreparableEquipement(ctx context.Context, id int) (*entities.Equipement, bool, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return nil, false, err
	}
	current, err := s.interventionRepo.FindIntervention(ctx, token, id)
	if err != nil {
		return nil, false, err
	}
	if !current.Irreparable() {
		return nil, false, apperrors.ErrNotIrreparable
	}
	cause := strings.TrimSpace(current.CauseIrreparable.String)
	if cause == "" {
		return nil, false, apperrors.ErrCauseRequired
	}

	list := s.equipementRepo.GetEquipements(ctx, token)
	if list.Unauthenticated() {
		return nil, false, apperrors.ErrUnauthorized
	}
	if !list.OK() {
		return nil, false, list.Err
	}
	marker := irreparableObservation(current.ID)
	for i := range list.Items {
		if list.Items[i].Observation.String == marker {
			return &list.Items[i], false, nil
		}
	}

	equipement, err := s.createIrreparableEquipement(ctx, token, current.ID, cause)
	if err != nil {
		s.logger.Error("Équipement toujours non créé", zap.Int("interventionID", id), zap.Error(err))
		return nil, false, err
	}
	s.logger.Info("Équipement de l'intervention irréparable créé",
		zap.Int("interventionID", id),
		zap.Int("equipementID", equipement.ID),
	)
	return equipement, true, nil
}

func (s *InterventionService) createIrreparableEquipement(ctx context.Context, token string, interventionID int, cause string) (*entities.Equipement, error) {
	return s.equipementRepo.CreateEquipement(ctx, token, dto.EquipementDTO{
		Designation: cause,
		Observation: utils.NullString(irreparableObservation(interventionID)),
	})
}

// irreparableObservation - отметка в observation, по ней оборудование находится повторно.
func irreparableObservation(interventionID int) string {
	return fmt.Sprintf("Créé depuis l'intervention n°%d déclarée irréparable.", interventionID)
}

func (s *InterventionService) loadEditable(ctx context.Context, id int) (string, *entities.Intervention, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return "", nil, err
	}
	current, err := s.interventionRepo.FindIntervention(ctx, token, id)
	if err != nil {
		return "", nil, err
	}
	if !current.Editable() {
		s.logger.Warn("Intervention clôturée, modification refusée", zap.Int("interventionID", id), zap.String("status", current.Status))
		return "", nil, apperrors.ErrInterventionLocked
	}
	return token, current, nil
}

func (s *InterventionService) loadForTransition(ctx context.Context, id int) (string, *entities.Intervention, error) {
	token, current, err := s.loadEditable(ctx, id)
	if errors.Is(err, apperrors.ErrInterventionLocked) {
		return "", nil, apperrors.ErrInvalidTransition
	}
	return token, current, err
}
