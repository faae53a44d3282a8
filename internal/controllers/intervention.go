package controllers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-portal/internal/dto"
	"maintenance-portal/internal/entities"
	"maintenance-portal/internal/services"
	"maintenance-portal/pkg/formstate"
	"maintenance-portal/pkg/middleware"
	"maintenance-portal/pkg/utils"
)

type InterventionController struct {
	interventionService services.InterventionServiceInterface
	composantService    services.ComposantServiceInterface
	userService         services.UserServiceInterface
	logger              *zap.Logger
}

func NewInterventionController(
	interventionService services.InterventionServiceInterface,
	composantService services.ComposantServiceInterface,
	userService services.UserServiceInterface,
	logger *zap.Logger,
) *InterventionController {
	return &InterventionController{
		interventionService: interventionService,
		composantService:    composantService,
		userService:         userService,
		logger:              logger,
	}
}

// InterventionDetailPage - карточка вмешательства; форма правки видна,
// только пока вмешательство в работе.
type InterventionDetailPage struct {
	Intervention *entities.Intervention
	Form         *formstate.Form[dto.UpdateInterventionDTO]
	Composants   []entities.Composant
	Priorities   []string
}

func (ctrl *InterventionController) spec(c echo.Context) listSpec[entities.Intervention] {
	technicians := ctrl.userService.Technicians(c.Request().Context())
	return listSpec[entities.Intervention]{
		Title:    "Interventions",
		BasePath: "/interventions",
		Facets:   services.InterventionFacets(technicians),
		Table:    services.InterventionTable(technicians),
	}
}

func (ctrl *InterventionController) GetInterventions(c echo.Context) error {
	res := ctrl.interventionService.GetInterventions(c.Request().Context())
	return renderList(c, res, ctrl.spec(c))
}

func (ctrl *InterventionController) ExportInterventions(c echo.Context) error {
	res := ctrl.interventionService.GetInterventions(c.Request().Context())
	return exportList(c, res, ctrl.spec(c), "interventions.xlsx", middleware.FromContext(c, ctrl.logger))
}

func (ctrl *InterventionController) FindIntervention(c echo.Context) error {
	logger := middleware.FromContext(c, ctrl.logger)
	intervention, err := ctrl.load(c)
	if err != nil {
		return handleError(c, err, logger)
	}
	return ctrl.render(c, http.StatusOK, intervention, formstate.New(editValues(intervention)))
}

func (ctrl *InterventionController) UpdateIntervention(c echo.Context) error {
	logger := middleware.FromContext(c, ctrl.logger)
	intervention, err := ctrl.load(c)
	if err != nil {
		return handleError(c, err, logger)
	}

	var values dto.UpdateInterventionDTO
	if err := c.Bind(&values); err != nil {
		return badRequest(c, err, logger)
	}

	form := formstate.New(editValues(intervention))
	err = submit(c, form, values, msgSaved, func() error {
		_, err := ctrl.interventionService.UpdateIntervention(c.Request().Context(), intervention.ID, form.Values)
		return err
	})
	if err != nil {
		return handleError(c, err, logger)
	}
	if form.Phase == formstate.Succeeded {
		return utils.RedirectWithFlash(c, detailURL(intervention.ID), form.Message)
	}
	return ctrl.render(c, formStatus(form), intervention, form)
}

func (ctrl *InterventionController) TerminateIntervention(c echo.Context) error {
	logger := middleware.FromContext(c, ctrl.logger)
	id, err := utils.ParseID(c)
	if err != nil {
		return handleError(c, err, logger)
	}

	if _, err := ctrl.interventionService.TerminateIntervention(c.Request().Context(), id); err != nil {
		return ctrl.transitionFailed(c, id, err, logger)
	}
	return utils.RedirectWithFlash(c, detailURL(id), "Intervention terminée.")
}

// MarkIrreparable - закрытие с причиной; причина становится designation
// нового оборудования.
func (ctrl *InterventionController) MarkIrreparable(c echo.Context) error {
	logger := middleware.FromContext(c, ctrl.logger)
	id, err := utils.ParseID(c)
	if err != nil {
		return handleError(c, err, logger)
	}

	var form dto.IrreparableDTO
	if err := c.Bind(&form); err != nil {
		return badRequest(c, err, logger)
	}

	updated, equipement, err := ctrl.interventionService.MarkIrreparable(c.Request().Context(), id, form.Cause)
	switch {
	case err == nil:
		return utils.RedirectWithFlash(c, detailURL(id),
			fmt.Sprintf("Intervention déclarée irréparable. Équipement n°%d enregistré.", equipement.ID))
	case updated != nil:
		// Статус уже сменился, не удалось только создать оборудование.
		logger.Error("Équipement non créé après irréparabilité", zap.Int("interventionID", id), zap.Error(err))
		return utils.RedirectWithFlash(c, detailURL(id),
			"Intervention déclarée irréparable, mais l'équipement n'a pas pu être enregistré. Réessayez depuis cette page.")
	default:
		return ctrl.transitionFailed(c, id, err, logger)
	}
}

// RecordIrreparableEquipement - повторная попытка завести оборудование
// после irréparable; уже созданное не дублируется.
func (ctrl *InterventionController) RecordIrreparableEquipement(c echo.Context) error {
	logger := middleware.FromContext(c, ctrl.logger)
	id, err := utils.ParseID(c)
	if err != nil {
		return handleError(c, err, logger)
	}

	equipement, created, err := ctrl.interventionService.RecordIrreparableEquipement(c.Request().Context(), id)
	if err != nil {
		return ctrl.transitionFailed(c, id, err, logger)
	}
	if !created {
		return utils.RedirectWithFlash(c, detailURL(id),
			fmt.Sprintf("L'équipement n°%d est déjà enregistré pour cette intervention.", equipement.ID))
	}
	return utils.RedirectWithFlash(c, detailURL(id), fmt.Sprintf("Équipement n°%d enregistré.", equipement.ID))
}

// transitionFailed оставляет пользователя на карточке с сообщением об отказе.
func (ctrl *InterventionController) transitionFailed(c echo.Context, id int, err error, logger *zap.Logger) error {
	msg, ok := businessMessage(err)
	if !ok {
		return handleError(c, err, logger)
	}
	intervention, findErr := ctrl.interventionService.FindIntervention(c.Request().Context(), id)
	if findErr != nil {
		return handleError(c, findErr, logger)
	}
	form := formstate.New(editValues(intervention))
	form.Message = msg
	return ctrl.render(c, http.StatusUnprocessableEntity, intervention, form)
}

func (ctrl *InterventionController) load(c echo.Context) (*entities.Intervention, error) {
	id, err := utils.ParseID(c)
	if err != nil {
		return nil, err
	}
	return ctrl.interventionService.FindIntervention(c.Request().Context(), id)
}

func (ctrl *InterventionController) render(c echo.Context, code int, i *entities.Intervention, form *formstate.Form[dto.UpdateInterventionDTO]) error {
	page := InterventionDetailPage{Intervention: i, Form: form, Priorities: priorities}
	if i.Editable() {
		page.Composants = ctrl.composantService.GetComposants(c.Request().Context()).Items
	}
	return c.Render(code, "intervention_detail", page)
}

func editValues(i *entities.Intervention) dto.UpdateInterventionDTO {
	return dto.UpdateInterventionDTO{
		Priorite:           i.Priorite,
		Technicien:         i.Technicien,
		ComposantsUtilises: i.ComposantsUtilises,
		Description:        i.Description,
	}
}

func detailURL(id int) string {
	return fmt.Sprintf("/interventions/%d", id)
}
