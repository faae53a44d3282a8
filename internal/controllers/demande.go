package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-portal/internal/dto"
	"maintenance-portal/internal/entities"
	"maintenance-portal/internal/services"
	"maintenance-portal/pkg/constants"
	"maintenance-portal/pkg/formstate"
	"maintenance-portal/pkg/middleware"
	"maintenance-portal/pkg/utils"
)

var priorities = []string{constants.PrioriteHaute, constants.PrioriteMoyenne, constants.PrioriteBasse}

type DemandeController struct {
	demandeService services.DemandeServiceInterface
	logger         *zap.Logger
}

func NewDemandeController(demandeService services.DemandeServiceInterface, logger *zap.Logger) *DemandeController {
	return &DemandeController{demandeService: demandeService, logger: logger}
}

// DemandeDetailPage - данные шаблона demande_detail.
type DemandeDetailPage struct {
	Demande    *entities.Demande
	Priorities []string
	Message    string
}

// CanAccept - новая заявка, заявка в ожидании или принятая без вмешательства.
func (p DemandeDetailPage) CanAccept() bool {
	d := p.Demande
	return d.Actionable() || (d.Status == constants.DemandeAcceptee && len(d.Interventions) == 0)
}

func (p DemandeDetailPage) CanHold() bool {
	return p.Demande.Status == constants.DemandeNouvelle
}

// DemandeNewPage - данные публичной формы подачи заявки.
type DemandeNewPage struct {
	Form *formstate.Form[dto.CreateDemandeDTO]
}

func (ctrl *DemandeController) spec() listSpec[entities.Demande] {
	return listSpec[entities.Demande]{
		Title:    "Demandes",
		BasePath: "/demandes",
		Facets:   services.DemandeFacets(),
		Table:    services.DemandeTable(),
	}
}

func (ctrl *DemandeController) GetDemandes(c echo.Context) error {
	res := ctrl.demandeService.GetDemandes(c.Request().Context())
	return renderList(c, res, ctrl.spec())
}

func (ctrl *DemandeController) ExportDemandes(c echo.Context) error {
	res := ctrl.demandeService.GetDemandes(c.Request().Context())
	return exportList(c, res, ctrl.spec(), "demandes.xlsx", middleware.FromContext(c, ctrl.logger))
}

func (ctrl *DemandeController) FindDemande(c echo.Context) error {
	logger := middleware.FromContext(c, ctrl.logger)
	id, err := utils.ParseID(c)
	if err != nil {
		return handleError(c, err, logger)
	}

	demande, err := ctrl.demandeService.FindDemande(c.Request().Context(), id)
	if err != nil {
		return handleError(c, err, logger)
	}
	return c.Render(http.StatusOK, "demande_detail", DemandeDetailPage{Demande: demande, Priorities: priorities})
}

func (ctrl *DemandeController) AcceptDemande(c echo.Context) error {
	logger := middleware.FromContext(c, ctrl.logger)
	id, err := utils.ParseID(c)
	if err != nil {
		return handleError(c, err, logger)
	}

	var form dto.AcceptDemandeDTO
	if err := c.Bind(&form); err != nil {
		return badRequest(c, err, logger)
	}
	if err := c.Validate(&form); err != nil {
		return badRequest(c, err, logger)
	}

	intervention, err := ctrl.demandeService.AcceptDemande(c.Request().Context(), id, form.Priorite, form.Technicien)
	if err != nil {
		return ctrl.actionFailed(c, id, err, logger)
	}
	return utils.RedirectWithFlash(c, fmt.Sprintf("/interventions/%d", intervention.ID),
		fmt.Sprintf("Demande acceptée : intervention n°%d ouverte.", intervention.ID))
}

func (ctrl *DemandeController) RejectDemande(c echo.Context) error {
	return ctrl.changeStatus(c, ctrl.demandeService.RejectDemande, "Demande rejetée.")
}

func (ctrl *DemandeController) HoldDemande(c echo.Context) error {
	return ctrl.changeStatus(c, ctrl.demandeService.HoldDemande, "Demande mise en attente.")
}

func (ctrl *DemandeController) changeStatus(c echo.Context, action func(ctx context.Context, id int) (*entities.Demande, error), flash string) error {
	logger := middleware.FromContext(c, ctrl.logger)
	id, err := utils.ParseID(c)
	if err != nil {
		return handleError(c, err, logger)
	}
	if _, err := action(c.Request().Context(), id); err != nil {
		return ctrl.actionFailed(c, id, err, logger)
	}
	return utils.RedirectWithFlash(c, fmt.Sprintf("/demandes/%d", id), flash)
}

// actionFailed показывает карточку заявки с сообщением, если отказ бизнесовый.
func (ctrl *DemandeController) actionFailed(c echo.Context, id int, err error, logger *zap.Logger) error {
	msg, ok := businessMessage(err)
	if !ok {
		return handleError(c, err, logger)
	}
	demande, findErr := ctrl.demandeService.FindDemande(c.Request().Context(), id)
	if findErr != nil {
		return handleError(c, findErr, logger)
	}
	logger.Info("Action sur la demande refusée", zap.Int("demandeID", id), zap.Error(err))
	return c.Render(http.StatusUnprocessableEntity, "demande_detail",
		DemandeDetailPage{Demande: demande, Priorities: priorities, Message: msg})
}

// NewDemande - публичная форма, сессия не нужна.
func (ctrl *DemandeController) NewDemande(c echo.Context) error {
	return c.Render(http.StatusOK, "demande_new", DemandeNewPage{Form: formstate.New(dto.CreateDemandeDTO{})})
}

func (ctrl *DemandeController) CreateDemande(c echo.Context) error {
	logger := middleware.FromContext(c, ctrl.logger)

	var values dto.CreateDemandeDTO
	if err := c.Bind(&values); err != nil {
		return badRequest(c, err, logger)
	}

	form := formstate.New(dto.CreateDemandeDTO{})
	var created *entities.Demande
	err := submit(c, form, values, "", func() error {
		var err error
		created, err = ctrl.demandeService.CreateDemande(c.Request().Context(), form.Values)
		return err
	})
	if err != nil {
		return handleError(c, err, logger)
	}
	if created != nil {
		form.Message = fmt.Sprintf("Votre demande n°%d a bien été enregistrée.", created.ID)
	}
	return c.Render(formStatus(form), "demande_new", DemandeNewPage{Form: form})
}
