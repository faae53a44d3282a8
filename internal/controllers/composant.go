package controllers

import (
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

type ComposantController struct {
	composantService services.ComposantServiceInterface
	logger           *zap.Logger
}

func NewComposantController(composantService services.ComposantServiceInterface, logger *zap.Logger) *ComposantController {
	return &ComposantController{composantService: composantService, logger: logger}
}

func (ctrl *ComposantController) spec() listSpec[entities.Composant] {
	return listSpec[entities.Composant]{
		Title:    "Composants",
		BasePath: "/composants",
		NewURL:   "/composants/new",
		Facets:   services.ComposantFacets(),
		Table:    services.ComposantTable(),
	}
}

func (ctrl *ComposantController) GetComposants(c echo.Context) error {
	return renderList(c, ctrl.composantService.GetComposants(c.Request().Context()), ctrl.spec())
}

func (ctrl *ComposantController) ExportComposants(c echo.Context) error {
	res := ctrl.composantService.GetComposants(c.Request().Context())
	return exportList(c, res, ctrl.spec(), "composants.xlsx", middleware.FromContext(c, ctrl.logger))
}

func (ctrl *ComposantController) NewComposant(c echo.Context) error {
	form := formstate.New(dto.ComposantDTO{Type: constants.ComposantNouveau, Disponible: true})
	return c.Render(http.StatusOK, "composant_form", ctrl.page(form, 0))
}

func (ctrl *ComposantController) CreateComposant(c echo.Context) error {
	logger := middleware.FromContext(c, ctrl.logger)

	var values dto.ComposantDTO
	if err := c.Bind(&values); err != nil {
		return badRequest(c, err, logger)
	}

	form := formstate.New(dto.ComposantDTO{})
	err := submit(c, form, values, msgCreated, func() error {
		_, err := ctrl.composantService.CreateComposant(c.Request().Context(), form.Values)
		return err
	})
	if err != nil {
		return handleError(c, err, logger)
	}
	if form.Phase == formstate.Succeeded {
		return utils.RedirectWithFlash(c, "/composants", form.Message)
	}
	return c.Render(formStatus(form), "composant_form", ctrl.page(form, 0))
}

func (ctrl *ComposantController) EditComposant(c echo.Context) error {
	logger := middleware.FromContext(c, ctrl.logger)
	id, err := utils.ParseID(c)
	if err != nil {
		return handleError(c, err, logger)
	}

	composant, err := ctrl.composantService.FindComposant(c.Request().Context(), id)
	if err != nil {
		return handleError(c, err, logger)
	}
	form := formstate.New(dto.ComposantDTO{
		Nom:        composant.Nom,
		Type:       composant.Type,
		Quantite:   composant.Quantite,
		Disponible: composant.Disponible,
		Categorie:  composant.Categorie,
	})
	return c.Render(http.StatusOK, "composant_form", ctrl.page(form, id))
}

func (ctrl *ComposantController) UpdateComposant(c echo.Context) error {
	logger := middleware.FromContext(c, ctrl.logger)
	id, err := utils.ParseID(c)
	if err != nil {
		return handleError(c, err, logger)
	}

	var values dto.ComposantDTO
	if err := c.Bind(&values); err != nil {
		return badRequest(c, err, logger)
	}

	form := formstate.New(dto.ComposantDTO{})
	err = submit(c, form, values, msgSaved, func() error {
		_, err := ctrl.composantService.UpdateComposant(c.Request().Context(), id, form.Values)
		return err
	})
	if err != nil {
		return handleError(c, err, logger)
	}
	if form.Phase == formstate.Succeeded {
		return utils.RedirectWithFlash(c, "/composants", form.Message)
	}
	return c.Render(formStatus(form), "composant_form", ctrl.page(form, id))
}

func (ctrl *ComposantController) DeleteComposant(c echo.Context) error {
	logger := middleware.FromContext(c, ctrl.logger)
	id, err := utils.ParseID(c)
	if err != nil {
		return handleError(c, err, logger)
	}
	if err := ctrl.composantService.DeleteComposant(c.Request().Context(), id); err != nil {
		return handleError(c, err, logger)
	}
	return utils.RedirectWithFlash(c, "/composants", msgDeleted)
}

// page - id=0 для создания.
func (ctrl *ComposantController) page(form *formstate.Form[dto.ComposantDTO], id int) FormPage[dto.ComposantDTO] {
	if id == 0 {
		return FormPage[dto.ComposantDTO]{Title: "Nouveau composant", Action: "/composants/new", Form: form}
	}
	return FormPage[dto.ComposantDTO]{
		Title:     fmt.Sprintf("Composant n°%d", id),
		Action:    fmt.Sprintf("/composants/%d", id),
		DeleteURL: fmt.Sprintf("/composants/%d/delete", id),
		Form:      form,
	}
}
