package controllers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-portal/internal/dto"
	"maintenance-portal/internal/entities"
	"maintenance-portal/internal/services"
	"maintenance-portal/pkg/formstate"
	"maintenance-portal/pkg/middleware"
	"maintenance-portal/pkg/utils"
)

type EquipementController struct {
	equipementService services.EquipementServiceInterface
	logger            *zap.Logger
}

func NewEquipementController(equipementService services.EquipementServiceInterface, logger *zap.Logger) *EquipementController {
	return &EquipementController{equipementService: equipementService, logger: logger}
}

func (ctrl *EquipementController) spec() listSpec[entities.Equipement] {
	return listSpec[entities.Equipement]{
		Title:    "Équipements",
		BasePath: "/equipements",
		NewURL:   "/equipements/new",
		Facets:   services.EquipementFacets(),
		Table:    services.EquipementTable(),
	}
}

func (ctrl *EquipementController) GetEquipements(c echo.Context) error {
	res := ctrl.equipementService.GetEquipements(c.Request().Context())
	if res.Unauthenticated() {
		return middleware.RedirectToLogin(c)
	}
	page := buildList(c, res, ctrl.spec())
	page.PDFURL = "/equipements/export.pdf"
	page.EmailPDFURL = "/equipements/email-pdf"
	return c.Render(http.StatusOK, "list", page)
}

func (ctrl *EquipementController) ExportEquipements(c echo.Context) error {
	res := ctrl.equipementService.GetEquipements(c.Request().Context())
	return exportList(c, res, ctrl.spec(), "equipements.xlsx", middleware.FromContext(c, ctrl.logger))
}

// ExportPDF отдаёт браузеру PDF, сгенерированный API, без буферизации.
func (ctrl *EquipementController) ExportPDF(c echo.Context) error {
	logger := middleware.FromContext(c, ctrl.logger)
	doc, err := ctrl.equipementService.ExportPDF(c.Request().Context())
	if err != nil {
		return handleError(c, err, logger)
	}
	defer doc.Body.Close()

	h := c.Response().Header()
	h.Set(echo.HeaderContentType, doc.ContentType)
	h.Set(echo.HeaderContentDisposition, `attachment; filename="equipements.pdf"`)
	if doc.ContentLength > 0 {
		h.Set(echo.HeaderContentLength, strconv.FormatInt(doc.ContentLength, 10))
	}
	c.Response().WriteHeader(http.StatusOK)
	if _, err := io.Copy(c.Response(), doc.Body); err != nil {
		logger.Warn("Transfert du PDF interrompu", zap.Error(err))
	}
	return nil
}

func (ctrl *EquipementController) EmailPDF(c echo.Context) error {
	logger := middleware.FromContext(c, ctrl.logger)

	var form dto.EquipementsPDFEmailDTO
	if err := c.Bind(&form); err != nil {
		return badRequest(c, err, logger)
	}
	if err := c.Validate(&form); err != nil {
		return utils.RedirectWithFlash(c, "/equipements", "Adresse e-mail invalide.")
	}
	if err := ctrl.equipementService.SendPDFByEmail(c.Request().Context(), form); err != nil {
		return handleError(c, err, logger)
	}
	return utils.RedirectWithFlash(c, "/equipements", fmt.Sprintf("PDF envoyé à %s.", form.Email))
}

func (ctrl *EquipementController) NewEquipement(c echo.Context) error {
	return c.Render(http.StatusOK, "equipement_form", ctrl.page(formstate.New(dto.EquipementDTO{}), 0))
}

func (ctrl *EquipementController) CreateEquipement(c echo.Context) error {
	logger := middleware.FromContext(c, ctrl.logger)

	var values dto.EquipementDTO
	if err := c.Bind(&values); err != nil {
		return badRequest(c, err, logger)
	}

	form := formstate.New(dto.EquipementDTO{})
	err := submit(c, form, values, msgCreated, func() error {
		_, err := ctrl.equipementService.CreateEquipement(c.Request().Context(), form.Values)
		return err
	})
	if err != nil {
		return handleError(c, err, logger)
	}
	if form.Phase == formstate.Succeeded {
		return utils.RedirectWithFlash(c, "/equipements", form.Message)
	}
	return c.Render(formStatus(form), "equipement_form", ctrl.page(form, 0))
}

func (ctrl *EquipementController) EditEquipement(c echo.Context) error {
	logger := middleware.FromContext(c, ctrl.logger)
	id, err := utils.ParseID(c)
	if err != nil {
		return handleError(c, err, logger)
	}

	e, err := ctrl.equipementService.FindEquipement(c.Request().Context(), id)
	if err != nil {
		return handleError(c, err, logger)
	}
	form := formstate.New(dto.EquipementDTO{
		Modele:      e.Modele,
		NumeroSerie: e.NumeroSerie,
		Designation: e.Designation,
		Observation: e.Observation,
	})
	return c.Render(http.StatusOK, "equipement_form", ctrl.page(form, id))
}

func (ctrl *EquipementController) UpdateEquipement(c echo.Context) error {
	logger := middleware.FromContext(c, ctrl.logger)
	id, err := utils.ParseID(c)
	if err != nil {
		return handleError(c, err, logger)
	}

	var values dto.EquipementDTO
	if err := c.Bind(&values); err != nil {
		return badRequest(c, err, logger)
	}

	form := formstate.New(dto.EquipementDTO{})
	err = submit(c, form, values, msgSaved, func() error {
		_, err := ctrl.equipementService.UpdateEquipement(c.Request().Context(), id, form.Values)
		return err
	})
	if err != nil {
		return handleError(c, err, logger)
	}
	if form.Phase == formstate.Succeeded {
		return utils.RedirectWithFlash(c, "/equipements", form.Message)
	}
	return c.Render(formStatus(form), "equipement_form", ctrl.page(form, id))
}

func (ctrl *EquipementController) DeleteEquipement(c echo.Context) error {
	logger := middleware.FromContext(c, ctrl.logger)
	id, err := utils.ParseID(c)
	if err != nil {
		return handleError(c, err, logger)
	}
	if err := ctrl.equipementService.DeleteEquipement(c.Request().Context(), id); err != nil {
		return handleError(c, err, logger)
	}
	return utils.RedirectWithFlash(c, "/equipements", msgDeleted)
}

func (ctrl *EquipementController) page(form *formstate.Form[dto.EquipementDTO], id int) FormPage[dto.EquipementDTO] {
	if id == 0 {
		return FormPage[dto.EquipementDTO]{Title: "Nouvel équipement", Action: "/equipements/new", Form: form}
	}
	return FormPage[dto.EquipementDTO]{
		Title:     fmt.Sprintf("Équipement n°%d", id),
		Action:    fmt.Sprintf("/equipements/%d", id),
		DeleteURL: fmt.Sprintf("/equipements/%d/delete", id),
		Form:      form,
	}
}
