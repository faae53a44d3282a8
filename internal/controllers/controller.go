package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-portal/internal/integrations/backend"
	"maintenance-portal/internal/repositories"
	"maintenance-portal/internal/services"
	apperrors "maintenance-portal/pkg/errors"
	"maintenance-portal/pkg/formstate"
	"maintenance-portal/pkg/listview"
	"maintenance-portal/pkg/middleware"
	"maintenance-portal/pkg/utils"
	"maintenance-portal/pkg/validation"
)

const (
	msgLoadError    = "Erreur de chargement des données : le service de maintenance ne répond pas."
	msgUnavailable  = "Le service de maintenance est momentanément indisponible."
	msgInvalidForm  = "Le formulaire contient des erreurs."
	msgSaved        = "Modifications enregistrées."
	msgCreated      = "Élément créé."
	msgDeleted      = "Élément supprimé."
	msgNotFound     = "L'élément demandé n'existe pas."
	msgForbidden    = "Vous n'avez pas les droits nécessaires."
	msgInvalidInput = "Requête invalide."
)

// Сообщения для отказов по правилам заявок и вмешательств.
var businessMessages = map[error]string{
	apperrors.ErrInterventionLocked:   "Cette intervention est clôturée et ne peut plus être modifiée.",
	apperrors.ErrInvalidTransition:    "Cette intervention est déjà clôturée.",
	apperrors.ErrDemandeNotActionable: "Cette demande a déjà été traitée.",
	apperrors.ErrCauseRequired:        "La cause de l'irréparabilité est obligatoire.",
	apperrors.ErrNotIrreparable:       "Cette intervention n'est pas déclarée irréparable.",
	apperrors.ErrInvalidCredentials:   "Identifiant ou mot de passe incorrect.",
}

// ListPage - данные шаблона "list".
type ListPage struct {
	listview.View
	RetryURL    string
	PDFURL      string
	EmailPDFURL string
}

// FormPage - данные шаблонов *_form.
type FormPage[T any] struct {
	Title     string
	Action    string
	DeleteURL string
	Form      *formstate.Form[T]
}

// listSpec описывает одну страницу списка.
type listSpec[T any] struct {
	Title    string
	BasePath string
	NewURL   string
	Facets   []listview.Facet[T]
	Table    listview.Table[T]
}

// buildList применяет фильтры и страницу из запроса.
// Недоступное API даёт пустую таблицу с панелью ошибки, а не страницу 500.
func buildList[T any](c echo.Context, res repositories.ListResult[T], spec listSpec[T]) ListPage {
	state := listview.NewState(res.Items, spec.Facets, listview.DefaultPageSize)
	state.Bind(c.QueryParams())

	page := ListPage{
		View:     state.View(spec.Title, spec.BasePath, spec.Table),
		RetryURL: c.Request().URL.RequestURI(),
	}
	page.NewURL = spec.NewURL
	page.ExportURL = spec.BasePath + "/export.xlsx"
	if q := state.FilterQuery(); q != "" {
		page.ExportURL += "?" + q
	}
	if !res.OK() {
		page.LoadError = msgLoadError
	}
	return page
}

func renderList[T any](c echo.Context, res repositories.ListResult[T], spec listSpec[T]) error {
	if res.Unauthenticated() {
		return middleware.RedirectToLogin(c)
	}
	return c.Render(http.StatusOK, "list", buildList(c, res, spec))
}

// exportList выгружает в XLSX все отфильтрованные строки, без разбиения на страницы.
func exportList[T any](c echo.Context, res repositories.ListResult[T], spec listSpec[T], filename string, logger *zap.Logger) error {
	if res.Unauthenticated() {
		return middleware.RedirectToLogin(c)
	}
	if !res.OK() {
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadGateway, msgUnavailable, res.Err, nil), logger)
	}

	state := listview.NewState(res.Items, spec.Facets, listview.DefaultPageSize)
	state.Bind(c.QueryParams())

	c.Response().Header().Set(echo.HeaderContentType, utils.XLSXContentType)
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Response().WriteHeader(http.StatusOK)
	return services.ExportXLSX(c.Response(), spec.Title, spec.Table, state.Filtered())
}

// handleError переводит ошибку сервиса в ответ: редирект на вход,
// страница 403/404 или 502, если API недоступно.
func handleError(c echo.Context, err error, logger *zap.Logger) error {
	switch {
	case errors.Is(err, apperrors.ErrUnauthorized), errors.Is(err, backend.ErrUnauthorized):
		return middleware.RedirectToLogin(c)
	case errors.Is(err, apperrors.ErrForbidden), errors.Is(err, backend.ErrForbidden):
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusForbidden, msgForbidden, err, nil), logger)
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, backend.ErrNotFound):
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusNotFound, msgNotFound, err, nil), logger)
	}

	if msg, ok := businessMessage(err); ok {
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusUnprocessableEntity, msg, err, nil), logger)
	}

	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		return utils.ErrorResponse(c, httpErr, logger)
	}
	return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadGateway, msgUnavailable, err, nil), logger)
}

func businessMessage(err error) (string, bool) {
	for target, msg := range businessMessages {
		if errors.Is(err, target) {
			return msg, true
		}
	}
	return "", false
}

// formFailure разбирает ошибку отправки: ошибки валидатора, ошибки полей
// от API (400) и бизнес-отказы остаются на форме. ok=false - ошибка не про форму.
func formFailure(err error) (message string, fields map[string]string, ok bool) {
	if fields := validation.FieldErrors(err); fields != nil {
		return msgInvalidForm, fields, true
	}
	if msg, ok := businessMessage(err); ok {
		return msg, nil, true
	}
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
		msg := apiErr.Message
		if msg == "" {
			msg = msgInvalidForm
		}
		return msg, apiErr.FieldErrors, true
	}
	return "", nil, false
}

// submit проводит форму через Edit → Submit → проверку → action.
// Возвращает nil, если форму нужно показать снова (Failed) или она принята
// (Succeeded); прочие ошибки отдаются вызывающему как есть.
func submit[T any](c echo.Context, form *formstate.Form[T], values T, success string, action func() error) error {
	if err := form.Edit(values); err != nil {
		return err
	}
	if err := form.Submit(); err != nil {
		return err
	}

	err := c.Validate(&form.Values)
	if err == nil {
		err = action()
	}
	if err == nil {
		return form.Succeed(success)
	}

	message, fields, ok := formFailure(err)
	if !ok {
		_ = form.Fail(msgUnavailable, nil)
		return err
	}
	return form.Fail(message, fields)
}

// formStatus - 422 для формы с ошибками.
func formStatus[T any](form *formstate.Form[T]) int {
	if form.Phase == formstate.Failed {
		return http.StatusUnprocessableEntity
	}
	return http.StatusOK
}

func badRequest(c echo.Context, err error, logger *zap.Logger) error {
	return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, msgInvalidInput, err, nil), logger)
}
