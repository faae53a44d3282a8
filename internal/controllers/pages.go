package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-portal/internal/services"
	apperrors "maintenance-portal/pkg/errors"
	"maintenance-portal/pkg/middleware"
	"maintenance-portal/pkg/utils"
)

type FAQEntry struct {
	Question string
	Answer   string
}

var faq = []FAQEntry{
	{
		Question: "Comment signaler une panne ?",
		Answer:   "Utilisez le formulaire « Signaler une panne ». Aucun compte n'est nécessaire.",
	},
	{
		Question: "Comment suivre ma demande ?",
		Answer:   "Un e-mail de confirmation indique le numéro de votre demande. Vous êtes prévenu par e-mail à la clôture de l'intervention.",
	},
	{
		Question: "Que signifie « Irréparable » ?",
		Answer:   "Le technicien a jugé la réparation impossible ou non rentable. Le matériel est alors inscrit à l'inventaire des équipements avec la cause indiquée.",
	},
	{
		Question: "Qui peut gérer les utilisateurs ?",
		Answer:   "Seuls les administrateurs ont accès au tableau de bord et à la gestion des comptes.",
	},
}

type PageController struct {
	dashboardService services.DashboardServiceInterface
	logger           *zap.Logger
}

func NewPageController(dashboardService services.DashboardServiceInterface, logger *zap.Logger) *PageController {
	return &PageController{dashboardService: dashboardService, logger: logger}
}

func (ctrl *PageController) Home(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, defaultLanding)
}

func (ctrl *PageController) FAQ(c echo.Context) error {
	return c.Render(http.StatusOK, "faq", faq)
}

func (ctrl *PageController) Dashboard(c echo.Context) error {
	logger := middleware.FromContext(c, ctrl.logger)
	d, err := ctrl.dashboardService.GetDashboard(c.Request().Context())
	if err != nil {
		return handleError(c, err, logger)
	}
	return c.Render(http.StatusOK, "dashboard", d)
}

// NewHTTPErrorHandler рисует страницу ошибки и для ошибок самого Echo
// (404 маршрута, 405, паника после Recover).
func NewHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			msg := http.StatusText(echoErr.Code)
			switch echoErr.Code {
			case http.StatusNotFound:
				msg = "La page demandée n'existe pas."
			case http.StatusMethodNotAllowed:
				msg = "Méthode non autorisée."
			}
			err = apperrors.NewHttpError(echoErr.Code, msg, nil, nil)
		}

		if renderErr := utils.ErrorResponse(c, err, logger); renderErr != nil {
			logger.Error("Impossible d'afficher la page d'erreur", zap.Error(renderErr))
			_ = c.String(http.StatusInternalServerError, "Erreur interne")
		}
	}
}

// NotFound - для любых адресов без маршрута; сессия подгружается, чтобы
// меню страницы 404 соответствовало пользователю.
func (ctrl *PageController) NotFound(c echo.Context) error {
	return echo.ErrNotFound
}
