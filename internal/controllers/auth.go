package controllers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-portal/internal/dto"
	"maintenance-portal/internal/services"
	"maintenance-portal/pkg/config"
	"maintenance-portal/pkg/formstate"
	"maintenance-portal/pkg/middleware"
	"maintenance-portal/pkg/utils"
)

const defaultLanding = "/demandes"

type AuthController struct {
	authService services.AuthServiceInterface
	session     config.SessionConfig
	logger      *zap.Logger
}

func NewAuthController(authService services.AuthServiceInterface, session config.SessionConfig, logger *zap.Logger) *AuthController {
	return &AuthController{authService: authService, session: session, logger: logger}
}

// LoginPage - данные шаблона login. Next - куда вернуться после входа.
type LoginPage struct {
	Form *formstate.Form[dto.LoginDTO]
	Next string
}

func (ctrl *AuthController) LoginForm(c echo.Context) error {
	if c.Get(middleware.SessionKey) != nil {
		return c.Redirect(http.StatusSeeOther, defaultLanding)
	}
	return c.Render(http.StatusOK, "login", LoginPage{
		Form: formstate.New(dto.LoginDTO{}),
		Next: safeNext(c.QueryParam("next")),
	})
}

func (ctrl *AuthController) Login(c echo.Context) error {
	logger := middleware.FromContext(c, ctrl.logger)

	var values dto.LoginDTO
	if err := c.Bind(&values); err != nil {
		return badRequest(c, err, logger)
	}
	next := safeNext(c.FormValue("next"))

	form := formstate.New(dto.LoginDTO{})
	var (
		session     *dto.SessionDTO
		cookieValue string
	)
	err := submit(c, form, values, "", func() error {
		var err error
		session, cookieValue, err = ctrl.authService.Login(c.Request().Context(), form.Values)
		return err
	})
	if err != nil {
		return handleError(c, err, logger)
	}
	if form.Phase != formstate.Succeeded {
		form.Values.Password = ""
		return c.Render(formStatus(form), "login", LoginPage{Form: form, Next: next})
	}

	c.SetCookie(middleware.SessionCookie(ctrl.session, cookieValue))
	return utils.RedirectWithFlash(c, next, "Bienvenue, "+session.Username+" !")
}

func (ctrl *AuthController) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(ctrl.session.CookieName); err == nil {
		if err := ctrl.authService.Logout(c.Request().Context(), cookie.Value); err != nil {
			middleware.FromContext(c, ctrl.logger).Warn("Déconnexion incomplète", zap.Error(err))
		}
	}
	c.SetCookie(middleware.SessionCookie(ctrl.session, ""))
	return utils.RedirectWithFlash(c, "/login", "Vous êtes déconnecté.")
}

// Profile показывает данные из сессии, без запроса к API.
func (ctrl *AuthController) Profile(c echo.Context) error {
	return c.Render(http.StatusOK, "profile", nil)
}

// safeNext допускает только локальные пути.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return defaultLanding
	}
	return next
}
