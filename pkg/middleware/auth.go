package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-portal/internal/dto"
	"maintenance-portal/pkg/config"
	apperrors "maintenance-portal/pkg/errors"
	"maintenance-portal/pkg/utils"
)

const SessionKey = "session"

// SessionAuthenticator - проверка cookie сессии (реализует AuthService).
// renewed - новое значение cookie, если срок старого подходит к концу, иначе "".
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, cookieValue string) (session *dto.SessionDTO, renewed string, err error)
}

type AuthMiddleware struct {
	authenticator SessionAuthenticator
	session       config.SessionConfig
	logger        *zap.Logger
}

func NewAuthMiddleware(authenticator SessionAuthenticator, session config.SessionConfig, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authenticator: authenticator,
		session:       session,
		logger:        logger,
	}
}

// SessionCookie - cookie сессии; пустое value удаляет её в браузере.
func SessionCookie(session config.SessionConfig, value string) *http.Cookie {
	maxAge := int(session.TTL.Seconds())
	if value == "" {
		maxAge = -1
	}
	return &http.Cookie{
		Name:     session.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

// Auth пропускает только запросы с действующей сессией, иначе редирект на /login.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := m.load(c); err != nil {
			m.logger.Debug("AuthMiddleware: session absente ou invalide", zap.Error(err), zap.String("path", c.Request().URL.Path))
			m.ClearCookie(c)
			return RedirectToLogin(c)
		}
		return next(c)
	}
}

// Optional подгружает сессию, если она есть (для публичных страниц).
func (m *AuthMiddleware) Optional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		_, _ = m.load(c)
		return next(c)
	}
}

// RequireStaff - только для администраторов; вызывается после Auth.
func (m *AuthMiddleware) RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := utils.GetSessionFromCtx(c.Request().Context())
		if err != nil {
			return RedirectToLogin(c)
		}
		if !session.IsStaff {
			m.logger.Warn("AuthMiddleware: accès administrateur refusé",
				zap.Int("userID", session.UserID),
				zap.String("path", c.Request().URL.Path),
			)
			return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusForbidden,
				"Cette page est réservée aux administrateurs.", apperrors.ErrForbidden, nil), m.logger)
		}
		return next(c)
	}
}

func (m *AuthMiddleware) load(c echo.Context) (*dto.SessionDTO, error) {
	cookie, err := c.Cookie(m.session.CookieName)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	session, renewed, err := m.authenticator.Authenticate(c.Request().Context(), cookie.Value)
	if err != nil {
		return nil, err
	}
	if renewed != "" {
		c.SetCookie(SessionCookie(m.session, renewed))
	}
	c.SetRequest(c.Request().WithContext(utils.WithSession(c.Request().Context(), session)))
	c.Set(SessionKey, session)
	return session, nil
}

// ClearCookie удаляет cookie сессии в браузере.
func (m *AuthMiddleware) ClearCookie(c echo.Context) {
	c.SetCookie(SessionCookie(m.session, ""))
}

// RedirectToLogin запоминает исходный адрес в ?next=.
func RedirectToLogin(c echo.Context) error {
	target := "/login"
	if c.Request().Method == http.MethodGet {
		target += "?next=" + url.QueryEscape(c.Request().URL.RequestURI())
	}
	return c.Redirect(http.StatusSeeOther, target)
}
