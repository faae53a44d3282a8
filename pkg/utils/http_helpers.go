package utils

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "maintenance-portal/pkg/errors"
)

const flashCookie = "flash"

// ErrorPage - данные шаблона "error".
type ErrorPage struct {
	Code    int
	Title   string
	Message string
}

// ErrorResponse логирует ошибку и рисует страницу ошибки.
// Причина (Err) в ответ не попадает.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if !errors.As(err, &httpErr) {
		httpErr = apperrors.NewHttpError(http.StatusInternalServerError, "Une erreur interne est survenue.", err, nil)
	}

	if httpErr.Err != nil {
		fields := []zap.Field{
			zap.Int("code", httpErr.Code),
			zap.String("message", httpErr.Message),
			zap.Error(httpErr.Err),
			zap.String("path", c.Request().URL.Path),
		}
		if httpErr.Context != nil {
			fields = append(fields, zap.Any("context", httpErr.Context))
		}
		if httpErr.Code >= http.StatusInternalServerError {
			logger.Error("Erreur HTTP", fields...)
		} else {
			logger.Warn("Erreur HTTP", fields...)
		}
	}

	page := ErrorPage{Code: httpErr.Code, Title: errorTitle(httpErr.Code), Message: httpErr.Message}
	return c.Render(httpErr.Code, "error", page)
}

func errorTitle(code int) string {
	switch code {
	case http.StatusNotFound:
		return "Page introuvable"
	case http.StatusForbidden:
		return "Accès refusé"
	case http.StatusBadRequest:
		return "Requête invalide"
	default:
		return "Erreur"
	}
}

// ParseID читает положительный :id из пути.
func ParseID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, apperrors.NewHttpError(http.StatusBadRequest, "Identifiant invalide.", err, map[string]interface{}{"id": c.Param("id")})
	}
	return id, nil
}

// RedirectWithFlash переходит по адресу и оставляет сообщение для следующей страницы.
func RedirectWithFlash(c echo.Context, location, message string) error {
	if message != "" {
		c.SetCookie(&http.Cookie{
			Name:     flashCookie,
			Value:    url.QueryEscape(message),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return c.Redirect(http.StatusSeeOther, location)
}

// PopFlash возвращает сообщение и удаляет cookie.
func PopFlash(c echo.Context) string {
	cookie, err := c.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return ""
	}
	c.SetCookie(&http.Cookie{Name: flashCookie, Path: "/", MaxAge: -1, HttpOnly: true})
	msg, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return msg
}
