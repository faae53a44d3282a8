package errors

import (
	"errors"
	"fmt"
)

var (
	// Сессия
	ErrInvalidSigningMethod = fmt.Errorf("méthode de signature du jeton invalide")
	ErrInvalidToken         = fmt.Errorf("jeton de session invalide")
	ErrTokenExpired         = fmt.Errorf("jeton de session expiré")
	ErrSessionNotFound      = fmt.Errorf("session introuvable")

	// Авторизация
	ErrInvalidCredentials = fmt.Errorf("identifiants incorrects")
	ErrUnauthorized       = fmt.Errorf("non authentifié")
	ErrForbidden          = fmt.Errorf("accès refusé")

	// Заявки и вмешательства
	ErrInterventionLocked   = fmt.Errorf("intervention clôturée: modification impossible")
	ErrInvalidTransition    = fmt.Errorf("transition de statut non autorisée")
	ErrCauseRequired        = fmt.Errorf("la cause de l'irréparabilité est obligatoire")
	ErrNotIrreparable       = fmt.Errorf("intervention non déclarée irréparable")
	ErrDemandeNotActionable = fmt.Errorf("la demande a déjà été traitée")

	// Общие
	ErrNotFound   = fmt.Errorf("élément introuvable")
	ErrBadRequest = fmt.Errorf("requête invalide")
)

// Кастомные типы ошибок
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// HttpError - ошибка с HTTP-кодом и сообщением для пользователя.
// Err - исходная причина (только для логов), Context - доп. поля для логов.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%d %s", e.Code, e.Message)
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: context}
}

// Is - прокси к стандартному errors.Is, чтобы не импортировать оба пакета.
func Is(err, target error) bool { return errors.Is(err, target) }
