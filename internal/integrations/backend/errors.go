package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Ошибки, по которым вызывающий код принимает решения.
var (
	// ErrUnauthorized - API ответило 401, либо токена нет.
	ErrUnauthorized = errors.New("backend: non authentifié")
	ErrForbidden    = errors.New("backend: accès refusé")
	ErrNotFound     = errors.New("backend: ressource introuvable")
)

// APIError - ответ API с кодом 4xx/5xx.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	// Message - общее сообщение ответа (см. messageKeys).
	Message string
	// FieldErrors - ошибки полей вида {"email": ["..."]}, первое сообщение на поле.
	FieldErrors map[string]string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" && len(e.FieldErrors) > 0 {
		keys := make([]string, 0, len(e.FieldErrors))
		for k := range e.FieldErrors {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+e.FieldErrors[k])
		}
		msg = strings.Join(parts, "; ")
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("backend: %s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, msg)
}

// Is позволяет писать errors.Is(err, backend.ErrNotFound).
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	default:
		return false
	}
}

// parseAPIError разбирает тело ошибки; непонятное тело не мешает вернуть код.
func parseAPIError(method, path string, status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Method: method, Path: path}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return apiErr
	}

	for _, key := range messageKeys {
		if msg, ok := firstString(raw[key]); ok {
			apiErr.Message = msg
			break
		}
	}

	for field, value := range raw {
		if isMessageKey(field) {
			continue
		}
		var list []string
		if json.Unmarshal(value, &list) == nil && len(list) > 0 {
			if apiErr.FieldErrors == nil {
				apiErr.FieldErrors = make(map[string]string)
			}
			apiErr.FieldErrors[field] = list[0]
		}
	}
	return apiErr
}

// messageKeys - общие ключи сообщения в порядке приоритета.
var messageKeys = []string{"detail", "non_field_errors", "error", "message"}

func isMessageKey(field string) bool {
	for _, key := range messageKeys {
		if field == key {
			return true
		}
	}
	return false
}

// firstString понимает и строку, и список строк.
func firstString(value json.RawMessage) (string, bool) {
	if len(value) == 0 {
		return "", false
	}
	var s string
	if json.Unmarshal(value, &s) == nil && s != "" {
		return s, true
	}
	var list []string
	if json.Unmarshal(value, &list) == nil && len(list) > 0 {
		return list[0], true
	}
	return "", false
}
