package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldErrors переводит ошибки валидатора в сообщения для формы: поле → текст.
// Для прочих ошибок возвращает nil.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "Ce champ est obligatoire."
	case "email":
		return "Adresse e-mail invalide."
	case "phone_fr":
		return "Numéro de téléphone invalide."
	case "min":
		return fmt.Sprintf("Valeur trop courte (minimum %s).", fe.Param())
	case "max":
		return fmt.Sprintf("Valeur trop longue (maximum %s).", fe.Param())
	case "gte":
		return fmt.Sprintf("La valeur doit être supérieure ou égale à %s.", fe.Param())
	case "oneof":
		return "Valeur non autorisée."
	default:
		return fmt.Sprintf("Valeur invalide (%s).", fe.Tag())
	}
}
