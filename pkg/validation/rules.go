package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var frenchPhoneRe = regexp.MustCompile(`^(?:\+33|0)[1-9](?:[ .-]?\d{2}){4}$`)

// registerRules регистрирует теги, которые мы используем в struct tags
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("notblank", isNotBlank); err != nil {
		return err
	}
	if err := v.RegisterValidation("phone_fr", isFrenchPhoneNumber); err != nil {
		return err
	}
	return nil
}

// isNotBlank - строка не пустая после обрезки пробелов
func isNotBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		return strings.TrimSpace(field.String()) != ""
	case reflect.Ptr:
		if field.IsNil() {
			return false
		}
		return strings.TrimSpace(field.Elem().String()) != ""
	default:
		return !field.IsZero()
	}
}

// isFrenchPhoneNumber - 0612345678, 06 12 34 56 78, +33612345678
func isFrenchPhoneNumber(fl validator.FieldLevel) bool {
	return frenchPhoneRe.MatchString(strings.TrimSpace(fl.Field().String()))
}
