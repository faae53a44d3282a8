package validation

import (
	"reflect"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
)

// registerNullTypes учит валидатор "смотреть внутрь" null.String, null.Int, null.Bool.
// Невалидное значение превращается в nil, чтобы сработал `omitempty`.
// Валидное отдаётся указателем: иначе omitempty пропустит заданный 0 или "".
func registerNullTypes(v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		switch val := field.Interface().(type) {
		case null.String:
			if val.Valid {
				s := val.String
				return &s
			}
		case null.Int:
			if val.Valid {
				i := val.Int
				return &i
			}
		case null.Bool:
			if val.Valid {
				b := val.Bool
				return &b
			}
		}
		return nil
	}, null.String{}, null.Int{}, null.Bool{})
}
