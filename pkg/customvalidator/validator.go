package customvalidator

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
)

var (
	hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	cssWordRegex  = regexp.MustCompile(`^[a-zA-Z]{3,20}$`)
	phoneRegex    = regexp.MustCompile(`^\+?[0-9 ()\-]{8,20}$`)
)

// RegisterCustomValidations регистрирует все кастомные правила в валидаторе.
func RegisterCustomValidations(v *validator.Validate) error {
	registerNullTypes(v)

	if err := v.RegisterValidation("stage_color", isStageColor); err != nil {
		return err
	}
	if err := v.RegisterValidation("br_phone", isPhone); err != nil {
		return err
	}
	return nil
}

// stage_color: #rgb, #rrggbb или CSS-имя цвета (red, orange...).
func isStageColor(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	return hexColorRegex.MatchString(s) || cssWordRegex.MatchString(s)
}

func isPhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(strings.TrimSpace(fl.Field().String()))
}

// registerNullTypes учит валидатор смотреть внутрь null.String и null.Int.
func registerNullTypes(v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.String); ok && val.Valid {
			return val.String
		}
		return nil
	}, null.String{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Int); ok && val.Valid {
			return val.Int
		}
		return nil
	}, null.Int{})
}
