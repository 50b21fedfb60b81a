package validator

import (
	"reflect"
	"regexp"
	"strings"

	"medical-appointments-api/pkg/optional"

	"github.com/go-playground/validator/v10"
)

// clockPattern accepts H:MM or HH:MM within 00:00-23:59.
var clockPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// Weekdays are the attendance day names stored on doctors.
var Weekdays = []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"}

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()

	// Report field errors by their JSON name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(optionalString, optional.Optional[string]{})

	v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return IsClock(fl.Field().String())
	})
	v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return IsWeekday(fl.Field().String())
	})

	return &CustomValidator{validator: v}
}

// optionalString exposes the wrapped value to rules; absent and null
// fields validate as missing so omitempty skips them.
func optionalString(field reflect.Value) interface{} {
	if o, ok := field.Interface().(optional.Optional[string]); ok && o.HasValue() {
		return o.Value
	}
	return nil
}

func IsClock(s string) bool {
	return clockPattern.MatchString(s)
}

func IsWeekday(s string) bool {
	for _, d := range Weekdays {
		if d == s {
			return true
		}
	}
	return false
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "email":
				errors[field] = field + " must be a valid email address"
			case "min":
				errors[field] = field + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = field + " must be at most " + e.Param() + " characters"
			case "gt":
				errors[field] = field + " must be greater than " + e.Param()
			case "gte":
				errors[field] = field + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = field + " must be less than or equal to " + e.Param()
			case "oneof":
				errors[field] = field + " must be one of: " + e.Param()
			case "datetime":
				errors[field] = field + " must be a date in format " + e.Param()
			case "clock":
				errors[field] = field + " must be a time in format HH:MM"
			case "weekday":
				errors[field] = field + " must be a weekday name"
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}
